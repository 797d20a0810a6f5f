package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/app/classify"
	"github.com/centavo-app/centavo/internal/domain"
	"github.com/centavo-app/centavo/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringP("owner", "o", "", "Owner whose categories to match against (required)")
	suggestCmd.Flags().StringP("direction", "d", "EXPENSE", "Transaction direction (INCOME or EXPENSE)")
	suggestCmd.Flags().IntP("top", "n", 1, "How many ranked suggestions to print")
	suggestCmd.MarkFlagRequired("owner")
}

var suggestCmd = &cobra.Command{
	Use:   "suggest DESCRIPTION...",
	Short: "Suggest a category for a transaction description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	owner, _ := cmd.Flags().GetString("owner")
	dirFlag, _ := cmd.Flags().GetString("direction")
	top, _ := cmd.Flags().GetInt("top")

	dir, err := domain.ParseDirection(strings.ToUpper(dirFlag))
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	categories, err := db.ListCategories(cmd.Context(), owner, dir)
	if err != nil {
		return err
	}

	description := strings.Join(args, " ")
	matches := classify.SuggestTop(description, categories, dir, top)
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No suggestion.")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%-24s score %3d  (keyword %q)\n", m.CategoryName, m.Score, m.MatchedKeyword)
	}
	return nil
}
