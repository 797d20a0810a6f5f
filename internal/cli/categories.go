package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/app/classify"
	"github.com/centavo-app/centavo/internal/domain"
	"github.com/centavo-app/centavo/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringP("owner", "o", "", "Owner to seed categories for (required)")
	seedCmd.MarkFlagRequired("owner")
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage categories",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the stock category set for an owner",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	owner, _ := cmd.Flags().GetString("owner")

	db, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	existing, err := db.ListCategories(cmd.Context(), owner, "")
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.Name] = true
	}

	created := 0
	for _, dc := range classify.DefaultCategories() {
		if have[dc.Name] {
			continue
		}
		c := domain.Category{
			ID:        uuid.NewString(),
			OwnerID:   owner,
			Name:      dc.Name,
			Direction: dc.Direction,
			Keywords:  dc.Keywords,
		}
		if err := c.ValidateKeywords(); err != nil {
			return fmt.Errorf("stock category %q: %w", dc.Name, err)
		}
		if err := db.InsertCategory(cmd.Context(), c); err != nil {
			return fmt.Errorf("insert %q: %w", dc.Name, err)
		}
		created++
	}
	fmt.Fprintf(os.Stdout, "Created %d categories (%d already present).\n", created, len(existing))
	return nil
}
