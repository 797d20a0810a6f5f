package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/app/recurring"
	"github.com/centavo-app/centavo/internal/infra/sqlite"
	"github.com/centavo-app/centavo/internal/logging"
)

func init() {
	rootCmd.AddCommand(recurringCmd)
	recurringCmd.AddCommand(recurringRunCmd)
}

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Manage recurring transaction expansion",
}

var recurringRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Expand all due recurring transactions now",
	Long: `Run one expansion cycle immediately, outside the daily schedule.
The engine is idempotent: re-running it emits nothing new until more
occurrences fall due.`,
	RunE: runRecurringRun,
}

func runRecurringRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: logging.ParseLevel(cfg.Log.Level), JSON: cfg.Log.JSON})

	db, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	expander := recurring.New(recurring.DefaultConfig(), db, logger)
	report, err := expander.Run(cmd.Context(), time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Considered: %d\nProcessed:  %d\nCreated:    %d\nFailed:     %d\n",
		report.TemplatesConsidered, report.TemplatesProcessed,
		report.InstancesCreated, report.TemplatesFailed)
	return nil
}
