package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/citelint/citelint/internal/config"
	"github.com/citelint/citelint/internal/storage"
)

var reportsLimit int

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsDeleteCmd)
	reportsListCmd.Flags().IntVar(&reportsLimit, "limit", 20, "Maximum number of reports to list (0 = all)")
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage saved compliance reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	Args:  cobra.NoArgs,
	RunE:  runReportsList,
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved report in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsShow,
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsDelete,
}

// ReportListResult is the response for the reports list command.
type ReportListResult struct {
	Reports []storage.Saved `json:"reports"`
	Total   int             `json:"total"`
}

func openReportStore() *storage.DB {
	_ = godotenv.Load()
	db, err := storage.OpenDB(config.ReportsDBPath())
	if err != nil {
		exitWithError(ExitConfigError, "opening report store: %v", err)
	}
	return db
}

func runReportsList(cmd *cobra.Command, args []string) error {
	db := openReportStore()
	defer db.Close()

	saved, err := db.List(reportsLimit)
	if err != nil {
		exitWithError(ExitError, "listing reports: %v", err)
	}
	if saved == nil {
		saved = []storage.Saved{}
	}

	if humanOutput {
		if len(saved) == 0 {
			fmt.Println("No saved reports.")
			return nil
		}
		for _, s := range saved {
			fmt.Printf("%s  %s  %s\n", s.ID, s.CreatedAt.Format("2006-01-02 15:04"), truncateString(s.Document, 50))
			fmt.Printf("    %d citations, %d references, %.1f%% matched, %d year mismatches\n",
				s.TotalCitations, s.TotalReferences, s.MatchRate*100, s.YearMismatchCount)
		}
	} else {
		outputJSON(ReportListResult{Reports: saved, Total: len(saved)})
	}
	return nil
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	db := openReportStore()
	defer db.Close()

	saved, err := db.Get(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("%s  analyzed %s\n", saved.ID, saved.CreatedAt.Format("2006-01-02 15:04:05"))
		printReportHuman(AnalyzeResult{Document: saved.Document, Report: saved.Report})
	} else {
		outputJSON(saved)
	}
	return nil
}

func runReportsDelete(cmd *cobra.Command, args []string) error {
	db := openReportStore()
	defer db.Close()

	if err := db.Delete(args[0]); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Deleted %s\n", args[0])
	} else {
		outputJSON(map[string]string{"deleted": args[0]})
	}
	return nil
}
