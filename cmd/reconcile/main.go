// reconcile runs the reconciliation pipeline over two report files on disk
// and writes the snapshot workbook plus the client summary next to them.
// No review pass happens here; it is the batch equivalent of uploading both
// files and downloading the initial state.
//
// Usage:
//   go run ./cmd/reconcile -primary weekly_hours.xlsx -secondary roster.csv -out ./out
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"bitbucket.org/mmdatafocus/hours_backend/config"
	"bitbucket.org/mmdatafocus/hours_backend/models"
	"bitbucket.org/mmdatafocus/hours_backend/models/reports"
	"bitbucket.org/mmdatafocus/hours_backend/workflow"
)

func readReportFile(path string, cfg models.NormalizerConfig) (*models.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return reports.ReadReport(path, f, cfg)
}

func main() {
	primaryPath := flag.String("primary", "", "path to the primary (agency) report, .xlsx")
	secondaryPath := flag.String("secondary", "", "path to the secondary (client) report, .xlsx or .csv")
	outDir := flag.String("out", ".", "output directory")
	day := flag.String("day", "", "optional day-of-week filter, e.g. Monday")
	flag.Parse()

	if *primaryPath == "" || *secondaryPath == "" {
		fmt.Fprintln(os.Stderr, "both -primary and -secondary are required")
		os.Exit(2)
	}

	logger := config.GetLogger()

	primary, err := readReportFile(*primaryPath, models.PrimaryNormalizerConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "primary report:", err)
		os.Exit(1)
	}
	secondary, err := readReportFile(*secondaryPath, models.SecondaryNormalizerConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "secondary report:", err)
		os.Exit(1)
	}

	session, err := workflow.ProcessReconciliationWorkflow(logger, "batch", primary, secondary)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *day != "" {
		if err := workflow.ProcessDayFilterWorkflow(logger, session, *day); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	_, summary, text := workflow.ProcessValidationWorkflow(logger, session)

	workbook, err := reports.BuildWorkbook(session)
	if err != nil {
		fmt.Fprintln(os.Stderr, "building workbook:", err)
		os.Exit(1)
	}
	workbookPath := filepath.Join(*outDir, "reconciliation.xlsx")
	if err := workbook.SaveAs(workbookPath); err != nil {
		fmt.Fprintln(os.Stderr, "writing workbook:", err)
		os.Exit(1)
	}
	summaryPath := filepath.Join(*outDir, "client_summary.txt")
	if err := os.WriteFile(summaryPath, []byte(text), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "writing summary:", err)
		os.Exit(1)
	}

	tallies := session.Tallies()
	fmt.Printf("discrepancies: %d primary-only, %d secondary-only, %d mismatched, %d invalid badges\n",
		tallies[models.DiscrepancyCategoryPrimaryOnly],
		tallies[models.DiscrepancyCategorySecondaryOnly],
		tallies[models.DiscrepancyCategoryMismatched],
		tallies[models.DiscrepancyCategoryInvalidIdentifier])
	fmt.Printf("totals: primary %.2f vs secondary %.2f (%s)\n",
		summary.CorrectedPrimaryTotal, summary.CorrectedSecondaryTotal, summary.MatchStatus())
	fmt.Println("wrote", workbookPath, "and", summaryPath)
}
