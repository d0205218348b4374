package main

import (
	"fmt"
	"io"
	"time"

	"jellyboxd/internal/history"
	"jellyboxd/internal/interchange"
	"jellyboxd/internal/letterboxd"
)

func printRecords(out io.Writer, records []interchange.Record) {
	if len(records) == 0 {
		return
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.Title, rec.Year, rec.WatchedDate})
	}
	fmt.Fprintln(out, renderTable([]column{col("Title"), numCol("Year"), col("Watched")}, rows))
}

func printExportSummary(out io.Writer, result history.Result) {
	fmt.Fprintf(out, "Exported %d records from %d watched items to %s\n",
		len(result.Records), result.Fetched, result.Path)
}

func printImportOutcome(out io.Writer, outcome letterboxd.Outcome, runErr error) {
	if len(outcome.Transitions) > 0 {
		rows := make([][]string, 0, len(outcome.Transitions))
		for i, tr := range outcome.Transitions {
			status := "ok"
			switch {
			case runErr != nil && i == len(outcome.Transitions)-1:
				status = "failed"
			case tr.Degraded:
				status = "degraded"
			}
			rows = append(rows, []string{
				string(tr.From),
				string(tr.To),
				tr.Elapsed.Round(time.Millisecond).String(),
				status,
			})
		}
		fmt.Fprintln(out, renderTable([]column{col("From"), col("To"), numCol("Elapsed"), col("Status")}, rows))
	}

	switch {
	case runErr != nil:
		fmt.Fprintf(out, "Letterboxd import stopped in state %s\n", outcome.State)
	case outcome.Confirmed:
		fmt.Fprintf(out, "Letterboxd import completed (%d rows)\n", outcome.Rows)
	default:
		fmt.Fprintf(out, "Letterboxd import submitted but not confirmed; check %s\n", displayURL(outcome.FinalURL))
	}
}

func displayURL(url string) string {
	if url == "" {
		return "the Letterboxd import page"
	}
	return url
}
