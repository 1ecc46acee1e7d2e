package services

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatDocNumber builds a consecutive document number like "COT-2026-003".
// "-" keeps the number safe inside URLs and filenames.
func formatDocNumber(prefix string, year int, sequence int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, sequence)
}

// nextDocNumber counts existing documents of a project for the current year
// and returns the next consecutive number with the given prefix.
func nextDocNumber(app *pocketbase.PocketBase, collection, prefix, projectID string, now time.Time) string {
	yearPrefix := fmt.Sprintf("%s-%d-", prefix, now.Year())

	existing, err := app.FindRecordsByFilter(
		collection,
		"project = {:projectId} && number ~ {:prefix}",
		"", 0, 0,
		map[string]any{
			"projectId": projectID,
			"prefix":    yearPrefix + "%",
		},
	)
	if err != nil {
		// Restarting at 1 here would hand out a duplicate consecutive, so
		// make the failure loud even though a number is still returned.
		log.Printf("numbering: count query for %s %s failed, sequence may collide: %v", collection, yearPrefix, err)
		existing = nil
	}

	return formatDocNumber(prefix, now.Year(), len(existing)+1)
}

// GenerateQuoteNumber returns the next quote consecutive for a project,
// e.g. "COT-2026-001". Sequences restart every calendar year.
func GenerateQuoteNumber(app *pocketbase.PocketBase, projectID string, now time.Time) string {
	return nextDocNumber(app, "quotes", "COT", projectID, now)
}

// GenerateCorteNumber returns the next corte consecutive for a project,
// e.g. "CRT-2026-001".
func GenerateCorteNumber(app *pocketbase.PocketBase, projectID string, now time.Time) string {
	return nextDocNumber(app, "cortes", "CRT", projectID, now)
}

// NextActaSequence returns the next acta sequence number for a project.
// Actas are numbered 1..n per project for their whole lifetime; the sequence
// never restarts because actas are the audit trail cortes are built from.
func NextActaSequence(app *pocketbase.PocketBase, projectID string) int {
	existing, err := app.FindRecordsByFilter(
		"actas",
		"project = {:projectId}",
		"-sequence", 1, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil || len(existing) == 0 {
		return 1
	}
	return existing[0].GetInt("sequence") + 1
}
