package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NextDocumentNumber assigns the next sequential number for the given
// document type in now's calendar year, formatted {PREFIX}-{YEAR}-{NNNN}.
//
// The scan covers live (not soft-deleted) documents of the same type whose
// number carries the current year marker; the highest trailing sequence
// segment wins and the next number is one past it. Trailing segments that
// do not parse as integers are skipped, not errors. The year rollover
// resets the sequence to 0001 per type.
//
// Soft-deleted documents do not hold their number: trashing the document
// with the highest sequence returns that number to the pool. This mirrors
// the historical behavior and is an accepted collision risk for the
// single-user deployment, not a bug to fix silently.
//
// This is a pure scan with no reservation: calling it without persisting
// the resulting document does not claim the number.
func NextDocumentNumber(docs []Document, docType DocType, now time.Time) string {
	year := strconv.Itoa(now.Year())
	marker := "-" + year + "-"

	maxSeq := 0
	for _, d := range docs {
		if d.IsDeleted || d.Type != docType || !strings.Contains(d.Number, marker) {
			continue
		}
		parts := strings.Split(d.Number, "-")
		seq, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil || seq <= maxSeq {
			continue
		}
		maxSeq = seq
	}

	return fmt.Sprintf("%s-%s-%04d", docType.Prefix(), year, maxSeq+1)
}
