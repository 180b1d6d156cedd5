package aiperf

import "github.com/sbenjam1n/arcacademy/internal/academy"

// Compare joins human results against AI summaries by puzzle id. Every
// human result produces a record; a missing AI summary is represented as a
// nil AI side, never dropped. Input order is preserved.
func Compare(results []academy.HumanResult, summaries map[string]academy.PerformanceSummary) []academy.ComparisonRecord {
	out := make([]academy.ComparisonRecord, 0, len(results))
	for _, r := range results {
		record := academy.ComparisonRecord{
			PuzzleID: r.PuzzleID,
			Human:    r,
		}
		if s, ok := summaries[r.PuzzleID]; ok {
			summary := s
			record.AI = &summary
			record.Overconfident = summary.Overconfident()
		}
		out = append(out, record)
	}
	return out
}
