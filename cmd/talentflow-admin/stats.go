package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/talentflow/ui-api/internal/data"
)

// statTables lists every table the seeder owns, in schema order. Counting
// meta too makes a half-applied migration visible at a glance.
var statTables = []string{
	"jobs",
	"candidates",
	"candidate_events",
	"assessments",
	"assessment_responses",
	"meta",
}

type tableStat struct {
	Table string
	Rows  int64
}

type statsReport struct {
	Tables []tableStat
	// SeededAt holds the stored seed timestamp; empty when the flag is unset.
	SeededAt string
}

func gatherStats(ctx context.Context, db *sql.DB) (statsReport, error) {
	report := statsReport{Tables: make([]tableStat, 0, len(statTables))}

	for _, table := range statTables {
		var n int64
		// Table names come from the fixed list above, never from input.
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return statsReport{}, fmt.Errorf("count %s: %w", table, err)
		}
		report.Tables = append(report.Tables, tableStat{Table: table, Rows: n})
	}

	seededAt, found, err := data.NewMetaRepo(db).Get(ctx, data.MetaKeySeeded)
	if err != nil {
		return statsReport{}, fmt.Errorf("read seeded flag: %w", err)
	}
	if found {
		report.SeededAt = seededAt
	}

	return report, nil
}

func printTableStats(report statsReport) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "Table\tRows"); err != nil {
		return fmt.Errorf("write stats header: %w", err)
	}
	for _, s := range report.Tables {
		if err := writef(w, "%s\t%d\n", s.Table, s.Rows); err != nil {
			return fmt.Errorf("write stats row %q: %w", s.Table, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush stats: %w", err)
	}

	seeded := report.SeededAt
	if seeded == "" {
		seeded = "no"
	}
	if err := writef(os.Stdout, "\nSeeded: %s\n", seeded); err != nil {
		return fmt.Errorf("write seeded flag: %w", err)
	}
	return nil
}
