// Command seedtariffs converts a tariff schedule workbook into a SQL seed file.
// Blank rate cells stay NULL; only cells reading "Free" become 0.
// Usage: go run ./cmd/seedtariffs --input hts_2025.xlsx --schedule us
// Output: db/seeds/tariff_rates_us.sql
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"github.com/xuri/excelize/v2"
)

const batchSize = 500

// scheduleTable describes the target table of one destination schedule.
type scheduleTable struct {
	table     string
	mfnCol    string
	treatyCol string
	source    string
}

var schedules = map[string]scheduleTable{
	"us": {table: "tariff_intelligence_master", mfnCol: "mfn_rate", treatyCol: "usmca_rate", source: "usitc_hts"},
	"mx": {table: "tariff_rates_mexico", mfnCol: "igi_rate", treatyCol: "tmec_rate", source: "dof_tigie"},
}

func main() {
	app := &cli.App{
		Name:  "seedtariffs",
		Usage: "Convert a tariff schedule workbook into a SQL seed file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Path to the schedule workbook (.xlsx)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "schedule",
				Value: "us",
				Usage: "Destination schedule (us, mx)",
			},
			&cli.StringFlag{
				Name:  "sheet",
				Usage: "Sheet name (default: first sheet)",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Output path (default: db/seeds/tariff_rates_<schedule>.sql)",
			},
			&cli.StringFlag{
				Name:  "effective-date",
				Usage: "Effective date of the schedule (YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "Source label stored with each row",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	name := strings.ToLower(c.String("schedule"))
	sched, ok := schedules[name]
	if !ok {
		return fmt.Errorf("unknown schedule %q (want us or mx)", name)
	}
	if src := c.String("source"); src != "" {
		sched.source = src
	}

	effective := "NULL"
	if d := c.String("effective-date"); d != "" {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid effective date %q: must be YYYY-MM-DD", d)
		}
		effective = "'" + d + "'"
	}

	outPath := c.String("out")
	if outPath == "" {
		outPath = fmt.Sprintf("db/seeds/tariff_rates_%s.sql", name)
	}

	f, err := excelize.OpenFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := c.String("sheet")
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	cols, headerRow, ok := locateColumns(rows)
	if !ok {
		return fmt.Errorf("sheet %q: no header row with a code and general rate column", sheet)
	}
	if cols.usmca < 0 && cols.special < 0 {
		log.Printf("warning: no USMCA or special rate column; every treaty rate will be NULL")
	}

	var a audit
	entries := parseRows(rows, cols, headerRow+1, &a)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := writeSeed(out, sched, effective, entries); err != nil {
		return err
	}

	printAudit(os.Stdout, &a)
	log.Printf("Generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

func writeSeed(out io.Writer, sched scheduleTable, effective string, entries []rateEntry) error {
	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		fmt.Sprintf("-- %s seed data generated from a schedule workbook.", sched.table),
		fmt.Sprintf("-- %d entries in batches of %d. NULL rates mean no data, not duty-free.", len(entries), batchSize),
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, sched, effective, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}
	return nil
}

func writeBatch(out io.Writer, sched scheduleTable, effective string, batch []rateEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (hs_code, description, %s, %s, effective_date, source) VALUES\n",
		sched.table, sched.mfnCol, sched.treatyCol)

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', %s, %s, %s, '%s')",
			escapeSQL(e.code), escapeSQL(e.description), sqlRate(e.mfn), sqlRate(e.usmca), effective, escapeSQL(sched.source))
	}

	b.WriteString("\nON CONFLICT (hs_code, effective_date) DO NOTHING;\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func sqlRate(v decimal.NullDecimal) string {
	if !v.Valid {
		return "NULL"
	}
	return v.Decimal.String()
}

func printAudit(out io.Writer, a *audit) {
	fmt.Fprintln(out, "Rate audit")
	fmt.Fprintf(out, "  rows parsed:              %d\n", a.rows)
	fmt.Fprintf(out, "  rows skipped (no code):   %d\n", a.skipped)
	fmt.Fprintf(out, "  duplicate codes:          %d\n", a.duplicates)
	fmt.Fprintf(out, "  MFN Free:                 %d\n", a.mfnFree)
	fmt.Fprintf(out, "  MFN zero (any form):      %d\n", a.mfnZero)
	fmt.Fprintf(out, "  MFN NULL:                 %d (%d non ad valorem)\n", a.mfnNull, a.mfnOther)
	fmt.Fprintf(out, "  USMCA zero:               %d\n", a.usmcaZero)
	fmt.Fprintf(out, "  USMCA NULL:               %d\n", a.usmcaNull)
	if len(a.zeroMFNRows) > 0 {
		fmt.Fprintf(out, "  zero MFN not marked Free: %s\n", strings.Join(a.zeroMFNRows, ", "))
	}
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
