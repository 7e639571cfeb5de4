// Command seedpolicy converts a policy-rule Excel workbook into a SQL seed
// file. The workbook's first sheet carries one row per (insurer, plan) with
// columns: Insurer, Plan, Coverage %, Deductible, Annual Limit, Room Rent
// Limit/Day (blank = unlimited), Co-pay %, Non-payable Keywords
// (comma-separated), Processing.
// Usage: go run ./cmd/seedpolicy [workbook.xlsx]
// Output: db/seeds/policy_rules.sql
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type policyRow struct {
	insurer       string
	plan          string
	coveragePct   float64
	deductible    float64
	annualLimit   float64
	roomRentLimit *float64
	coPayPct      float64
	nonPayables   []string
	processing    string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "policy_rules.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/policy_rules.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("sheet %s has no data rows", sheet)
	}

	seen := make(map[string]bool)
	var entries []policyRow
	for i, row := range rows[1:] {
		entry, perr := parseRow(row)
		if perr != nil {
			log.Printf("row %d skipped: %v", i+2, perr)
			continue
		}
		key := entry.insurer + "/" + entry.plan
		if seen[key] {
			log.Printf("row %d skipped: duplicate %s", i+2, key)
			continue
		}
		seen[key] = true
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no valid policy rows in %s", xlsxPath)
	}
	log.Printf("parsed %d policy rules", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	fmt.Fprintln(out, "-- Policy rule seed data generated from Excel.")
	fmt.Fprintf(out, "-- %d rules.\n", len(entries))
	fmt.Fprintln(out, "BEGIN;")
	fmt.Fprintln(out)
	for _, e := range entries {
		kw, _ := json.Marshal(e.nonPayables)
		roomLimit := "NULL"
		if e.roomRentLimit != nil {
			roomLimit = fmt.Sprintf("%.2f", *e.roomRentLimit)
		}
		fmt.Fprintf(out,
			"INSERT INTO policy_rules (id, insurer, plan, coverage_percent, deductible, annual_limit, room_rent_limit, co_pay_percent, non_payable_keywords, processing_descriptor, created_at, updated_at)\n"+
				"VALUES (gen_random_uuid(), %s, %s, %.2f, %.2f, %.2f, %s, %.2f, %s, %s, now(), now())\n"+
				"ON CONFLICT (insurer, plan) DO UPDATE SET coverage_percent = EXCLUDED.coverage_percent, deductible = EXCLUDED.deductible, annual_limit = EXCLUDED.annual_limit, room_rent_limit = EXCLUDED.room_rent_limit, co_pay_percent = EXCLUDED.co_pay_percent, non_payable_keywords = EXCLUDED.non_payable_keywords, processing_descriptor = EXCLUDED.processing_descriptor, updated_at = now();\n\n",
			sqlQuote(e.insurer), sqlQuote(e.plan), e.coveragePct, e.deductible, e.annualLimit,
			roomLimit, e.coPayPct, sqlQuote(string(kw)), sqlQuote(e.processing))
	}
	fmt.Fprintln(out, "COMMIT;")

	log.Printf("wrote %s", outPath)
	return nil
}

func parseRow(row []string) (policyRow, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var e policyRow
	e.insurer = cell(0)
	e.plan = cell(1)
	if e.insurer == "" || e.plan == "" {
		return e, fmt.Errorf("missing insurer or plan")
	}

	var err error
	if e.coveragePct, err = parseNumber(cell(2)); err != nil {
		return e, fmt.Errorf("coverage percent: %w", err)
	}
	if e.deductible, err = parseNumber(cell(3)); err != nil {
		return e, fmt.Errorf("deductible: %w", err)
	}
	if e.annualLimit, err = parseNumber(cell(4)); err != nil {
		return e, fmt.Errorf("annual limit: %w", err)
	}
	if v := cell(5); v != "" && !strings.EqualFold(v, "unlimited") {
		limit, lerr := parseNumber(v)
		if lerr != nil {
			return e, fmt.Errorf("room rent limit: %w", lerr)
		}
		e.roomRentLimit = &limit
	}
	if v := cell(6); v != "" {
		if e.coPayPct, err = parseNumber(v); err != nil {
			return e, fmt.Errorf("co-pay percent: %w", err)
		}
	}
	for _, kw := range strings.Split(cell(7), ",") {
		if kw = strings.TrimSpace(strings.ToLower(kw)); kw != "" {
			e.nonPayables = append(e.nonPayables, kw)
		}
	}
	e.processing = cell(8)
	return e, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.NewReplacer(",", "", "%", "", "₹", "").Replace(s)
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func sqlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
