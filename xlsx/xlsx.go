// Package xlsx writes a payout report to a spreadsheet.
//
// The sheet has two blocks: an aggregation table (product, amount, fee,
// net) and a detail table (one row per transaction), separated by
// exactly one blank row. Monetary values are converted from minor to
// major currency units; timestamps render as UTC date-times.
package xlsx

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sudosos/payout-report/report"
)

var (
	aggregationHeaders = []string{"product", "amount", "fee", "net"}
	detailHeaders      = []string{"id", "created", "amount", "currency", "fee", "net", "product", "name", "email"}

	centsPerUnit = decimal.NewFromInt(100)
)

const createdLayout = "2006-01-02 15:04:05"

// Write saves the report to an xlsx file with the given name.
func Write(r *report.Report, name string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	row := 1
	if err := writeRow(f, sheet, row, toCells(aggregationHeaders)); err != nil {
		return err
	}
	for _, bucket := range sortedBuckets(r.Aggregation) {
		row++
		cells := []any{optional(bucket.Product), major(bucket.Amount), major(bucket.Fee), major(bucket.Net)}
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
	}

	// One blank row between the blocks.
	row += 2
	if err := writeRow(f, sheet, row, toCells(detailHeaders)); err != nil {
		return err
	}
	for _, tx := range r.Transactions {
		row++
		cells := []any{
			tx.ID,
			time.Unix(tx.Created, 0).UTC().Format(createdLayout),
			major(tx.Amount),
			tx.Currency,
			major(tx.Fee),
			major(tx.Net),
			optional(tx.Product),
			optional(tx.Name),
			optional(tx.Email),
		}
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
	}

	if err := f.SaveAs(name); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for i, value := range cells {
		if value == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("cell %s: %w", cell, err)
		}
	}
	return nil
}

// sortedBuckets orders buckets by product, nil product last, so repeated
// runs over the same report produce byte-identical sheets.
func sortedBuckets(aggregation map[string]*report.AggregateBucket) []*report.AggregateBucket {
	buckets := make([]*report.AggregateBucket, 0, len(aggregation))
	for _, b := range aggregation {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		switch {
		case buckets[i].Product == nil:
			return false
		case buckets[j].Product == nil:
			return true
		default:
			return *buckets[i].Product < *buckets[j].Product
		}
	})
	return buckets
}

// major converts minor currency units to major ones. Decimal division
// keeps the conversion exact before the cell value is set.
func major(cents int64) float64 {
	return decimal.NewFromInt(cents).Div(centsPerUnit).InexactFloat64()
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func toCells(headers []string) []any {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
