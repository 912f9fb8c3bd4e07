package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bozo/internal/model"
)

// Header is the CSV header for a journal export. One row per line item.
var Header = []string{"entry_id", "timestamp", "description", "line_id", "account", "debit", "credit"}

const (
	numFields  = 7
	colEntryID = 0
	colTime    = 1
	colDesc    = 2
	colLineID  = 3
	colAccount = 4
	colDebit   = 5
	colCredit  = 6
)

// WriteEntries writes entries to w (including header).
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, e := range entries {
		for _, rec := range MarshalEntry(e) {
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEntries reads a journal export, regrouping rows by entry_id in file order.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []model.JournalEntry
	index := make(map[int64]int)
	for i, rec := range records[1:] {
		e, li, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		pos, ok := index[e.ID]
		if !ok {
			pos = len(entries)
			index[e.ID] = pos
			entries = append(entries, e)
		}
		entries[pos].LineItems = append(entries[pos].LineItems, li)
	}
	return entries, nil
}

// MarshalEntry converts an entry to one CSV row per line item.
func MarshalEntry(e model.JournalEntry) [][]string {
	rows := make([][]string, 0, len(e.LineItems))
	for _, li := range e.LineItems {
		row := make([]string, numFields)
		row[colEntryID] = strconv.FormatInt(e.ID, 10)
		row[colTime] = e.Timestamp.Format(time.RFC3339Nano)
		row[colDesc] = e.Description
		row[colLineID] = strconv.FormatInt(li.ID, 10)
		row[colAccount] = li.Account
		if li.Debit.Valid {
			row[colDebit] = FormatAmount(li.Debit.Decimal)
		}
		if li.Credit.Valid {
			row[colCredit] = FormatAmount(li.Credit.Decimal)
		}
		rows = append(rows, row)
	}
	return rows
}

// UnmarshalRow converts a CSV row to its entry header and line item.
func UnmarshalRow(record []string) (model.JournalEntry, model.LineItem, error) {
	if len(record) != numFields {
		return model.JournalEntry{}, model.LineItem{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	entryID, err := strconv.ParseInt(record[colEntryID], 10, 64)
	if err != nil {
		return model.JournalEntry{}, model.LineItem{}, fmt.Errorf("parsing entry_id %q: %w", record[colEntryID], err)
	}

	ts, err := time.Parse(time.RFC3339Nano, record[colTime])
	if err != nil {
		return model.JournalEntry{}, model.LineItem{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	lineID, err := strconv.ParseInt(record[colLineID], 10, 64)
	if err != nil {
		return model.JournalEntry{}, model.LineItem{}, fmt.Errorf("parsing line_id %q: %w", record[colLineID], err)
	}

	li := model.LineItem{ID: lineID, Account: record[colAccount]}
	if li.Debit, err = ParseAmount(record[colDebit]); err != nil {
		return model.JournalEntry{}, model.LineItem{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
	}
	if li.Credit, err = ParseAmount(record[colCredit]); err != nil {
		return model.JournalEntry{}, model.LineItem{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
	}

	return model.JournalEntry{ID: entryID, Description: record[colDesc], Timestamp: ts}, li, nil
}

// FormatAmount renders d keeping its scale, so "1000.00" stays "1000.00".
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// ParseAmount parses an optional amount; "" yields an invalid NullDecimal.
func ParseAmount(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
