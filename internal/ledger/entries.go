package ledger

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/bozo/internal/accounts"
	"github.com/cleared-dev/bozo/internal/journal"
	"github.com/cleared-dev/bozo/internal/model"
)

// entryOrder lists the most recent entries first; ties go to the later insert.
const entryOrder = " ORDER BY timestamp DESC, id DESC"

// scopeClause matches an account equal to the scope or one of its descendants.
// substr is used instead of LIKE so that '%' and '_' in names are literal.
const scopeClause = "(account = ? OR substr(account, 1, length(?)) = ?)"

func scopeArgs(scope string) []any {
	prefix := scope + accounts.Separator
	return []any{scope, prefix, prefix}
}

// Add records entry and its line items atomically and returns the new entry id.
// Every line item account (and its ancestors) is created if missing. Accounts are
// stored lowercase. A zero timestamp is replaced by the store clock.
// On any failure nothing is written.
func (s *Store) Add(entry model.JournalEntry) (int64, error) {
	type resolved struct {
		typ      model.AccountType
		segments []string
	}
	paths := make([]resolved, len(entry.LineItems))
	items := make([]model.LineItem, len(entry.LineItems))
	for i, li := range entry.LineItems {
		at, segments, err := accounts.Parse(li.Account)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", i+1, err)
		}
		paths[i] = resolved{typ: at, segments: segments}
		li.Account = strings.Join(segments, accounts.Separator)
		items[i] = li
	}
	entry.LineItems = items

	if err := journal.Validate(entry); err != nil {
		return 0, err
	}

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	var entryID int64
	err := s.transaction("rw", func(tx *sql.Tx) error {
		for _, p := range paths {
			if _, _, err := s.ensureAccount(tx, p.typ, p.segments); err != nil {
				return err
			}
		}

		res, err := tx.Exec(
			"INSERT INTO journal_entries (description, timestamp) VALUES (?, ?)",
			entry.Description, formatTime(ts),
		)
		if err != nil {
			return fmt.Errorf("inserting journal entry: %w", err)
		}
		if entryID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading journal entry id: %w", err)
		}

		for i, li := range entry.LineItems {
			_, err := tx.Exec(
				"INSERT INTO line_items (journal_entry_id, account, debit, credit) VALUES (?, ?, ?, ?)",
				entryID, li.Account, amountText(li.Debit), amountText(li.Credit),
			)
			if err != nil {
				return fmt.Errorf("inserting line item %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}

	s.log.Debug("entry recorded",
		zap.Int64("id", entryID),
		zap.String("description", entry.Description),
		zap.Int("line_items", len(entry.LineItems)),
	)
	return entryID, nil
}

// All returns every journal entry with its line items, most recent first.
func (s *Store) All() ([]model.JournalEntry, error) {
	return s.loadEntries("", nil)
}

// ByID returns the entry with id. The bool is false when no such entry exists.
func (s *Store) ByID(id int64) (model.JournalEntry, bool, error) {
	entries, err := s.loadEntries("id = ?", []any{id})
	if err != nil {
		return model.JournalEntry{}, false, err
	}
	if len(entries) == 0 {
		return model.JournalEntry{}, false, nil
	}
	return entries[0], true, nil
}

// ByAccount returns every entry with at least one line item posted to account
// or to one of its descendants, most recent first.
func (s *Store) ByAccount(account string) ([]model.JournalEntry, error) {
	account = strings.ToLower(account)
	return s.loadEntries(
		"id IN (SELECT journal_entry_id FROM line_items WHERE "+scopeClause+")",
		scopeArgs(account),
	)
}

// loadEntries reads the entries matching where (all when empty) and attaches
// their line items in insertion order.
func (s *Store) loadEntries(where string, args []any) ([]model.JournalEntry, error) {
	entryQuery := "SELECT id, description, timestamp FROM journal_entries"
	itemQuery := "SELECT id, journal_entry_id, account, debit, credit FROM line_items"
	if where != "" {
		entryQuery += " WHERE " + where
		itemQuery += " WHERE journal_entry_id IN (SELECT id FROM journal_entries WHERE " + where + ")"
	}
	entryQuery += entryOrder
	itemQuery += " ORDER BY id"

	var entries []model.JournalEntry
	err := s.withDB(func(db *sql.DB) error {
		index := make(map[int64]int)

		rows, err := db.Query(entryQuery, args...)
		if err != nil {
			return fmt.Errorf("querying journal entries: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var e model.JournalEntry
			var ts string
			if err := rows.Scan(&e.ID, &e.Description, &ts); err != nil {
				return fmt.Errorf("scanning journal entry: %w", err)
			}
			if e.Timestamp, err = parseTime(ts); err != nil {
				return fmt.Errorf("entry %d: parsing timestamp %q: %w", e.ID, ts, err)
			}
			index[e.ID] = len(entries)
			entries = append(entries, e)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("reading journal entries: %w", err)
		}
		rows.Close()
		if len(entries) == 0 {
			return nil
		}

		items, err := db.Query(itemQuery, args...)
		if err != nil {
			return fmt.Errorf("querying line items: %w", err)
		}
		defer items.Close()
		for items.Next() {
			var li model.LineItem
			var entryID int64
			var debit, credit sql.NullString
			if err := items.Scan(&li.ID, &entryID, &li.Account, &debit, &credit); err != nil {
				return fmt.Errorf("scanning line item: %w", err)
			}
			if li.Debit, err = journal.ParseAmount(debit.String); err != nil {
				return fmt.Errorf("line item %d: parsing debit %q: %w", li.ID, debit.String, err)
			}
			if li.Credit, err = journal.ParseAmount(credit.String); err != nil {
				return fmt.Errorf("line item %d: parsing credit %q: %w", li.ID, credit.String, err)
			}
			pos, ok := index[entryID]
			if !ok {
				continue
			}
			entries[pos].LineItems = append(entries[pos].LineItems, li)
		}
		return items.Err()
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func amountText(d decimal.NullDecimal) sql.NullString {
	if !d.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: journal.FormatAmount(d.Decimal), Valid: true}
}
