package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bozo/internal/model"
)

var baseTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	clock := baseTime
	s, err := Init(filepath.Join(t.TempDir(), "test.bozo"), Options{
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	})
	require.NoError(t, err)
	return s
}

func makeEntry(description, debitAcct, creditAcct, amount string) model.JournalEntry {
	return model.JournalEntry{
		Description: description,
		Timestamp:   baseTime,
		LineItems: []model.LineItem{
			model.DebitItem(debitAcct, dec(amount)),
			model.CreditItem(creditAcct, dec(amount)),
		},
	}
}

func mustAdd(t *testing.T, s *Store, e model.JournalEntry) int64 {
	t.Helper()
	id, err := s.Add(e)
	require.NoError(t, err)
	return id
}

func accountNames(accts []model.Account) []string {
	names := make([]string, len(accts))
	for i, a := range accts {
		names[i] = a.Name
	}
	return names
}

func entryIDs(entries []model.JournalEntry) []int64 {
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
