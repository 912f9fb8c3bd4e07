package ledger

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/bozo/internal/journal"
	"github.com/cleared-dev/bozo/internal/model"
)

// TrialBalance sums debits and credits per account, ordered by account name.
// With a non-empty scope only the scope account and its descendants are included.
// Amounts are summed as exact decimals; the database never does the arithmetic.
func (s *Store) TrialBalance(scope string) (model.TrialBalance, error) {
	query := "SELECT account, debit, credit FROM line_items"
	var args []any
	if scope != "" {
		scope = strings.ToLower(scope)
		query += " WHERE " + scopeClause
		args = scopeArgs(scope)
	}
	query += " ORDER BY account, id"

	tb := model.TrialBalance{}
	err := s.withDB(func(db *sql.DB) error {
		rows, err := db.Query(query, args...)
		if err != nil {
			return fmt.Errorf("querying line items: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var account string
			var debit, credit sql.NullString
			if err := rows.Scan(&account, &debit, &credit); err != nil {
				return fmt.Errorf("scanning line item: %w", err)
			}
			if n := len(tb); n == 0 || tb[n-1].Account != account {
				tb = append(tb, model.AccountBalance{
					Account: account,
					Debits:  decimal.Zero,
					Credits: decimal.Zero,
				})
			}
			cur := &tb[len(tb)-1]
			if err := accumulate(&cur.Debits, debit); err != nil {
				return fmt.Errorf("%s: debit: %w", account, err)
			}
			if err := accumulate(&cur.Credits, credit); err != nil {
				return fmt.Errorf("%s: credit: %w", account, err)
			}
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	for i := range tb {
		tb[i].Net = tb[i].Debits.Sub(tb[i].Credits)
	}
	s.log.Debug("trial balance computed", zap.String("scope", scope), zap.Int("accounts", len(tb)))
	return tb, nil
}

func accumulate(total *decimal.Decimal, text sql.NullString) error {
	if !text.Valid {
		return nil
	}
	nd, err := journal.ParseAmount(text.String)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", text.String, err)
	}
	*total = total.Add(nd.Decimal)
	return nil
}
