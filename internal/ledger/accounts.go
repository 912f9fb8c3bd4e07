package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cleared-dev/bozo/internal/accounts"
	"github.com/cleared-dev/bozo/internal/model"
)

// EnsureAccount creates the account at name and any missing ancestors.
// It returns the full-path account and whether that account was newly created.
// Calling it again with the same path creates nothing.
func (s *Store) EnsureAccount(name string) (model.Account, bool, error) {
	at, segments, err := accounts.Parse(name)
	if err != nil {
		return model.Account{}, false, err
	}

	var acct model.Account
	var created bool
	err = s.transaction("rw", func(tx *sql.Tx) error {
		var err error
		acct, created, err = s.ensureAccount(tx, at, segments)
		return err
	})
	if err != nil {
		return model.Account{}, false, err
	}
	return acct, created, nil
}

// ensureAccount walks the prefixes of segments root first, inserting each
// missing account linked to the one before it.
func (s *Store) ensureAccount(tx *sql.Tx, at model.AccountType, segments []string) (model.Account, bool, error) {
	var parentID int64
	var acct model.Account
	created := false

	for _, path := range accounts.Prefixes(segments) {
		var id int64
		err := tx.QueryRow("SELECT id FROM accounts WHERE name = ?", path).Scan(&id)
		switch {
		case err == nil:
			created = false
		case errors.Is(err, sql.ErrNoRows):
			res, err := tx.Exec(
				"INSERT INTO accounts (name, type, parent_id) VALUES (?, ?, ?)",
				path, string(at), nullID(parentID),
			)
			if err != nil {
				return model.Account{}, false, fmt.Errorf("creating account %s: %w", path, err)
			}
			if id, err = res.LastInsertId(); err != nil {
				return model.Account{}, false, fmt.Errorf("reading id of account %s: %w", path, err)
			}
			created = true
			s.log.Debug("account created", zap.String("account", path), zap.Int64("id", id))
		default:
			return model.Account{}, false, fmt.Errorf("looking up account %s: %w", path, err)
		}
		acct = model.Account{ID: id, Name: path, Type: at, ParentID: parentID}
		parentID = id
	}
	return acct, created, nil
}

// Accounts returns the chart of accounts ordered by name, optionally
// restricted to one account type.
func (s *Store) Accounts(filter model.AccountType) ([]model.Account, error) {
	query := "SELECT id, name, type, parent_id FROM accounts"
	var args []any
	if filter != "" {
		if !filter.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAccountType, filter)
		}
		query += " WHERE type = ?"
		args = append(args, string(filter))
	}
	query += " ORDER BY name"

	var out []model.Account
	err := s.withDB(func(db *sql.DB) error {
		rows, err := db.Query(query, args...)
		if err != nil {
			return fmt.Errorf("querying accounts: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var a model.Account
			var typ string
			var parent sql.NullInt64
			if err := rows.Scan(&a.ID, &a.Name, &typ, &parent); err != nil {
				return fmt.Errorf("scanning account: %w", err)
			}
			a.Type = model.AccountType(typ)
			a.ParentID = parent.Int64
			out = append(out, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseAccountType accepts a type name ("asset") or its root ("assets").
func ParseAccountType(s string) (model.AccountType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if at := model.AccountType(s); at.Valid() {
		return at, nil
	}
	if at, _, err := accounts.Parse(s); err == nil && !strings.Contains(s, accounts.Separator) {
		return at, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAccountType, s)
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
