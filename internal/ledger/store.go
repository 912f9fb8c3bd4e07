// Package ledger persists journal entries and the chart of accounts in a
// single SQLite file and computes trial balances over it.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// timeLayout is fixed width so that text ordering matches chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Options configures a Store.
type Options struct {
	// Logger receives debug events. Defaults to a no-op logger.
	Logger *zap.Logger
	// Now supplies timestamps for entries recorded without one. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Store is a handle on a ledger file. Every operation opens its own
// connection and closes it before returning.
type Store struct {
	path string
	log  *zap.Logger
	now  func() time.Time
}

// Init creates a new, empty ledger at path.
func Init(path string, opts Options) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w at %s", ErrAlreadyExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("checking folder %s: %w", dir, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("folder %s is not a directory", dir)
	}

	s := newStore(path, opts)
	err := s.transaction("rwc", func(tx *sql.Tx) error {
		if _, err := tx.Exec(Schema); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	s.log.Debug("ledger initialized", zap.String("path", path))
	return s, nil
}

// Open attaches to an existing ledger at path.
func Open(path string, opts Options) (*Store, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: no ledger at %s", ErrNotInitialized, path)
	} else if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	s := newStore(path, opts)
	err := s.withDB(func(db *sql.DB) error {
		var n int
		err := db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('journal_entries', 'line_items', 'accounts')",
		).Scan(&n)
		if err != nil {
			return fmt.Errorf("reading schema: %w", err)
		}
		if n != 3 {
			return fmt.Errorf("%w: %s has no ledger schema", ErrNotInitialized, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("ledger opened", zap.String("path", path))
	return s, nil
}

func newStore(path string, opts Options) *Store {
	opts = opts.withDefaults()
	return &Store{path: path, log: opts.Logger, now: opts.Now}
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	return s.path
}

// Exec runs a raw statement against the ledger file. Statements that would
// modify or remove stored entries or line items, or drop or alter the ledger
// schema, fail with ErrImmutableLedger.
func (s *Store) Exec(query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := s.withDB(func(db *sql.DB) error {
		var err error
		res, err = db.Exec(query, args...)
		return classify(err)
	})
	return res, err
}

func (s *Store) connect(mode string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=%s&_foreign_keys=on&_recursive_triggers=on&_txlock=immediate", s.path, mode)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to ledger %s: %w", s.path, err)
	}
	return db, nil
}

// withDB runs fn on a fresh read-write connection and always closes it.
func (s *Store) withDB(fn func(*sql.DB) error) error {
	db, err := s.connect("rw")
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// transaction runs fn inside a single transaction on a fresh connection.
// If fn returns an error, the transaction is rolled back and nothing is visible.
func (s *Store) transaction(mode string, fn func(*sql.Tx) error) error {
	db, err := s.connect(mode)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
