package ledger

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// driverName is the go-sqlite3 driver with the schema guard installed on every connection.
const driverName = "sqlite3_ledger"

// ledgerTables are the tables whose definitions, indexes and triggers may not be
// dropped or altered once created.
var ledgerTables = map[string]bool{
	"journal_entries": true,
	"line_items":      true,
	"accounts":        true,
}

// lockedPragmas would switch off protections when assigned.
var lockedPragmas = map[string]bool{
	"recursive_triggers": true,
	"writable_schema":    true,
	"foreign_keys":       true,
}

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			conn.RegisterAuthorizer(authorize)
			return nil
		},
	})
}

// authorize denies statements that would remove or weaken the ledger schema.
// Such statements fail to prepare with SQLITE_AUTH.
func authorize(op int, arg1, arg2, _ string) int {
	switch op {
	case sqlite3.SQLITE_DROP_TABLE:
		return deny(ledgerTables[strings.ToLower(arg1)])
	case sqlite3.SQLITE_DROP_TRIGGER, sqlite3.SQLITE_DROP_INDEX, sqlite3.SQLITE_ALTER_TABLE:
		return deny(ledgerTables[strings.ToLower(arg2)])
	case sqlite3.SQLITE_PRAGMA:
		return deny(lockedPragmas[strings.ToLower(arg1)] && arg2 != "")
	}
	return sqlite3.SQLITE_OK
}

func deny(b bool) int {
	if b {
		return sqlite3.SQLITE_DENY
	}
	return sqlite3.SQLITE_OK
}
