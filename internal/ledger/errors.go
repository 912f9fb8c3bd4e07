package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotInitialized is returned when no ledger exists at the given path.
	ErrNotInitialized = errors.New("ledger not initialized")
	// ErrAlreadyExists is returned when initializing over an existing file.
	ErrAlreadyExists = errors.New("ledger already exists")
	// ErrImmutableLedger is returned for any attempt to modify or remove a stored entry or line item.
	ErrImmutableLedger = errors.New("journal entries and line items are immutable")
	// ErrUnknownAccountType is returned when filtering accounts by an unrecognized type.
	ErrUnknownAccountType = errors.New("unknown account type")
)

// classify maps trigger aborts raised by the schema, and statements refused by
// the schema guard, to ErrImmutableLedger. Other errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && (se.ExtendedCode == sqlite3.ErrConstraintTrigger || se.Code == sqlite3.ErrAuth) {
		return fmt.Errorf("%w: %s", ErrImmutableLedger, se.Error())
	}
	if strings.Contains(err.Error(), immutableMarker) {
		return fmt.Errorf("%w: %s", ErrImmutableLedger, err.Error())
	}
	return err
}
