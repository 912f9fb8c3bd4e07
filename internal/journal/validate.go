package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cleared-dev/bozo/internal/model"
)

var (
	// ErrUnbalancedEntry is returned when an entry's debits and credits differ.
	ErrUnbalancedEntry = errors.New("unbalanced journal entry")
	// ErrInvalidLineItem is returned when a line item breaks a structural rule.
	ErrInvalidLineItem = errors.New("invalid line item")
)

// MinLineItems is the smallest number of legs a journal entry may have.
const MinLineItems = 2

// ValidationError describes a single rule violation within an entry.
type ValidationError struct {
	Line        int // 1-based line item index, 0 for the entry as a whole
	Description string
	Kind        error
}

func (e ValidationError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("entry: %s", e.Description)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Description)
}

func (e ValidationError) Unwrap() error { return e.Kind }

// ValidateEntry checks the double-entry rules for one entry:
// at least two line items, exactly one of debit or credit per item,
// strictly positive amounts, and sum(debits) == sum(credits).
func ValidateEntry(entry model.JournalEntry) []ValidationError {
	var errs []ValidationError

	if len(entry.LineItems) < MinLineItems {
		errs = append(errs, ValidationError{
			Description: fmt.Sprintf("needs at least %d line items, got %d", MinLineItems, len(entry.LineItems)),
			Kind:        ErrInvalidLineItem,
		})
	}

	for i, li := range entry.LineItems {
		line := i + 1
		if li.Debit.Valid == li.Credit.Valid {
			errs = append(errs, ValidationError{
				Line:        line,
				Description: fmt.Sprintf("%s must have exactly one of debit or credit", li.Account),
				Kind:        ErrInvalidLineItem,
			})
			continue
		}
		if !li.Amount().IsPositive() {
			errs = append(errs, ValidationError{
				Line:        line,
				Description: fmt.Sprintf("%s amount %s must be positive", li.Account, li.Amount()),
				Kind:        ErrInvalidLineItem,
			})
		}
	}

	debits, credits := entry.Totals()
	if !debits.Equal(credits) {
		errs = append(errs, ValidationError{
			Description: fmt.Sprintf("debits (%s) != credits (%s)", debits, credits),
			Kind:        ErrUnbalancedEntry,
		})
	}

	return errs
}

// Validate runs ValidateEntry and folds any violations into one error.
// The returned error matches ErrInvalidLineItem when any structural rule failed,
// otherwise ErrUnbalancedEntry.
func Validate(entry model.JournalEntry) error {
	verrs := ValidateEntry(entry)
	if len(verrs) == 0 {
		return nil
	}
	kind := ErrUnbalancedEntry
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
		if ve.Kind == ErrInvalidLineItem {
			kind = ErrInvalidLineItem
		}
	}
	return fmt.Errorf("%w: %s", kind, strings.Join(msgs, "; "))
}
