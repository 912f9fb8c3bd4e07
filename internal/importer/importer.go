package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bozo/internal/model"
)

// Flow is the direction money moved through the bank account.
type Flow int

const (
	FlowNone Flow = iota
	FlowIn
	FlowOut
)

// Transaction is one parsed bank statement row.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // magnitude, never negative
	Flow        Flow
	Reference   string
	Type        string // bank transaction type (ACH_DEBIT, etc.)
}

// Parser converts a bank CSV file into Transactions.
type Parser interface {
	Parse(r io.Reader) ([]Transaction, error)
	Format() string
}

// Recorder stores a balanced journal entry and returns its id.
type Recorder interface {
	Add(entry model.JournalEntry) (int64, error)
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewStatementParser(Chase))
	return r
}

// ToEntry turns a statement row into a two-legged entry between the bank
// account and a contra account. Money out debits contra and credits bank;
// money in debits bank and credits contra.
func ToEntry(txn Transaction, bank, contra string) (model.JournalEntry, error) {
	if !txn.Amount.IsPositive() {
		return model.JournalEntry{}, fmt.Errorf("%s %q: amount %s must be positive", txn.Date.Format("2006-01-02"), txn.Description, txn.Amount)
	}
	var debit, credit string
	switch txn.Flow {
	case FlowIn:
		debit, credit = bank, contra
	case FlowOut:
		debit, credit = contra, bank
	default:
		return model.JournalEntry{}, fmt.Errorf("%s %q: unknown direction", txn.Date.Format("2006-01-02"), txn.Description)
	}
	amount := txn.Amount
	return model.JournalEntry{
		Description: txn.Description,
		Timestamp:   txn.Date,
		LineItems: []model.LineItem{
			model.DebitItem(debit, amount),
			model.CreditItem(credit, amount),
		},
	}, nil
}

// Result summarizes an import run.
type Result struct {
	EntryIDs []int64
	Skipped  int // zero-amount rows
}

// Import records every transaction through rec. It stops at the first
// recording failure; entries recorded before it remain.
func Import(rec Recorder, txns []Transaction, bank, contra string) (Result, error) {
	var res Result
	for i, txn := range txns {
		if txn.Flow == FlowNone || txn.Amount.IsZero() {
			res.Skipped++
			continue
		}
		entry, err := ToEntry(txn, bank, contra)
		if err != nil {
			return res, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		id, err := rec.Add(entry)
		if err != nil {
			return res, fmt.Errorf("transaction %d (%s): %w", i+1, txn.Reference, err)
		}
		res.EntryIDs = append(res.EntryIDs, id)
	}
	return res, nil
}
