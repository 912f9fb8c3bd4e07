package importer

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bozo/internal/model"
)

const chaseHeader = "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"

func readChase(t *testing.T) []Transaction {
	t.Helper()
	f, err := os.Open("testdata/chase_checking.csv")
	require.NoError(t, err)
	defer f.Close()

	txns, err := NewStatementParser(Chase).Parse(f)
	require.NoError(t, err)
	return txns
}

func TestChaseParser_Parse(t *testing.T) {
	txns := readChase(t)
	assert.Len(t, txns, 6)

	// First: GITHUB subscription
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", txns[0].Description)
	assert.Equal(t, "4.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, FlowOut, txns[0].Flow)
	assert.Equal(t, "ACH_DEBIT", txns[0].Type)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), txns[0].Date)

	// Fourth: ACME income (positive)
	assert.Equal(t, "ACME CONSULTING INVOICE 1042", txns[3].Description)
	assert.Equal(t, FlowIn, txns[3].Flow)
	assert.Equal(t, "3500.00", txns[3].Amount.StringFixed(2))
}

func TestChaseParser_Flows(t *testing.T) {
	for _, txn := range readChase(t) {
		assert.True(t, txn.Amount.IsPositive(), "amount for %s", txn.Description)
		if txn.Description == "ACME CONSULTING INVOICE 1042" {
			assert.Equal(t, FlowIn, txn.Flow)
		} else {
			assert.Equal(t, FlowOut, txn.Flow, "flow for %s", txn.Description)
		}
	}
}

func TestStatementParser_OutflowPositive(t *testing.T) {
	card := Layout{
		Name:         "card",
		DateColumn:   "Date",
		DescColumn:   "Memo",
		AmountColumn: "Charge",
		DateFormat:   "2006-01-02",
	}
	csv := `Charge,Memo,Date
25.00,BOOKSHOP,2025-02-01
-10.00,REFUND,2025-02-03
0,NOOP,2025-02-04
`

	txns, err := NewStatementParser(card).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, FlowOut, txns[0].Flow)
	assert.Equal(t, "25.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "card_20250201_BOOKSHOP", txns[0].Reference)
	assert.Equal(t, "", txns[0].Type)

	assert.Equal(t, FlowIn, txns[1].Flow)
	assert.Equal(t, "10.00", txns[1].Amount.StringFixed(2))

	assert.Equal(t, FlowNone, txns[2].Flow)
}

func TestStatementParser_MissingColumn(t *testing.T) {
	_, err := NewStatementParser(Chase).Parse(strings.NewReader(`Details,Posting Date,Description,Type
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no "Amount" column`)
}

func TestChaseParser_EmptyFile(t *testing.T) {
	txns, err := NewStatementParser(Chase).Parse(strings.NewReader(chaseHeader))
	require.NoError(t, err)
	assert.Nil(t, txns)

	txns, err = NewStatementParser(Chase).Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestChaseParser_BadRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"date", "DEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n", "parsing date"},
		{"amount", "DEBIT,01/03/2025,desc,NOTANUMBER,ACH_DEBIT,100.00,\n", "parsing amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStatementParser(Chase).Parse(strings.NewReader(chaseHeader + tt.row))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestChaseParser_Reference(t *testing.T) {
	txns := readChase(t)
	// Reference format: chase_YYYYMMDD_<prefix>
	assert.Equal(t, "chase_20250103_GITHUBPROS", txns[0].Reference)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))

	r.Register(NewStatementParser(Chase))
	p := r.Get("chase")
	require.NotNil(t, p)
	assert.Equal(t, "chase", p.Format())
	assert.NotNil(t, r.Get("CHASE"), "lookup is case-insensitive")

	assert.Panics(t, func() { r.Register(NewStatementParser(Chase)) })
	assert.NotNil(t, DefaultRegistry().Get("chase"))
}

func TestToEntry(t *testing.T) {
	out := Transaction{Description: "RENT", Amount: decimal.RequireFromString("1500.00"), Flow: FlowOut, Date: time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC)}
	e, err := ToEntry(out, "assets:bank:checking", "expenses:uncategorized")
	require.NoError(t, err)
	assert.Equal(t, "RENT", e.Description)
	assert.Equal(t, out.Date, e.Timestamp)
	require.Len(t, e.LineItems, 2)
	assert.Equal(t, "expenses:uncategorized", e.LineItems[0].Account)
	assert.True(t, e.LineItems[0].IsDebit())
	assert.Equal(t, "1500.00", e.LineItems[0].Debit.Decimal.StringFixed(2))
	assert.Equal(t, "assets:bank:checking", e.LineItems[1].Account)
	assert.True(t, e.LineItems[1].IsCredit())

	in := Transaction{Description: "INVOICE", Amount: decimal.RequireFromString("3500"), Flow: FlowIn}
	e, err = ToEntry(in, "assets:bank:checking", "income:consulting")
	require.NoError(t, err)
	assert.Equal(t, "assets:bank:checking", e.LineItems[0].Account)
	assert.Equal(t, "income:consulting", e.LineItems[1].Account)

	_, err = ToEntry(Transaction{Amount: decimal.Zero, Flow: FlowIn}, "a", "b")
	assert.Error(t, err)

	_, err = ToEntry(Transaction{Amount: decimal.NewFromInt(5)}, "a", "b")
	assert.Error(t, err)
}

// fakeRecorder implements Recorder for testing.
type fakeRecorder struct {
	entries []model.JournalEntry
	failAt  int // 1-based call that fails, 0 = never
}

func (f *fakeRecorder) Add(e model.JournalEntry) (int64, error) {
	if f.failAt == len(f.entries)+1 {
		return 0, errors.New("disk full")
	}
	f.entries = append(f.entries, e)
	return int64(len(f.entries)), nil
}

func TestImport(t *testing.T) {
	txns := readChase(t)
	txns = append(txns, Transaction{Description: "ZERO", Amount: decimal.Zero})

	rec := &fakeRecorder{}
	res, err := Import(rec, txns, "assets:bank:checking", "expenses:uncategorized")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, res.EntryIDs)
	assert.Equal(t, 1, res.Skipped)

	for _, e := range rec.entries {
		d, c := e.Totals()
		assert.True(t, d.Equal(c), "entry %q must balance", e.Description)
	}
}

func TestImport_StopsOnFailure(t *testing.T) {
	rec := &fakeRecorder{failAt: 3}
	res, err := Import(rec, readChase(t), "assets:bank:checking", "expenses:uncategorized")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction 3")
	assert.Len(t, res.EntryIDs, 2)
}
