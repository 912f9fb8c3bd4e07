package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Layout describes a bank's CSV export. Columns are located by header name,
// so their order in the file does not matter.
type Layout struct {
	Name         string
	DateColumn   string
	DescColumn   string
	AmountColumn string
	TypeColumn   string // optional
	DateFormat   string
	// OutflowNegative is true when the bank writes money leaving the account
	// as a negative amount. When false, negative amounts are money in.
	OutflowNegative bool
}

// Chase is the layout of Chase checking account exports.
var Chase = Layout{
	Name:            "chase",
	DateColumn:      "Posting Date",
	DescColumn:      "Description",
	AmountColumn:    "Amount",
	TypeColumn:      "Type",
	DateFormat:      "01/02/2006",
	OutflowNegative: true,
}

// StatementParser reads statements that follow a Layout.
type StatementParser struct {
	layout Layout
}

// NewStatementParser returns a parser for l.
func NewStatementParser(l Layout) *StatementParser {
	return &StatementParser{layout: l}
}

// Format returns the layout name.
func (p *StatementParser) Format() string { return p.layout.Name }

// Parse reads the header row, then one Transaction per data row.
func (p *StatementParser) Parse(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", p.layout.Name, err)
	}
	cols, err := p.columns(header)
	if err != nil {
		return nil, err
	}

	var txns []Transaction
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s row %d: %w", p.layout.Name, line, err)
		}
		txn, err := p.row(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

type columnIndex struct {
	date, desc, amount, typ int
}

func (p *StatementParser) columns(header []string) (columnIndex, error) {
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	idx := columnIndex{
		date:   find(p.layout.DateColumn),
		desc:   find(p.layout.DescColumn),
		amount: find(p.layout.AmountColumn),
		typ:    -1,
	}
	if p.layout.TypeColumn != "" {
		idx.typ = find(p.layout.TypeColumn)
	}
	for name, i := range map[string]int{
		p.layout.DateColumn:   idx.date,
		p.layout.DescColumn:   idx.desc,
		p.layout.AmountColumn: idx.amount,
	} {
		if i < 0 {
			return columnIndex{}, fmt.Errorf("%s statement has no %q column", p.layout.Name, name)
		}
	}
	return idx, nil
}

func (p *StatementParser) row(rec []string, cols columnIndex) (Transaction, error) {
	field := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	date, err := time.Parse(p.layout.DateFormat, field(cols.date))
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing date %q: %w", field(cols.date), err)
	}
	signed, err := decimal.NewFromString(field(cols.amount))
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing amount %q: %w", field(cols.amount), err)
	}

	flow := FlowIn
	if signed.IsNegative() == p.layout.OutflowNegative {
		flow = FlowOut
	}
	if signed.IsZero() {
		flow = FlowNone
	}

	desc := field(cols.desc)
	return Transaction{
		Date:        date,
		Description: desc,
		Amount:      signed.Abs(),
		Flow:        flow,
		Reference:   reference(p.layout.Name, date, desc),
		Type:        field(cols.typ),
	}, nil
}

// reference builds an identifier like chase_20250103_GITHUBPROS from the
// first ten letters and digits of the description.
func reference(bank string, date time.Time, desc string) string {
	var b strings.Builder
	for _, r := range desc {
		if b.Len() == 10 {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return bank + "_" + date.Format("20060102") + "_" + b.String()
}
