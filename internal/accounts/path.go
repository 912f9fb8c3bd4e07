package accounts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cleared-dev/bozo/internal/model"
)

// Separator delimits segments of an account path.
const Separator = ":"

var (
	// ErrInvalidAccountName is returned for an empty path or empty root segment.
	ErrInvalidAccountName = errors.New("invalid account name")
	// ErrInvalidAccountRoot is returned when the root segment is not a recognized root.
	ErrInvalidAccountRoot = errors.New("invalid account root")
)

// roots maps each recognized root segment to its account type.
var roots = map[string]model.AccountType{
	"assets":      model.AccountTypeAsset,
	"liabilities": model.AccountTypeLiability,
	"income":      model.AccountTypeIncome,
	"expenses":    model.AccountTypeExpense,
	"capital":     model.AccountTypeCapital,
	"drawings":    model.AccountTypeDrawings,
}

// Parse validates an account path and returns its type and lowercase segments.
// "Assets: Bank :Checking" -> asset, [assets bank checking]
func Parse(name string) (model.AccountType, []string, error) {
	segments := strings.Split(strings.ToLower(name), Separator)
	for i, s := range segments {
		segments[i] = strings.TrimSpace(s)
	}
	if name == "" || segments[0] == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidAccountName, name)
	}
	at, ok := roots[segments[0]]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q must start with one of assets, liabilities, income, expenses, capital, drawings", ErrInvalidAccountRoot, segments[0])
	}
	return at, segments, nil
}

// Normalize parses name and returns its canonical form.
func Normalize(name string) (string, error) {
	_, segments, err := Parse(name)
	if err != nil {
		return "", err
	}
	return strings.Join(segments, Separator), nil
}

// Prefixes returns every ancestor path of segments followed by the full path, root first.
// [assets bank checking] -> [assets assets:bank assets:bank:checking]
func Prefixes(segments []string) []string {
	out := make([]string, len(segments))
	for i := range segments {
		out[i] = strings.Join(segments[:i+1], Separator)
	}
	return out
}

// Leaf returns the last segment of path.
func Leaf(path string) string {
	return path[strings.LastIndex(path, Separator)+1:]
}

// Depth returns the number of ancestors of path. Roots have depth 0.
func Depth(path string) int {
	return strings.Count(path, Separator)
}
