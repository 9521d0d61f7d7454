package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the closed set of account variants. The kind is fixed at creation
// and selects the interest rate.
type Kind string

const (
	Savings  Kind = "savings"
	Checking Kind = "checking"
)

var twelve = decimal.NewFromInt(12)

// Annual interest rates per kind. Rate policy is data, not behavior.
var annualRates = map[Kind]decimal.Decimal{
	Savings:  decimal.RequireFromString("0.01"),   // 1% annual
	Checking: decimal.RequireFromString("0.0005"), // 0.05% annual
}

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case Savings:
		return Savings, nil
	case Checking:
		return Checking, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) Display() string {
	switch k {
	case Savings:
		return "Savings"
	case Checking:
		return "Checking"
	}
	return string(k)
}

// MonthlyRate is the annual rate divided by 12, applied once per
// ApplyInterest call.
func (k Kind) MonthlyRate() decimal.Decimal {
	return annualRates[k].Div(twelve)
}
