package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reportpipe/reportpipe/internal/model"
)

// TagFinancial is the registry tag of the financial generator.
const TagFinancial = "financial"

// Financial summarizes a balance statement: income, expenses, and the
// resulting balance.
//
// Expected payload shape:
//
//	{
//	  "income": 50000.00,
//	  "expenses": 32000.00
//	}
type Financial struct {
	settings
}

// NewFinancial creates a financial generator.
func NewFinancial(opts ...Option) *Financial {
	return &Financial{settings: newSettings(opts)}
}

// Name returns the registry tag for financial reports.
func (g *Financial) Name() string { return TagFinancial }

// Generate validates the payload, computes the balance, and renders the
// statement.
func (g *Financial) Generate(payload map[string]any) (model.Report, error) {
	income, err := numberField(payload, "income")
	if err != nil {
		return model.Report{}, fmt.Errorf("financial generator: %w", err)
	}
	expenses, err := numberField(payload, "expenses")
	if err != nil {
		return model.Report{}, fmt.Errorf("financial generator: %w", err)
	}

	balance := income - expenses
	now := g.now()

	var sb strings.Builder
	writeBanner(&sb, "FINANCIAL REPORT")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(timestampLayout)))
	sb.WriteString(fmt.Sprintf("Income:   %s\n", g.money(income)))
	sb.WriteString(fmt.Sprintf("Expenses: %s\n", g.money(expenses)))
	writeRule(&sb)
	sb.WriteString(fmt.Sprintf("Balance:  %s\n", g.money(balance)))

	metadata := map[string]string{
		"income":   strconv.FormatFloat(income, 'f', 2, 64),
		"expenses": strconv.FormatFloat(expenses, 'f', 2, 64),
		"balance":  strconv.FormatFloat(balance, 'f', 2, 64),
	}

	return model.NewAt(TagFinancial, sb.String(), metadata, now), nil
}
