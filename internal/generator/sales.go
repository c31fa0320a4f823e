package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reportpipe/reportpipe/internal/model"
)

// TagSales is the registry tag of the sales generator.
const TagSales = "sales"

// Sales summarizes a period of sales transactions: total revenue,
// transaction count, and a per-product detail listing.
//
// Expected payload shape:
//
//	{
//	  "period": "January 2024",
//	  "sales": [
//	    {"product": "Laptop HP", "amount": 899.99},
//	    ...
//	  ]
//	}
type Sales struct {
	settings
}

// NewSales creates a sales generator.
func NewSales(opts ...Option) *Sales {
	return &Sales{settings: newSettings(opts)}
}

// Name returns the registry tag for sales reports.
func (g *Sales) Name() string { return TagSales }

// saleLine is one decoded sales transaction.
type saleLine struct {
	product string
	amount  float64
}

// Generate validates the payload, sums the transaction amounts, and renders
// the sales summary.
func (g *Sales) Generate(payload map[string]any) (model.Report, error) {
	period, err := stringField(payload, "period")
	if err != nil {
		return model.Report{}, fmt.Errorf("sales generator: %w", err)
	}

	rows, err := listField(payload, "sales")
	if err != nil {
		return model.Report{}, fmt.Errorf("sales generator: %w", err)
	}

	lines := make([]saleLine, 0, len(rows))
	total := 0.0
	for i := range rows {
		entry, err := entryAt(rows, i, "sales")
		if err != nil {
			return model.Report{}, fmt.Errorf("sales generator: %w", err)
		}
		product, err := stringField(entry, "product")
		if err != nil {
			return model.Report{}, fmt.Errorf("sales generator: entry %d: %w", i, err)
		}
		amount, err := numberField(entry, "amount")
		if err != nil {
			return model.Report{}, fmt.Errorf("sales generator: entry %d: %w", i, err)
		}

		lines = append(lines, saleLine{product: product, amount: amount})
		total += amount
	}

	now := g.now()

	var sb strings.Builder
	writeBanner(&sb, "SALES REPORT")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(timestampLayout)))
	sb.WriteString(fmt.Sprintf("Total sales:  %s\n", g.money(total)))
	sb.WriteString(fmt.Sprintf("Transactions: %s\n", g.count(int64(len(lines)))))
	sb.WriteString(fmt.Sprintf("Period:       %s\n\n", period))

	sb.WriteString("Sales detail:\n")
	writeRule(&sb)
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", line.product, g.money(line.amount)))
	}

	metadata := map[string]string{
		"period":       period,
		"total":        strconv.FormatFloat(total, 'f', 2, 64),
		"transactions": strconv.Itoa(len(lines)),
	}

	return model.NewAt(TagSales, sb.String(), metadata, now), nil
}
