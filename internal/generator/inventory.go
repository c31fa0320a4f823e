package generator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/reportpipe/reportpipe/internal/model"
)

// TagInventory is the registry tag of the inventory generator.
const TagInventory = "inventory"

// Inventory summarizes current stock: total units, per-category unit counts,
// and a per-item detail listing.
//
// Expected payload shape:
//
//	{
//	  "items": [
//	    {"name": "Laptop HP", "category": "Computers", "quantity": 15},
//	    ...
//	  ]
//	}
type Inventory struct {
	settings
}

// NewInventory creates an inventory generator.
func NewInventory(opts ...Option) *Inventory {
	return &Inventory{settings: newSettings(opts)}
}

// Name returns the registry tag for inventory reports.
func (g *Inventory) Name() string { return TagInventory }

// stockLine is one decoded inventory item.
type stockLine struct {
	name     string
	category string
	quantity int64
}

// categoryTotal aggregates the units and items of one category.
type categoryTotal struct {
	units int64
	items int
}

// Generate validates the payload, aggregates units per category, and renders
// the stock summary.
func (g *Inventory) Generate(payload map[string]any) (model.Report, error) {
	rows, err := listField(payload, "items")
	if err != nil {
		return model.Report{}, fmt.Errorf("inventory generator: %w", err)
	}

	lines := make([]stockLine, 0, len(rows))
	byCategory := make(map[string]categoryTotal)
	var totalUnits int64
	for i := range rows {
		entry, err := entryAt(rows, i, "items")
		if err != nil {
			return model.Report{}, fmt.Errorf("inventory generator: %w", err)
		}
		name, err := stringField(entry, "name")
		if err != nil {
			return model.Report{}, fmt.Errorf("inventory generator: entry %d: %w", i, err)
		}
		category, err := stringField(entry, "category")
		if err != nil {
			return model.Report{}, fmt.Errorf("inventory generator: entry %d: %w", i, err)
		}
		quantity, err := wholeNumberField(entry, "quantity")
		if err != nil {
			return model.Report{}, fmt.Errorf("inventory generator: entry %d: %w", i, err)
		}

		lines = append(lines, stockLine{name: name, category: category, quantity: quantity})
		agg := byCategory[category]
		agg.units += quantity
		agg.items++
		byCategory[category] = agg
		totalUnits += quantity
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	now := g.now()

	var sb strings.Builder
	writeBanner(&sb, "INVENTORY REPORT")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(timestampLayout)))
	sb.WriteString(fmt.Sprintf("Total units: %s\n", g.count(totalUnits)))
	sb.WriteString(fmt.Sprintf("Categories:  %s\n\n", g.count(int64(len(categories)))))

	sb.WriteString("Stock by category:\n")
	writeRule(&sb)
	for _, category := range categories {
		agg := byCategory[category]
		sb.WriteString(fmt.Sprintf("  - %s: %s units (%s)\n",
			category, g.count(agg.units), itemCount(agg.items)))
	}
	sb.WriteString("\n")

	sb.WriteString("Item detail:\n")
	writeRule(&sb)
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  - %s (%s): %s units\n",
			line.name, line.category, g.count(line.quantity)))
	}

	metadata := map[string]string{
		"total_items": strconv.FormatInt(totalUnits, 10),
		"categories":  strconv.Itoa(len(categories)),
	}

	return model.NewAt(TagInventory, sb.String(), metadata, now), nil
}

// itemCount renders an item count with the right plural form.
func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
