package catalog

import (
	"fmt"
	"strings"

	"github.com/ventadesk/ventadesk/internal/shared"
)

// PriceCombo validates a proposed bundle against the given catalog snapshot
// and computes its totals. Every check runs locally before any remote call:
// the name must be non-empty after trimming, at least one member is required,
// and each member must resolve to a non-combo product in the snapshot.
func PriceCombo(name string, memberIDs []int64, snapshot []Product) (ComboDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ComboDefinition{}, fmt.Errorf("%w: name required", shared.ErrValidation)
	}
	if len(memberIDs) == 0 {
		return ComboDefinition{}, fmt.Errorf("%w: at least one product required", shared.ErrValidation)
	}

	byID := make(map[int64]Product, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID] = p
	}

	combo := ComboDefinition{Name: name}
	seen := make(map[int64]bool, len(memberIDs))
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		p, ok := byID[id]
		if !ok || p.Category == CategoryCombo {
			return ComboDefinition{}, fmt.Errorf("%w: invalid member product %d", shared.ErrValidation, id)
		}

		combo.ProductIDs = append(combo.ProductIDs, id)
		combo.BaseTotal += p.BasePrice
		combo.DiscountedTotal += p.BasePrice * (1 - p.Category.ComboDiscount())
	}
	combo.Savings = combo.BaseTotal - combo.DiscountedTotal
	return combo, nil
}
