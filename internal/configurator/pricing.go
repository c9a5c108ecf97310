package configurator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tricast360/tricast360-server/internal/catalog"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// Selection is a raw set of configurator choices, as the client sends them.
type Selection struct {
	SetID        string   `json:"set_id"`
	AddOnIDs     []string `json:"add_on_ids"`
	WerbetafelID string   `json:"werbetafel_id"`
	Quantity     int      `json:"quantity"`
}

// Quote is a fully priced breakdown of one selection.
// Total = (set + add-ons + panel) * quantity.
type Quote struct {
	Set        catalog.ProductSet       `json:"set"`
	AddOns     []catalog.AddOn          `json:"add_ons"`
	Werbetafel catalog.WerbetafelOption `json:"werbetafel"`
	Quantity   int                      `json:"quantity"`
	UnitPrice  float64                  `json:"unit_price"`
	Total      float64                  `json:"total"`
}

// BuildQuote resolves every id against the catalog and prices the selection.
// Unknown ids and non-positive quantities are rejected, so a quote can never
// carry a negative or undefined total.
func BuildQuote(cat *catalog.Catalog, sel Selection) (*Quote, error) {
	if sel.Quantity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, sel.Quantity)
	}

	set, err := cat.SetByID(sel.SetID)
	if err != nil {
		return nil, err
	}

	addOns := make([]catalog.AddOn, 0, len(sel.AddOnIDs))
	seen := make(map[string]bool, len(sel.AddOnIDs))
	addOnTotal := 0.0
	for _, id := range sel.AddOnIDs {
		// the selection is a set; repeated ids price once
		if seen[id] {
			continue
		}
		seen[id] = true

		a, err := cat.AddOnByID(id)
		if err != nil {
			return nil, err
		}
		addOns = append(addOns, a)
		addOnTotal += a.Price
	}

	panel, err := cat.PanelByID(sel.WerbetafelID)
	if err != nil {
		return nil, err
	}

	unit := set.Price + addOnTotal + panel.Price

	return &Quote{
		Set:        set,
		AddOns:     addOns,
		Werbetafel: panel,
		Quantity:   sel.Quantity,
		UnitPrice:  unit,
		Total:      unit * float64(sel.Quantity),
	}, nil
}

// ResolveQuantity applies the free-text-overrides-preset rule: a non-empty
// custom value must parse to a positive integer, otherwise the preset is used.
func ResolveQuantity(preset int, custom string) (int, error) {
	custom = strings.TrimSpace(custom)
	if custom == "" {
		if preset < 1 {
			return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, preset)
		}
		return preset, nil
	}

	n, err := strconv.Atoi(custom)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidQuantity, custom)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, n)
	}

	return n, nil
}
