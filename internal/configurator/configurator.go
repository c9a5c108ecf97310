// Package configurator implements the five-step shop wizard: pick a product
// set, optional add-ons, a werbetafel option, a quantity, then commit the
// priced draft into the single draft slot.
package configurator

import (
	"errors"
	"fmt"

	"github.com/tricast360/tricast360-server/internal/catalog"
)

type Step int

const (
	StepSelectSet Step = iota + 1
	StepSelectAddOns
	StepSelectPanel
	StepSelectQuantity
	StepSummary
)

func (s Step) String() string {
	switch s {
	case StepSelectSet:
		return "SelectSet"
	case StepSelectAddOns:
		return "SelectAddOns"
	case StepSelectPanel:
		return "SelectPanel"
	case StepSelectQuantity:
		return "SelectQuantity"
	case StepSummary:
		return "Summary"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

var (
	ErrStepInvalid  = errors.New("current step is not valid")
	ErrAtLastStep   = errors.New("already at the summary step")
	ErrAtFirstStep  = errors.New("already at the first step")
	ErrNotAtSummary = errors.New("commit is only allowed at the summary step")
)

// Configurator accumulates one order draft across the wizard steps. It is not
// safe for concurrent use; one instance belongs to one client flow.
type Configurator struct {
	catalog *catalog.Catalog

	step            Step
	selectedSet     string
	selectedAddOns  []string
	selectedPanel   string
	quantity        int
	customQuantity  string
	hasDesignUpload bool
}

// New starts a wizard with the same defaults the shop page uses: Set S
// pre-selected, no panel, quantity 1.
func New(cat *catalog.Catalog) *Configurator {
	return &Configurator{
		catalog:       cat,
		step:          StepSelectSet,
		selectedSet:   "set-s",
		selectedPanel: catalog.PanelNone,
		quantity:      1,
	}
}

func (c *Configurator) Step() Step {
	return c.step
}

func (c *Configurator) SelectSet(id string) error {
	if _, err := c.catalog.SetByID(id); err != nil {
		return err
	}
	c.selectedSet = id

	return nil
}

// ToggleAddOn adds the add-on if absent and removes it if present.
func (c *Configurator) ToggleAddOn(id string) error {
	if _, err := c.catalog.AddOnByID(id); err != nil {
		return err
	}

	for i, existing := range c.selectedAddOns {
		if existing == id {
			c.selectedAddOns = append(c.selectedAddOns[:i], c.selectedAddOns[i+1:]...)
			return nil
		}
	}
	c.selectedAddOns = append(c.selectedAddOns, id)

	return nil
}

func (c *Configurator) SelectPanel(id string) error {
	if _, err := c.catalog.PanelByID(id); err != nil {
		return err
	}
	c.selectedPanel = id

	return nil
}

func (c *Configurator) SetQuantity(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, n)
	}
	c.quantity = n
	c.customQuantity = ""

	return nil
}

// SetCustomQuantity records free-typed quantity text. Validity is checked at
// the step gate, so invalid text is kept and simply blocks advancement.
func (c *Configurator) SetCustomQuantity(text string) {
	c.customQuantity = text
}

func (c *Configurator) SetDesignUpload(uploaded bool) {
	c.hasDesignUpload = uploaded
}

// ResolvedQuantity returns the effective quantity, free text overriding the
// preset.
func (c *Configurator) ResolvedQuantity() (int, error) {
	return ResolveQuantity(c.quantity, c.customQuantity)
}

// IsStepValid reports whether the given step's gating predicate holds.
func (c *Configurator) IsStepValid(s Step) bool {
	switch s {
	case StepSelectSet:
		return c.selectedSet != ""
	case StepSelectAddOns:
		return true
	case StepSelectPanel:
		return c.selectedPanel != ""
	case StepSelectQuantity:
		_, err := c.ResolvedQuantity()
		return err == nil
	case StepSummary:
		return true
	default:
		return false
	}
}

// Next advances to the following step. Blocked while the current step is
// invalid.
func (c *Configurator) Next() error {
	if c.step == StepSummary {
		return ErrAtLastStep
	}
	if !c.IsStepValid(c.step) {
		return fmt.Errorf("%w: %s", ErrStepInvalid, c.step)
	}
	c.step++

	return nil
}

// Back moves one step back. Selections made on later steps are kept.
func (c *Configurator) Back() error {
	if c.step == StepSelectSet {
		return ErrAtFirstStep
	}
	c.step--

	return nil
}

// Selection snapshots the current choices in raw id form.
func (c *Configurator) Selection() Selection {
	qty, err := c.ResolvedQuantity()
	if err != nil {
		qty = c.quantity
	}

	addOns := make([]string, len(c.selectedAddOns))
	copy(addOns, c.selectedAddOns)

	return Selection{
		SetID:        c.selectedSet,
		AddOnIDs:     addOns,
		WerbetafelID: c.selectedPanel,
		Quantity:     qty,
	}
}

// Quote prices the current selections.
func (c *Configurator) Quote() (*Quote, error) {
	return BuildQuote(c.catalog, c.Selection())
}

// Total recomputes the price from the current selections. An unparsable
// custom quantity falls back to the preset, so the result is always defined
// and non-negative.
func (c *Configurator) Total() float64 {
	q, err := c.Quote()
	if err != nil {
		return 0
	}

	return q.Total
}

// Commit builds the versioned draft record. Only allowed at the summary step
// with every prior step valid.
func (c *Configurator) Commit() (*Draft, error) {
	if c.step != StepSummary {
		return nil, ErrNotAtSummary
	}
	for s := StepSelectSet; s <= StepSummary; s++ {
		if !c.IsStepValid(s) {
			return nil, fmt.Errorf("%w: %s", ErrStepInvalid, s)
		}
	}

	q, err := c.Quote()
	if err != nil {
		return nil, err
	}

	addOns := make([]DraftAddOn, 0, len(q.AddOns))
	for _, a := range q.AddOns {
		addOns = append(addOns, DraftAddOn{ID: a.ID, Name: a.Name, Price: a.Price})
	}

	var panel *DraftPanel
	if q.Werbetafel.ID != catalog.PanelNone {
		panel = &DraftPanel{ID: q.Werbetafel.ID, Name: q.Werbetafel.Name, Price: q.Werbetafel.Price}
	}

	return &Draft{
		SchemaVersion:   DraftSchemaVersion,
		SetID:           q.Set.ID,
		SetName:         q.Set.Name,
		Diameter:        q.Set.Diameter,
		Modules:         q.Set.Modules,
		BasePrice:       q.Set.Price,
		AddOns:          addOns,
		Werbetafel:      panel,
		Quantity:        q.Quantity,
		HasDesignUpload: c.hasDesignUpload,
		TotalPrice:      q.Total,
	}, nil
}
