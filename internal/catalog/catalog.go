package catalog

import "errors"

var (
	ErrSetNotFound   = errors.New("product set not found")
	ErrAddOnNotFound = errors.New("add-on not found")
	ErrPanelNotFound = errors.New("werbetafel option not found")
)

// PanelNone is the werbetafel option representing "no advertising panel".
const PanelNone = "none"

type ProductSet struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Diameter string  `json:"diameter"`
	Modules  int     `json:"modules"`
	Price    float64 `json:"price"`
}

type AddOn struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// WerbetafelOption is an advertising panel sized for one product set.
// SetID names the compatible set; selection is not gated on it.
type WerbetafelOption struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	SetID       string  `json:"set_id"`
}

// MatchesSet reports whether the panel fits the given product set.
// The "none" option fits everything.
func (o WerbetafelOption) MatchesSet(setID string) bool {
	return o.ID == PanelNone || o.SetID == setID
}

// Catalog holds the fixed TRICAST360 reference data. It is immutable at runtime.
type Catalog struct {
	sets   []ProductSet
	addOns []AddOn
	panels []WerbetafelOption
}

func Default() *Catalog {
	return &Catalog{
		sets: []ProductSet{
			{ID: "set-s", Name: "Set S (5er Set)", Diameter: "25cm", Modules: 5, Price: 399},
			{ID: "set-m", Name: "Set M (7er Set)", Diameter: "32cm", Modules: 7, Price: 559},
			{ID: "set-l", Name: "Set L (9er Set)", Diameter: "40cm", Modules: 9, Price: 699},
			{ID: "set-xl", Name: "Set XL (12er Set)", Diameter: "55cm", Modules: 12, Price: 879},
			{ID: "set-2xl", Name: "Set 2XL (15er Set)", Diameter: "70cm", Modules: 15, Price: 999},
		},
		addOns: []AddOn{
			{ID: "verstarkung", Name: "Verstärkung", Description: "Zusätzliche Stabilität für extreme Wetterbedingungen", Price: 50},
			{ID: "farboption", Name: "Farboption", Description: "Individuelle Farbgestaltung des Systems", Price: 49},
		},
		panels: []WerbetafelOption{
			{ID: PanelNone, Name: "Keine Werbetafel", Description: "Ohne Werbefläche", Price: 0, SetID: ""},
			{ID: "werbetafel-s", Name: "Werbetafel Set S (5er Set)", Description: "Passend für 25cm System", Price: 29, SetID: "set-s"},
			{ID: "werbetafel-m", Name: "Werbetafel Set M (7er Set)", Description: "Passend für 32cm System", Price: 39, SetID: "set-m"},
			{ID: "werbetafel-l", Name: "Werbetafel Set L (9er Set)", Description: "Passend für 40cm System", Price: 49, SetID: "set-l"},
			{ID: "werbetafel-xl", Name: "Werbetafel Set XL (12er Set)", Description: "Passend für 55cm System", Price: 59, SetID: "set-xl"},
			{ID: "werbetafel-2xl", Name: "Werbetafel Set 2XL (15er Set)", Description: "Passend für 70cm System", Price: 69, SetID: "set-2xl"},
		},
	}
}

func (c *Catalog) Sets() []ProductSet {
	return c.sets
}

func (c *Catalog) AddOns() []AddOn {
	return c.addOns
}

func (c *Catalog) Panels() []WerbetafelOption {
	return c.panels
}

func (c *Catalog) SetByID(id string) (ProductSet, error) {
	for _, s := range c.sets {
		if s.ID == id {
			return s, nil
		}
	}
	return ProductSet{}, ErrSetNotFound
}

func (c *Catalog) AddOnByID(id string) (AddOn, error) {
	for _, a := range c.addOns {
		if a.ID == id {
			return a, nil
		}
	}
	return AddOn{}, ErrAddOnNotFound
}

func (c *Catalog) PanelByID(id string) (WerbetafelOption, error) {
	for _, p := range c.panels {
		if p.ID == id {
			return p, nil
		}
	}
	return WerbetafelOption{}, ErrPanelNotFound
}
