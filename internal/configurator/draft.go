package configurator

import (
	"errors"
	"fmt"

	"github.com/tricast360/tricast360-server/internal/storage"
)

// DraftSlot is the storage slot holding the committed configuration. One slot,
// overwritten wholesale on every commit.
const DraftSlot = "TRICAST360_config"

// DraftSchemaVersion is bumped when the draft record gains fields. Readers
// accept any version up to their own.
const DraftSchemaVersion = 1

var ErrDraftVersion = errors.New("draft schema version not supported")

type DraftAddOn struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type DraftPanel struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Draft is the committed result of a configurator run. Werbetafel is nil when
// "no panel" was chosen. Only the HasDesignUpload flag survives a commit; the
// uploaded asset itself is never persisted.
type Draft struct {
	SchemaVersion   int          `json:"schema_version"`
	SetID           string       `json:"set_id"`
	SetName         string       `json:"set_name"`
	Diameter        string       `json:"diameter"`
	Modules         int          `json:"modules"`
	BasePrice       float64      `json:"base_price"`
	AddOns          []DraftAddOn `json:"add_ons"`
	Werbetafel      *DraftPanel  `json:"werbetafel,omitempty"`
	Quantity        int          `json:"quantity"`
	HasDesignUpload bool         `json:"has_design_upload"`
	TotalPrice      float64      `json:"total_price"`
}

// SaveDraft overwrites any previously committed draft.
func SaveDraft(s storage.Store, d *Draft) error {
	if err := s.Put(DraftSlot, d); err != nil {
		return fmt.Errorf("configurator: failed to save draft: %w", err)
	}

	return nil
}

// LoadDraft reads the committed draft back. Returns storage.ErrSlotEmpty when
// nothing has been committed yet.
func LoadDraft(s storage.Store) (*Draft, error) {
	var d Draft
	if err := s.Get(DraftSlot, &d); err != nil {
		return nil, err
	}

	if d.SchemaVersion > DraftSchemaVersion {
		return nil, fmt.Errorf("%w: got %d, supported up to %d", ErrDraftVersion, d.SchemaVersion, DraftSchemaVersion)
	}

	return &d, nil
}

// ClearDraft removes the committed draft, e.g. after checkout.
func ClearDraft(s storage.Store) error {
	return s.Delete(DraftSlot)
}
