// Package consent stores the cookie-consent decision the site banner collects.
package consent

import (
	"time"

	"github.com/tricast360/tricast360-server/internal/storage"
)

// Slot is the storage slot holding the consent record.
const Slot = "TRICAST360-cookie-consent"

// Version identifies the consent text the decision was made against.
const Version = "1.0"

// Preferences is one consent decision per cookie category. Necessary is
// always true.
type Preferences struct {
	Necessary  bool      `json:"necessary"`
	Analytics  bool      `json:"analytics"`
	Marketing  bool      `json:"marketing"`
	Functional bool      `json:"functional"`
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
}

func AcceptAll(now time.Time) Preferences {
	return Preferences{
		Necessary:  true,
		Analytics:  true,
		Marketing:  true,
		Functional: true,
		Timestamp:  now,
		Version:    Version,
	}
}

func NecessaryOnly(now time.Time) Preferences {
	return Preferences{
		Necessary: true,
		Timestamp: now,
		Version:   Version,
	}
}

// Normalized forces the invariants: necessary cannot be opted out of and the
// record always carries a version.
func (p Preferences) Normalized() Preferences {
	p.Necessary = true
	if p.Version == "" {
		p.Version = Version
	}

	return p
}

func Save(s storage.Store, p Preferences) error {
	return s.Put(Slot, p.Normalized())
}

// Load returns the stored decision. storage.ErrSlotEmpty means the banner has
// not been answered yet.
func Load(s storage.Store) (Preferences, error) {
	var p Preferences
	if err := s.Get(Slot, &p); err != nil {
		return Preferences{}, err
	}

	return p.Normalized(), nil
}
