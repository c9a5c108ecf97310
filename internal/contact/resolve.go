package contact

import "strings"

// Candidate is one value in an ordered fallback chain, tagged with the form
// field it came from.
type Candidate struct {
	Field string
	Value string
}

// Resolved is the outcome of a fallback-chain resolution. Source names the
// winning field, or "fallback" when every candidate was empty.
type Resolved struct {
	Value  string
	Source string
}

// Resolve picks the first non-empty candidate, in order, falling back to the
// given default. This makes the precedence rules of the two form variants an
// explicit contract instead of short-circuit evaluation.
func Resolve(fallback string, candidates ...Candidate) Resolved {
	for _, c := range candidates {
		if v := strings.TrimSpace(c.Value); v != "" {
			return Resolved{Value: v, Source: c.Field}
		}
	}

	return Resolved{Value: fallback, Source: "fallback"}
}

const (
	fallbackNotSpecified = "Nicht angegeben"
	fallbackNoMessage    = "Keine Nachricht"
	fallbackUnknownIP    = "Unbekannt"
)

// resolveCompany: company → unternehmen → "Nicht angegeben".
func (s *Submission) resolveCompany() Resolved {
	return Resolve(fallbackNotSpecified,
		Candidate{Field: "company", Value: s.Company},
		Candidate{Field: "unternehmen", Value: s.Unternehmen},
	)
}

// resolveContactPerson: contact_person → "vorname nachname" → "Nicht angegeben".
func (s *Submission) resolveContactPerson() Resolved {
	fullName := strings.TrimSpace(s.Vorname + " " + s.Nachname)

	return Resolve(fallbackNotSpecified,
		Candidate{Field: "contact_person", Value: s.ContactPerson},
		Candidate{Field: "vorname/nachname", Value: fullName},
	)
}

func (s *Submission) resolvePhone() Resolved {
	return Resolve(fallbackNotSpecified, Candidate{Field: "phone", Value: s.Phone})
}

// resolveMessage: additional_info → nachricht → "Keine Nachricht".
func (s *Submission) resolveMessage() Resolved {
	return Resolve(fallbackNoMessage,
		Candidate{Field: "additional_info", Value: s.AdditionalInfo},
		Candidate{Field: "nachricht", Value: s.Nachricht},
	)
}
