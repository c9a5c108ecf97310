package contact

import (
	"bytes"
	"encoding/json"
	"strings"
)

type FormType string

const (
	FormTypeProject FormType = "Projekt-Anfrage"
	FormTypeGeneral FormType = "Allgemeine Anfrage"
)

// ConsentFlag accepts the loosely typed consent values the forms send:
// booleans, numbers and strings.
type ConsentFlag bool

func (c *ConsentFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("true")):
		*c = true
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("null")):
		*c = false
	default:
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			s = strings.ToLower(strings.TrimSpace(s))
			*c = ConsentFlag(s != "" && s != "false" && s != "0")
			return nil
		}
		var n float64
		if err := json.Unmarshal(data, &n); err == nil {
			*c = ConsentFlag(n != 0)
			return nil
		}
		*c = false
	}

	return nil
}

// Submission is one contact-form payload. The company/contact_person/
// additional_info fields come from the project form, the vorname/nachname/
// unternehmen/nachricht fields from the simpler personal form.
type Submission struct {
	Company        string      `json:"company"`
	ContactPerson  string      `json:"contact_person"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	AdditionalInfo string      `json:"additional_info"`
	PrivacyConsent ConsentFlag `json:"privacy_consent"`

	Vorname     string `json:"vorname"`
	Nachname    string `json:"nachname"`
	Unternehmen string `json:"unternehmen"`
	Nachricht   string `json:"nachricht"`
}

// FormType labels the submission: a project inquiry whenever any of the
// project-form fields is filled, a general inquiry otherwise. Whitespace-only
// fields count as empty, matching the fallback resolution.
func (s *Submission) FormType() FormType {
	if strings.TrimSpace(s.Company) != "" ||
		strings.TrimSpace(s.ContactPerson) != "" ||
		strings.TrimSpace(s.AdditionalInfo) != "" {
		return FormTypeProject
	}

	return FormTypeGeneral
}
