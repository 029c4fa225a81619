package submission

import (
	"encoding/json"
	"time"
)

// DateLayout is the ISO-8601 form stored in Record.Date (UTC, millisecond precision).
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is one stored form submission. Records are created by intake and never
// updated in place. Extra holds keys found in the data file that Record does not
// model; they are written back unchanged.
type Record struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Interests string `json:"interests" bson:"interests"`
	Optin     bool   `json:"optin" bson:"optin"`
	Date      string `json:"date" bson:"date"`

	Extra map[string]json.RawMessage `json:"-" bson:"-"`
}

// Payload is the public form body. Fields are untyped so that a missing,
// null or non-string value never fails the request.
type Payload struct {
	Name      interface{} `json:"name"`
	Email     interface{} `json:"email"`
	Phone     interface{} `json:"phone"`
	Interests interface{} `json:"interests"`
	Optin     interface{} `json:"optin"`
}

// NewRecord normalizes p into a Record with the given id and creation time.
func NewRecord(id string, p Payload, now time.Time) *Record {
	optin, _ := p.Optin.(bool)
	return &Record{
		ID:        id,
		Name:      text(p.Name),
		Email:     text(p.Email),
		Phone:     text(p.Phone),
		Interests: text(p.Interests),
		Optin:     optin,
		Date:      now.UTC().Format(DateLayout),
	}
}
