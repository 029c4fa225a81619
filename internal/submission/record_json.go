package submission

import (
	"bytes"
	"encoding/json"
	"sort"
)

// recordFields are the keys Record models; anything else lands in Extra.
var recordFields = map[string]bool{
	"id": true, "name": true, "email": true, "phone": true,
	"interests": true, "optin": true, "date": true,
}

type plainRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Interests string `json:"interests"`
	Optin     bool   `json:"optin"`
	Date      string `json:"date"`
}

// UnmarshalJSON accepts any JSON type in the text fields, coercing them the
// same way intake does. optin is true only for boolean true.
func (r *Record) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	field := func(key string) (interface{}, error) {
		v, ok := raw[key]
		if !ok {
			return nil, nil
		}
		var out interface{}
		err := json.Unmarshal(v, &out)
		return out, err
	}

	var out Record
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"id", &out.ID},
		{"name", &out.Name},
		{"email", &out.Email},
		{"phone", &out.Phone},
		{"interests", &out.Interests},
		{"date", &out.Date},
	} {
		v, err := field(f.key)
		if err != nil {
			return err
		}
		*f.dst = text(v)
	}
	optin, err := field("optin")
	if err != nil {
		return err
	}
	out.Optin = optin == true

	for k, v := range raw {
		if recordFields[k] {
			continue
		}
		if out.Extra == nil {
			out.Extra = map[string]json.RawMessage{}
		}
		out.Extra[k] = v
	}
	*r = out
	return nil
}

// MarshalJSON writes the modeled fields in a fixed order followed by Extra
// sorted by key.
func (r Record) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(plainRecord{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Interests: r.Interests,
		Optin:     r.Optin,
		Date:      r.Date,
	})
	if err != nil || len(r.Extra) == 0 {
		return b, err
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		if !recordFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(b[:len(b)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(r.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
