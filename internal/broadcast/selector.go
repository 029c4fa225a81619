package broadcast

import (
	"errors"
	"strings"

	"github.com/signupdesk/signupdesk/backend/internal/submission"
)

const (
	ModeAllOptin = "all_optin"
	ModeInterest = "interest"
	ModeSelected = "selected"
	ModeManual   = "manual"
)

var (
	ErrMessageRequired = errors.New("message is required")
	ErrInvalidMode     = errors.New("invalid mode")
)

// Request is the body of a send-sms call. Interest, IDs and Numbers are only
// read by the mode that needs them.
type Request struct {
	Mode     string   `json:"mode"`
	Message  string   `json:"message"`
	Interest *string  `json:"interest"`
	IDs      []string `json:"ids"`
	Numbers  []string `json:"numbers"`
}

// Validate checks the message first, then the mode.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return ErrMessageRequired
	}
	switch r.Mode {
	case ModeAllOptin, ModeInterest, ModeSelected, ModeManual:
		return nil
	}
	return ErrInvalidMode
}

// ReadsStore reports whether the mode selects from stored records.
func (r Request) ReadsStore() bool {
	return r.Mode != ModeManual
}

// Select computes the recipient phone numbers for r from records, in record order.
// Manual mode returns r.Numbers verbatim and ignores records.
func Select(records []submission.Record, r Request) ([]string, error) {
	var keep func(submission.Record) bool
	switch r.Mode {
	case ModeAllOptin:
		keep = func(rec submission.Record) bool { return rec.Optin }
	case ModeInterest:
		if r.Interest == nil {
			return []string{}, nil
		}
		want := *r.Interest
		keep = func(rec submission.Record) bool { return rec.Interests == want }
	case ModeSelected:
		ids := make(map[string]struct{}, len(r.IDs))
		for _, id := range r.IDs {
			ids[id] = struct{}{}
		}
		keep = func(rec submission.Record) bool {
			_, ok := ids[rec.ID]
			return ok
		}
	case ModeManual:
		if r.Numbers == nil {
			return []string{}, nil
		}
		return r.Numbers, nil
	default:
		return nil, ErrInvalidMode
	}

	out := []string{}
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec.Phone)
		}
	}
	return out, nil
}
