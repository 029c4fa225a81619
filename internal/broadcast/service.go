package broadcast

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/signupdesk/signupdesk/backend/internal/submission"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
	"github.com/signupdesk/signupdesk/backend/pkg/metrics"
)

// RecordSource yields the current record snapshot.
type RecordSource interface {
	List(ctx context.Context) ([]submission.Record, error)
}

// Service validates a broadcast request, selects recipients and hands the
// dispatch to the notifier.
type Service struct {
	records  RecordSource
	notifier Notifier
	history  History
	now      func() time.Time
}

// NewService wires the selector. A nil notifier defaults to LogNotifier and a
// nil history to an in-memory one.
func NewService(records RecordSource, n Notifier, h History) *Service {
	if n == nil {
		n = LogNotifier{}
	}
	if h == nil {
		h = NewMemoryHistory()
	}
	return &Service{records: records, notifier: n, history: h, now: time.Now}
}

// Send returns the dispatch that was handed to the notifier.
func (s *Service) Send(ctx context.Context, r Request) (*Dispatch, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	var records []submission.Record
	if r.ReadsStore() {
		var err error
		if records, err = s.records.List(ctx); err != nil {
			return nil, err
		}
	}
	numbers, err := Select(records, r)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("dispatch id: %w", err)
	}
	d := &Dispatch{
		ID:         id.String(),
		Mode:       r.Mode,
		Message:    r.Message,
		Recipients: numbers,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.notifier.Notify(ctx, d); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	metrics.SMSRecipients.WithLabelValues(r.Mode).Add(float64(len(numbers)))
	if err := s.history.Record(ctx, d); err != nil {
		logger.Warnf("failed to record dispatch %s: %v", d.ID, err)
	}
	return d, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Dispatch, error) {
	return s.history.Recent(ctx, limit)
}
