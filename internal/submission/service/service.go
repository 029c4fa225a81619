package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/signupdesk/signupdesk/backend/internal/submission"
	"github.com/signupdesk/signupdesk/backend/internal/submission/repository"
	"github.com/signupdesk/signupdesk/backend/pkg/metrics"
)

const maxIDAttempts = 5

var ErrIDExhausted = errors.New("could not allocate a unique record id")

// BulkDeleteResult reports a bulk delete. Requested is the number of ids the
// caller sent (the value historically returned as "count"); Removed is how many
// records were actually dropped.
type BulkDeleteResult struct {
	Requested int
	Removed   int
}

// Service implements intake and the admin query/mutation operations on top of
// a Repository.
type Service struct {
	repo  repository.Repository
	now   func() time.Time
	newID func() (string, error)
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: submission.NewID}
}

// Submit normalizes p into a new record and appends it to the store.
func (s *Service) Submit(ctx context.Context, p submission.Payload) (*submission.Record, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return nil, fmt.Errorf("generate id: %w", err)
		}
		rec := submission.NewRecord(id, p, s.now())
		err = s.repo.Insert(ctx, rec)
		if errors.Is(err, submission.ErrDuplicateID) {
			continue
		}
		if err != nil {
			return nil, err
		}
		metrics.SubmissionsStored.Inc()
		return rec, nil
	}
	return nil, ErrIDExhausted
}

func (s *Service) List(ctx context.Context) ([]submission.Record, error) {
	return s.repo.List(ctx)
}

// DeleteOne removes the record with id. An unknown id is not an error.
func (s *Service) DeleteOne(ctx context.Context, id string) error {
	removed, err := s.repo.DeleteMany(ctx, []string{id})
	if err != nil {
		return err
	}
	metrics.RecordsDeleted.WithLabelValues("delete").Add(float64(removed))
	return nil
}

// DeleteMany removes every record whose id is in ids.
func (s *Service) DeleteMany(ctx context.Context, ids []string) (BulkDeleteResult, error) {
	removed, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return BulkDeleteResult{}, err
	}
	metrics.RecordsDeleted.WithLabelValues("bulk_delete").Add(float64(removed))
	return BulkDeleteResult{Requested: len(ids), Removed: removed}, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
