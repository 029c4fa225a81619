package repository

import (
	"context"

	"github.com/signupdesk/signupdesk/backend/internal/submission"
)

// Repository is the record persistence contract used by the service layer.
// Implementations keep insertion order.
type Repository interface {
	List(ctx context.Context) ([]submission.Record, error)
	// Insert appends rec; it returns submission.ErrDuplicateID when rec.ID is taken.
	Insert(ctx context.Context, rec *submission.Record) error
	// DeleteMany removes every record whose id is in ids and reports how many were removed.
	DeleteMany(ctx context.Context, ids []string) (int, error)
	Ping(ctx context.Context) error
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// without returns records minus those whose id is in ids, and the removed count.
func without(records []submission.Record, ids []string) ([]submission.Record, int) {
	drop := idSet(ids)
	out := make([]submission.Record, 0, len(records))
	for _, r := range records {
		if _, ok := drop[r.ID]; ok {
			continue
		}
		out = append(out, r)
	}
	return out, len(records) - len(out)
}

func containsID(records []submission.Record, id string) bool {
	for _, r := range records {
		if r.ID == id {
			return true
		}
	}
	return false
}

var (
	_ Repository = (*FileRepo)(nil)
	_ Repository = (*MemoryRepo)(nil)
	_ Repository = (*MongoRepo)(nil)
)
