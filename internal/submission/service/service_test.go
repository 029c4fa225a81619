package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/signupdesk/signupdesk/backend/internal/submission"
	"github.com/signupdesk/signupdesk/backend/internal/submission/repository"
	"github.com/stretchr/testify/require"
)

// failingRepo returns err from every operation
type failingRepo struct{ err error }

func (f *failingRepo) List(ctx context.Context) ([]submission.Record, error) { return nil, f.err }
func (f *failingRepo) Insert(ctx context.Context, rec *submission.Record) error {
	return f.err
}
func (f *failingRepo) DeleteMany(ctx context.Context, ids []string) (int, error) { return 0, f.err }
func (f *failingRepo) Ping(ctx context.Context) error                            { return f.err }

func TestSubmit_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewMemoryRepo())
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	rec, err := svc.Submit(ctx, submission.Payload{Name: "A", Email: "a@example.com", Phone: "555", Interests: "golf", Optin: true})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, submission.Record{
		ID: rec.ID, Name: "A", Email: "a@example.com", Phone: "555", Interests: "golf", Optin: true,
		Date: "2025-01-02T03:04:05.000Z",
	}, list[0])
}

func TestSubmit_RetriesOnDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	require.NoError(t, repo.Insert(ctx, &submission.Record{ID: "taken"}))

	svc := New(repo)
	ids := []string{"taken", "taken", "fresh"}
	svc.newID = func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}

	rec, err := svc.Submit(ctx, submission.Payload{})
	require.NoError(t, err)
	require.Equal(t, "fresh", rec.ID)
}

func TestSubmit_GivesUpAfterRepeatedCollisions(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	require.NoError(t, repo.Insert(ctx, &submission.Record{ID: "taken"}))

	svc := New(repo)
	svc.newID = func() (string, error) { return "taken", nil }

	_, err := svc.Submit(ctx, submission.Payload{})
	require.ErrorIs(t, err, ErrIDExhausted)
}

func TestSubmit_StorageError(t *testing.T) {
	svc := New(&failingRepo{err: submission.ErrStorageWrite})
	_, err := svc.Submit(context.Background(), submission.Payload{})
	require.ErrorIs(t, err, submission.ErrStorageWrite)
}

func TestDeleteOne_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewMemoryRepo())
	rec, err := svc.Submit(ctx, submission.Payload{Name: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOne(ctx, "does-not-exist"))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteOne(ctx, rec.ID))
	require.NoError(t, svc.DeleteOne(ctx, rec.ID))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

// Requested mirrors the number of ids sent, not the number removed.
func TestDeleteMany_ReportsRequestedAndRemoved(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewMemoryRepo())
	var keep, drop []string
	for i := 0; i < 4; i++ {
		rec, err := svc.Submit(ctx, submission.Payload{})
		require.NoError(t, err)
		if i%2 == 0 {
			drop = append(drop, rec.ID)
		} else {
			keep = append(keep, rec.ID)
		}
	}

	res, err := svc.DeleteMany(ctx, append(drop, "ghost-1", "ghost-2"))
	require.NoError(t, err)
	require.Equal(t, 4, res.Requested)
	require.Equal(t, 2, res.Removed)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	var left []string
	for _, r := range list {
		left = append(left, r.ID)
	}
	require.Equal(t, keep, left)
}

func TestPing_PropagatesRepoError(t *testing.T) {
	boom := errors.New("boom")
	require.ErrorIs(t, New(&failingRepo{err: boom}).Ping(context.Background()), boom)
}
