package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/signupdesk/signupdesk/backend/internal/submission"
	"github.com/signupdesk/signupdesk/backend/pkg/metrics"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records []submission.Record
	err     error
	calls   int
}

func (f *fakeSource) List(ctx context.Context) ([]submission.Record, error) {
	f.calls++
	return f.records, f.err
}

type recordingNotifier struct {
	got []*Dispatch
	err error
}

func (r *recordingNotifier) Notify(ctx context.Context, d *Dispatch) error {
	r.got = append(r.got, d)
	return r.err
}

func TestSend_AllOptin(t *testing.T) {
	src := &fakeSource{records: sample}
	n := &recordingNotifier{}
	svc := NewService(src, n, nil)

	before := testutil.ToFloat64(metrics.SMSRecipients.WithLabelValues(ModeAllOptin))
	d, err := svc.Send(context.Background(), Request{Mode: ModeAllOptin, Message: "hi"})
	require.NoError(t, err)
	require.Equal(t, []string{"111", "333"}, d.Recipients)
	require.NotEmpty(t, d.ID)
	require.Len(t, n.got, 1)
	require.Equal(t, before+2, testutil.ToFloat64(metrics.SMSRecipients.WithLabelValues(ModeAllOptin)))

	recent, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, d.ID, recent[0].ID)
}

func TestSend_ManualDoesNotReadStore(t *testing.T) {
	src := &fakeSource{err: submission.ErrStorageRead}
	svc := NewService(src, NoopNotifier{}, nil)

	d, err := svc.Send(context.Background(), Request{Mode: ModeManual, Message: "hi", Numbers: []string{"1", "2"}})
	require.NoError(t, err)
	require.Len(t, d.Recipients, 2)
	require.Zero(t, src.calls)
}

func TestSend_ValidationBeforeStore(t *testing.T) {
	src := &fakeSource{records: sample}
	n := &recordingNotifier{}
	svc := NewService(src, n, nil)

	_, err := svc.Send(context.Background(), Request{Mode: "bogus", Message: "hi"})
	require.ErrorIs(t, err, ErrInvalidMode)
	_, err = svc.Send(context.Background(), Request{Mode: ModeAllOptin, Message: "  "})
	require.ErrorIs(t, err, ErrMessageRequired)
	require.Zero(t, src.calls)
	require.Empty(t, n.got)
}

func TestSend_Errors(t *testing.T) {
	svc := NewService(&fakeSource{err: submission.ErrStorageRead}, NoopNotifier{}, nil)
	_, err := svc.Send(context.Background(), Request{Mode: ModeAllOptin, Message: "hi"})
	require.ErrorIs(t, err, submission.ErrStorageRead)

	boom := errors.New("provider down")
	svc = NewService(&fakeSource{records: sample}, &recordingNotifier{err: boom}, nil)
	_, err = svc.Send(context.Background(), Request{Mode: ModeAllOptin, Message: "hi"})
	require.ErrorIs(t, err, boom)
	recent, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, recent)
}

func TestRedisQueueNotifier(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	svc := NewService(&fakeSource{records: sample}, NewRedisQueueNotifier(client, "test:outbox"), nil)
	d, err := svc.Send(context.Background(), Request{Mode: ModeSelected, Message: "hello", IDs: []string{"b"}})
	require.NoError(t, err)

	items, err := m.List("test:outbox")
	require.NoError(t, err)
	require.Len(t, items, 1)
	var queued Dispatch
	require.NoError(t, json.Unmarshal([]byte(items[0]), &queued))
	require.Equal(t, d.ID, queued.ID)
	require.Equal(t, []string{"222"}, queued.Recipients)
	require.Equal(t, "hello", queued.Message)
}

func TestMemoryHistory_NewestFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	h := NewMemoryHistory()
	for i := 0; i < memoryHistoryCap+5; i++ {
		require.NoError(t, h.Record(ctx, &Dispatch{ID: string(rune('a' + i%26))}))
	}
	all, err := h.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, memoryHistoryCap)

	two, err := h.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	require.Equal(t, all[0].ID, two[0].ID)
}
