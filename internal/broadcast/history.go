package broadcast

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// History keeps a log of dispatches, newest first on read.
type History interface {
	Record(ctx context.Context, d *Dispatch) error
	Recent(ctx context.Context, limit int) ([]Dispatch, error)
}

const memoryHistoryCap = 200

// MemoryHistory retains the most recent dispatches in process.
type MemoryHistory struct {
	mu    sync.RWMutex
	items []Dispatch
}

func NewMemoryHistory() *MemoryHistory { return &MemoryHistory{} }

func (h *MemoryHistory) Record(ctx context.Context, d *Dispatch) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = append(h.items, *d)
	if len(h.items) > memoryHistoryCap {
		h.items = h.items[len(h.items)-memoryHistoryCap:]
	}
	return nil
}

func (h *MemoryHistory) Recent(ctx context.Context, limit int) ([]Dispatch, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := []Dispatch{}
	for i := len(h.items) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, h.items[i])
	}
	return out, nil
}

// MongoHistory persists dispatches in a collection, upserting by dispatch id.
type MongoHistory struct {
	col *mongo.Collection
}

func NewMongoHistory(col *mongo.Collection) *MongoHistory {
	return &MongoHistory{col: col}
}

func (h *MongoHistory) Record(ctx context.Context, d *Dispatch) error {
	opts := options.Update().SetUpsert(true)
	if _, err := h.col.UpdateOne(ctx, bson.M{"dispatchId": d.ID}, bson.M{"$set": d}, opts); err != nil {
		return fmt.Errorf("save dispatch: %w", err)
	}
	return nil
}

func (h *MongoHistory) Recent(ctx context.Context, limit int) ([]Dispatch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := h.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []Dispatch{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
