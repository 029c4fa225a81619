package repository

import (
	"context"
	"fmt"

	"github.com/signupdesk/signupdesk/backend/internal/submission"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. Records keep their
// short string id in the "id" field; insertion order follows the generated _id.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) (*MongoRepo, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("ensure id index: %w", err)
	}
	return &MongoRepo{col: col}, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]submission.Record, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", submission.ErrStorageRead, err)
	}
	defer cur.Close(ctx)
	out := []submission.Record{}
	for cur.Next(ctx) {
		var r submission.Record
		if err := cur.Decode(&r); err != nil {
			return nil, fmt.Errorf("%w: %v", submission.ErrStorageRead, err)
		}
		out = append(out, r)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", submission.ErrStorageRead, err)
	}
	return out, nil
}

func (m *MongoRepo) Insert(ctx context.Context, rec *submission.Record) error {
	if _, err := m.col.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return submission.ErrDuplicateID
		}
		return fmt.Errorf("%w: %v", submission.ErrStorageWrite, err)
	}
	return nil
}

func (m *MongoRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := m.col.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", submission.ErrStorageWrite, err)
	}
	return int(res.DeletedCount), nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}
