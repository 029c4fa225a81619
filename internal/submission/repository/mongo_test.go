package repository

import (
	"context"
	"testing"

	"github.com/signupdesk/signupdesk/backend/internal/submission"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockMongoRepo(mt *mtest.T) *MongoRepo {
	mt.Helper()
	mt.AddMockResponses(mtest.CreateSuccessResponse())
	r, err := NewMongoRepo(context.Background(), mt.Coll)
	require.NoError(mt, err)
	mt.ClearEvents()
	return r
}

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates unique id index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		_, err := NewMongoRepo(context.Background(), mt.Coll)
		require.NoError(mt, err)
		cmd := mt.GetStartedEvent().Command
		require.Equal(mt, "createIndexes", cmd.Index(0).Key())
		idx := cmd.Lookup("indexes").Array().Index(0).Value().Document()
		require.True(mt, idx.Lookup("unique").Boolean())
		require.EqualValues(mt, 1, idx.Lookup("key", "id").AsInt64())
	})

	mt.Run("insert", func(mt *mtest.T) {
		r := newMockMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, r.Insert(context.Background(), &submission.Record{ID: "abc12345", Name: "A"}))
		doc := mt.GetStartedEvent().Command.Lookup("documents").Array().Index(0).Value().Document()
		require.Equal(mt, "abc12345", doc.Lookup("id").StringValue())
	})

	mt.Run("insert duplicate id", func(mt *mtest.T) {
		r := newMockMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: signupdesk.submissions index: id_1",
		}))
		err := r.Insert(context.Background(), &submission.Record{ID: "abc12345"})
		require.ErrorIs(mt, err, submission.ErrDuplicateID)
	})

	mt.Run("insert failure", func(mt *mtest.T) {
		r := newMockMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad"}))
		err := r.Insert(context.Background(), &submission.Record{ID: "abc12345"})
		require.ErrorIs(mt, err, submission.ErrStorageWrite)
	})

	mt.Run("list in insertion order", func(mt *mtest.T) {
		r := newMockMongoRepo(mt)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "id", Value: "a"}, {Key: "name", Value: "A"}, {Key: "optin", Value: true}},
			bson.D{{Key: "id", Value: "b"}, {Key: "phone", Value: "555"}},
		))
		list, err := r.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		require.Equal(mt, "a", list[0].ID)
		require.True(mt, list[0].Optin)
		require.Equal(mt, "555", list[1].Phone)

		sort := mt.GetStartedEvent().Command.Lookup("sort").Document()
		require.EqualValues(mt, 1, sort.Lookup("_id").AsInt64())
	})

	mt.Run("list failure", func(mt *mtest.T) {
		r := newMockMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad"}))
		_, err := r.List(context.Background())
		require.ErrorIs(mt, err, submission.ErrStorageRead)
	})

	mt.Run("delete many", func(mt *mtest.T) {
		r := newMockMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(2)}))
		n, err := r.DeleteMany(context.Background(), []string{"a", "b", "ghost"})
		require.NoError(mt, err)
		require.Equal(mt, 2, n)

		q := mt.GetStartedEvent().Command.Lookup("deletes").Array().Index(0).Value().Document().Lookup("q").Document()
		ids := q.Lookup("id", "$in").Array()
		vals, err := ids.Values()
		require.NoError(mt, err)
		require.Len(mt, vals, 3)
	})

	mt.Run("delete nothing skips the server", func(mt *mtest.T) {
		r := newMockMongoRepo(mt)
		n, err := r.DeleteMany(context.Background(), nil)
		require.NoError(mt, err)
		require.Zero(mt, n)
		require.Nil(mt, mt.GetStartedEvent())
	})
}
