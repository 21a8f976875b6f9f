package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/entity"
)

var createdAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func ns(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func managerDoc(id primitive.ObjectID, email string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Ana"},
		{Key: "email", Value: email},
		{Key: "password", Value: "hash"},
		{Key: "type", Value: entity.TypeManager},
		{Key: "level", Value: 7},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(createdAt)},
	}
}

func TestEmployeeRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("GetByID decodes document", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, managerDoc(id, "ana@corp.com")))

		got, err := NewEmployeeRepository(mt.Coll).GetByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), got.ID)
		assert.Equal(mt, entity.TypeManager, got.Type)
		assert.Equal(mt, 7, got.Level)
		assert.Equal(mt, createdAt, got.CreatedAt)
	})

	mt.Run("GetByID malformed id is not found", func(mt *mtest.T) {
		_, err := NewEmployeeRepository(mt.Coll).GetByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, outbound.ErrEmployeeNotFound)
	})

	mt.Run("GetByEmail no documents", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		_, err := NewEmployeeRepository(mt.Coll).GetByEmail(context.Background(), "ghost@corp.com")
		assert.ErrorIs(mt, err, outbound.ErrEmployeeNotFound)
	})

	mt.Run("GetByType lists documents", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			managerDoc(primitive.NewObjectID(), "a@corp.com"),
			managerDoc(primitive.NewObjectID(), "b@corp.com"),
		))

		got, err := NewEmployeeRepository(mt.Coll).GetByType(context.Background(), entity.TypeManager)
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "b@corp.com", got[1].Email)
	})

	mt.Run("Create assigns id and createdAt", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewEmployeeRepository(mt.Coll)
		repo.now = func() time.Time { return createdAt }

		got, err := repo.Create(context.Background(), entity.NewManager("Ana", "ana@corp.com", "hash", 3))
		require.NoError(mt, err)
		assert.True(mt, primitive.IsValidObjectID(got.ID))
		assert.Equal(mt, createdAt, got.CreatedAt)
		assert.Equal(mt, "hash", got.Password)
	})

	mt.Run("Create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: employees index: uniq_email",
		}))

		_, err := NewEmployeeRepository(mt.Coll).Create(context.Background(), entity.NewManager("Ana", "ana@corp.com", "hash", 3))
		assert.ErrorIs(mt, err, outbound.ErrEmailAlreadyExists)
	})

	mt.Run("Update reports matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))

		ok, err := NewEmployeeRepository(mt.Coll).Update(context.Background(), primitive.NewObjectID().Hex(), entity.NewManager("Ana", "ana@corp.com", "hash", 3))
		require.NoError(mt, err)
		assert.True(mt, ok, "an unchanged document still counts as applied")
	})

	mt.Run("Update no match", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		ok, err := NewEmployeeRepository(mt.Coll).Update(context.Background(), primitive.NewObjectID().Hex(), entity.NewManager("Ana", "ana@corp.com", "hash", 3))
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("Delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		ok, err := NewEmployeeRepository(mt.Coll).Delete(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("ExistsByEmail", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}))

		exists, err := NewEmployeeRepository(mt.Coll).ExistsByEmail(context.Background(), "ana@corp.com")
		require.NoError(mt, err)
		assert.True(mt, exists)
	})

	mt.Run("EnsureIndexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, NewEmployeeRepository(mt.Coll).EnsureIndexes(context.Background()))
	})
}
