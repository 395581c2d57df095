package implementation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	auth_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/auth"
	interfaces "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Repository/Interfaces"
)

func TestMongoAdminRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("GetByUsername", func(mt *mtest.T) {
		repo := NewMongoAdminRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "workshop.admins", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "admin"},
			{Key: "password", Value: "$2a$10$hash"},
		}))

		admin, err := repo.GetByUsername(context.Background(), "admin")
		require.NoError(mt, err)
		require.NotNil(mt, admin)
		assert.Equal(mt, id, admin.ID)
		assert.Equal(mt, "$2a$10$hash", admin.Password)
	})

	mt.Run("GetByUsernameMissing", func(mt *mtest.T) {
		repo := NewMongoAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "workshop.admins", mtest.FirstBatch))

		admin, err := repo.GetByUsername(context.Background(), "ghost")
		require.NoError(mt, err)
		assert.Nil(mt, admin)
	})

	mt.Run("CreateDuplicate", func(mt *mtest.T) {
		repo := NewMongoAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Code: 11000, Message: "duplicate key"}))

		_, err := repo.Create(context.Background(), auth_models.NewAdmin("admin", "hash"))
		assert.ErrorIs(mt, err, interfaces.ErrDuplicate)
	})
}
