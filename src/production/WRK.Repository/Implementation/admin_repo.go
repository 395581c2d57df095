package implementation

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	auth_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/auth"
	interfaces "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Repository/Interfaces"
)

type MongoAdminRepository struct {
	coll *mongo.Collection
}

func NewMongoAdminRepository(db *mongo.Database) *MongoAdminRepository {
	return &MongoAdminRepository{coll: db.Collection(auth_models.AdminCollection)}
}

// Create admin
func (r *MongoAdminRepository) Create(ctx context.Context, admin *auth_models.Admin) (*auth_models.Admin, error) {
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("admin %q: %w", admin.Username, interfaces.ErrDuplicate)
		}
		return nil, err
	}

	return admin, nil
}

func (r *MongoAdminRepository) GetByUsername(ctx context.Context, username string) (*auth_models.Admin, error) {
	var admin auth_models.Admin

	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &admin, nil
}
