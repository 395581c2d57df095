package implementation

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	workshop_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/workshop"
	interfaces "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Repository/Interfaces"
)

type MongoRegistrationRepository struct {
	coll *mongo.Collection
}

func NewMongoRegistrationRepository(db *mongo.Database) *MongoRegistrationRepository {
	return &MongoRegistrationRepository{coll: db.Collection(workshop_models.RegistrationCollection)}
}

// Create registration. The unique email index decides concurrent duplicates.
func (r *MongoRegistrationRepository) Create(ctx context.Context, registration *workshop_models.Registration) (*workshop_models.Registration, error) {
	if registration.ID.IsZero() {
		registration.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, registration); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("registration %q: %w", registration.Email, interfaces.ErrDuplicate)
		}
		return nil, err
	}

	return registration, nil
}

func (r *MongoRegistrationRepository) GetByEmail(ctx context.Context, email string) (*workshop_models.Registration, error) {
	var registration workshop_models.Registration

	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&registration)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &registration, nil
}

func (r *MongoRegistrationRepository) ListAll(ctx context.Context) ([]*workshop_models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "registeredAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	registrations := make([]*workshop_models.Registration, 0)
	if err := cursor.All(ctx, &registrations); err != nil {
		return nil, err
	}

	return registrations, nil
}
