package auth

import (
	"context"
	"errors"

	"SDRAdmin/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrEmailTaken = errors.New("Email already registered")

type AdminRepository struct {
	collection *mongo.Collection
}

// NewAdminRepository creates a new repository for admins.
func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{collection: db.Collection(config.CollectionAdmins)}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AdminRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*Admin, error) {
	var admin Admin
	err := r.collection.FindOne(ctx, filter).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// CreateAdmin inserts a new admin. A taken email yields ErrEmailTaken.
func (r *AdminRepository) CreateAdmin(ctx context.Context, admin *Admin) error {
	_, err := r.collection.InsertOne(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}
