package admins

import (
	"context"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/app/models"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminMongoRepository struct {
	Collection *mongo.Collection
}

func NewAdminMongoRepository(db *mongo.Database) contracts.AdminRepository {
	return &AdminMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAdmins),
	}
}

func (r *AdminMongoRepository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	admin := new(models.Admin)
	err := r.Collection.FindOne(ctx, bson.M{"_id": username}).Decode(admin)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return admin, nil
}

// Upsert replaces the password hash and keeps the original created_at.
func (r *AdminMongoRepository) Upsert(ctx context.Context, admin *models.Admin) error {
	filter := bson.M{"_id": admin.Username}
	update := bson.M{
		"$set": bson.M{
			"password_hash": admin.PasswordHash,
			"updated_at":    admin.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": admin.CreatedAt,
		},
	}
	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
