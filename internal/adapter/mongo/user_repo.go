package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mejbahuddintamim/bdrent-server/internal/app/config"
	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.UserRepository {
	return &userRepository{
		collection: client.Database(cfg.Database).Collection(userCollectionName),
	}
}

func (r *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"email":      user.Email,
			"name":       user.Name,
			"image":      user.Image,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": user.Email}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.Email, err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return toEntityUser(&doc), nil
}

func (r *userRepository) Exists(ctx context.Context, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("failed to count users by email %s: %w", email, err)
	}
	return count > 0, nil
}

func (r *userRepository) SetIdentityImage(ctx context.Context, email string, kind repository.IdentityImageKind, url string) error {
	var field string
	switch kind {
	case repository.IdentityImageNID:
		field = "nid_img"
	case repository.IdentityImagePassport:
		field = "passport_img"
	default:
		return fmt.Errorf("unknown identity image kind %q", kind)
	}

	update := bson.M{"$set": bson.M{field: url, "updated_at": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to set %s image for user %s: %w", kind, email, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]entity.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]entity.User, 0, len(docs))
	for i := range docs {
		users = append(users, *toEntityUser(&docs[i]))
	}
	return users, nil
}
