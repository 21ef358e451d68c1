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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listingCollectionName = "homes"

// notBooked matches listings whose booked flag is absent or anything but true,
// the same predicate the search and open-listing reads use.
var notBooked = bson.M{"$ne": true}

type listingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.ListingRepository {
	return &listingRepository{
		collection: client.Database(cfg.Database).Collection(listingCollectionName),
	}
}

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) (string, error) {
	doc, err := toListingDocument(listing)
	if err != nil {
		return "", err
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create listing: %w", err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted ID to ObjectID")
	}
	return objectID.Hex(), nil
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid listing ID format: %w", repository.ErrNotFound)
	}

	var doc listingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing by ID %s: %w", id, err)
	}
	return toEntityListing(&doc), nil
}

func (r *listingRepository) GetOpenByID(ctx context.Context, id string) (*entity.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid listing ID format: %w", repository.ErrNotFound)
	}

	var doc listingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objID, "is_booked": notBooked}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get open listing by ID %s: %w", id, err)
	}
	return toEntityListing(&doc), nil
}

func (r *listingRepository) ListOpen(ctx context.Context) ([]entity.Listing, error) {
	return r.findListings(ctx, bson.M{"is_booked": notBooked})
}

func (r *listingRepository) ListByHost(ctx context.Context, hostEmail string) ([]entity.Listing, error) {
	return r.findListings(ctx, bson.M{"host.email": hostEmail})
}

func (r *listingRepository) Search(ctx context.Context, params repository.SearchListingsParams) ([]entity.Listing, error) {
	filter := bson.M{
		"location":  params.Location,
		"category":  params.Category,
		"is_booked": notBooked,
	}
	if params.MaxPrice > 0 {
		filter["price"] = bson.M{"$lte": params.MaxPrice}
	}
	return r.findListings(ctx, filter)
}

func (r *listingRepository) findListings(ctx context.Context, filter bson.M) ([]entity.Listing, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find listings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []listingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	return toEntityListings(docs), nil
}

func (r *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	objID, err := primitive.ObjectIDFromHex(listing.ID)
	if err != nil {
		return fmt.Errorf("invalid listing ID format: %w", repository.ErrUpdateFailed)
	}

	update := bson.M{
		"$set": bson.M{
			"title":       listing.Title,
			"description": listing.Description,
			"location":    listing.Location,
			"category":    listing.Category,
			"price":       listing.Price,
			"from":        listing.From,
			"to":          listing.To,
			"image":       listing.Image,
			"bedrooms":    listing.Bedrooms,
			"bathrooms":   listing.Bathrooms,
			"guests":      listing.Guests,
			"updated_at":  time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", listing.ID, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid listing ID format: %w", repository.ErrNotFound)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Reserve performs the conditional flip of the booked flag. The filter only
// matches while the flag is not already true, so of N concurrent callers
// exactly one observes the pre-image and the rest fall through to the
// disambiguation read.
func (r *listingRepository) Reserve(ctx context.Context, id string) (*entity.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid listing ID format: %w", repository.ErrNotFound)
	}

	filter := bson.M{"_id": objID, "is_booked": notBooked}
	update := bson.M{"$set": bson.M{"is_booked": true, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var doc listingDocument
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			probeErr := r.collection.FindOne(ctx, bson.M{"_id": objID}).Err()
			if errors.Is(probeErr, mongo.ErrNoDocuments) {
				return nil, repository.ErrNotFound
			}
			if probeErr != nil {
				return nil, fmt.Errorf("failed to check listing %s after reserve miss: %w", id, probeErr)
			}
			return nil, repository.ErrAlreadyBooked
		}
		return nil, fmt.Errorf("failed to reserve listing %s: %w", id, err)
	}
	return toEntityListing(&doc), nil
}

func (r *listingRepository) SetBooked(ctx context.Context, id string, booked bool) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid listing ID format: %w", repository.ErrNotFound)
	}

	update := bson.M{"$set": bson.M{"is_booked": booked, "updated_at": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to set booking status on listing %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
