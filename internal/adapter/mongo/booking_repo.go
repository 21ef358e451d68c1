package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/mejbahuddintamim/bdrent-server/internal/app/config"
	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const bookingCollectionName = "bookings"

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.BookingRepository {
	return &bookingRepository{
		collection: client.Database(cfg.Database).Collection(bookingCollectionName),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) (string, error) {
	doc, err := toBookingDocument(booking)
	if err != nil {
		return "", err
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create booking: %w", err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted ID to ObjectID")
	}
	return objectID.Hex(), nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format: %w", repository.ErrNotFound)
	}

	var doc bookingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking by ID %s: %w", id, err)
	}
	return toEntityBooking(&doc), nil
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]entity.Booking, error) {
	return r.findBookings(ctx, bson.M{})
}

func (r *bookingRepository) ListByGuest(ctx context.Context, guestEmail string) ([]entity.Booking, error) {
	return r.findBookings(ctx, bson.M{"guest_email": guestEmail})
}

func (r *bookingRepository) ListByHost(ctx context.Context, hostEmail string) ([]entity.Booking, error) {
	return r.findBookings(ctx, bson.M{"host_email": hostEmail})
}

func (r *bookingRepository) findBookings(ctx context.Context, filter bson.M) ([]entity.Booking, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return toEntityBookings(docs), nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid booking ID format: %w", repository.ErrNotFound)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
