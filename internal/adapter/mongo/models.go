package mongo

import (
	"fmt"
	"time"

	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type hostDocument struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Image string `bson:"image,omitempty"`
}

type listingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Location    string             `bson:"location"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	From        time.Time          `bson:"from"`
	To          time.Time          `bson:"to"`
	IsBooked    bool               `bson:"is_booked"`
	Host        hostDocument       `bson:"host"`
	Image       string             `bson:"image,omitempty"`
	Bedrooms    int                `bson:"bedrooms,omitempty"`
	Bathrooms   int                `bson:"bathrooms,omitempty"`
	Guests      int                `bson:"guests,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type bookingDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ListingID       string             `bson:"listing_id"`
	ListingTitle    string             `bson:"listing_title"`
	ListingLocation string             `bson:"listing_location"`
	GuestName       string             `bson:"guest_name"`
	GuestEmail      string             `bson:"guest_email"`
	HostEmail       string             `bson:"host_email"`
	TransactionID   string             `bson:"transaction_id"`
	TotalAmount     float64            `bson:"total_amount"`
	From            time.Time          `bson:"from,omitempty"`
	To              time.Time          `bson:"to,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
}

type userDocument struct {
	Email       string    `bson:"email"`
	Name        string    `bson:"name,omitempty"`
	Image       string    `bson:"image,omitempty"`
	Role        string    `bson:"role,omitempty"`
	NIDImage    string    `bson:"nid_img,omitempty"`
	PassportImg string    `bson:"passport_img,omitempty"`
	CreatedAt   time.Time `bson:"created_at,omitempty"`
	UpdatedAt   time.Time `bson:"updated_at,omitempty"`
}

func objectIDFromEntity(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, nil
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id format %q: %w", id, err)
	}
	return objID, nil
}

func toListingDocument(l *entity.Listing) (*listingDocument, error) {
	docID, err := objectIDFromEntity(l.ID)
	if err != nil {
		return nil, err
	}
	return &listingDocument{
		ID:          docID,
		Title:       l.Title,
		Description: l.Description,
		Location:    l.Location,
		Category:    l.Category,
		Price:       l.Price,
		From:        l.From,
		To:          l.To,
		IsBooked:    l.IsBooked,
		Host:        hostDocument(l.Host),
		Image:       l.Image,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		Guests:      l.Guests,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}, nil
}

func toEntityListing(d *listingDocument) *entity.Listing {
	return &entity.Listing{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Category:    d.Category,
		Price:       d.Price,
		From:        d.From,
		To:          d.To,
		IsBooked:    d.IsBooked,
		Host:        entity.Host(d.Host),
		Image:       d.Image,
		Bedrooms:    d.Bedrooms,
		Bathrooms:   d.Bathrooms,
		Guests:      d.Guests,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toEntityListings(docs []listingDocument) []entity.Listing {
	listings := make([]entity.Listing, 0, len(docs))
	for i := range docs {
		listings = append(listings, *toEntityListing(&docs[i]))
	}
	return listings
}

func toBookingDocument(b *entity.Booking) (*bookingDocument, error) {
	docID, err := objectIDFromEntity(b.ID)
	if err != nil {
		return nil, err
	}
	return &bookingDocument{
		ID:              docID,
		ListingID:       b.ListingID,
		ListingTitle:    b.ListingTitle,
		ListingLocation: b.ListingLocation,
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		HostEmail:       b.HostEmail,
		TransactionID:   b.TransactionID,
		TotalAmount:     b.TotalAmount,
		From:            b.From,
		To:              b.To,
		CreatedAt:       b.CreatedAt,
	}, nil
}

func toEntityBooking(d *bookingDocument) *entity.Booking {
	return &entity.Booking{
		ID:              d.ID.Hex(),
		ListingID:       d.ListingID,
		ListingTitle:    d.ListingTitle,
		ListingLocation: d.ListingLocation,
		GuestName:       d.GuestName,
		GuestEmail:      d.GuestEmail,
		HostEmail:       d.HostEmail,
		TransactionID:   d.TransactionID,
		TotalAmount:     d.TotalAmount,
		From:            d.From,
		To:              d.To,
		CreatedAt:       d.CreatedAt,
	}
}

func toEntityBookings(docs []bookingDocument) []entity.Booking {
	bookings := make([]entity.Booking, 0, len(docs))
	for i := range docs {
		bookings = append(bookings, *toEntityBooking(&docs[i]))
	}
	return bookings
}

func toEntityUser(d *userDocument) *entity.User {
	return &entity.User{
		Email:       d.Email,
		Name:        d.Name,
		Image:       d.Image,
		Role:        d.Role,
		NIDImage:    d.NIDImage,
		PassportImg: d.PassportImg,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
