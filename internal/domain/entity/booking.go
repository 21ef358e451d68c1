package entity

import (
	"errors"
	"time"
)

// Booking records a guest's reservation of a listing. Listing title and
// location are denormalized into the booking so host notifications and
// booking lists do not need a second lookup.
type Booking struct {
	ID              string    `json:"id"`
	ListingID       string    `json:"listingId"`
	ListingTitle    string    `json:"listingTitle"`
	ListingLocation string    `json:"listingLocation"`
	GuestName       string    `json:"guestName"`
	GuestEmail      string    `json:"guestEmail"`
	HostEmail       string    `json:"hostEmail"`
	TransactionID   string    `json:"transactionId"`
	TotalAmount     float64   `json:"totalAmount"`
	From            time.Time `json:"from,omitempty"`
	To              time.Time `json:"to,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewBooking(listing *Listing, guestName, guestEmail, transactionID string) (*Booking, error) {
	if listing == nil {
		return nil, errors.New("booking requires a listing")
	}
	if guestEmail == "" {
		return nil, errors.New("booking guest email cannot be empty")
	}
	if transactionID == "" {
		return nil, errors.New("booking transaction reference cannot be empty")
	}

	return &Booking{
		ListingID:       listing.ID,
		ListingTitle:    listing.Title,
		ListingLocation: listing.Location,
		GuestName:       guestName,
		GuestEmail:      guestEmail,
		HostEmail:       listing.Host.Email,
		TransactionID:   transactionID,
		TotalAmount:     listing.Price,
		From:            listing.From,
		To:              listing.To,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
