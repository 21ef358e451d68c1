package entity

import (
	"errors"
	"time"
)

// Host identifies the user offering a listing. Stored embedded in the listing
// document so host-scoped queries can filter on "host.email".
type Host struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// Listing is a rentable home with a declared availability window. The booked
// flag is the single shared datum contended by concurrent reservations; it is
// only ever flipped through a conditional write at the repository layer.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	IsBooked    bool      `json:"isBooked"`
	Host        Host      `json:"host"`
	Image       string    `json:"image,omitempty"`
	Bedrooms    int       `json:"bedrooms,omitempty"`
	Bathrooms   int       `json:"bathrooms,omitempty"`
	Guests      int       `json:"guests,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewListing(title, location, category string, price float64, window DateRange, host Host) (*Listing, error) {
	if title == "" {
		return nil, errors.New("listing title cannot be empty")
	}
	if location == "" {
		return nil, errors.New("listing location cannot be empty")
	}
	if category == "" {
		return nil, errors.New("listing category cannot be empty")
	}
	if price < 0 {
		return nil, errors.New("listing price cannot be negative")
	}
	if host.Email == "" {
		return nil, errors.New("listing host email cannot be empty")
	}

	now := time.Now().UTC()
	return &Listing{
		Title:     title,
		Location:  location,
		Category:  category,
		Price:     price,
		From:      window.From,
		To:        window.To,
		Host:      host,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Window returns the listing's declared availability range.
func (l *Listing) Window() DateRange {
	return DateRange{From: l.From, To: l.To}
}

// AvailableFor reports whether the listing can satisfy the requested range:
// it must not be booked and its window must fully contain the request.
func (l *Listing) AvailableFor(r DateRange) bool {
	return !l.IsBooked && l.Window().Contains(r)
}
