package repository

import (
	"context"
	"time"

	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
)

// SearchListingsParams carries the store-level search filters. Date-range
// containment is evaluated in the service layer against the candidates this
// query returns, matching the original search behavior.
type SearchListingsParams struct {
	Location string
	Category string
	MaxPrice float64 // inclusive ceiling; zero means no ceiling
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	// GetOpenByID returns the listing only while it is not booked.
	GetOpenByID(ctx context.Context, id string) (*entity.Listing, error)
	ListOpen(ctx context.Context) ([]entity.Listing, error)
	ListByHost(ctx context.Context, hostEmail string) ([]entity.Listing, error)
	Search(ctx context.Context, params SearchListingsParams) ([]entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id string) error

	// Reserve atomically flips the booked flag from not-true to true and
	// returns the listing as it was before the flip. A listing that exists
	// but is already booked yields ErrAlreadyBooked; a missing listing
	// yields ErrNotFound. This is the only way the flag may become true.
	Reserve(ctx context.Context, id string) (*entity.Listing, error)

	// SetBooked idempotently sets the booked flag on an existing listing.
	SetBooked(ctx context.Context, id string, booked bool) error
}

// ListingCache is a read-through cache for single-listing lookups.
// A nil listing with a nil error is a cache miss.
type ListingCache interface {
	Get(ctx context.Context, id string) (*entity.Listing, error)
	Set(ctx context.Context, listing *entity.Listing, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
