package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
	"github.com/mejbahuddintamim/bdrent-server/internal/repository"
)

type CreateListingParams struct {
	Title       string
	Description string
	Location    string
	Category    string
	Price       float64
	FromDate    string
	ToDate      string
	Image       string
	Bedrooms    int
	Bathrooms   int
	Guests      int
	Host        entity.Host
}

type UpdateListingParams struct {
	ID          string
	Title       string
	Description string
	Location    string
	Category    string
	Price       float64
	FromDate    string
	ToDate      string
	Image       string
	Bedrooms    int
	Bathrooms   int
	Guests      int
}

// SearchParams carries the raw search inputs. Location and category are
// required equality filters; dates are optional but must come as a pair.
type SearchParams struct {
	Location string
	Category string
	MaxPrice float64
	FromDate string
	ToDate   string
}

type ListingService interface {
	Create(ctx context.Context, params CreateListingParams) (*entity.Listing, error)
	GetOpenByID(ctx context.Context, id string) (*entity.Listing, error)
	ListOpen(ctx context.Context) ([]entity.Listing, error)
	ListByHost(ctx context.Context, hostEmail, requesterEmail string) ([]entity.Listing, error)
	Search(ctx context.Context, params SearchParams) ([]entity.Listing, error)
	Update(ctx context.Context, params UpdateListingParams, requesterEmail string) (*entity.Listing, error)
	Delete(ctx context.Context, id, requesterEmail string) error
}

type listingService struct {
	listingRepo repository.ListingRepository
	cache       repository.ListingCache
	cacheTTL    time.Duration
	log         logger.Logger
}

func NewListingService(
	listingRepo repository.ListingRepository,
	cache repository.ListingCache,
	cacheTTL time.Duration,
	log logger.Logger,
) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		log:         log,
	}
}

func (s *listingService) Create(ctx context.Context, params CreateListingParams) (*entity.Listing, error) {
	window, err := entity.ParseDateRange(params.FromDate, params.ToDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	listing, err := entity.NewListing(params.Title, params.Location, params.Category, params.Price, window, params.Host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	listing.Description = params.Description
	listing.Image = params.Image
	listing.Bedrooms = params.Bedrooms
	listing.Bathrooms = params.Bathrooms
	listing.Guests = params.Guests

	id, err := s.listingRepo.Create(ctx, listing)
	if err != nil {
		s.log.Errorf("Failed to create listing for host %s: %v", params.Host.Email, err)
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}
	listing.ID = id

	s.log.Infof("Listing %s created by host %s", id, params.Host.Email)
	return listing, nil
}

func (s *listingService) GetOpenByID(ctx context.Context, id string) (*entity.Listing, error) {
	if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
		if !cached.IsBooked {
			return cached, nil
		}
	} else if err != nil {
		s.log.Warnf("Listing cache read failed for %s: %v", id, err)
	}

	listing, err := s.listingRepo.GetOpenByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve listing: %w", err)
	}

	if err := s.cache.Set(ctx, listing, s.cacheTTL); err != nil {
		s.log.Warnf("Listing cache write failed for %s: %v", id, err)
	}
	return listing, nil
}

func (s *listingService) ListOpen(ctx context.Context) ([]entity.Listing, error) {
	listings, err := s.listingRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open listings: %w", err)
	}
	return listings, nil
}

func (s *listingService) ListByHost(ctx context.Context, hostEmail, requesterEmail string) ([]entity.Listing, error) {
	if hostEmail != requesterEmail {
		return nil, ErrForbidden
	}
	listings, err := s.listingRepo.ListByHost(ctx, hostEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings for host %s: %w", hostEmail, err)
	}
	return listings, nil
}

// Search applies the store-level equality filters, then evaluates date-range
// containment in memory against the candidates. A listing qualifies for a
// requested range only when its own window fully contains it.
func (s *listingService) Search(ctx context.Context, params SearchParams) ([]entity.Listing, error) {
	if params.Location == "" || params.Category == "" {
		return nil, fmt.Errorf("%w: location and category are required", ErrValidation)
	}
	if params.MaxPrice < 0 {
		return nil, fmt.Errorf("%w: max price cannot be negative", ErrValidation)
	}

	var requested entity.DateRange
	if params.FromDate != "" || params.ToDate != "" {
		var err error
		requested, err = entity.ParseDateRange(params.FromDate, params.ToDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	candidates, err := s.listingRepo.Search(ctx, repository.SearchListingsParams{
		Location: params.Location,
		Category: params.Category,
		MaxPrice: params.MaxPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	if requested.IsZero() {
		return candidates, nil
	}

	matched := make([]entity.Listing, 0, len(candidates))
	for _, listing := range candidates {
		if listing.AvailableFor(requested) {
			matched = append(matched, listing)
		}
	}
	return matched, nil
}

func (s *listingService) Update(ctx context.Context, params UpdateListingParams, requesterEmail string) (*entity.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load listing %s: %w", params.ID, err)
	}

	if listing.Host.Email != requesterEmail {
		s.log.Warnf("User %s attempted to update listing %s owned by %s", requesterEmail, params.ID, listing.Host.Email)
		return nil, ErrForbidden
	}

	window, err := entity.ParseDateRange(params.FromDate, params.ToDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if params.Title == "" || params.Location == "" || params.Category == "" {
		return nil, fmt.Errorf("%w: title, location and category are required", ErrValidation)
	}
	if params.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	listing.Title = params.Title
	listing.Description = params.Description
	listing.Location = params.Location
	listing.Category = params.Category
	listing.Price = params.Price
	listing.From = window.From
	listing.To = window.To
	listing.Image = params.Image
	listing.Bedrooms = params.Bedrooms
	listing.Bathrooms = params.Bathrooms
	listing.Guests = params.Guests

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update listing %s: %w", params.ID, err)
	}

	if err := s.cache.Delete(ctx, listing.ID); err != nil {
		s.log.Warnf("Listing cache invalidation failed for %s: %v", listing.ID, err)
	}

	s.log.Infof("Listing %s updated by host %s", listing.ID, requesterEmail)
	return listing, nil
}

func (s *listingService) Delete(ctx context.Context, id, requesterEmail string) error {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load listing %s: %w", id, err)
	}

	if listing.Host.Email != requesterEmail {
		s.log.Warnf("User %s attempted to delete listing %s owned by %s", requesterEmail, id, listing.Host.Email)
		return ErrForbidden
	}

	if err := s.listingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}

	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warnf("Listing cache invalidation failed for %s: %v", id, err)
	}

	s.log.Infof("Listing %s deleted by host %s", id, requesterEmail)
	return nil
}
