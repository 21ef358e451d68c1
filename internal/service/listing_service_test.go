package service

import (
	"context"
	"testing"
	"time"

	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
	"github.com/mejbahuddintamim/bdrent-server/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newListingService(repo repository.ListingRepository, cache repository.ListingCache) ListingService {
	return NewListingService(repo, cache, time.Hour, logger.NoOp())
}

func openListing(id string, from, to string) entity.Listing {
	fromT, _ := time.Parse(entity.DateLayout, from)
	toT, _ := time.Parse(entity.DateLayout, to)
	return entity.Listing{
		ID:       id,
		Title:    "Flat " + id,
		Location: "Dhaka",
		Category: "apartment",
		Price:    90,
		From:     fromT,
		To:       toT,
		Host:     entity.Host{Name: "Rahim", Email: "host@example.com"},
	}
}

func TestCreateListing(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Listing")).Return("listing-1", nil)

	svc := newListingService(repo, noopCache{})

	listing, err := svc.Create(context.Background(), CreateListingParams{
		Title:    "Rooftop Studio",
		Location: "Dhaka",
		Category: "studio",
		Price:    75,
		FromDate: "2024-07-01",
		ToDate:   "2024-07-31",
		Bedrooms: 1,
		Guests:   2,
		Host:     entity.Host{Name: "Rahim", Email: "host@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "listing-1", listing.ID)
	assert.False(t, listing.IsBooked)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), listing.From)
}

func TestCreateListing_InvalidWindow(t *testing.T) {
	svc := newListingService(new(MockListingRepository), noopCache{})

	_, err := svc.Create(context.Background(), CreateListingParams{
		Title:    "Rooftop Studio",
		Location: "Dhaka",
		Category: "studio",
		Price:    75,
		FromDate: "2024-07-31",
		ToDate:   "2024-07-01",
		Host:     entity.Host{Email: "host@example.com"},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), CreateListingParams{
		Title:    "Rooftop Studio",
		Location: "Dhaka",
		Category: "studio",
		Price:    75,
		FromDate: "2024-07-01",
		Host:     entity.Host{Email: "host@example.com"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearch_RequiresLocationAndCategory(t *testing.T) {
	svc := newListingService(new(MockListingRepository), noopCache{})

	_, err := svc.Search(context.Background(), SearchParams{Category: "apartment"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Search(context.Background(), SearchParams{Location: "Dhaka"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Search(context.Background(), SearchParams{Location: "Dhaka", Category: "apartment", MaxPrice: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearch_WithoutDatesReturnsCandidates(t *testing.T) {
	repo := new(MockListingRepository)
	candidates := []entity.Listing{
		openListing("a", "2024-06-01", "2024-06-10"),
		openListing("b", "2024-06-05", "2024-06-20"),
	}
	repo.On("Search", mock.Anything, repository.SearchListingsParams{
		Location: "Dhaka",
		Category: "apartment",
		MaxPrice: 100,
	}).Return(candidates, nil)

	svc := newListingService(repo, noopCache{})

	got, err := svc.Search(context.Background(), SearchParams{Location: "Dhaka", Category: "apartment", MaxPrice: 100})
	require.NoError(t, err)
	assert.Equal(t, candidates, got)
}

func TestSearch_DateContainment(t *testing.T) {
	// One listing's window contains the request, one starts too late, one
	// ends too early, one matches the request exactly.
	contains := openListing("contains", "2024-06-01", "2024-06-30")
	startsLate := openListing("starts-late", "2024-06-12", "2024-06-30")
	endsEarly := openListing("ends-early", "2024-06-01", "2024-06-14")
	exact := openListing("exact", "2024-06-10", "2024-06-15")

	repo := new(MockListingRepository)
	repo.On("Search", mock.Anything, mock.AnythingOfType("repository.SearchListingsParams")).
		Return([]entity.Listing{contains, startsLate, endsEarly, exact}, nil)

	svc := newListingService(repo, noopCache{})

	got, err := svc.Search(context.Background(), SearchParams{
		Location: "Dhaka",
		Category: "apartment",
		FromDate: "2024-06-10",
		ToDate:   "2024-06-15",
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	assert.ElementsMatch(t, []string{"contains", "exact"}, ids)
}

func TestSearch_BookedListingsExcluded(t *testing.T) {
	booked := openListing("booked", "2024-06-01", "2024-06-30")
	booked.IsBooked = true
	open := openListing("open", "2024-06-01", "2024-06-30")

	repo := new(MockListingRepository)
	repo.On("Search", mock.Anything, mock.AnythingOfType("repository.SearchListingsParams")).
		Return([]entity.Listing{booked, open}, nil)

	svc := newListingService(repo, noopCache{})

	got, err := svc.Search(context.Background(), SearchParams{
		Location: "Dhaka",
		Category: "apartment",
		FromDate: "2024-06-10",
		ToDate:   "2024-06-15",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "open", got[0].ID)
}

func TestSearch_HalfOpenDateRangeRejected(t *testing.T) {
	svc := newListingService(new(MockListingRepository), noopCache{})

	_, err := svc.Search(context.Background(), SearchParams{
		Location: "Dhaka",
		Category: "apartment",
		FromDate: "2024-06-10",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

// memoryCache is a minimal in-process ListingCache for read-through tests.
type memoryCache struct {
	entries map[string]*entity.Listing
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*entity.Listing)}
}

func (c *memoryCache) Get(ctx context.Context, id string) (*entity.Listing, error) {
	return c.entries[id], nil
}

func (c *memoryCache) Set(ctx context.Context, listing *entity.Listing, ttl time.Duration) error {
	c.entries[listing.ID] = listing
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, id string) error {
	delete(c.entries, id)
	return nil
}

func TestGetOpenByID_ReadThroughCache(t *testing.T) {
	repo := new(MockListingRepository)
	listing := openListing("listing-1", "2024-06-01", "2024-06-10")
	repo.On("GetOpenByID", mock.Anything, "listing-1").Return(&listing, nil).Once()

	cache := newMemoryCache()
	svc := newListingService(repo, cache)

	first, err := svc.GetOpenByID(context.Background(), "listing-1")
	require.NoError(t, err)

	// Second read is served from the cache; the repo expectation is Once.
	second, err := svc.GetOpenByID(context.Background(), "listing-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	repo.AssertExpectations(t)
}

func TestGetOpenByID_NotFound(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("GetOpenByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	svc := newListingService(repo, noopCache{})

	_, err := svc.GetOpenByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateListing_OwnershipEnforced(t *testing.T) {
	repo := new(MockListingRepository)
	listing := openListing("listing-1", "2024-06-01", "2024-06-10")
	repo.On("GetByID", mock.Anything, "listing-1").Return(&listing, nil)

	svc := newListingService(repo, noopCache{})

	_, err := svc.Update(context.Background(), UpdateListingParams{
		ID:       "listing-1",
		Title:    "Updated",
		Location: "Dhaka",
		Category: "apartment",
		Price:    95,
		FromDate: "2024-06-01",
		ToDate:   "2024-06-10",
	}, "stranger@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateListing_InvalidatesCache(t *testing.T) {
	repo := new(MockListingRepository)
	listing := openListing("listing-1", "2024-06-01", "2024-06-10")
	repo.On("GetByID", mock.Anything, "listing-1").Return(&listing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Listing")).Return(nil)

	cache := newMemoryCache()
	cached := listing
	cache.entries["listing-1"] = &cached

	svc := newListingService(repo, cache)

	updated, err := svc.Update(context.Background(), UpdateListingParams{
		ID:       "listing-1",
		Title:    "Renovated Flat",
		Location: "Dhaka",
		Category: "apartment",
		Price:    110,
		FromDate: "2024-06-01",
		ToDate:   "2024-06-15",
	}, "host@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Renovated Flat", updated.Title)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), updated.To)
	assert.NotContains(t, cache.entries, "listing-1")
}

func TestDeleteListing(t *testing.T) {
	repo := new(MockListingRepository)
	listing := openListing("listing-1", "2024-06-01", "2024-06-10")
	repo.On("GetByID", mock.Anything, "listing-1").Return(&listing, nil)
	repo.On("Delete", mock.Anything, "listing-1").Return(nil)

	svc := newListingService(repo, noopCache{})

	require.NoError(t, svc.Delete(context.Background(), "listing-1", "host@example.com"))

	err := svc.Delete(context.Background(), "listing-1", "stranger@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListByHost_RequesterMustMatch(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("ListByHost", mock.Anything, "host@example.com").Return([]entity.Listing{}, nil)

	svc := newListingService(repo, noopCache{})

	_, err := svc.ListByHost(context.Background(), "host@example.com", "host@example.com")
	assert.NoError(t, err)

	_, err = svc.ListByHost(context.Background(), "host@example.com", "other@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
}
