package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
	"github.com/mejbahuddintamim/bdrent-server/internal/repository"
)

type ReserveParams struct {
	ListingID     string
	GuestName     string
	GuestEmail    string
	TransactionID string
}

type BookingService interface {
	// Reserve books a listing for the guest. Reservation is a single
	// conditional write against the listing's booked flag: of N concurrent
	// calls for the same listing exactly one succeeds, the rest get
	// ErrConflict.
	Reserve(ctx context.Context, params ReserveParams) (*entity.Booking, error)
	GetBooking(ctx context.Context, bookingID, requesterEmail string) (*entity.Booking, error)
	ListByGuest(ctx context.Context, guestEmail, requesterEmail string) ([]entity.Booking, error)
	ListByHost(ctx context.Context, hostEmail, requesterEmail string) ([]entity.Booking, error)
	ListAll(ctx context.Context, requesterEmail string) ([]entity.Booking, error)
	// Cancel deletes the booking and releases the listing's booked flag in
	// the same operation.
	Cancel(ctx context.Context, bookingID, requesterEmail string) error
	// SetBookingStatus idempotently sets the listing's booked flag. Only the
	// listing's host or an admin may call it.
	SetBookingStatus(ctx context.Context, listingID string, booked bool, requesterEmail string) error
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	cache       repository.ListingCache
	notifier    BookingNotifier
	log         logger.Logger
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	cache repository.ListingCache,
	notifier BookingNotifier,
	log logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		cache:       cache,
		notifier:    notifier,
		log:         log,
	}
}

func (s *bookingService) Reserve(ctx context.Context, params ReserveParams) (*entity.Booking, error) {
	if params.ListingID == "" {
		return nil, fmt.Errorf("%w: listing id is required", ErrValidation)
	}
	if params.GuestEmail == "" {
		return nil, fmt.Errorf("%w: guest email is required", ErrValidation)
	}
	if params.TransactionID == "" {
		return nil, fmt.Errorf("%w: transaction reference is required", ErrValidation)
	}

	listing, err := s.listingRepo.Reserve(ctx, params.ListingID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyBooked):
			s.log.Infof("Reservation of listing %s by %s lost to a concurrent booking", params.ListingID, params.GuestEmail)
			return nil, ErrConflict
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		default:
			return nil, fmt.Errorf("failed to reserve listing %s: %w", params.ListingID, err)
		}
	}

	booking, err := entity.NewBooking(listing, params.GuestName, params.GuestEmail, params.TransactionID)
	if err != nil {
		s.releaseFlag(ctx, params.ListingID)
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	bookingID, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		// The flag was flipped but the booking record could not be written;
		// release the flag so the listing is not stuck unbookable.
		s.log.Errorf("Failed to persist booking for listing %s, releasing flag: %v", params.ListingID, err)
		s.releaseFlag(ctx, params.ListingID)
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	booking.ID = bookingID

	s.invalidateListing(ctx, params.ListingID)
	s.notifier.BookingCreated(booking)

	s.log.Infof("Booking %s created for listing %s by guest %s", bookingID, params.ListingID, params.GuestEmail)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID, requesterEmail string) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking %s: %w", bookingID, err)
	}

	if booking.GuestEmail != requesterEmail && booking.HostEmail != requesterEmail {
		if err := s.requireAdmin(ctx, requesterEmail); err != nil {
			return nil, err
		}
	}
	return booking, nil
}

func (s *bookingService) ListByGuest(ctx context.Context, guestEmail, requesterEmail string) ([]entity.Booking, error) {
	if guestEmail != requesterEmail {
		return nil, ErrForbidden
	}
	bookings, err := s.bookingRepo.ListByGuest(ctx, guestEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for guest %s: %w", guestEmail, err)
	}
	return bookings, nil
}

func (s *bookingService) ListByHost(ctx context.Context, hostEmail, requesterEmail string) ([]entity.Booking, error) {
	if hostEmail != requesterEmail {
		return nil, ErrForbidden
	}
	bookings, err := s.bookingRepo.ListByHost(ctx, hostEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for host %s: %w", hostEmail, err)
	}
	return bookings, nil
}

func (s *bookingService) ListAll(ctx context.Context, requesterEmail string) ([]entity.Booking, error) {
	if err := s.requireAdmin(ctx, requesterEmail); err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID, requesterEmail string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}

	if booking.GuestEmail != requesterEmail {
		if err := s.requireAdmin(ctx, requesterEmail); err != nil {
			s.log.Warnf("User %s attempted to cancel booking %s belonging to %s", requesterEmail, bookingID, booking.GuestEmail)
			return err
		}
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete booking %s: %w", bookingID, err)
	}

	// Deleting the booking must reopen the listing; a missing listing just
	// means it was removed independently.
	if err := s.listingRepo.SetBooked(ctx, booking.ListingID, false); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Errorf("Failed to release booked flag on listing %s after cancelling booking %s: %v", booking.ListingID, bookingID, err)
	}
	s.invalidateListing(ctx, booking.ListingID)
	s.notifier.BookingCancelled(booking)

	s.log.Infof("Booking %s cancelled by %s", bookingID, requesterEmail)
	return nil
}

func (s *bookingService) SetBookingStatus(ctx context.Context, listingID string, booked bool, requesterEmail string) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load listing %s: %w", listingID, err)
	}

	if listing.Host.Email != requesterEmail {
		if err := s.requireAdmin(ctx, requesterEmail); err != nil {
			return err
		}
	}

	if err := s.listingRepo.SetBooked(ctx, listingID, booked); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to set booking status on listing %s: %w", listingID, err)
	}

	s.invalidateListing(ctx, listingID)
	s.log.Infof("Booking status of listing %s set to %t by %s", listingID, booked, requesterEmail)
	return nil
}

func (s *bookingService) requireAdmin(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("failed to load user %s: %w", email, err)
	}
	if !user.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func (s *bookingService) releaseFlag(ctx context.Context, listingID string) {
	if err := s.listingRepo.SetBooked(ctx, listingID, false); err != nil {
		s.log.Errorf("Failed to release booked flag on listing %s: %v", listingID, err)
	}
}

func (s *bookingService) invalidateListing(ctx context.Context, listingID string) {
	if err := s.cache.Delete(ctx, listingID); err != nil {
		s.log.Warnf("Listing cache invalidation failed for %s: %v", listingID, err)
	}
}
