package repository

import (
	"context"

	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	ListAll(ctx context.Context) ([]entity.Booking, error)
	ListByGuest(ctx context.Context, guestEmail string) ([]entity.Booking, error)
	ListByHost(ctx context.Context, hostEmail string) ([]entity.Booking, error)
	Delete(ctx context.Context, id string) error
}
