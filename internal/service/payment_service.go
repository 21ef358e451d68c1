package service

import (
	"context"
	"fmt"
	"math"

	"github.com/mejbahuddintamim/bdrent-server/internal/adapter/payment"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
)

type PaymentService interface {
	// CreatePaymentIntent starts a card payment and returns the client
	// secret. The provider result is the requested output, so its failure
	// propagates to the caller.
	CreatePaymentIntent(ctx context.Context, amount float64) (string, error)
	// CreatePaymentSession starts a hosted-gateway session and returns the
	// redirect URL.
	CreatePaymentSession(ctx context.Context, amount float64, currency string) (string, error)
}

type paymentService struct {
	intents  payment.IntentCreator
	sessions payment.SessionInitiator
	log      logger.Logger
}

func NewPaymentService(intents payment.IntentCreator, sessions payment.SessionInitiator, log logger.Logger) PaymentService {
	return &paymentService{
		intents:  intents,
		sessions: sessions,
		log:      log,
	}
}

func (s *paymentService) CreatePaymentIntent(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	amountCents := int64(math.Round(amount * 100))
	secret, err := s.intents.CreateIntent(ctx, amountCents, "usd")
	if err != nil {
		s.log.Errorf("Failed to create payment intent for amount %.2f: %v", amount, err)
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.log.Infof("Payment intent created for amount %.2f", amount)
	return secret, nil
}

func (s *paymentService) CreatePaymentSession(ctx context.Context, amount float64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if currency == "" {
		currency = "BDT"
	}

	url, err := s.sessions.InitSession(ctx, amount, currency)
	if err != nil {
		s.log.Errorf("Failed to create payment session for amount %.2f %s: %v", amount, currency, err)
		return "", fmt.Errorf("failed to create payment session: %w", err)
	}

	s.log.Infof("Payment session created for amount %.2f %s", amount, currency)
	return url, nil
}
