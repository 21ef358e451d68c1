package payment

import (
	"context"
	"fmt"

	"github.com/mejbahuddintamim/bdrent-server/internal/app/config"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// IntentCreator initiates a card payment and returns the client-side secret
// the frontend needs to complete it.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error)
}

type stripeGateway struct {
	api *client.API
}

func NewStripeGateway(cfg config.StripeConfig) (IntentCreator, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be configured")
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &stripeGateway{api: api}, nil
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	if amountCents <= 0 {
		return "", fmt.Errorf("payment amount must be positive")
	}
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
