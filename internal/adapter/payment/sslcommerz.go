package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mejbahuddintamim/bdrent-server/internal/app/config"
)

const (
	sandboxEndpoint = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	liveEndpoint    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"

	requestTimeout = 15 * time.Second
)

// SessionInitiator starts a hosted-gateway payment session and returns the
// redirect URL the customer must be sent to.
type SessionInitiator interface {
	InitSession(ctx context.Context, amount float64, currency string) (string, error)
}

type sslcommerzGateway struct {
	cfg      config.SSLCommerzConfig
	endpoint string
	client   *http.Client
}

// SSLCommerz has no Go SDK; the session init is a single form POST answered
// with JSON, so a plain HTTP client is the whole integration.
func NewSSLCommerzGateway(cfg config.SSLCommerzConfig) (SessionInitiator, error) {
	if cfg.StoreID == "" || cfg.StorePassword == "" {
		return nil, fmt.Errorf("sslcommerz store credentials must be configured")
	}

	endpoint := sandboxEndpoint
	if cfg.Live {
		endpoint = liveEndpoint
	}

	return &sslcommerzGateway{
		cfg:      cfg,
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}, nil
}

type sslcommerzResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

func (g *sslcommerzGateway) InitSession(ctx context.Context, amount float64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("payment amount must be positive")
	}
	if currency == "" {
		currency = "BDT"
	}

	form := url.Values{}
	form.Set("store_id", g.cfg.StoreID)
	form.Set("store_passwd", g.cfg.StorePassword)
	form.Set("total_amount", strconv.FormatFloat(amount, 'f', 2, 64))
	form.Set("currency", currency)
	form.Set("tran_id", uuid.NewString())
	form.Set("success_url", g.cfg.SuccessURL)
	form.Set("fail_url", g.cfg.FailURL)
	form.Set("cancel_url", g.cfg.CancelURL)
	form.Set("ipn_url", g.cfg.IPNURL)
	form.Set("shipping_method", "NO")
	form.Set("product_name", "Home rental")
	form.Set("product_category", "Rental")
	form.Set("product_profile", "general")
	form.Set("cus_name", "Customer")
	form.Set("cus_email", "customer@example.com")
	form.Set("cus_add1", "Dhaka")
	form.Set("cus_city", "Dhaka")
	form.Set("cus_postcode", "1000")
	form.Set("cus_country", "Bangladesh")
	form.Set("cus_phone", "01711111111")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build sslcommerz request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sslcommerz session init request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sslcommerz session init returned status %d", resp.StatusCode)
	}

	var body sslcommerzResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode sslcommerz response: %w", err)
	}

	if !strings.EqualFold(body.Status, "SUCCESS") || body.GatewayPageURL == "" {
		return "", fmt.Errorf("sslcommerz session rejected: %s", body.FailedReason)
	}
	return body.GatewayPageURL, nil
}
