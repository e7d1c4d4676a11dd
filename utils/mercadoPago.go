package utils

import (
	"encoding/json"
	"fmt"
	"time"

	"lms/config"
	"lms/services"

	"github.com/go-resty/resty/v2"
)

// MercadoPagoGateway creates checkout preferences through the Mercado Pago
// REST API. One instance is built at startup and shared process-wide.
type MercadoPagoGateway struct {
	client  *resty.Client
	baseURL string
	token   string
}

// PaymentGateway is the process-wide provider client
var PaymentGateway *MercadoPagoGateway

// InitPaymentGateway builds the shared Mercado Pago client from config.
// Must run after config.LoadConfig.
func InitPaymentGateway() {
	PaymentGateway = &MercadoPagoGateway{
		client:  resty.New().SetTimeout(time.Duration(config.AppConfig.CheckoutTimeout) * time.Second),
		baseURL: config.AppConfig.MercadoPagoURL,
		token:   config.AppConfig.MercadoPagoToken,
	}
}

type preferenceItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type preferenceBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type preferenceRequest struct {
	Items             []preferenceItem   `json:"items"`
	ExternalReference string             `json:"external_reference"`
	BackURLs          preferenceBackURLs `json:"back_urls"`
	AutoReturn        string             `json:"auto_return"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// CreateCheckout implements services.CheckoutGateway. The returned URL is the
// provider-hosted page the buyer finishes the purchase on.
func (g *MercadoPagoGateway) CreateCheckout(req services.CheckoutRequest) (string, error) {
	items := make([]preferenceItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, preferenceItem{
			ID:         fmt.Sprintf("%d", item.CourseID),
			Title:      item.Title,
			Quantity:   1,
			UnitPrice:  float64(item.AmountCents) / 100,
			CurrencyID: "PEN",
		})
	}

	body := preferenceRequest{
		Items:             items,
		ExternalReference: req.Reference,
		BackURLs: preferenceBackURLs{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
			Pending: req.PendingURL,
		},
		AutoReturn: "approved",
	}

	resp, err := g.client.R().
		SetHeader("Authorization", "Bearer "+g.token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(g.baseURL + "/checkout/preferences")
	if err != nil {
		return "", fmt.Errorf("preference request failed: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return "", fmt.Errorf("preference request rejected (%d): %s", resp.StatusCode(), resp.String())
	}

	var pref preferenceResponse
	if err := json.Unmarshal(resp.Body(), &pref); err != nil {
		return "", fmt.Errorf("failed to parse preference response: %w", err)
	}
	if pref.InitPoint == "" {
		return "", fmt.Errorf("preference response missing init_point")
	}

	return pref.InitPoint, nil
}
