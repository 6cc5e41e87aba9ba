// Package shipping is the client for the external rate-shopping and label
// purchase API. The provider owns carrier accounts and label generation;
// this client only shuttles order references and rate selections.
package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Rate is one carrier quote for a shipment
type Rate struct {
	ObjectID         string `json:"object_id"`
	Provider         string `json:"provider"`
	ServiceLevelName string `json:"servicelevel_name"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	EstimatedDays    *int   `json:"estimated_days"`
	DurationTerms    string `json:"duration_terms"`
}

// RatesResponse is the result of a rate-shopping call
type RatesResponse struct {
	ShipmentID       string `json:"shipment_id"`
	Rates            []Rate `json:"rates"`
	HasExistingLabel bool   `json:"has_existing_label"`
}

// Label is a purchased shipping label
type Label struct {
	TrackingNumber string  `json:"tracking_number"`
	Carrier        string  `json:"carrier"`
	LabelURL       string  `json:"label_url"`
	ShippingCost   float64 `json:"shipping_cost"` // provider reports dollars
}

// Client calls the shipping provider API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient creates a shipping client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logrus.WithField("component", "shipping"),
	}
}

type ratesRequest struct {
	OrderID string `json:"order_id"`
	Address string `json:"address"`
}

type buyLabelRequest struct {
	OrderID string `json:"order_id"`
	RateID  string `json:"rate_id,omitempty"`
	// QuickShip asks the provider to pick the cheapest default-carrier rate
	QuickShip bool `json:"quick_ship,omitempty"`
}

// GetRates fetches carrier quotes for an order's shipping address
func (c *Client) GetRates(ctx context.Context, orderID, address string) (*RatesResponse, error) {
	var resp RatesResponse
	if err := c.post(ctx, "/rates", &ratesRequest{OrderID: orderID, Address: address}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BuyLabel purchases the label for a previously quoted rate
func (c *Client) BuyLabel(ctx context.Context, orderID, rateID string) (*Label, error) {
	var label Label
	if err := c.post(ctx, "/labels", &buyLabelRequest{OrderID: orderID, RateID: rateID}, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// QuickShip buys a label on the default carrier without rate shopping
func (c *Client) QuickShip(ctx context.Context, orderID string) (*Label, error) {
	var label Label
	if err := c.post(ctx, "/labels", &buyLabelRequest{OrderID: orderID, QuickShip: true}, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shipping request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"path":   path,
		}).Error("shipping provider error")
		return fmt.Errorf("shipping provider returned %d: %s", resp.StatusCode, string(raw))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
