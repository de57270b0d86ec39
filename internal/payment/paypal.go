package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultPayPalBaseURL = "https://api-m.sandbox.paypal.com"

// PayPalGateway drives a server-side capture through the PayPal Orders v2
// API: fetch a client-credentials token, create an order with intent
// CAPTURE, then capture it and surface the resulting status.
type PayPalGateway struct {
	clientID string
	secret   string
	baseURL  string
	client   *http.Client
}

func NewPayPalGateway(clientID, secret, baseURL string) *PayPalGateway {
	if baseURL == "" {
		baseURL = defaultPayPalBaseURL
	}
	return &PayPalGateway{
		clientID: clientID,
		secret:   secret,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *PayPalGateway) Initiate(ctx context.Context, amount decimal.Decimal, currency string, opts Options) (Receipt, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return Receipt{}, err
	}

	orderID, err := g.createOrder(ctx, token, amount, currency, opts)
	if err != nil {
		return Receipt{}, err
	}

	return g.captureOrder(ctx, token, orderID)
}

func (g *PayPalGateway) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.clientID, g.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token request failed: %s", res.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("paypal token response missing access_token")
	}
	return body.AccessToken, nil
}

func (g *PayPalGateway) createOrder(ctx context.Context, token string, amount decimal.Decimal, currency string, opts Options) (string, error) {
	intent := opts.Intent
	if intent == "" {
		intent = "capture"
	}
	payload := map[string]any{
		"intent": strings.ToUpper(intent),
		"purchase_units": []map[string]any{
			{
				"amount": map[string]string{
					"currency_code": currency,
					"value":         amount.StringFixed(2),
				},
			},
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v2/checkout/orders", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated && res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal create order failed: %s", res.Status)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.ID == "" {
		return "", fmt.Errorf("paypal create order response missing id")
	}
	return body.ID, nil
}

func (g *PayPalGateway) captureOrder(ctx context.Context, token, orderID string) (Receipt, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v2/checkout/orders/"+orderID+"/capture", nil)
	if err != nil {
		return Receipt{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return Receipt{}, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return Receipt{}, err
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return Receipt{}, fmt.Errorf("paypal capture response: %w", err)
	}
	if body.Status == "" {
		// a declined capture still carries a body worth keeping
		return Receipt{Status: StatusDeclined, Raw: raw}, nil
	}
	return Receipt{Status: body.Status, Raw: raw}, nil
}
