// Package payment is a thin client for the Razorpay-style order API.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pinkauto/internal/types"
)

// Order is a gateway-side payment order awaiting capture.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway creates payment orders and verifies capture signatures.
type Gateway struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

func NewGateway(keyID, keySecret, baseURL string) *Gateway {
	return &Gateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateOrder registers an order with the gateway. Amounts are sent in the
// smallest currency unit (paise).
func (g *Gateway) CreateOrder(ctx context.Context, amount types.Money, receipt string) (Order, error) {
	body, err := json.Marshal(map[string]any{
		"amount":   amount.Amount * 100,
		"currency": amount.Currency,
		"receipt":  receipt,
	})
	if err != nil {
		return Order{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return Order{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.http.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Order{}, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return Order{}, fmt.Errorf("decode gateway response: %w", err)
	}
	if order.ID == "" {
		return Order{}, fmt.Errorf("gateway response missing order id")
	}
	return order, nil
}

// VerifySignature checks the HMAC-SHA256 the gateway computes over
// "<orderID>|<paymentID>" with the key secret. Constant-time comparison.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
