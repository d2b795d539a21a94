package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pinkauto/internal/types"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			t.Error("missing or wrong basic auth")
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["amount"] != float64(67500) {
			t.Errorf("amount = %v, want 67500 paise", body["amount"])
		}
		_ = json.NewEncoder(w).Encode(Order{ID: "order_123", Amount: 67500, Currency: "INR", Status: "created"})
	}))
	defer srv.Close()

	g := NewGateway("key", "secret", srv.URL)
	order, err := g.CreateOrder(context.Background(), types.INR(675), "bk_1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "order_123" {
		t.Errorf("order id = %s, want order_123", order.ID)
	}
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGateway("key", "secret", srv.URL)
	if _, err := g.CreateOrder(context.Background(), types.INR(675), "bk_1"); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestVerifySignature(t *testing.T) {
	g := NewGateway("key", "secret", "http://unused")

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_123|pay_456"))
	good := hex.EncodeToString(mac.Sum(nil))

	if !g.VerifySignature("order_123", "pay_456", good) {
		t.Error("valid signature rejected")
	}
	if g.VerifySignature("order_123", "pay_456", "deadbeef") {
		t.Error("forged signature accepted")
	}
	if g.VerifySignature("order_999", "pay_456", good) {
		t.Error("signature accepted for wrong order")
	}
}
