package checkout

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/confmerch/checkout-backend/internal/payment"
)

// testResolver hands every request the same flow and session, simulating an
// authenticated shopper. When denied it behaves like a missing token.
type testResolver struct {
	flow    *Flow
	session *Session
	deny    bool
}

func (r *testResolver) Resolve(c *fiber.Ctx) (*Flow, *Session, error) {
	if r.deny {
		return nil, nil, fiber.ErrUnauthorized
	}
	return r.flow, r.session, nil
}

func makeApp(resolver *testResolver) *fiber.App {
	app := fiber.New()
	NewHandler(resolver).RegisterProtectedRoutes(app)
	return app
}

func TestHandler_Unauthorized(t *testing.T) {
	app := makeApp(&testResolver{deny: true})

	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestHandler_CheckoutScenario(t *testing.T) {
	session := NewSession(nil)
	gw := &stubGateway{receipt: payment.Receipt{Status: payment.StatusCompleted, Raw: []byte(`{"id":"5O190127TN364715T","status":"COMPLETED"}`)}}
	flow := NewFlow(session, gw, "USD", nil)
	app := makeApp(&testResolver{flow: flow, session: session})

	post := func(path, body string) *fiber.Map {
		t.Helper()
		var rd io.Reader
		if body != "" {
			rd = strings.NewReader(body)
		}
		req := httptest.NewRequest("POST", path, rd)
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		if res.StatusCode != fiber.StatusOK {
			raw, _ := io.ReadAll(res.Body)
			t.Fatalf("POST %s: status %d body %s", path, res.StatusCode, raw)
		}
		out := new(fiber.Map)
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("POST %s: decode: %v", path, err)
		}
		return out
	}

	// proceeding with an empty cart is rejected with a specific reason
	req := httptest.NewRequest("POST", "/api/v1/checkout/proceed", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", res.StatusCode)
	}

	post("/api/v1/cart/items", `{"title":"T-Shirt","price":"20.00"}`)
	post("/api/v1/cart/items", `{"title":"Mug","price":"10.00"}`)

	// cart view carries the exact total
	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for cart view, got %d", res.StatusCode)
	}
	var cartView struct {
		Items []json.RawMessage `json:"items"`
		Total string            `json:"total"`
	}
	if err := json.NewDecoder(res.Body).Decode(&cartView); err != nil {
		t.Fatalf("decode cart view: %v", err)
	}
	if len(cartView.Items) != 2 || cartView.Total != "30" {
		t.Fatalf("unexpected cart view: %d items, total %q", len(cartView.Items), cartView.Total)
	}

	post("/api/v1/checkout/proceed", "")
	post("/api/v1/checkout/information", `{
		"name":"Ana Gomez","email":"ana@example.com","address":"Calle 12 #34-56",
		"locality":"Chapinero","country":"Colombia","region":"Bogota",
		"postalCode":"110111","phone":"3001234567"}`)
	post("/api/v1/checkout/payment", "")

	if got := session.State(); got != StateCompleted {
		t.Fatalf("expected COMPLETED, got %s", got)
	}

	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	res, _ = app.Test(req)
	var orders []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&orders); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if session.Cart().Len() != 0 {
		t.Fatal("cart must be empty after the completed order")
	}
}

func TestHandler_IncompleteInformation(t *testing.T) {
	session := NewSession(nil)
	flow := NewFlow(session, &stubGateway{}, "USD", nil)
	app := makeApp(&testResolver{flow: flow, session: session})

	session.Cart().Add(item("Mug", "10.00"))
	if err := flow.ProceedToInformation(); err != nil {
		t.Fatalf("proceed: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/v1/checkout/information", strings.NewReader(`{"name":"Ana Gomez"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete buyer info, got %d", res.StatusCode)
	}
	if got := session.State(); got != StateAwaitingInformation {
		t.Fatalf("expected AWAITING_INFORMATION, got %s", got)
	}
}

func TestHandler_CancelledPayment(t *testing.T) {
	session := NewSession(nil)
	gw := &stubGateway{receipt: payment.Receipt{Status: payment.StatusCancelled}}
	flow := NewFlow(session, gw, "USD", nil)
	app := makeApp(&testResolver{flow: flow, session: session})

	session.Cart().Add(item("T-Shirt", "20.00"))
	session.Cart().Add(item("Mug", "10.00"))
	if err := flow.ProceedToInformation(); err != nil {
		t.Fatalf("proceed: %v", err)
	}
	if err := flow.SubmitBuyer(completeBuyer()); err != nil {
		t.Fatalf("submit buyer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/v1/checkout/payment", nil)
	res, _ := app.Test(req, -1)
	if res.StatusCode != fiber.StatusPaymentRequired {
		t.Fatalf("expected 402 for cancelled payment, got %d", res.StatusCode)
	}
	if got := session.State(); got != StatePaymentCancelled {
		t.Fatalf("expected PAYMENT_CANCELLED, got %s", got)
	}
	if len(session.Orders()) != 0 {
		t.Fatal("cancelled payment must not create an order")
	}
	if session.Cart().Len() != 2 {
		t.Fatal("cart must be preserved for retry")
	}
}

func TestHandler_RemoveItemStaleIndex(t *testing.T) {
	session := NewSession(nil)
	flow := NewFlow(session, &stubGateway{}, "USD", nil)
	app := makeApp(&testResolver{flow: flow, session: session})

	session.Cart().Add(item("Mug", "10.00"))

	// index points past the cart; contract says no-op, not an error
	req := httptest.NewRequest("DELETE", "/api/v1/cart/items/7", strings.NewReader(`{"title":"Mug","price":"10.00"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for stale index, got %d", res.StatusCode)
	}
	if session.Cart().Len() != 1 {
		t.Fatal("stale remove must leave the cart untouched")
	}
}
