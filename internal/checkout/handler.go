package checkout

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/confmerch/checkout-backend/internal/buyer"
	"github.com/confmerch/checkout-backend/internal/cart"
	"github.com/confmerch/checkout-backend/internal/payment"
)

// SessionResolver finds the flow and session behind an incoming request,
// usually via the session ID claim in the shopper's token.
type SessionResolver interface {
	Resolve(c *fiber.Ctx) (*Flow, *Session, error)
}

// Handler exposes the cart and checkout flow over HTTP. It is a thin
// adapter: every invariant lives in the flow and the stores.
type Handler struct {
	sessions SessionResolver
}

func NewHandler(sessions SessionResolver) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Delete("/api/v1/cart/items/:index", h.removeItem)

	app.Get("/api/v1/checkout", h.getState)
	app.Post("/api/v1/checkout/proceed", h.proceed)
	app.Post("/api/v1/checkout/back", h.back)
	app.Post("/api/v1/checkout/information", h.submitInformation)
	app.Post("/api/v1/checkout/payment", h.pay)
	app.Post("/api/v1/checkout/continue", h.continueShopping)

	app.Get("/api/v1/orders", h.listOrders)
}

type itemRequest struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	_, session, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	snapshot := session.Cart().Snapshot()
	return c.JSON(fiber.Map{
		"items": snapshot,
		"total": cart.Total(snapshot),
		"state": session.State(),
	})
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	_, session, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(itemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title is required"})
	}
	if payload.Price.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "price must not be negative"})
	}

	session.Cart().Add(cart.Item{Title: payload.Title, Price: payload.Price})
	return c.Status(fiber.StatusOK).JSON(session.Cart().Snapshot())
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	fmt.Printf("[DEBUG] checkout.removeItem invoked, remote=%s\n", c.IP())
	_, session, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid index"})
	}
	payload := new(itemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// stale indexes are a no-op by contract, so this cannot fail
	session.Cart().Remove(cart.Item{Title: payload.Title, Price: payload.Price}, index)
	return c.JSON(session.Cart().Snapshot())
}

func (h *Handler) getState(c *fiber.Ctx) error {
	_, session, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	resp := fiber.Map{"state": session.State()}
	if b, ok := session.Buyer(); ok {
		resp["buyer"] = b
	}
	return c.JSON(resp)
}

func (h *Handler) proceed(c *fiber.Ctx) error {
	flow, _, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := flow.ProceedToInformation(); err != nil {
		return transitionError(c, err)
	}
	return c.JSON(fiber.Map{"state": StateAwaitingInformation})
}

func (h *Handler) back(c *fiber.Ctx) error {
	flow, _, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := flow.BackToCart(); err != nil {
		return transitionError(c, err)
	}
	return c.JSON(fiber.Map{"state": StateBrowsing})
}

func (h *Handler) submitInformation(c *fiber.Ctx) error {
	flow, _, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(buyer.Buyer)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := flow.SubmitBuyer(*payload); err != nil {
		return transitionError(c, err)
	}
	return c.JSON(fiber.Map{"state": StateAwaitingPayment})
}

func (h *Handler) pay(c *fiber.Ctx) error {
	flow, _, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	opts := new(payment.Options)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(opts); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}

	ord, err := flow.Pay(c.Context(), *opts)
	if err != nil {
		return transitionError(c, err)
	}
	return c.JSON(fiber.Map{"state": StateCompleted, "order": ord})
}

func (h *Handler) continueShopping(c *fiber.Ctx) error {
	flow, _, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := flow.ContinueShopping(); err != nil {
		return transitionError(c, err)
	}
	return c.JSON(fiber.Map{"state": StateBrowsing})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	_, session, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	return c.JSON(session.Orders())
}

// transitionError maps each rejected transition to a status code while
// keeping the specific error kind in the body.
func transitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrEmptyCart), errors.Is(err, buyer.ErrIncompleteInfo):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrWrongState), errors.Is(err, ErrPaymentInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrPaymentDeclined), errors.Is(err, ErrPaymentCancelled):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
