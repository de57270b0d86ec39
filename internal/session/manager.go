package session

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/confmerch/checkout-backend/internal/checkout"
	"github.com/confmerch/checkout-backend/internal/order"
	"github.com/confmerch/checkout-backend/internal/payment"
)

var ErrNotFound = errors.New("session not found")

// Manager keeps the live checkout sessions keyed by the session ID carried
// in the shopper's token. Each session gets its own cart, buyer record,
// order log and flow; nothing is shared between shoppers.
type Manager struct {
	mu       sync.RWMutex
	secret   []byte
	gateway  payment.Gateway
	currency string
	notify   checkout.Notifier
	archive  order.Repository
	sessions map[string]*checkout.Session
	flows    map[string]*checkout.Flow
}

// NewManager wires the collaborators every new session's flow will use.
// notify and archive may be nil.
func NewManager(secret string, gw payment.Gateway, currency string, notify checkout.Notifier, archive order.Repository) *Manager {
	return &Manager{
		secret:   []byte(secret),
		gateway:  gw,
		currency: currency,
		notify:   notify,
		archive:  archive,
		sessions: make(map[string]*checkout.Session),
		flows:    make(map[string]*checkout.Flow),
	}
}

// Create starts a fresh shopper session and returns its ID with a signed
// token the client sends back on every request.
func (m *Manager) Create() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	session := checkout.NewSession(order.NewLog(m.archive))
	flow := checkout.NewFlow(session, m.gateway, m.currency, m.notify)

	claims := jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(72 * time.Hour).Unix(),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", err
	}

	m.mu.Lock()
	m.sessions[sessionID] = session
	m.flows[sessionID] = flow
	m.mu.Unlock()

	return sessionID, token, nil
}

// Resolve finds the flow and session for the request's token. It satisfies
// checkout.SessionResolver.
func (m *Manager) Resolve(c *fiber.Ctx) (*checkout.Flow, *checkout.Session, error) {
	sessionID, err := GetSessionIDFromCtx(c)
	if err != nil {
		return nil, nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	flow, ok := m.flows[sessionID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	return flow, m.sessions[sessionID], nil
}

// GetSessionIDFromCtx extracts the session_id claim from the JWT token the
// auth middleware stored on the request context.
func GetSessionIDFromCtx(c *fiber.Ctx) (string, error) {
	u := c.Locals("user")
	if u == nil {
		return "", fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	if raw, ok := claims["session_id"]; ok {
		if id, ok := raw.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", fiber.ErrUnauthorized
}
