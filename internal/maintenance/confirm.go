package maintenance

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
)

// DefaultConfirmationTTL is how long a confirmation token stays valid.
const DefaultConfirmationTTL = 2 * time.Minute

// Challenge is the first step of a destructive operation. The token must be
// presented back, with the same action, before ExpiresAt.
type Challenge struct {
	Token     string    `json:"token"`
	Action    string    `json:"action"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Confirmations issues single-use tokens for destructive operations.
type Confirmations struct {
	// mu makes the lookup and removal in Confirm one step
	mu     sync.Mutex
	tokens *cache.Cache
	ttl    time.Duration
	now    func() time.Time
}

// NewConfirmations creates a token store; ttl <= 0 selects the default.
func NewConfirmations(ttl time.Duration) *Confirmations {
	if ttl <= 0 {
		ttl = DefaultConfirmationTTL
	}
	return &Confirmations{
		tokens: cache.New(ttl, 2*ttl),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a fresh token bound to action.
func (c *Confirmations) Issue(action string) *Challenge {
	ch := &Challenge{
		Token:     uuid.NewString(),
		Action:    action,
		ExpiresAt: c.now().Add(c.ttl),
	}
	c.tokens.Set(ch.Token, action, c.ttl)
	return ch
}

// Confirm consumes token. It fails when the token is unknown, expired or was
// issued for another action; a token bound to another action stays usable.
func (c *Confirmations) Confirm(token, action string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.tokens.Get(token)
	if !ok {
		return apperrors.NewValidationError(apperrors.CodeInvalidToken, "confirmation token is unknown or expired")
	}
	if bound, _ := v.(string); bound != action {
		return apperrors.NewValidationError(apperrors.CodeInvalidToken, "confirmation token was issued for "+bound)
	}
	c.tokens.Delete(token)
	return nil
}
