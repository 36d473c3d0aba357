package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	HeaderCartSession = "X-Cart-Session"
	CartSessionCookie = "cart_session"
)

var ErrInvalidSession = errors.New("invalid cart session")

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CartSessions issues and verifies the signed tokens that address a
// server-held cart.
type CartSessions struct {
	secret []byte
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

func NewCartSessions(secret string, ttl time.Duration, logger *log.Logger) *CartSessions {
	return &CartSessions{secret: []byte(secret), ttl: ttl, logger: logger, now: time.Now}
}

func (s *CartSessions) Issue(sessionID string) (string, error) {
	now := s.now()
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the session id carried by a valid, unexpired token.
func (s *CartSessions) Verify(tokenStr string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if !token.Valid || strings.TrimSpace(claims.SessionID) == "" {
		return "", ErrInvalidSession
	}
	return claims.SessionID, nil
}

// Middleware resolves the cart session from the X-Cart-Session header or the
// cart_session cookie. A missing or bad token gets a fresh session, which is
// handed back in both places.
func (s *CartSessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := strings.TrimSpace(r.Header.Get(HeaderCartSession))
		if tokenStr == "" {
			if c, err := r.Cookie(CartSessionCookie); err == nil {
				tokenStr = c.Value
			}
		}

		sid := ""
		if tokenStr != "" {
			var err error
			sid, err = s.Verify(tokenStr)
			if err != nil && s.logger != nil {
				s.logger.Printf("cart session rejected: %v", err)
			}
		}

		if sid == "" {
			sid = uuid.NewString()
			signed, err := s.Issue(sid)
			if err != nil {
				writeError(w, r, http.StatusInternalServerError, "Failed to start cart session")
				return
			}
			tokenStr = signed
			http.SetCookie(w, &http.Cookie{
				Name:     CartSessionCookie,
				Value:    signed,
				Path:     "/",
				MaxAge:   int(s.ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(HeaderCartSession, tokenStr)

		ctx := context.WithValue(r.Context(), ctxCartSession, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetCartSessionID(ctx context.Context) string {
	return stringFrom(ctx, ctxCartSession)
}

// WithCartSessionID is used by tests and background callers that already
// know the session.
func WithCartSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxCartSession, sid)
}
