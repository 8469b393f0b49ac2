package authentication

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCookie is the cookie the browser carries after login.
const SessionCookie = "portal_session"

const (
	RoleDoctor = "doctor"
	RoleAdmin  = "admin"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// Session is the authenticated identity attached to a request.
type Session struct {
	ID       string
	DoctorID uint
	Email    string
	Role     string
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionManager keeps the session record itself in redis keyed by a random
// id, while the cookie only carries a signed token embedding that id. Logout
// deletes the redis key, so a stolen cookie is dead server-side afterwards.
type SessionManager struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(client *redis.Client, secret string) *SessionManager {
	return &SessionManager{
		client: client,
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}
}

// Create opens a session and returns the signed cookie value.
func (s *SessionManager) Create(ctx context.Context, doctorID uint, email, role string) (string, error) {
	id := uuid.NewString()
	key := sessionKey(id)

	if err := s.client.HSet(ctx, key, map[string]interface{}{
		"doctor_id": strconv.FormatUint(uint64(doctorID), 10),
		"email":     email,
		"role":      role,
	}).Err(); err != nil {
		return "", err
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return "", err
	}

	claims := &sessionClaims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Lookup resolves a cookie value back to the session it names.
func (s *SessionManager) Lookup(ctx context.Context, token string) (Session, error) {
	claims, err := s.parse(token)
	if err != nil {
		return Session{}, err
	}

	values, err := s.client.HGetAll(ctx, sessionKey(claims.SessionID)).Result()
	if err != nil {
		return Session{}, err
	}
	if len(values) == 0 {
		return Session{}, ErrSessionNotFound
	}

	doctorID, _ := strconv.ParseUint(values["doctor_id"], 10, 64)
	return Session{
		ID:       claims.SessionID,
		DoctorID: uint(doctorID),
		Email:    values["email"],
		Role:     values["role"],
	}, nil
}

// Destroy removes the server-side session record.
func (s *SessionManager) Destroy(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	return s.client.Del(ctx, sessionKey(claims.SessionID)).Err()
}

func (s *SessionManager) parse(token string) (*sessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrSessionNotFound
	}
	return claims, nil
}

// DoctorAuthMiddleware admits only requests carrying a live doctor session
// and exposes the identity to downstream handlers.
func (s *SessionManager) DoctorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := s.sessionFromCookie(c)
		if err != nil || sess.Role != RoleDoctor {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Set("doctor_id", sess.DoctorID)
		c.Set("email", sess.Email)
		c.Next()
	}
}

// AdminAuthMiddleware admits only admin sessions.
func (s *SessionManager) AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := s.sessionFromCookie(c)
		if err != nil || sess.Role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Set("email", sess.Email)
		c.Next()
	}
}

func (s *SessionManager) sessionFromCookie(c *gin.Context) (Session, error) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return Session{}, ErrSessionNotFound
	}
	return s.Lookup(c.Request.Context(), token)
}

func sessionKey(id string) string {
	return "session:" + id
}
