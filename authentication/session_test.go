package authentication

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionManager(client, "test-secret"), mr
}

func TestSessionRoundtrip(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	token, err := mgr.Create(ctx, 7, "smith@clinic.com", RoleDoctor)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	sess, err := mgr.Lookup(ctx, token)
	if err != nil {
		t.Fatalf("failed to look up session: %v", err)
	}
	if sess.DoctorID != 7 || sess.Email != "smith@clinic.com" || sess.Role != RoleDoctor {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestSessionDestroy(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	token, err := mgr.Create(ctx, 7, "smith@clinic.com", RoleDoctor)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := mgr.Destroy(ctx, token); err != nil {
		t.Fatalf("failed to destroy session: %v", err)
	}

	if _, err := mgr.Lookup(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after destroy, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	mgr, mr := newTestManager(t)
	ctx := context.Background()

	token, err := mgr.Create(ctx, 7, "smith@clinic.com", RoleDoctor)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	mr.FastForward(25 * time.Hour)

	if _, err := mgr.Lookup(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}

func TestSessionRejectsUnexpectedAlg(t *testing.T) {
	mgr, _ := newTestManager(t)

	// only HS256 is acceptable, whatever the token header claims
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &sessionClaims{
		SessionID: "forged",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := mgr.Lookup(context.Background(), signed); err == nil {
		t.Fatal("expected a token without an HS256 signature to be rejected")
	}
}

func TestSessionTamperedToken(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	token, err := mgr.Create(ctx, 7, "smith@clinic.com", RoleDoctor)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	if _, err := mgr.Lookup(ctx, token+"x"); err == nil {
		t.Fatal("expected a tampered token to be rejected")
	}
}

func TestDoctorAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	r := gin.New()
	r.GET("/protected", mgr.DoctorAuthMiddleware(), func(c *gin.Context) {
		id, _ := c.Get("doctor_id")
		c.JSON(http.StatusOK, gin.H{"doctor_id": id})
	})

	// no cookie
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing cookie: status = %d, expected 401", w.Code)
	}

	// doctor session
	token, err := mgr.Create(ctx, 7, "smith@clinic.com", RoleDoctor)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid session: status = %d, expected 200", w.Code)
	}

	// admin session on a doctor route
	adminToken, err := mgr.Create(ctx, 0, "admin@clinic.com", RoleAdmin)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: adminToken})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("admin session on doctor route: status = %d, expected 401", w.Code)
	}
}
