package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

var errInvalidTokenStub = errors.New("invalid token")

type stubVerifier struct {
	userID int64
	err    error
}

func (s *stubVerifier) VerifyToken(_ string) (int64, error) {
	return s.userID, s.err
}

func authTestRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(authMiddleware(verifier))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(ctxUserIDKey)})
	})
	return router
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := authTestRouter(&stubVerifier{userID: 1})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	var resp envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Message != "Authorization token is required" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := authTestRouter(&stubVerifier{userID: 1})

	for _, header := range []string{"sometoken", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected status 401, got %d", header, rec.Code)
		}
		var resp envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Message != "Authorization header format must be Bearer {token}" {
			t.Fatalf("header %q: unexpected message %q", header, resp.Message)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := authTestRouter(&stubVerifier{err: errInvalidTokenStub})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	var resp envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "Invalid or expired token" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := authTestRouter(&stubVerifier{userID: 42})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.UserID != 42 {
		t.Fatalf("expected user id 42 in context, got %d", resp.UserID)
	}
}
