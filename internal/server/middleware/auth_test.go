package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct{ id uuid.UUID }

func (c *stubClaims) GetUserID() uuid.UUID { return c.id }

type stubValidator struct {
	id  uuid.UUID
	err error
}

func (v *stubValidator) ValidateToken(token string) (UserIDGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &stubClaims{id: v.id}, nil
}

func TestAuth(t *testing.T) {
	userID := uuid.New()

	handler := func(t *testing.T) (http.Handler, *uuid.UUID) {
		var got uuid.UUID
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := GetUserID(r)
			require.NoError(t, err)
			got = id
			w.WriteHeader(http.StatusOK)
		})
		return h, &got
	}

	t.Run("valid bearer token", func(t *testing.T) {
		inner, got := handler(t)
		mw := Auth(&stubValidator{id: userID})(inner)

		req := httptest.NewRequest("GET", "/sessions", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, *got)
	})

	t.Run("case-insensitive scheme", func(t *testing.T) {
		inner, _ := handler(t)
		mw := Auth(&stubValidator{id: userID})(inner)

		req := httptest.NewRequest("GET", "/sessions", nil)
		req.Header.Set("Authorization", "bearer some-token")
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		inner, _ := handler(t)
		mw := Auth(&stubValidator{id: userID})(inner)

		req := httptest.NewRequest("GET", "/sessions", nil)
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		inner, _ := handler(t)
		mw := Auth(&stubValidator{id: userID})(inner)

		req := httptest.NewRequest("GET", "/sessions", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		inner, _ := handler(t)
		mw := Auth(&stubValidator{err: errors.New("expired")})(inner)

		req := httptest.NewRequest("GET", "/sessions", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}
