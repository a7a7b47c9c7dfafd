package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosting(t *testing.T) {
	t.Run("extracts posting text", func(t *testing.T) {
		body := strings.Repeat("Design and build backend services. ", 20)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body>
				<nav>menu</nav>
				<div class="job-description">` + body + `</div>
			</body></html>`))
		}))
		defer server.Close()

		text, err := Posting(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Contains(t, text, "Design and build backend services.")
		assert.NotContains(t, text, "menu")
	})

	t.Run("fetch failure propagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := Posting(context.Background(), server.URL, nil)
		require.Error(t, err)

		var ferr *Error
		assert.ErrorAs(t, err, &ferr)
	})

	t.Run("empty page without browser fallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body></body></html>`))
		}))
		defer server.Close()

		_, err := Posting(context.Background(), server.URL, &PostingOptions{UseBrowser: false})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no readable text")
	})
}
