package cinemaguide

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, TokenFunc(func() string { return token }), zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("missing URL", func(t *testing.T) {
		_, err := NewClient("", nil, logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient("http://localhost:9999/", nil, logger)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9999", client.BaseURL())
	})
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost:9999", nil, logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost:9999", nil, logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient("http://localhost:9999", nil, logger, WithUserAgent("custom"))
		require.NoError(t, err)
		assert.Equal(t, "custom", client.userAgent)
	})
}

func TestBearerInjection(t *testing.T) {
	t.Run("token attached when held", func(t *testing.T) {
		var gotAuth string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode([]string{})
		}, "secret-token")

		_, err := client.Genres(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer secret-token", gotAuth)
	})

	t.Run("no header when anonymous", func(t *testing.T) {
		var gotAuth string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode([]string{})
		}, "")

		_, err := client.Genres(context.Background())
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestErrorMapping(t *testing.T) {
	t.Run("message extracted from body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "bad genre"})
		}, "")

		_, err := client.Movies(context.Background(), MovieParams{Genre: "nope"})
		require.Error(t, err)
		assert.Equal(t, "bad genre", ErrorMessage(err))
	})

	t.Run("error field fallback", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
		}, "")

		_, err := client.TopMovies(context.Background())
		require.Error(t, err)
		assert.Equal(t, "boom", ErrorMessage(err))
	})

	t.Run("status text when body is not JSON", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("<html>down</html>"))
		}, "")

		_, err := client.TopMovies(context.Background())
		require.Error(t, err)
		assert.Equal(t, "Service Unavailable", ErrorMessage(err))
	})

	t.Run("401 maps to ErrUnauthorized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}, "expired")

		_, err := client.Favorites(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}, "")

		_, err := client.MovieByID(context.Background(), 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAPIErrorClassification(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Message: "Not Found"}
		assert.Equal(t, "cinemaguide API error: status 404: Not Found", err.Error())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := &APIError{StatusCode: 404}
		assert.True(t, err.IsNotFound())

		err.StatusCode = 500
		assert.False(t, err.IsNotFound())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})
}

func TestFlexID(t *testing.T) {
	tests := []struct {
		name string
		json string
		want FlexID
	}{
		{"string id", `{"id":"abc123"}`, "abc123"},
		{"numeric id", `{"id":42}`, "42"},
		{"null id", `{"id":null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user User
			require.NoError(t, json.Unmarshal([]byte(tt.json), &user))
			assert.Equal(t, tt.want, user.ID)
		})
	}
}
