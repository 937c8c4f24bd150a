package cinemaguide

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAuth(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantOK    bool
		wantToken string
		wantUser  string // expected user id, "" for none
		wantMsg   string
	}{
		{
			name:      "top-level token",
			body:      `{"token":"t1"}`,
			wantOK:    true,
			wantToken: "t1",
		},
		{
			name:      "accessToken variant",
			body:      `{"accessToken":"t2"}`,
			wantOK:    true,
			wantToken: "t2",
		},
		{
			name:      "token nested under data",
			body:      `{"data":{"token":"t3","user":{"id":9,"email":"a@b.c"}}}`,
			wantOK:    true,
			wantToken: "t3",
			wantUser:  "9",
		},
		{
			name:     "wrapped user without token",
			body:     `{"user":{"id":"u-1","name":"Ada"}}`,
			wantOK:   true,
			wantUser: "u-1",
		},
		{
			name:     "bare user record",
			body:     `{"id":5,"name":"Ada","surname":"Lovelace","email":"ada@example.com"}`,
			wantOK:   true,
			wantUser: "5",
		},
		{
			name:    "explicit error field",
			body:    `{"error":"wrong password"}`,
			wantOK:  false,
			wantMsg: "wrong password",
		},
		{
			name:    "result false",
			body:    `{"result":false,"message":"account locked"}`,
			wantOK:  false,
			wantMsg: "account locked",
		},
		{
			name:    "success false",
			body:    `{"success":false,"message":"nope"}`,
			wantOK:  false,
			wantMsg: "nope",
		},
		{
			name:   "empty object has neither credential nor user",
			body:   `{}`,
			wantOK: false,
		},
		{
			name:   "user without identifier is not enough",
			body:   `{"user":{"name":"Ghost"}}`,
			wantOK: false,
		},
		{
			name:    "not JSON at all",
			body:    `welcome`,
			wantOK:  false,
			wantMsg: "unrecognized auth response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizeAuth([]byte(tt.body))
			assert.Equal(t, tt.wantOK, result.OK)
			assert.Equal(t, tt.wantToken, result.Token)
			if tt.wantUser != "" {
				require.NotNil(t, result.User)
				assert.Equal(t, FlexID(tt.wantUser), result.User.ID)
			}
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, result.Message)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("success posts credentials", func(t *testing.T) {
		var gotPath string
		var gotBody Credentials
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte(`{"token":"t","user":{"id":1,"email":"a@b.c"}}`))
		}, "")

		result, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Equal(t, "t", result.Token)
		assert.Equal(t, "/auth/login", gotPath)
		assert.Equal(t, "a@b.c", gotBody.Email)
	})

	t.Run("empty 200 body is a failure outcome, not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}, "")

		result, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Equal(t, "login response contained no credential or user", result.Message)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid credentials"}`))
		}, "")

		_, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "bad"})
		require.Error(t, err)
		assert.Equal(t, "invalid credentials", ErrorMessage(err))
	})
}

func TestRegister(t *testing.T) {
	t.Run("created with credential", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/user", r.URL.Path)
			w.Write([]byte(`{"token":"t","user":{"id":1}}`))
		}, "")

		result, err := client.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw"})
		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Equal(t, "t", result.Token)
	})

	t.Run("created without credential is still success", func(t *testing.T) {
		tests := []string{`{"success":true}`, `{"result":true}`, `{}`, ``}
		for _, body := range tests {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}, "")

			result, err := client.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw"})
			require.NoError(t, err, "body %q", body)
			assert.True(t, result.OK, "body %q", body)
			assert.Empty(t, result.Token, "body %q", body)
		}
	})

	t.Run("explicit error is a failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"email already taken"}`))
		}, "")

		result, err := client.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw"})
		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Equal(t, "email already taken", result.Message)
	})
}

func TestLogoutAndProfile(t *testing.T) {
	t.Run("logout hits auth endpoint", func(t *testing.T) {
		var gotPath, gotMethod string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			w.WriteHeader(http.StatusOK)
		}, "token")

		require.NoError(t, client.Logout(context.Background()))
		assert.Equal(t, "/auth/logout", gotPath)
		assert.Equal(t, http.MethodGet, gotMethod)
	})

	t.Run("profile decodes user", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/profile", r.URL.Path)
			w.Write([]byte(`{"id":"u1","name":"Ada","surname":"Lovelace","email":"ada@example.com"}`))
		}, "token")

		user, err := client.Profile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, FlexID("u1"), user.ID)
		assert.Equal(t, "Ada", user.Name)
	})
}
