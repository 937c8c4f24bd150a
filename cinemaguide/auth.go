package cinemaguide

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Credentials identify a user at login. Email doubles as the login name.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
}

// AuthResult is the normalized outcome of a login or registration call
// that reached the server and came back with a 2xx status. OK is false
// when the body signaled a business-logic failure, or when it contained
// neither a usable credential nor a user identity.
type AuthResult struct {
	OK      bool
	Message string
	Token   string
	User    *User
}

// authEnvelope covers the response shapes the API has been observed to
// produce: token at the top level or under "data", user wrapped or bare,
// failures flagged by a result field or an error message inside a 2xx body.
type authEnvelope struct {
	Result      *bool           `json:"result"`
	Success     *bool           `json:"success"`
	Error       string          `json:"error"`
	Message     string          `json:"message"`
	Token       string          `json:"token"`
	AccessToken string          `json:"accessToken"`
	User        *User           `json:"user"`
	Data        json.RawMessage `json:"data"`
}

// Login authenticates with the API. Transport failures and non-2xx
// statuses are returned as errors; a 2xx body that does not amount to a
// successful login is reported through AuthResult.OK.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, creds)
	if err != nil {
		return AuthResult{}, err
	}

	result := normalizeAuth(body)
	if !result.OK && result.Message == "" {
		result.Message = "login response contained no credential or user"
	}
	return result, nil
}

// Register creates a new account. A successful creation that does not
// issue a credential still comes back with OK set, so callers can present
// a "registration complete, please log in" state.
func (c *Client) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/user", nil, input)
	if err != nil {
		return AuthResult{}, err
	}

	result := normalizeAuth(body)
	if !result.OK {
		// Unlike login, a creation that issues no credential is still a
		// success: an explicit positive result flag, or a silent 2xx with
		// an empty body, means the account exists and the user should log
		// in.
		var env authEnvelope
		_ = json.Unmarshal(body, &env)
		switch {
		case env.Error != "":
			// explicit failure, keep it
		case env.Result != nil && *env.Result, env.Success != nil && *env.Success:
			result.OK = true
		case len(strings.TrimSpace(string(body))) == 0, strings.TrimSpace(string(body)) == "{}":
			result.OK = true
		default:
			if result.Message == "" {
				result.Message = "registration response contained no credential or user"
			}
		}
	}
	return result, nil
}

// Logout ends the server-side session. Callers clear local state
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.doRequest(ctx, http.MethodGet, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Profile retrieves the current user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/profile", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &user, nil
}

// normalizeAuth performs the response-shape sniffing in one place so no
// caller has to care which variant the server produced.
func normalizeAuth(body []byte) AuthResult {
	var env authEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return AuthResult{Message: "unrecognized auth response"}
	}

	// Explicit failure signals win over anything else in the body.
	if env.Error != "" {
		return AuthResult{Message: env.Error}
	}
	if env.Result != nil && !*env.Result {
		return AuthResult{Message: env.Message}
	}
	if env.Success != nil && !*env.Success {
		return AuthResult{Message: env.Message}
	}

	token := env.Token
	if token == "" {
		token = env.AccessToken
	}
	user := env.User

	// A "data" wrapper may hold the token, the user, or both.
	if len(env.Data) > 0 {
		var inner authEnvelope
		if err := json.Unmarshal(env.Data, &inner); err == nil {
			if token == "" {
				token = inner.Token
				if token == "" {
					token = inner.AccessToken
				}
			}
			if user == nil {
				user = inner.User
			}
		}
	}

	// Some revisions of the API return the user record bare, as the whole
	// response body.
	if user == nil {
		var bare User
		if err := json.Unmarshal(body, &bare); err == nil && bare.HasIdentity() {
			user = &bare
		}
	}

	if token == "" && (user == nil || user.ID == "") {
		return AuthResult{Message: env.Message, User: user}
	}

	return AuthResult{OK: true, Message: env.Message, Token: token, User: user}
}
