package cinemaguide

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Movie represents a single catalog entry. Movies are replaced wholesale
// from server responses, never patched locally.
type Movie struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"originalTitle,omitempty"`
	ReleaseYear   int      `json:"releaseYear,omitempty"`
	ReleaseDate   string   `json:"releaseDate,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Plot          string   `json:"plot,omitempty"`
	Runtime       int      `json:"runtime,omitempty"` // minutes
	Director      string   `json:"director,omitempty"`
	TmdbRating    float64  `json:"tmdbRating,omitempty"`
	PosterURL     string   `json:"posterUrl,omitempty"`
	BackdropURL   string   `json:"backdropUrl,omitempty"`
	TrailerURL    string   `json:"trailerUrl,omitempty"`
}

// User represents the authenticated user's profile.
type User struct {
	ID      FlexID `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Surname string `json:"surname,omitempty"`
	Email   string `json:"email,omitempty"`
}

// HasIdentity reports whether the record carries enough information to be
// treated as a real user (an id or at least an email).
func (u *User) HasIdentity() bool {
	return u != nil && (u.ID != "" || u.Email != "")
}

// FlexID is a string identifier that the API serves either as a JSON
// string or as a number, depending on the endpoint.
type FlexID string

// UnmarshalJSON accepts both string and numeric ids.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// MovieParams are the optional server-side query parameters for the
// listing endpoint.
type MovieParams struct {
	Genre string
	Title string
	Count int
	Page  int
}

// values encodes the non-zero parameters as URL query values.
func (p MovieParams) values() url.Values {
	v := url.Values{}
	if p.Genre != "" {
		v.Set("genre", p.Genre)
	}
	if p.Title != "" {
		v.Set("title", p.Title)
	}
	if p.Count > 0 {
		v.Set("count", strconv.Itoa(p.Count))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	return v
}
