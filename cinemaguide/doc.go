// Package cinemaguide provides a client for the cinemaguide movie catalog API.
//
// The API exposes a movie catalog (listing, top ten, random pick, genres,
// single lookup), a per-user favorites list and a cookie-less bearer-token
// authentication flow. This package wraps all of it behind a single Client.
//
// # Usage
//
// Create a client with the API base URL and a token source (anything that
// can produce the current bearer token, typically the session store):
//
//	logger := zerolog.New(os.Stderr)
//	client, err := cinemaguide.NewClient(
//		"https://cinemaguide.skillbox.cc",
//		tokens,
//		logger,
//		cinemaguide.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	movies, err := client.TopMovies(ctx)
//
// Every request carries "Authorization: Bearer <token>" whenever the token
// source yields a non-empty token. A 401 response is logged as a warning
// and surfaced as an error wrapping ErrUnauthorized; no automatic re-auth
// or redirect is performed.
//
// # Authentication responses
//
// The API is not consistent about the shape of its auth responses: the
// token may appear as "token", "accessToken" or nested under "data", the
// user record may be wrapped or returned bare, and failures may be flagged
// by a boolean result field or an error message inside a 200 body. The
// normalization into AuthResult happens once here so callers never have to
// sniff response shapes themselves.
package cinemaguide
