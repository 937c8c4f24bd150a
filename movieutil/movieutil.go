// Package movieutil contains presentation helpers for movie data: rating
// colors and formatting, runtime formatting, trailer URL normalization
// and display titles for genres.
package movieutil

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Rating colors, keyed to the rating bands the catalog UI uses.
const (
	ColorGold  = "gold"
	ColorGreen = "green"
	ColorGray  = "gray"
	ColorRed   = "red"
)

// RatingColor maps a rating onto its display color: gold for 7.6 and up,
// green from 6.4, gray from 4.3, red below that and for non-finite input.
func RatingColor(rating float64) string {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return ColorRed
	}
	switch {
	case rating >= 7.6:
		return ColorGold
	case rating >= 6.4:
		return ColorGreen
	case rating >= 4.3:
		return ColorGray
	default:
		return ColorRed
	}
}

// FormatRating renders a rating with one decimal. Zero and non-finite
// ratings render as an em dash, matching "no rating yet".
func FormatRating(rating float64) string {
	if rating == 0 || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return "—"
	}
	return fmt.Sprintf("%.1f", rating)
}

// TimeFormat renders a duration in minutes as hours and minutes.
// Negative input renders empty.
func TimeFormat(minutes int) string {
	if minutes < 0 {
		return ""
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// youtubePatterns matches the watch, embed and short URL forms, capturing
// the 11-character video id.
var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([a-zA-Z0-9_-]{11})`),
}

// ConvertYoutubeURL normalizes any recognized YouTube URL to the
// canonical embed form. Already-embedded and unrecognized URLs are
// returned unchanged, so the function is idempotent.
func ConvertYoutubeURL(url string) string {
	if url == "" {
		return ""
	}
	if strings.Contains(url, "youtube.com/embed/") {
		return url
	}
	for _, pattern := range youtubePatterns {
		if match := pattern.FindStringSubmatch(url); len(match) > 1 {
			return "https://www.youtube.com/embed/" + match[1]
		}
	}
	return url
}

// Initials builds the one-or-two letter monogram for a user.
func Initials(name, surname string) string {
	var b strings.Builder
	if first := firstLetter(name); first != "" {
		b.WriteString(first)
	}
	if second := firstLetter(surname); second != "" {
		b.WriteString(second)
	}
	return b.String()
}

func firstLetter(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(string([]rune(s)[0]))
}

// genreTitles maps the API's genre slugs onto display titles.
var genreTitles = map[string]string{
	"action":      "Action",
	"adventure":   "Adventure",
	"animation":   "Animation",
	"comedy":      "Comedy",
	"crime":       "Crime",
	"documentary": "Documentary",
	"drama":       "Drama",
	"family":      "Family",
	"fantasy":     "Fantasy",
	"history":     "History",
	"horror":      "Horror",
	"music":       "Music",
	"mystery":     "Mystery",
	"romance":     "Romance",
	"scifi":       "Sci-Fi",
	"stand-up":    "Stand-Up",
	"thriller":    "Thriller",
	"tv-movie":    "TV Movie",
	"war":         "War",
	"western":     "Western",
}

// GenreTitle returns the display title for a genre slug, title-casing
// unknown slugs instead of failing.
func GenreTitle(slug string) string {
	if title, ok := genreTitles[strings.ToLower(slug)]; ok {
		return title
	}
	if slug == "" {
		return ""
	}
	runes := []rune(slug)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
