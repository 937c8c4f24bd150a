package movieutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingColor(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{10, ColorGold},
		{7.6, ColorGold},
		{7.59, ColorGreen},
		{6.4, ColorGreen},
		{6.39, ColorGray},
		{4.3, ColorGray},
		{4.29, ColorRed},
		{0, ColorRed},
		{-1, ColorRed},
		{math.NaN(), ColorRed},
		{math.Inf(1), ColorRed},
		{math.Inf(-1), ColorRed},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.rating), func(t *testing.T) {
			assert.Equal(t, tt.want, RatingColor(tt.rating))
		})
	}
}

func TestFormatRating(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{8.25, "8.2"},
		{7, "7.0"},
		{0, "—"},
		{math.NaN(), "—"},
		{math.Inf(1), "—"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRating(tt.rating))
	}
}

func TestTimeFormat(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{59, "0h 59m"},
		{60, "1h 0m"},
		{90, "1h 30m"},
		{135, "2h 15m"},
		{-5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeFormat(tt.minutes))
		})
	}
}

func TestConvertYoutubeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "watch URL",
			in:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "short URL",
			in:   "https://youtu.be/dQw4w9WgXcQ",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "embed URL unchanged",
			in:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "no scheme",
			in:   "www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "unrecognized input unchanged",
			in:   "https://vimeo.com/123456",
			want: "https://vimeo.com/123456",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := ConvertYoutubeURL(tt.in)
			assert.Equal(t, tt.want, once)
			// idempotent: converting twice equals converting once
			assert.Equal(t, once, ConvertYoutubeURL(once))
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name    string
		surname string
		want    string
	}{
		{"Ada", "Lovelace", "AL"},
		{"ada", "lovelace", "AL"},
		{"  ada  ", "", "A"},
		{"", "lovelace", "L"},
		{"", "", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Initials(tt.name, tt.surname))
	}
}

func TestGenreTitle(t *testing.T) {
	assert.Equal(t, "Sci-Fi", GenreTitle("scifi"))
	assert.Equal(t, "Drama", GenreTitle("drama"))
	assert.Equal(t, "Drama", GenreTitle("DRAMA"))
	assert.Equal(t, "Noir", GenreTitle("noir"), "unknown slugs are title-cased")
	assert.Equal(t, "", GenreTitle(""))
}
