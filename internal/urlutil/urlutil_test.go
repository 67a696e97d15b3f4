package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePresentationURL(t *testing.T) {
	valid := []string{
		"https://pitch.com/v/my-deck",
		"https://www.pitch.com/v/quarterly-review-abc123",
		"https://app.pitch.com/app/public/player/12ab34cd-5678-90ef-1234-567890abcdef/98fe76dc-5432-10ba-9876-543210fedcba",
		"https://pitch.com/public/12ab34cd-5678-90ef-1234-567890abcdef/98fe76dc-5432-10ba-9876-543210fedcba",
		"http://pitch.com/v/deck",
	}
	for _, url := range valid {
		assert.True(t, ValidatePresentationURL(url), url)
	}

	invalid := []string{
		"",
		"not a url",
		"https://example.com/v/deck",
		"https://evil-pitch.com/v/deck",
		"https://pitch.com/dashboard",
		"ftp://pitch.com/v/deck",
		"https://pitch.com/public/not-hex/also-not",
	}
	for _, url := range invalid {
		assert.False(t, ValidatePresentationURL(url), url)
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_deck", SanitizeFilename(`my/deck`))
	assert.Equal(t, "a_b_c", SanitizeFilename(`a<b>c`))
	assert.Equal(t, "presentation", SanitizeFilename("  ..  "))
	assert.Equal(t, "presentation", SanitizeFilename(""))

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, SanitizeFilename(string(long)), 100)
}

func TestTitleFromURL(t *testing.T) {
	assert.Equal(t, "Quarterly Review", TitleFromURL("https://pitch.com/v/quarterly-review"))
	assert.Equal(t, "Presentation", TitleFromURL("https://pitch.com/public/ab/cd"))
	assert.Equal(t, "Presentation", TitleFromURL("://bad"))
}
