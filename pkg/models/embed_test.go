package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbedURL(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":        "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                       "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":          "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube-nocookie.com/v/dQw4w9WgXcQ":     "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=x&v=abc12345": "https://www.youtube.com/embed/abc12345",
		"https://www.youtube.com/":                           "https://www.youtube.com/embed/",
		"http://vimeo.com/123":                               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, EmbedURL(in), in)
	}
}
