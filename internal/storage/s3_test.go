package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURLRoundTrip(t *testing.T) {
	s := &S3Store{bucket: "media", publicURL: "https://cdn.example.com"}

	url := s.objectURL("videos/abc-123")
	assert.Equal(t, "https://cdn.example.com/media/videos/abc-123", url)

	key, ok := s.keyFromURL(url)
	assert.True(t, ok)
	assert.Equal(t, "videos/abc-123", key)
}

func TestKeyFromForeignURL(t *testing.T) {
	s := &S3Store{bucket: "media", publicURL: "https://cdn.example.com"}

	_, ok := s.keyFromURL("https://elsewhere.example.com/media/videos/abc")
	assert.False(t, ok)

	_, ok = s.keyFromURL("not a url")
	assert.False(t, ok)
}
