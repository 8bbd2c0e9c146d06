package resourcestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ListIsSortedByURI(t *testing.T) {
	s := New()
	s.Register(&Resource{URI: "file:///z.txt", Name: "z"})
	s.Register(&Resource{URI: "file:///a.txt", Name: "a"})

	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "file:///a.txt", got[0].URI)
	assert.Equal(t, "file:///z.txt", got[1].URI)
}

func TestStore_ReadReturnsRegisteredContent(t *testing.T) {
	s := New()
	s.Register(&Resource{URI: "file:///readme.txt", Content: "hello", MIMEType: "text/plain"})

	r, err := s.Read("file:///readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", r.Content)
	assert.Equal(t, "text/plain", r.MIMEType)
}

func TestStore_ReadUnknownURIErrors(t *testing.T) {
	s := New()
	_, err := s.Read("file:///missing.txt")
	assert.Error(t, err)
}

func TestStore_RegisterOverwritesSameURI(t *testing.T) {
	s := New()
	s.Register(&Resource{URI: "file:///x.txt", Content: "first"})
	s.Register(&Resource{URI: "file:///x.txt", Content: "second"})

	r, err := s.Read("file:///x.txt")
	require.NoError(t, err)
	assert.Equal(t, "second", r.Content)
	assert.Len(t, s.List(), 1)
}
