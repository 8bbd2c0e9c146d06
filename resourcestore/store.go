// Package resourcestore is a minimal in-memory resources/list +
// resources/read backing store, mirroring promptstore's shape. Resource
// authoring is an external collaborator concern per spec.md's scope note;
// this package exists so the dispatcher's resources/list and
// resources/read branches are real, not stubs.
package resourcestore

import (
	"fmt"
	"sort"
	"sync"
)

// Resource is a named, URI-addressed piece of content a client can read.
type Resource struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
	Content     string
}

// Store is a guarded URI -> Resource map.
type Store struct {
	mu        sync.RWMutex
	resources map[string]*Resource
}

func New() *Store {
	return &Store{resources: map[string]*Resource{}}
}

func (s *Store) Register(r *Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[r.URI] = r
}

// List returns every registered resource's metadata, sorted by URI.
func (s *Store) List() []*Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URI < out[j].URI })
	return out
}

// Read returns the content of the resource addressed by uri.
func (s *Store) Read(uri string) (*Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[uri]
	if !ok {
		return nil, fmt.Errorf("resource not found: %s", uri)
	}
	return r, nil
}
