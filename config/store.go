package config

import (
	"sort"
	"sync"
)

// Well-known configuration keys.
const (
	KeyBaseURL = "dexi.baseUrl"
	KeyAccount = "dexi.account"
	KeyAPIKey  = "dexi.apiKey"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "https://api.dexi.io/"

// Store holds resolved configuration as flat "section.key" values together
// with the source of each value. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	values  map[string]string
	sources map[string]Source
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}
}

// Get returns the value for a key, or empty string if not set.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Lookup returns the value for a key and whether it is set.
func (s *Store) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetOrDefault returns the value for a key, or def if not set.
func (s *Store) GetOrDefault(key, def string) string {
	if v, ok := s.Lookup(key); ok {
		return v
	}
	return def
}

// Source returns the source of a key's value.
func (s *Store) Source(key string) Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sources[key]
}

// GetWithSource returns both the value and its source.
func (s *Store) GetWithSource(key string) (string, Source) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], s.sources[key]
}

// Len returns the number of keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// All returns a copy of all key-value pairs.
func (s *Store) All() FlatMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(FlatMap, len(s.values))
	for k, v := range s.values {
		result[k] = v
	}
	return result
}

// Keys returns all configuration keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset removes every key.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	s.sources = make(map[string]Source)
}

// BaseURL returns dexi.baseUrl, or DefaultBaseURL if unset.
func (s *Store) BaseURL() string {
	return s.GetOrDefault(KeyBaseURL, DefaultBaseURL)
}

// Account returns dexi.account, or empty string if unset.
func (s *Store) Account() string {
	return s.Get(KeyAccount)
}

// APIKey returns dexi.apiKey, or empty string if unset.
func (s *Store) APIKey() string {
	return s.Get(KeyAPIKey)
}

// Credentials returns the three values needed to sign API requests.
func (s *Store) Credentials() Credentials {
	return Credentials{
		BaseURL: s.BaseURL(),
		Account: s.Account(),
		APIKey:  s.APIKey(),
	}
}

func (s *Store) update(fn func(values map[string]string, sources map[string]Source)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.values, s.sources)
}
