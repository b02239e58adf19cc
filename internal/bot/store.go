package bot

import "sync"

// GlobalScope is the scope key used by variants that share one conversation
// across all channels and users.
const GlobalScope = "global"

// conversation holds the ordered exchanges for one scope.
type conversation struct {
	exchanges []Exchange
	mu        sync.Mutex
}

// Store manages conversation histories keyed by scope. Scope entries are
// created lazily on first append. Appends are atomic per scope; concurrent
// turns against the same scope may still interleave their read/append pairs,
// which is accepted behavior for the shared-history variant.
type Store struct {
	scopes map[string]*conversation
	mu     sync.RWMutex

	// limit bounds each scope's history; oldest exchanges are evicted first.
	// 0 means unbounded.
	limit int
}

// NewStore creates a new conversation store holding at most limit exchanges
// per scope.
func NewStore(limit int) *Store {
	return &Store{
		scopes: make(map[string]*conversation),
		limit:  limit,
	}
}

// Append records an exchange at the end of the scope's history, creating the
// scope entry if absent.
func (s *Store) Append(scope string, x Exchange) {
	s.mu.Lock()
	conv, exists := s.scopes[scope]
	if !exists {
		conv = &conversation{}
		s.scopes[scope] = conv
	}
	s.mu.Unlock()

	conv.mu.Lock()
	defer conv.mu.Unlock()
	conv.exchanges = append(conv.exchanges, x)
	if s.limit > 0 && len(conv.exchanges) > s.limit {
		conv.exchanges = conv.exchanges[len(conv.exchanges)-s.limit:]
	}
}

// History returns a copy of the scope's exchanges in insertion order, oldest
// first. Empty slice if the scope was never written.
func (s *Store) History(scope string) []Exchange {
	s.mu.RLock()
	conv, exists := s.scopes[scope]
	s.mu.RUnlock()

	if !exists {
		return []Exchange{}
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()

	out := make([]Exchange, len(conv.exchanges))
	copy(out, conv.exchanges)
	return out
}

// Len returns the number of exchanges recorded for a scope.
func (s *Store) Len(scope string) int {
	s.mu.RLock()
	conv, exists := s.scopes[scope]
	s.mu.RUnlock()

	if !exists {
		return 0
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()
	return len(conv.exchanges)
}

// Clear drops the scope's history entirely.
func (s *Store) Clear(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.scopes, scope)
}
