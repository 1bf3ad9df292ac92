package session

import "sync"

// Navigator tells the session which view is current and lets it move the admin elsewhere.
type Navigator interface {
	CurrentPath() string
	Navigate(path string)
}

// PendingNavigation records a navigation requested while a page is being served; the
// HTTP layer turns it into a redirect once the handler returns. The first request wins
// until it is reset.
type PendingNavigation struct {
	mu      sync.Mutex
	current string
	target  string
}

// NewPendingNavigation starts on the given view.
func NewPendingNavigation(current string) *PendingNavigation {
	return &PendingNavigation{current: current}
}

func (n *PendingNavigation) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *PendingNavigation) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.target == "" {
		n.target = path
	}
}

// Target returns the requested destination, if any.
func (n *PendingNavigation) Target() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target, n.target != ""
}
