// Package session holds per-conversation state: which screen the user is
// on, the project being edited, the one staged change awaiting a yes, and
// the labels of the last project listing.
package session

import (
	"sync"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

// State is the conversation's position in the menu flow.
type State string

const (
	StateMenu           State = "menu"
	StateNewEvent       State = "new_event"
	StateProjectSelect  State = "project_select"
	StateProjectEdit    State = "project_edit"
	StateProjectConfirm State = "project_confirm"
)

// Context is the explicit session object passed to every handler.
type Context struct {
	ConversationID   string
	State            State
	CurrentProjectID string
	Pending          *domain.PendingChange
	// ProjectMap maps menu labels of the last listing to event ids.
	ProjectMap map[string]string
}

func newContext(id string) *Context {
	return &Context{
		ConversationID: id,
		State:          StateMenu,
		ProjectMap:     map[string]string{},
	}
}

// StagePending replaces any outstanding change and moves to confirmation.
func (c *Context) StagePending(change *domain.PendingChange) {
	c.Pending = change
	c.State = StateProjectConfirm
}

// ClearPending drops the staged change and returns to editing.
func (c *Context) ClearPending() *domain.PendingChange {
	p := c.Pending
	c.Pending = nil
	if c.State == StateProjectConfirm {
		c.State = StateProjectEdit
	}
	return p
}

// Reset returns the conversation to the main menu, forgetting the current
// project, any staged change, and the last listing.
func (c *Context) Reset() {
	c.State = StateMenu
	c.CurrentProjectID = ""
	c.Pending = nil
	c.ProjectMap = map[string]string{}
}

// Store keeps session contexts in memory, keyed by conversation id.
// Contexts idle longer than the TTL are discarded, which is an implicit
// cancel of any staged change.
type Store struct {
	mu    sync.Mutex
	items *gocache.Cache
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := time.Minute
	if ttl > 0 && ttl < cleanup {
		cleanup = ttl
	}
	return &Store{items: gocache.New(ttl, cleanup)}
}

// Get returns the context for id, creating a fresh one at conversation
// start. Each access extends the idle expiry.
func (s *Store) Get(id string) *Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.items.Get(id); ok {
		c := v.(*Context)
		s.items.SetDefault(id, c)
		return c
	}
	c := newContext(id)
	s.items.SetDefault(id, c)
	return c
}

// Drop forgets the context entirely.
func (s *Store) Drop(id string) {
	s.items.Delete(id)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.items.ItemCount()
}
