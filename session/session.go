package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abiiranathan/docsearch/controller"
)

// CookieName is the cookie carrying a visitor's session id.
const CookieName = "docsearch_session"

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Session is one visitor's page state. Lock it while reading or
// changing the view.
type Session struct {
	sync.Mutex
	ID   string
	View controller.View

	lastSeen time.Time
}

// Store keeps sessions in memory.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{sessions: make(map[string]*Session), ttl: ttl, now: time.Now}
}

// Get returns the session with id, or a new one when id is unknown or
// expired. created reports whether a new session was made.
func (s *Store) Get(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[id]; ok && now.Sub(sess.lastSeen) < s.ttl {
		sess.lastSeen = now
		return sess, false
	}

	sess = &Session{ID: uuid.NewString(), lastSeen: now}
	s.sessions[sess.ID] = sess
	return sess, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// FromRequest returns the session named by the request cookie, setting a
// fresh cookie on w when a new session had to be created.
func (s *Store) FromRequest(w http.ResponseWriter, r *http.Request) *Session {
	var id string
	if c, err := r.Cookie(CookieName); err == nil {
		id = c.Value
	}

	sess, created := s.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}
