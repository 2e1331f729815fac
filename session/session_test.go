package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAndExpire(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(time.Minute)
	s.now = func() time.Time { return now }

	a, created := s.Get("")
	require.True(t, created)
	assert.NotEmpty(t, a.ID)

	again, created := s.Get(a.ID)
	assert.False(t, created)
	assert.Same(t, a, again)

	now = now.Add(2 * time.Minute)
	b, created := s.Get(a.ID)
	assert.True(t, created)
	assert.NotEqual(t, a.ID, b.ID)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestFromRequestSetsCookieOnce(t *testing.T) {
	s := NewStore(0)

	rec := httptest.NewRecorder()
	sess := s.FromRequest(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, sess.ID, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()

	assert.Same(t, sess, s.FromRequest(rec, req))
	assert.Empty(t, rec.Result().Cookies())
}
