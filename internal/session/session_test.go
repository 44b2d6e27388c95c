package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	sess := s.Create(42)
	require.NotEmpty(t, sess.Token)

	got, ok := s.Get(sess.Token)
	require.True(t, ok)
	assert.Equal(t, uint(42), got.UserID)

	s.Delete(sess.Token)
	_, ok = s.Get(sess.Token)
	assert.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	s := NewMemoryStore(-time.Second) // everything is born expired
	defer s.Close()

	sess := s.Create(1)
	_, ok := s.Get(sess.Token)
	assert.False(t, ok)
}

func TestUnknownToken(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	_, ok := s.Get("no-such-token")
	assert.False(t, ok)
}

func TestPendingLifecycle(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	s.PutPending("tok", &Pending{Email: "a@example.com", OTP: 1234, ExpiresAt: time.Now().Add(time.Minute)})

	p, ok := s.GetPending("tok")
	require.True(t, ok)
	assert.Equal(t, 1234, p.OTP)

	// A resubmitted registration overwrites the slot: last writer wins.
	s.PutPending("tok", &Pending{Email: "a@example.com", OTP: 5678, ExpiresAt: time.Now().Add(time.Minute)})
	p, ok = s.GetPending("tok")
	require.True(t, ok)
	assert.Equal(t, 5678, p.OTP)

	s.DeletePending("tok")
	_, ok = s.GetPending("tok")
	assert.False(t, ok)
}

func TestPendingExpiry(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	s.PutPending("tok", &Pending{OTP: 1234, ExpiresAt: time.Now().Add(-time.Second)})
	_, ok := s.GetPending("tok")
	assert.False(t, ok)
}
