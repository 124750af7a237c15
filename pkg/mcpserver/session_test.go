package mcpserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initialize(t *testing.T, s *Server) string {
	t.Helper()
	resp := s.HandleRequest(context.Background(), &JSONRPCRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	require.NotNil(t, resp)
	result, ok := resp.Result.(*InitializeResult)
	require.True(t, ok)
	require.NotEmpty(t, result.SessionID)
	return result.SessionID
}

func TestSessions_ExpireAndArePruned(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New("sessions", "test")
	s.now = func() time.Time { return clock }
	s.SetSessionTTL(time.Minute)

	stale := initialize(t, s)
	kept := initialize(t, s)

	clock = clock.Add(40 * time.Second)
	assert.True(t, s.CheckSession(kept))

	clock = clock.Add(40 * time.Second)
	fresh := initialize(t, s)

	assert.Len(t, s.sessions, 2)
	assert.NotContains(t, s.sessions, stale)
	assert.False(t, s.CheckSession(stale))
	assert.True(t, s.CheckSession(kept))
	assert.True(t, s.CheckSession(fresh))
}

func TestSessions_CheckRejectsExpired(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New("sessions", "test")
	s.now = func() time.Time { return clock }
	s.SetSessionTTL(time.Minute)

	id := initialize(t, s)
	clock = clock.Add(2 * time.Minute)

	assert.False(t, s.CheckSession(id))
	assert.Empty(t, s.sessions)
	assert.False(t, s.CheckSession("never-issued"))
}
