package server

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/laserfall/internal/loop/config"
)

func newTestServer() *Server {
	return NewServer(config.Default(), log.New(io.Discard))
}

func TestRegisterClientGivesEachClientItsOwnSession(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")

	assert.NotEqual(t, a.ID, b.ID)
	require.NotNil(t, a.Session)
	require.NotNil(t, b.Session)
	assert.NotSame(t, a.Session, b.Session)
	assert.NotEqual(t, a.Session.ID(), b.Session.ID())
	assert.Equal(t, 2, s.Players())

	a.Session.Ship().MoveLeft()
	assert.NotEqual(t, a.Session.Ship().Pos, b.Session.Ship().Pos)
}

func TestUnregisterClient(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("alice")
	s.UnregisterClient(a.ID)
	s.UnregisterClient(a.ID)
	assert.Equal(t, 0, s.Players())

	b := s.RegisterClient("bob")
	assert.NotEqual(t, a.ID, b.ID, "client ids are not reused")
}

func TestSubmitScoreKeepsBestPerClient(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")

	s.SubmitScore(a.ID, 4)
	s.SubmitScore(b.ID, 7)
	s.SubmitScore(a.ID, 2)
	s.SubmitScore(b.ID, 0)

	top := s.TopScores()
	require.Len(t, top, 2)
	assert.Equal(t, "bob", top[0].Username)
	assert.Equal(t, 7, top[0].Score)
	assert.Equal(t, "alice", top[1].Username)
	assert.Equal(t, 4, top[1].Score)

	s.SubmitScore(a.ID, 9)
	top = s.TopScores()
	require.Len(t, top, 2)
	assert.Equal(t, "alice", top[0].Username)
	assert.Equal(t, 9, top[0].Score)
}

func TestLeaderboardTiesAndCap(t *testing.T) {
	s := newTestServer()
	var ids []int
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		ids = append(ids, s.RegisterClient(name).ID)
	}
	for _, id := range ids {
		s.SubmitScore(id, 3)
	}

	top := s.TopScores()
	require.Len(t, top, config.TopScoresCount)
	assert.Equal(t, "a", top[0].Username, "earlier client wins ties")
	assert.Equal(t, "e", top[len(top)-1].Username)
}

func TestSubmitScoreIgnoresUnknownClient(t *testing.T) {
	s := newTestServer()
	s.SubmitScore(42, 10)
	assert.Empty(t, s.TopScores())
}

func TestScoresSurviveDisconnect(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("alice")
	s.SubmitScore(a.ID, 5)
	s.UnregisterClient(a.ID)

	require.Len(t, s.TopScores(), 1)
	assert.Equal(t, 5, s.TopScores()[0].Score)
}

func TestShutdownCancelsContextAndWaitsForClients(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("alice")

	go func() {
		<-s.Context().Done()
		s.UnregisterClient(a.ID)
	}()

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("shutdown did not return after the last client left")
	}
	assert.Error(t, s.Context().Err())
	assert.Equal(t, 0, s.Players())
}

func TestShutdownTimesOut(t *testing.T) {
	s := newTestServer()
	s.RegisterClient("stuck")

	start := time.Now()
	s.Shutdown(300 * time.Millisecond)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, s.Players())
}
