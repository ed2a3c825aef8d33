package client

import (
	"time"

	"github.com/tomz197/laserfall/internal/input"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Out of lives, show restart prompt
	GameStateShutdown                  // Server shutting down, show notice then disconnect
)

// ClientState holds per-connection UI state. Game state lives in the session.
type ClientState struct {
	Input     input.Input
	GameState GameState
	Running   bool

	livesText string // HUD text, refreshed from session events
	scoreText string

	fireCooldown time.Duration // Time until the next shot is allowed
	moveCooldown time.Duration // Time until a held direction moves again

	isInactive    bool
	wasInactive   bool
	prevGameState GameState
	shutdownTimer float64
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
