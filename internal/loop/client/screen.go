package client

import (
	"fmt"
	"time"

	"github.com/tomz197/laserfall/internal/loop/config"
	"github.com/tomz197/laserfall/internal/loop/session"
	"github.com/tomz197/laserfall/internal/object"
)

// HUD fields are padded so a shrinking value doesn't leave residue behind.
func hudLives(lives int) string { return fmt.Sprintf("%-10s", session.FormatLives(lives)) }
func hudScore(score int) string { return fmt.Sprintf("%-14s", session.FormatScore(score)) }

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// A full clear on screen transitions so the previous screen's text is gone.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateGameOver {
		if err := c.session.Draw(object.DrawContext{Canvas: c.canvas}); err != nil {
			return err
		}
	}
	c.canvas.Render(c.chunkWriter)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()
	centerY := height / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(width, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(width, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(width, centerY)
	case GameStatePlaying:
		c.drawPlayingHUD(width, height)
	case GameStateGameOver:
		c.drawPlayingHUD(width, height)
		c.drawGameOverScreen(width, centerY)
	}
}

// drawPlayingHUD draws score top left, lives top right and the number of
// connected players bottom right.
func (c *Client) drawPlayingHUD(width, height int) {
	cw := c.chunkWriter
	cw.WriteAt(2, 1, c.state.scoreText)
	cw.WriteAt(max(width-len(c.state.livesText), 1), 1, c.state.livesText)

	players := fmt.Sprintf("Players: %-4d", c.server.Players())
	cw.WriteAt(max(width-len(players), 1), height, players)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(width, centerY int) {
	// figlet "small" font
	titleArt := []string{
		` _      _   ___ ___ ___ ___ _   _    _    `,
		`| |    /_\ / __| __| _ \ __/_\ | |  | |   `,
		`| |__ / _ \\__ \ _||   / _/ _ \| |__| |__ `,
		`|____/_/ \_\___/___|_|_\_/_/ \_\____|____|`,
	}

	cw := c.chunkWriter
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteCentered(width, titleStartY+i, line)
	}

	cw.WriteCentered(width, titleStartY+len(titleArt)+1, "~ Shoot the rocks before they reach you ~")

	controlsY := titleStartY + len(titleArt) + 3
	cw.WriteCentered(width, controlsY, "Controls")
	controlLines := []string{
		"W A S D / arrows . . Move",
		"SPACE  . . . . . . . Fire",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteCentered(width, controlsY+1+i, line)
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(width, controlsY+len(controlLines)+2, ">>  Press SPACE to Start  <<")
	}
}

// drawGameOverScreen draws the game over banner over the frozen playfield.
func (c *Client) drawGameOverScreen(width, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	cw := c.chunkWriter
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteCentered(width, titleStartY+i, line)
	}

	cw.WriteCentered(width, titleStartY+len(titleArt)+1, session.FormatScore(c.session.Score()))

	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(width, titleStartY+len(titleArt)+3, ">>  Press ENTER to Play Again  <<")
	}

	top := c.server.TopScores()
	if len(top) == 0 {
		return
	}
	boardY := titleStartY + len(titleArt) + 5
	cw.WriteCentered(width, boardY, "Top Scores")
	for i, entry := range top {
		line := fmt.Sprintf("%d. %-16.16s %6d", i+1, entry.Username, entry.Score)
		cw.WriteCentered(width, boardY+1+i, line)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(width, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(width, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteCentered(width, centerY, msg)
	cw.WriteCentered(width, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(width, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(width, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(width, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(width, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(width, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	cw.WriteCentered(width, centerY+4, "Press Q to disconnect now")
}
