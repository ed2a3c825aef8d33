// Package client runs one player's frame loop: it reads terminal input,
// turns it into ship commands, ticks that player's game session and draws
// the result.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/laserfall/internal/draw"
	"github.com/tomz197/laserfall/internal/input"
	"github.com/tomz197/laserfall/internal/loop/config"
	"github.com/tomz197/laserfall/internal/loop/server"
	"github.com/tomz197/laserfall/internal/loop/session"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	session      *session.GameSession
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
}

// NewClient registers a new player with srv and returns a client that
// plays their session, reading keys from r and drawing to w.
func NewClient(srv server.GameServer, username string, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	handle := srv.RegisterClient(username)
	sess := handle.Session
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, sess.Bounds())
	canvas.SetOffset(offsetCol, offsetRow)

	state := NewClientState()
	state.livesText = hudLives(sess.Lives())
	state.scoreText = hudScore(sess.Score())

	return &Client{
		server:       srv,
		handle:       handle,
		session:      sess,
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       logger.With("user", username, "session", sess.ID()),
	}
}

// Run starts the client loop. Blocks until the player quits, the input
// stream ends, or the server shuts down and the notice has been shown.
// The client is unregistered from the server when Run returns.
func (c *Client) Run() error {
	defer c.server.UnregisterClient(c.handle.ID)

	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()

		if c.server.Context().Err() != nil && c.state.GameState != GameStateShutdown {
			c.state.GameState = GameStateShutdown
			c.state.shutdownTimer = config.ShutdownDisplaySeconds
		}

		if err := c.update(delta); err != nil {
			return err
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	c.logger.Info("client finished", "score", c.session.Score())
	return nil
}

// processInput reads this frame's keys and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if c.inputStream.Closed() {
		c.state.Running = false
		return
	}

	if c.state.Input.Any() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// update advances the current screen by delta.
func (c *Client) update(delta time.Duration) error {
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		if c.state.Input.Fire || c.state.Input.Enter {
			c.startGame()
		}
	case GameStatePlaying:
		c.applyControls(delta)
		if err := c.session.Update(delta); err != nil {
			return err
		}
		c.processSessionEvents()
	case GameStateGameOver:
		if c.state.Input.Enter {
			c.startGame()
		}
	case GameStateShutdown:
		c.state.shutdownTimer -= delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
	}
	return nil
}

// applyControls turns held keys into ship commands. Held directions repeat
// every MoveRepeat and firing is limited to one laser per FireInterval.
func (c *Client) applyControls(delta time.Duration) {
	in := c.state.Input
	ship := c.session.Ship()

	c.state.moveCooldown -= delta
	if (in.Left || in.Right || in.Up || in.Down) && c.state.moveCooldown <= 0 {
		if in.Left {
			ship.MoveLeft()
		}
		if in.Right {
			ship.MoveRight()
		}
		if in.Up {
			ship.MoveUp()
		}
		if in.Down {
			ship.MoveDown()
		}
		c.state.moveCooldown = config.MoveRepeat
	}

	c.state.fireCooldown -= delta
	if in.Fire && c.state.fireCooldown <= 0 {
		ship.SpawnLaser()
		c.state.fireCooldown = config.FireInterval
	}
}

// processSessionEvents refreshes the HUD and switches screens on game over.
func (c *Client) processSessionEvents() {
	for {
		select {
		case e := <-c.session.Events():
			switch e.Type {
			case session.EventLivesChanged, session.EventNewGame:
				c.state.livesText = hudLives(e.Lives)
				c.state.scoreText = hudScore(e.Score)
			case session.EventScoreChanged:
				c.state.scoreText = hudScore(e.Score)
			case session.EventGameOver:
				c.enterGameOver()
			}
		default:
			// Events can be dropped when the buffer is full; the session
			// itself is authoritative for game over.
			if c.session.IsGameOver() {
				c.enterGameOver()
			}
			return
		}
	}
}

// enterGameOver switches to the game over screen and submits the score once.
func (c *Client) enterGameOver() {
	if c.state.GameState == GameStateGameOver {
		return
	}
	score := c.session.Score()
	c.logger.Info("game over", "score", score)
	c.server.SubmitScore(c.handle.ID, score)
	c.state.livesText = hudLives(c.session.Lives())
	c.state.scoreText = hudScore(score)
	c.state.GameState = GameStateGameOver
}

// startGame starts or restarts the game.
func (c *Client) startGame() {
	c.inputStream.Reset()
	c.session.NewGame()
	c.state.GameState = GameStatePlaying
	c.drainStaleEvents()
	c.state.livesText = hudLives(c.session.Lives())
	c.state.scoreText = hudScore(c.session.Score())
	c.state.fireCooldown = 0
	c.state.moveCooldown = 0
	c.logger.Debug("game started")
}

// drainStaleEvents discards queued events, which after NewGame all describe
// the previous game or the reset itself.
func (c *Client) drainStaleEvents() {
	for {
		select {
		case <-c.session.Events():
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual cells
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
