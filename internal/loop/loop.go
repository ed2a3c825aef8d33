// Package loop runs a single local game in the current terminal.
package loop

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/laserfall/internal/loop/client"
	"github.com/tomz197/laserfall/internal/loop/config"
	"github.com/tomz197/laserfall/internal/loop/server"
)

// Options configures a local game.
type Options struct {
	Tuning   config.Tuning
	Logger   *log.Logger
	Username string
}

// Run plays one game session reading keys from r and drawing to w.
// Blocks until the player quits or r ends.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	username := opts.Username
	if username == "" {
		username = "player"
	}
	srv := server.NewServer(opts.Tuning, opts.Logger)
	c := client.NewClient(srv, username, r, w, client.ClientOptions{Logger: opts.Logger})
	return c.Run()
}
