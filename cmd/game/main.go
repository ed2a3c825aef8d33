package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/laserfall/internal/config"
	"github.com/tomz197/laserfall/internal/loop"
	gameconfig "github.com/tomz197/laserfall/internal/loop/config"
)

func main() {
	// Raw mode owns the terminal, so logs go to stderr and only warnings by default.
	logger := config.NewLogger(os.Stderr, "game")
	if _, ok := os.LookupEnv("LOG_LEVEL"); !ok {
		logger.SetLevel(log.WarnLevel)
	}

	tuning, err := gameconfig.Load(config.GetEnv("GAME_CONFIG", ""))
	if err != nil {
		logger.Fatal("invalid game config", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.Options{
		Tuning:   tuning,
		Logger:   logger,
		Username: config.GetEnv("USER", ""),
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
