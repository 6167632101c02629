// Package cli implements the redislite command-line entrypoint: flag
// parsing, config resolution, RDB bootstrap, and the signal-driven
// server lifecycle.
package cli

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"redislite/internal/config"
	"redislite/internal/logger"
	"redislite/internal/rdb"
	"redislite/internal/server"
	"redislite/internal/store"
)

// Execute parses args and runs the server, returning a process exit
// code. Unrecognized flags are left to the standard flag package's
// default handling; a parse error other than -h/--help is reported and
// yields a non-zero exit.
func Execute(args []string) int {
	switch {
	case len(args) == 1 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help"):
		printUsage()
		return 0
	case len(args) == 1 && (args[0] == "version" || args[0] == "--version" || args[0] == "-v"):
		fmt.Println("redislite 0.1.0-dev")
		return 0
	}
	return runServer(args)
}

func runServer(args []string) int {
	fs := flag.NewFlagSet("redislite", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	defaults := config.Defaults()
	var (
		configPath string
		dir        string
		dbFilename string
		port       int
		logLevel   string
	)
	fs.StringVar(&configPath, "config", "", "Optional YAML config file path")
	fs.StringVar(&dir, "dir", "", "Directory containing the RDB snapshot to load at startup")
	fs.StringVar(&dbFilename, "dbfilename", "", "RDB snapshot file name")
	fs.IntVar(&port, "port", 0, "TCP port to listen on")
	fs.StringVar(&logLevel, "loglevel", "", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "failed to parse arguments: %v\n", err)
		return 2
	}

	cfg, err := config.LoadFile(configPath, defaults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 2
	}

	// CLI flags take precedence over the config file.
	if dir != "" {
		cfg.Dir = dir
	}
	if dbFilename != "" {
		cfg.DBFilename = dbFilename
	}
	if port != 0 {
		cfg.Port = port
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 2
	}

	if err := logger.Init(cfg.Dir, logger.ParseLevel(cfg.LogLevel), "redislite.log"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		return 1
	}
	defer logger.Close()

	ks := store.New()
	if err := loadSnapshot(ks, cfg); err != nil {
		logger.Error("failed to load RDB snapshot: %v", err)
		return 1
	}

	srv := &server.Server{Keyspace: ks, Config: cfg}
	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	if err := srv.Listen(addr); err != nil {
		logger.Error("failed to bind %s: %v", addr, err)
		return 1
	}
	logger.Console("redislite listening on %s (dir=%s dbfilename=%s)", addr, cfg.Dir, cfg.DBFilename)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped: %v", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		logger.Console("signal %v received, shutting down", sig)
		srv.Close()
		<-errCh
		return 0
	}
}

func loadSnapshot(ks *store.Keyspace, cfg config.Config) error {
	path := cfg.RDBPath()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Console("no RDB file at %s, starting with an empty keyspace", path)
			return nil
		}
		return err
	}
	defer f.Close()

	snap, err := rdb.Read(f)
	if err != nil {
		return err
	}
	ks.LoadValues(snap.Values, snap.Expires)
	logger.Console("loaded %d key(s) from %s", len(snap.Values), path)
	return nil
}

func printUsage() {
	fmt.Println(`redislite - a minimal RESP2-compatible key/value server

Usage:
  redislite [--dir <path>] [--dbfilename <name>] [--port <n>] [--config <file>] [--loglevel <level>]
  redislite help
  redislite version`)
}
