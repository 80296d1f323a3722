package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/cosmicdefender/internal/config"
	"github.com/tomz197/cosmicdefender/internal/draw"
	"github.com/tomz197/cosmicdefender/internal/game"
	"github.com/tomz197/cosmicdefender/internal/highscore"
	"github.com/tomz197/cosmicdefender/internal/loop"
)

const (
	appName            = "cosmicdefender"
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	level, err := log.ParseLevel(config.GetEnv("COSMIC_LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "ssh",
		Level:           level,
		ReportTimestamp: true,
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	store, err := highscore.Open(appName)
	if err != nil {
		logger.Warn("high score will not be saved", "err", err)
	}

	srv := &server{
		log:      logger,
		store:    store,
		idle:     config.GetEnvDuration("SSH_IDLE_TIMEOUT", loop.DefaultIdleTimeout),
		shutdown: make(chan struct{}),
		reloads:  newHub(),
	}
	if path := config.GetEnv("COSMIC_TUNABLES", ""); path != "" {
		w, err := srv.watchTunables(path)
		if err != nil {
			logger.Error("failed to load tunables", "path", path, "err", err)
			os.Exit(1)
		}
		if w != nil {
			defer w.Close()
		}
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server, notifying players")
	srv.drain(loop.ShutdownDisplay + 2*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// server holds state shared by all SSH sessions. Each session plays its own game.
type server struct {
	log      *log.Logger
	store    game.HighScoreStore
	idle     time.Duration
	tunables tunablesRef
	shutdown chan struct{}
	reloads  *hub

	mu       sync.Mutex // Guards closing and sessions.Add
	closing  bool
	sessions sync.WaitGroup
}

// join registers a new session. It fails once the server is shutting down.
func (s *server) join() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.sessions.Add(1)
	return true
}

// watchTunables loads path for new sessions and forwards changes to running ones.
func (s *server) watchTunables(path string) (*config.Watcher, error) {
	t, err := config.LoadTunables(path)
	if err != nil {
		return nil, err
	}
	s.tunables.Store(t)

	w, err := config.WatchFile(path)
	if err != nil {
		s.log.Warn("tunables will not be reloaded", "err", err)
		return nil, nil
	}
	go func() {
		for {
			select {
			case p, ok := <-w.Events:
				if !ok {
					return
				}
				if t, err := config.LoadTunables(p); err == nil {
					s.tunables.Store(t)
				}
				s.reloads.broadcast(p)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.Warn("tunables watcher", "err", err)
			}
		}
	}()
	return w, nil
}

// drain tells every session to show the shutdown notice and waits up to
// timeout for them to end.
func (s *server) drain(timeout time.Duration) {
	s.mu.Lock()
	s.closing = true
	close(s.shutdown)
	s.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		s.log.Info("all sessions ended")
	case <-time.After(timeout):
		s.log.Warn("sessions still running after shutdown notice")
	}
}

// gameMiddleware handles SSH sessions and runs one game per session.
func (s *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		if !s.join() {
			fmt.Fprintln(sess, "Server is shutting down. Please try again later.")
			return
		}
		defer s.sessions.Done()

		logger := s.log.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reload, unsubscribe := s.reloads.subscribe()
		defer unsubscribe()

		gameOpts := []game.Option{game.WithHighScoreStore(s.store)}
		if t, ok := s.tunables.Load(); ok {
			gameOpts = append(gameOpts, game.WithTunables(t))
		}

		opts := loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
			Game:         gameOpts,
			Hold:         config.GetEnvDuration("COSMIC_KEY_HOLD", 0),
			Reload:       reload,
			IdleTimeout:  s.idle,
			Shutdown:     s.shutdown,
		}
		if err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, opts); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
