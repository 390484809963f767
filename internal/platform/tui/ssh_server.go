package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/arena/internal/config"
	"github.com/vovakirdan/arena/internal/level"
	"github.com/vovakirdan/arena/internal/sim"
	"github.com/vovakirdan/arena/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arena/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the base simulation config every connection starts from.
	Game config.Config

	// Preset is the difficulty the menu starts on.
	Preset config.DifficultyPreset

	// RenderFPS is the frame rate of each connection's viewer.
	RenderFPS int

	// MaxSessions caps concurrent connections; 0 means unlimited.
	MaxSessions int

	// ConnectRate limits new connections per second across the server,
	// with bursts up to ConnectBurst. 0 disables the limit.
	ConnectRate  float64
	ConnectBurst int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:      ":23234",
		DBPath:       "~/.arena/runs.db",
		IdleTimeout:  30 * time.Minute,
		Game:         config.Default(),
		Preset:       config.DifficultyNormal,
		RenderFPS:    30,
		MaxSessions:  32,
		ConnectRate:  2,
		ConnectBurst: 5,
	}
}

// SSHServer wraps a Wish SSH server for the arena.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	conns  *Connections
	admit  *rate.Limiter
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger gets a timestamped stderr logger.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arena-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
		conns:  NewConnections(cfg.MaxSessions),
		admit:  rate.NewLimiter(rate.Inf, 0),
	}
	if cfg.ConnectRate > 0 {
		srv.admit = rate.NewLimiter(rate.Limit(cfg.ConnectRate), max(cfg.ConnectBurst, 1))
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arena", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middleware runs last to first: connections are admitted and logged
	// before a program starts.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(SessionOptions{
		Store:     s.store,
		Logger:    s.logger,
		Game:      s.config.Game,
		Preset:    s.config.Preset,
		RenderFPS: s.config.RenderFPS,
		Username:  sshSession.User(),
		Width:     pty.Window.Width,
		Height:    pty.Window.Height,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware admits the session against the connection cap and logs
// its start and end.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		conn := Connection{
			ID:      uuid.NewString(),
			User:    sshSession.User(),
			Remote:  sshSession.RemoteAddr().String(),
			Started: time.Now(),
		}
		if !s.admit.Allow() {
			s.logger.Warn("session refused", "user", conn.User, "remote", conn.Remote, "reason", "rate limited")
			wish.Fatalln(sshSession, "arena: too many connections, try again shortly")
			return
		}
		if err := s.conns.Register(conn); err != nil {
			s.logger.Warn("session refused", "user", conn.User, "remote", conn.Remote, "error", err)
			wish.Fatalln(sshSession, "arena: server is full, try again later")
			return
		}
		defer s.conns.Unregister(conn.ID)

		s.logger.Info("session started",
			"user", conn.User,
			"remote", conn.Remote,
			"active", s.conns.Count(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", conn.User,
			"remote", conn.Remote,
			"duration", time.Since(conn.Started).Round(time.Second),
		)
	}
}

// Active returns the number of live sessions.
func (s *SSHServer) Active() int {
	return s.conns.Count()
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures one connection's SessionModel.
type SessionOptions struct {
	Store     *storage.Store
	Logger    *log.Logger
	Game      config.Config
	Preset    config.DifficultyPreset
	RenderFPS int
	Username  string
	Width     int
	Height    int
}

type screenKind uint8

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages one connection's flow: menu -> game -> menu, with
// the scoreboard reachable from the menu. Every game gets its own
// simulation and seed.
type SessionModel struct {
	opts       SessionOptions
	sessionID  string
	logger     *log.Logger
	screen     screenKind
	menu       MenuModel
	game       *Model
	scoreboard ScoreboardModel
	quitting   bool
	err        error
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	id := uuid.NewString()
	return SessionModel{
		opts:      opts,
		sessionID: id,
		logger:    opts.Logger.With("session", id[:8], "user", opts.Username),
		menu:      NewMenuModel(opts.Store, opts.Preset, opts.Width, opts.Height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.opts.Width, m.opts.Height)
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		game, err := m.startGame(m.menu.Selected().Level, m.menu.Preset())
		if err != nil {
			m.logger.Error("could not start game", "error", err)
			m.err = err
			m.menu = NewMenuModel(m.opts.Store, m.menu.Preset(), m.opts.Width, m.opts.Height)
			return m, nil
		}
		m.err = nil
		m.game = &game
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// startGame builds a fresh simulation for the named level.
func (m SessionModel) startGame(name string, preset config.DifficultyPreset) (Model, error) {
	lvl, err := level.Get(name)
	if err != nil {
		return Model{}, err
	}
	cfg := m.opts.Game
	config.ApplyPreset(&cfg, preset)

	seed := time.Now().UnixNano()
	logger := m.logger.With("level", name)
	s, err := sim.NewForLevel(cfg, lvl, seed, logger)
	if err != nil {
		return Model{}, err
	}
	logger.Info("game started", "difficulty", preset, "seed", seed)

	return NewModel(s, m.opts.Store, logger, GameOptions{
		Level:     name,
		Mode:      "ssh",
		Player:    m.opts.Username,
		Seed:      seed,
		RenderFPS: m.opts.RenderFPS,
		Width:     m.opts.Width,
		Height:    m.opts.Height,
	}), nil
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = &game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.opts.Store, m.menu.Preset(), m.opts.Width, m.opts.Height)
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.opts.Store, m.menu.Preset(), m.opts.Width, m.opts.Height)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	if m.err != nil {
		return m.menu.View() + "\n" + centerText("error: "+m.err.Error(), m.opts.Width)
	}
	return m.menu.View()
}

// ID returns the connection's session ID.
func (m SessionModel) ID() string { return m.sessionID }
