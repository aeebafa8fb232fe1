package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultCleanupTimeout bounds how long Run waits for cleanups once every server has stopped.
const DefaultCleanupTimeout = 30 * time.Second

// ErrCleanupTimeout is returned by Run when cleanups outlive the cleanup timeout.
var ErrCleanupTimeout = errors.New("cleanup timed out")

// Server represents any service that can be started and stopped with context cancellation.
type Server interface {
	Run(context.Context) error
}

// CleanupFunc represents a cleanup function that may return an error.
type CleanupFunc func() error

// Manager runs a set of servers until the context is cancelled, a signal
// arrives or one of them fails, then runs the registered cleanups.
type Manager struct {
	servers        []serverEntry
	cleanups       []cleanupEntry
	signals        []os.Signal
	cleanupTimeout time.Duration
	log            logrus.FieldLogger
}

type serverEntry struct {
	name   string
	server Server
}

type cleanupEntry struct {
	name    string
	cleanup CleanupFunc
}

// NewManager creates a new shutdown manager with default OS signals.
func NewManager(log logrus.FieldLogger) *Manager {
	return &Manager{
		// syscall.SIGHUP is left alone so it can be used to re-read setup
		signals:        []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT},
		cleanupTimeout: DefaultCleanupTimeout,
		log:            log,
	}
}

// AddServer adds a server to be managed during shutdown.
// Servers are started in parallel and stopped when context is cancelled.
func (m *Manager) AddServer(name string, server Server) *Manager {
	m.servers = append(m.servers, serverEntry{name: name, server: server})
	return m
}

// AddCleanup adds a cleanup function to be called during shutdown.
// Cleanup functions are called in reverse order (LIFO) after all servers stop.
func (m *Manager) AddCleanup(name string, cleanup CleanupFunc) *Manager {
	m.cleanups = append(m.cleanups, cleanupEntry{name: name, cleanup: cleanup})
	return m
}

// WithSignals overrides the default OS signals to listen for.
func (m *Manager) WithSignals(signals ...os.Signal) *Manager {
	m.signals = signals
	return m
}

// WithCleanupTimeout overrides DefaultCleanupTimeout. A non-positive value waits forever.
func (m *Manager) WithCleanupTimeout(timeout time.Duration) *Manager {
	m.cleanupTimeout = timeout
	return m
}

// Run starts all servers and blocks until they have stopped and the
// cleanups have run. Cancellation is a normal shutdown and returns nil.
func (m *Manager) Run(ctx context.Context) error {
	if len(m.servers) == 0 {
		return errors.New("no servers configured")
	}

	ctx, stop := signal.NotifyContext(ctx, m.signals...)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	for _, entry := range m.servers {
		group.Go(func() error {
			m.log.Infof("Starting %s server", entry.name)
			err := entry.server.Run(groupCtx)
			switch {
			case err == nil:
				m.log.Infof("%s server stopped", entry.name)
				return nil
			case errors.Is(err, context.Canceled):
				return err
			default:
				return NewServerError(entry.name, err)
			}
		})
	}

	m.log.Info("All servers started, waiting for shutdown signal...")
	err := group.Wait()
	stop()

	if errors.Is(err, context.Canceled) {
		m.log.Info("Servers stopped due to shutdown signal")
		err = nil
	} else if err != nil {
		m.log.WithError(err).Error("Server stopped with error")
	}

	return errors.Join(err, m.runCleanups())
}

// runCleanups calls the cleanups in LIFO order. Cleanup errors are logged,
// only exceeding the cleanup timeout is reported back.
func (m *Manager) runCleanups() error {
	if len(m.cleanups) == 0 {
		return nil
	}

	m.log.Info("Starting cleanup")
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := len(m.cleanups) - 1; i >= 0; i-- {
			entry := m.cleanups[i]
			m.log.Infof("Cleaning up %s", entry.name)
			if err := entry.cleanup(); err != nil {
				m.log.WithError(err).Errorf("Cleanup error for %s", entry.name)
			}
		}
	}()

	if m.cleanupTimeout <= 0 {
		<-done
		m.log.Info("Cleanup completed")
		return nil
	}

	timer := time.NewTimer(m.cleanupTimeout)
	defer timer.Stop()
	select {
	case <-done:
		m.log.Info("Cleanup completed")
		return nil
	case <-timer.C:
		m.log.Errorf("Cleanup did not complete within %v", m.cleanupTimeout)
		return fmt.Errorf("%w after %v", ErrCleanupTimeout, m.cleanupTimeout)
	}
}

// ServerError wraps an error with server identification.
type ServerError struct {
	ServerName string
	Err        error
}

func NewServerError(serverName string, err error) *ServerError {
	return &ServerError{
		ServerName: serverName,
		Err:        err,
	}
}

func (e *ServerError) Error() string {
	return e.ServerName + " server: " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
