package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(NewDefault(), cfgFile))

	logger, hook := test.NewNullLogger()
	updates := make(chan *Config, 16)
	w := NewWatcher(logger, cfgFile, func(c *Config) { updates <- c })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// an invalid edit is skipped and the service keeps its config
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(cfgFile, []byte("service:\n  logLevel: loud\n"), 0600)
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.WarnLevel {
				return true
			}
		}
		return false
	}, 5*time.Second, 50*time.Millisecond)
	assert.Empty(t, updates)

	cfg := NewDefault()
	cfg.Service.LogLevel = "debug"
	var got *Config
	assert.Eventually(t, func() bool {
		_ = Save(cfg, cfgFile)
		select {
		case got = <-updates:
			return got.Service.LogLevel == "debug"
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, Save(NewDefault(), cfgFile))

	logger, hook := test.NewNullLogger()
	updates := make(chan *Config, 16)
	w := NewWatcher(logger, cfgFile, func(c *Config) { updates <- c })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Message == "Watching "+cfgFile+" for config changes" {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "client.yaml"), []byte("service: {}\n"), 0600))
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, updates)
}

func TestWatcherMissingDirectory(t *testing.T) {
	logger, hook := test.NewNullLogger()
	w := NewWatcher(logger, filepath.Join(t.TempDir(), "missing", "config.yaml"), func(*Config) {
		t.Fatal("unexpected reload")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "reload disabled")
}
