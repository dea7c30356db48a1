// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sshconf

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/fsnotify/fsnotify"
	"github.com/minio/sha256-simd"
)

// Manager serves lookups from a config file and keeps the parsed Config
// fresh by watching the file for writes. Reloads are skipped when the file
// bytes hash the same, and a reload that fails to parse keeps the previous
// Config in service.
type Manager struct {
	mu      sync.RWMutex
	cfg     *Config
	path    string
	env     *Environment
	watcher *fsnotify.Watcher
	closed  chan struct{}
	hash    [32]byte

	onReload func()
}

// NewManager parses path and starts watching it for changes.
func NewManager(path string, env *Environment) (*Manager, error) {
	cfg, data, err := loadFile(path, env)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	m := &Manager{
		cfg:     cfg,
		path:    path,
		env:     env,
		watcher: watcher,
		closed:  make(chan struct{}),
		hash:    sha256.Sum256(data),
	}

	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	go m.watch()

	return m, nil
}

// Lookup resolves one host against the currently loaded Config.
func (m *Manager) Lookup(hostname string) map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Lookup(hostname)
}

// Hostnames lists the current Config's distinct Host patterns.
func (m *Manager) Hostnames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Hostnames()
}

// SetOnReload installs fn to be called after each successful reload. The
// watcher goroutine is already running when NewManager returns, so the
// callback is guarded by the Manager's lock.
func (m *Manager) SetOnReload(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReload = fn
}

// Close stops watching the config file.
func (m *Manager) Close() error {
	close(m.closed)
	return m.watcher.Close()
}

func (m *Manager) watch() {
	for {
		select {
		case event := <-m.watcher.Events:
			if event.Op&fsnotify.Write == fsnotify.Write {
				log.Debugf("config file changed: %s", event.Name)
				if err := m.reload(); err != nil {
					log.Errorf("reload %s: %v", m.path, err)
				}
			}
		case err := <-m.watcher.Errors:
			log.Errorf("watcher error: %v", err)
		case <-m.closed:
			return
		}
	}
}

// reload reparses the file, swapping in the new Config only when the
// content hash changed and the parse succeeded.
func (m *Manager) reload() error {
	cfg, data, err := loadFile(m.path, m.env)
	if err != nil {
		return err
	}

	newHash := sha256.Sum256(data)

	m.mu.Lock()
	if newHash == m.hash {
		m.mu.Unlock()
		log.Debugf("config content unchanged, skipping reload")
		return nil
	}
	m.cfg = cfg
	m.hash = newHash
	fn := m.onReload
	m.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

// loadFile reads and parses one config file, returning the raw bytes
// alongside so callers can hash them.
func loadFile(path string, env *Environment) (*Config, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg, err := ParseWithEnv(bytes.NewReader(data), env)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, data, nil
}
