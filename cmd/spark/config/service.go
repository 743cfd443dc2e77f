package config

import (
	"context"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Service is the injected settings layer: it loads the config once at
// startup, persists changes, and surfaces edits made outside the app
// (another spark process, a text editor) through Watch.
type Service struct {
	mu  sync.RWMutex
	cfg Config

	// session-only CLI flag overrides, never persisted and immune to
	// file reloads
	backendOverride string
	userOverride    string
}

// NewService loads the config from disk. A missing or unreadable file
// falls back to defaults; the load error is returned for logging but the
// Service is always usable.
func NewService() (*Service, error) {
	cfg, err := Load()
	return &Service{cfg: cfg}, err
}

// Current returns the last loaded/saved configuration with any CLI
// overrides applied.
func (s *Service) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.cfg
	if s.backendOverride != "" {
		cfg.BackendURL = s.backendOverride
	}
	if s.userOverride != "" {
		cfg.UserID = s.userOverride
	}
	return cfg
}

// Override applies session-only connection settings. Empty values leave
// the persisted setting in effect.
func (s *Service) Override(backendURL, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backendOverride = backendURL
	s.userOverride = userID
}

// SetTheme persists the theme choice. Other fields are left untouched.
func (s *Service) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Theme = theme
	return Save(s.cfg)
}

// Watch delivers the new Config whenever the config file changes on disk.
// The watcher stops and the channel closes when ctx is cancelled. Watch
// failures (e.g. the directory does not exist yet) close the channel
// immediately; live reload is a convenience, not a requirement.
func (s *Service) Watch(ctx context.Context) <-chan Config {
	updates := make(chan Config, 1)

	dir, err := Dir()
	if err != nil {
		close(updates)
		return updates
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		close(updates)
		return updates
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		close(updates)
		return updates
	}

	go func() {
		defer close(updates)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load()
				if err != nil {
					continue
				}
				s.mu.Lock()
				s.cfg = cfg
				s.mu.Unlock()
				select {
				case updates <- cfg:
				default:
					// Listener is behind; drop the intermediate state.
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return updates
}
