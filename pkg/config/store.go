package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Store holds the active routing configuration as an immutable snapshot.
// Readers call Snapshot and never see a partially merged value; writers go
// through MergeAndPersist, which persists the merged result before adopting
// it as the active snapshot.
type Store struct {
	path string

	mu   sync.Mutex // serializes merge+persist
	snap atomic.Pointer[Config]
}

// OpenStore loads the routing configuration from path (merged onto defaults)
// and returns a store backed by that file. A missing file yields the
// defaults; the file is only created on the first successful merge.
func OpenStore(path string) (*Store, error) {
	s := &Store{path: path}

	cfg, err := LoadConfig(path)
	if os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	s.snap.Store(cfg)
	return s, nil
}

// NewStoreWithConfig returns a store seeded with cfg that persists to path.
// Used by tests and callers that manage the initial snapshot themselves.
func NewStoreWithConfig(cfg *Config, path string) *Store {
	s := &Store{path: path}
	s.snap.Store(cfg.Clone())
	return s
}

// DefaultStorePath returns the routing config path under the user config dir.
func DefaultStorePath() (string, error) {
	dir, err := EnsureConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "routing.yaml"), nil
}

// Snapshot returns the active configuration. The returned value must be
// treated as read-only.
func (s *Store) Snapshot() *Config {
	return s.snap.Load()
}

// MergeAndPersist validates the patch, deep-merges it onto the active
// snapshot, writes the merged configuration to durable storage, and only
// then publishes it. On any error the active snapshot is left unchanged.
func (s *Store) MergeAndPersist(p *Patch) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	next := s.snap.Load().Merge(p)
	if err := next.Validate(); err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("encode routing config: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return nil, fmt.Errorf("persist routing config: %w", err)
	}

	s.snap.Store(next)
	return next, nil
}

// writeFileAtomic writes via a temp file in the target directory, fsyncs,
// and renames into place so a crash never leaves a half-written config.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".routing-*.yaml")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
