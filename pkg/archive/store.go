// Package archive persists dispatched artifacts in a content-addressed
// store, so past responses can be inspected after the fact.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zen-systems/tiergate/pkg/artifact"
)

// Store manages the content-addressed artifact archive.
type Store struct {
	BasePath string
}

// NewStore creates an archive store rooted at basePath. An empty basePath
// defaults to ~/.tiergate/archive.
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		basePath = filepath.Join(home, ".tiergate", "archive")
	}

	if err := os.MkdirAll(filepath.Join(basePath, "objects"), 0755); err != nil {
		return nil, err
	}

	return &Store{BasePath: basePath}, nil
}

// Put stores the artifact by the SHA256 of its JSON encoding in a sharded
// directory structure and returns the hash.
func (s *Store) Put(art *artifact.Artifact) (string, error) {
	data, err := json.Marshal(art)
	if err != nil {
		return "", err
	}

	hashBytes := sha256.Sum256(data)
	hash := hex.EncodeToString(hashBytes[:])

	// Shard by first 2 chars
	dir := filepath.Join(s.BasePath, "objects", hash[:2])
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, hash+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return hash, nil
}

// Get loads an archived artifact by hash.
func (s *Store) Get(hash string) (*artifact.Artifact, error) {
	if len(hash) < 3 {
		return nil, fmt.Errorf("invalid archive hash %q", hash)
	}
	path := filepath.Join(s.BasePath, "objects", hash[:2], hash+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var art artifact.Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("corrupt archive object %s: %w", hash, err)
	}
	return &art, nil
}
