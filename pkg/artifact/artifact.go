package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Artifact represents an immutable output from an LLM.
type Artifact struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Adapter   string            `json:"adapter"`
	Model     string            `json:"model"`
	Prompt    string            `json:"prompt"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Hash      string            `json:"hash"`
}

// New creates a new Artifact with computed hash.
func New(content, adapter, model, prompt string) *Artifact {
	a := &Artifact{
		ID:        uuid.NewString(),
		Content:   content,
		Adapter:   adapter,
		Model:     model,
		Prompt:    prompt,
		Metadata:  make(map[string]string),
		CreatedAt: time.Now().UTC(),
	}
	a.Hash = a.computeHash()
	return a
}

// WithMetadata returns a copy of the artifact with additional metadata.
func (a *Artifact) WithMetadata(key, value string) *Artifact {
	newArtifact := &Artifact{
		ID:        a.ID,
		Content:   a.Content,
		Adapter:   a.Adapter,
		Model:     a.Model,
		Prompt:    a.Prompt,
		Metadata:  copyMetadata(a.Metadata),
		CreatedAt: a.CreatedAt,
		Hash:      a.Hash,
	}
	newArtifact.Metadata[key] = value
	return newArtifact
}

func (a *Artifact) computeHash() string {
	h := sha256.New()
	h.Write([]byte(a.Content))
	h.Write([]byte(a.Adapter))
	h.Write([]byte(a.Model))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func copyMetadata(m map[string]string) map[string]string {
	newM := make(map[string]string, len(m))
	for k, v := range m {
		newM[k] = v
	}
	return newM
}
