package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/nats"
)

// Backend is a Store running on its own embedded server.
type Backend struct {
	*Store
	embedded *nats.Embedded
}

// Open starts an embedded server under <dataDir>/nats and sets up the
// project_inquiries store on it.
func Open(ctx context.Context, dataDir string, retention time.Duration) (*Backend, error) {
	natsDir := filepath.Join(dataDir, "nats")
	if err := os.MkdirAll(natsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	embedded, err := nats.Open(natsDir)
	if err != nil {
		return nil, fmt.Errorf("starting embedded nats: %w", err)
	}

	st, err := New(ctx, embedded.JS, inquiry.Collection, retention)
	if err != nil {
		_ = embedded.Close()
		return nil, err
	}
	log.Debug("Store open at %s", natsDir)
	return &Backend{Store: st, embedded: embedded}, nil
}

// Close shuts the embedded server down.
func (b *Backend) Close() error {
	return b.embedded.Close()
}
