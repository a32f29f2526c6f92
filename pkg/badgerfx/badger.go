package badgerfx

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// SeekEnd is appended to a prefix to start a reverse iteration after it.
const SeekEnd = byte(0xFF)

// New opens the database, creating the data directory when needed.
func New(config Config, logger *zapLogger) (*badger.DB, error) {
	if !config.InMemory {
		if config.Dir == "" {
			return nil, fmt.Errorf("%w: data directory is required", ErrInvalidConfig)
		}
		if err := os.MkdirAll(config.Dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := badger.Open(config.Build().WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	return db, nil
}
