package badgerfx

import "github.com/dgraph-io/badger/v4"

type Config struct {
	// Path to the BadgerDB data directory
	Dir string
	// Keep everything in memory; Dir must be empty
	InMemory bool
}

func (c Config) Build() badger.Options {
	options := badger.DefaultOptions(c.Dir)
	if c.InMemory {
		options = options.WithDir("").WithValueDir("").WithInMemory(true)
	}

	return options
}
