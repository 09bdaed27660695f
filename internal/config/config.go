// Package config holds the defaults for command-line flags.
package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment
	// when the postgres storage is selected.
	DefaultDatabaseURL = ""

	// DefaultMaxConns caps the PostgreSQL connection pool.
	DefaultMaxConns = 10

	// DefaultLogLevel is used when no level is given.
	DefaultLogLevel = "info"

	// DefaultCatalogFile is empty, meaning the built-in catalog.
	DefaultCatalogFile = ""
)

// Storage backends accepted by --storage.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// DefaultStorage keeps tasks in process memory.
const DefaultStorage = StorageMemory
