package config

import (
	"fmt"
	"os"
	"strings"

	"task-tracker/internal/repository/sqlite"
)

// MemoryDatabase is the SQLite filename for a throwaway in-memory database.
const MemoryDatabase = ":memory:"

// Environment represents the current deployment environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment maps a TASKS_ENV value to an Environment.
// Unknown values fall back to production.
func ParseEnvironment(s string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}

// CreateRepository creates a repository instance using the configuration system.
// The testing environment always gets an in-memory database.
func CreateRepository(config *Config) (sqlite.Repository, error) {
	opts := sqlite.Options{
		QueryTimeout: config.GetQueryTimeout(),
		WriteTimeout: config.GetWriteTimeout(),
	}

	dbPath := config.GetDatabasePath()
	if config.Application.Environment == Testing {
		dbPath = MemoryDatabase
	}

	if dbPath != MemoryDatabase {
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	repo, err := sqlite.NewWithOptions(dbPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}
