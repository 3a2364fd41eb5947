package db

import (
	"time"

	"gorm.io/gorm"
)

// Driver selects the storage engine backing the catalog.
type Driver string

const (
	// DriverMySQL targets a networked MySQL/MariaDB server.
	DriverMySQL Driver = "mysql"
	// DriverSQLite targets an embedded SQLite database file, the
	// natural engine for a single-user catalog and for tests.
	DriverSQLite Driver = "sqlite"
)

// Config holds database configuration for both supported drivers.
type Config struct {
	Driver Driver `json:"driver" yaml:"driver"`

	// SQLite Settings
	// Path is the database file path, or an URI such as
	// "file::memory:" for an in-memory database.
	Path string `json:"path" yaml:"path"`

	// MySQL Connection Settings
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Database string `json:"database" yaml:"database"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`

	// MySQL Specific Settings
	Charset   string `json:"charset" yaml:"charset"`     // Default: utf8mb4
	Collation string `json:"collation" yaml:"collation"` // Default: utf8mb4_unicode_ci
	TimeZone  string `json:"timezone" yaml:"timezone"`   // Default: UTC

	// Connection Pool Settings
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time" yaml:"conn_max_idle_time"`

	// GORM Settings
	SkipDefaultTransaction bool          `json:"skip_default_transaction" yaml:"skip_default_transaction"`
	PrepareStmt            bool          `json:"prepare_stmt" yaml:"prepare_stmt"`
	QueryTimeout           time.Duration `json:"query_timeout" yaml:"query_timeout"`

	// LogLevel controls GORM's own logger: debug, info, warn, error,
	// silent.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Manager manages a database connection pool.
type Manager struct {
	config *Config
	db     *gorm.DB
}
