package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Validate checks if the database configuration is valid for its driver.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case DriverMySQL:
		if c.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Port < 1 || c.Port > 65535 {
			return fmt.Errorf("database port must be between 1 and 65535, got %d", c.Port)
		}
		if c.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Username == "" {
			return fmt.Errorf("database username is required")
		}
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}

	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max_open_conns must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("max_idle_conns cannot be greater than max_open_conns")
	}

	return nil
}

// MySQLDSN returns the MySQL Data Source Name using the official MySQL
// driver config builder.
func (c *Config) MySQLDSN() string {
	cfg := mysql.Config{
		User:                 c.Username,
		Passwd:               c.Password,
		Net:                  "tcp",
		Addr:                 fmt.Sprintf("%s:%d", c.Host, c.Port),
		DBName:               c.Database,
		Collation:            c.Collation,
		Loc:                  parseLocation(c.TimeZone),
		ParseTime:            true,
		AllowNativePasswords: true,
	}
	if c.Charset != "" {
		cfg.Params = map[string]string{"charset": c.Charset}
	}
	return cfg.FormatDSN()
}

// SQLiteDSN returns the SQLite DSN. Foreign key enforcement is switched
// on so owned collections (meals, hours) cascade with their restaurant.
func (c *Config) SQLiteDSN() string {
	sep := "?"
	if strings.Contains(c.Path, "?") {
		sep = "&"
	}
	return c.Path + sep + "_pragma=foreign_keys(1)"
}

// parseLocation parses timezone string to *time.Location.
func parseLocation(tz string) *time.Location {
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		// Fallback to UTC if timezone parsing fails
		loc, _ = time.LoadLocation("UTC")
	}
	return loc
}
