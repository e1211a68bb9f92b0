package mongostore

import (
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/jrsteele09/go-session-server/internal/errors"
)

const (
	DefaultHost       = "127.0.0.1"
	DefaultPort       = 27017
	DefaultDB         = "test"
	DefaultCollection = "sessions"

	// FallbackDatabase names the database when a caller-supplied URL
	// carries no database path.
	FallbackDatabase = "sessiondb"
)

// Config selects one of three ways to reach the sessions collection, as a
// tagged variant rather than runtime shape inspection:
//
//   - Database: an already-open handle; no connection is dialed.
//   - URL: a full connection string.
//   - Discrete Host/Port/DB/SSL parts (plus credentials): a connection
//     string is synthesized from them.
//
// Supplying URL together with any discrete part is a configuration error
// reported synchronously by New, before any network activity.
type Config struct {
	// Database is an already-open database handle. When set, connection
	// establishment is skipped and the target collection is resolved
	// directly on it.
	Database *mongo.Database

	// URL is a full connection string, mutually exclusive with
	// Host/Port/DB/SSL.
	URL string

	Host     string
	Port     int
	DB       string
	SSL      bool
	User     string
	Password string

	// Collection is the target collection name. Default "sessions".
	Collection string

	// ConnectOptions are passed through verbatim to the driver's connect
	// call, applied on top of the connection string.
	ConnectOptions *options.ClientOptions
}

func (c Config) validate() error {
	if c.URL != "" && (c.Host != "" || c.Port != 0 || c.DB != "" || c.SSL) {
		return apperrors.Wrapf(apperrors.ErrConflictingConfig, "mongostore: url combined with discrete host/port/db/ssl options")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.Database != nil || c.URL != "" {
		return c
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DB == "" {
		c.DB = DefaultDB
	}
	return c
}

// buildURI synthesizes a connection string from the discrete parts.
func (c Config) buildURI() string {
	u := url.URL{
		Scheme: "mongodb",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.DB,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	if c.SSL {
		u.RawQuery = "ssl=true"
	}
	return u.String()
}

// databaseName resolves the database the sessions collection lives in. A
// caller URL without a database path falls back to FallbackDatabase.
func (c Config) databaseName() string {
	if c.Database != nil {
		return c.Database.Name()
	}
	if c.URL != "" {
		if parsed, err := url.Parse(c.URL); err == nil {
			if name := strings.TrimPrefix(parsed.Path, "/"); name != "" {
				return name
			}
		}
		return FallbackDatabase
	}
	return c.DB
}
