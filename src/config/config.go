package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mosaicnetworks/maelnode/src/common"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultBadgerFile is the default name of the folder containing the Badger
	// databases, one sub-directory per node id.
	DefaultBadgerFile = "badger_db"

	// DefaultEnvFile is the name of the optional environment file read from
	// the data directory.
	DefaultEnvFile = ".env"
)

// Default configuration values.
const (
	DefaultLogLevel = "info"
	DefaultLogFile  = ""
	DefaultStore    = false
	DefaultNodeType = ""
)

// Config contains the configuration of a node process. None of it is part of
// the wire protocol; it only shapes logging and handler storage.
type Config struct {
	// DataDir is the top-level directory containing configuration files and
	// the optional database.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output. Logs always go
	// to stderr because stdout carries the protocol.
	LogLevel string `mapstructure:"log"`

	// LogFile, when set, receives a copy of every log entry.
	LogFile string `mapstructure:"log-file"`

	// Store makes handlers that keep state use a Badger database instead of
	// memory. The database is wiped when the node starts.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing database files.
	DatabaseDir string `mapstructure:"db"`

	// NodeType selects the handler when the binary is started without a
	// sub-command (echo, unique-ids, broadcast).
	NodeType string `mapstructure:"node"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:     DefaultDataDir(),
		LogLevel:    DefaultLogLevel,
		LogFile:     DefaultLogFile,
		Store:       DefaultStore,
		DatabaseDir: DefaultDatabaseDir(),
		NodeType:    DefaultNodeType,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// SetDataDir sets the top-level directory, and updates the database
// directory if it is currently set to the default value. If the database
// directory is not currently the default, it means the user has explicitely set
// it to something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// ErrInvalidNodeID is returned by BadgerDir when a node id cannot be used as
// a directory name.
var ErrInvalidNodeID = errors.New("config: node id is not a valid directory name")

// BadgerDir returns the database directory of a given node. The directory is
// always a direct child of DatabaseDir.
func (c *Config) BadgerDir(nodeID string) (string, error) {
	if nodeID == "" ||
		nodeID == "." ||
		nodeID == ".." ||
		strings.ContainsAny(nodeID, `/\`) ||
		filepath.Base(nodeID) != nodeID {
		return "", errors.Wrapf(ErrInvalidNodeID, "%q", nodeID)
	}

	dir := filepath.Join(c.DatabaseDir, nodeID)
	if !IsStrictlyUnder(c.DatabaseDir, dir) {
		return "", errors.Wrapf(ErrInvalidNodeID, "%q escapes %s", nodeID, c.DatabaseDir)
	}

	return dir, nil
}

// IsStrictlyUnder reports whether path is inside root and not root itself.
func IsStrictlyUnder(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// EnvFile returns the full path of the optional environment file.
func (c *Config) EnvFile() string {
	return filepath.Join(c.DataDir, DefaultEnvFile)
}

// Logger returns a formatted logrus Entry, with prefix set to "maelnode".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Out = os.Stderr
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			c.logger.AddHook(lfshook.NewHook(
				c.LogFile,
				&logrus.JSONFormatter{},
			))
		}
	}
	return c.logger.WithField("prefix", "maelnode")
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level config
// based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Maelnode")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Maelnode")
		} else {
			return filepath.Join(home, ".maelnode")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
