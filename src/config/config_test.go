package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"info":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"fatal":   logrus.FatalLevel,
		"panic":   logrus.PanicLevel,
		"":        logrus.DebugLevel,
		"verbose": logrus.DebugLevel,
	}

	for in, expected := range cases {
		if l := LogLevel(in); l != expected {
			t.Fatalf("LogLevel(%q) should be %v, not %v", in, expected, l)
		}
	}
}

func TestSetDataDir(t *testing.T) {
	c := NewDefaultConfig()
	c.SetDataDir("/tmp/node")

	if c.DatabaseDir != filepath.Join("/tmp/node", DefaultBadgerFile) {
		t.Fatalf("unexpected database dir %s", c.DatabaseDir)
	}
	dir, err := c.BadgerDir("n1")
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/node", DefaultBadgerFile, "n1") {
		t.Fatalf("unexpected badger dir %s", dir)
	}
	if c.EnvFile() != filepath.Join("/tmp/node", DefaultEnvFile) {
		t.Fatalf("unexpected env file %s", c.EnvFile())
	}

	// an explicit database dir is left alone
	c.DatabaseDir = "/var/db"
	c.SetDataDir("/tmp/other")
	if c.DatabaseDir != "/var/db" {
		t.Fatalf("database dir should stay /var/db, not %s", c.DatabaseDir)
	}
}

func TestTestConfigLogger(t *testing.T) {
	c := NewTestConfig(t, logrus.InfoLevel)

	entry := c.Logger()
	if entry.Data["prefix"] != "maelnode" {
		t.Fatalf("unexpected prefix %v", entry.Data["prefix"])
	}
	if entry.Logger.Level != logrus.InfoLevel {
		t.Fatalf("level should be info, not %v", entry.Logger.Level)
	}
}

func TestBadgerDirRejectsPaths(t *testing.T) {
	c := NewDefaultConfig()
	c.SetDataDir("/tmp/node")

	ids := []string{"", ".", "..", "../..", "a/b", "../n1", `a\b`, "/abs"}

	for _, id := range ids {
		dir, err := c.BadgerDir(id)
		if !errors.Is(err, ErrInvalidNodeID) {
			t.Fatalf("BadgerDir(%q) should fail, got %q, %v", id, dir, err)
		}
	}

	for _, id := range []string{"n1", "c-3", "..n1", "n1.."} {
		if _, err := c.BadgerDir(id); err != nil {
			t.Fatalf("BadgerDir(%q) should succeed: %v", id, err)
		}
	}
}

func TestIsStrictlyUnder(t *testing.T) {
	cases := []struct {
		path     string
		expected bool
	}{
		{"/db/n1", true},
		{"/db/n1/x", true},
		{"/db/..n1", true},
		{"/db", false},
		{"/db/", false},
		{"/", false},
		{"/other", false},
		{"/db/../x", false},
	}

	for _, c := range cases {
		if res := IsStrictlyUnder("/db", c.path); res != c.expected {
			t.Fatalf("IsStrictlyUnder(/db, %s) should be %v", c.path, c.expected)
		}
	}
}
