package broadcast

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	cm "github.com/mosaicnetworks/maelnode/src/common"
	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/mosaicnetworks/maelnode/src/message"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestBadgerStore(t *testing.T, root, path string) (*BadgerStore, error) {
	return NewBadgerStore(root, path, cm.NewTestEntry(t, cm.TestLogLevel))
}

func testStores(t *testing.T) map[string]Store {
	root := t.TempDir()
	badgerStore, err := newTestBadgerStore(t, root, filepath.Join(root, "badger"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { badgerStore.Close() })

	return map[string]Store{
		"inmem":  NewInmemStore(),
		"badger": badgerStore,
	}
}

func TestStoreAddAndValues(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			values, err := store.Values()
			if err != nil {
				t.Fatal(err)
			}
			if values == nil || len(values) != 0 {
				t.Fatalf("an empty store should return an empty, non-nil slice, got %#v", values)
			}

			for _, v := range []int{5, 3, 9, 3, 5, 0} {
				if _, err := store.Add(v); err != nil {
					t.Fatal(err)
				}
			}

			values, err = store.Values()
			if err != nil {
				t.Fatal(err)
			}

			expected := []int{5, 3, 9, 0}
			if !reflect.DeepEqual(values, expected) {
				t.Fatalf("values should be %v, not %v", expected, values)
			}
			if store.Len() != 4 {
				t.Fatalf("store should hold 4 values, not %d", store.Len())
			}
			if !store.Has(9) || store.Has(7) {
				t.Fatal("unexpected membership")
			}
		})
	}
}

func TestStoreAddReportsDuplicates(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			added, err := store.Add(42)
			if err != nil || !added {
				t.Fatalf("first add should succeed: %v, %v", added, err)
			}

			added, err = store.Add(42)
			if err != nil || added {
				t.Fatalf("second add should be a no-op: %v, %v", added, err)
			}
		})
	}
}

func TestBadgerStoreDB(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "badger")

	store, err := newTestBadgerStore(t, root, path)
	if err != nil {
		t.Fatal(err)
	}

	if store.StorePath() != path {
		t.Fatalf("unexpected path %q", store.StorePath())
	}

	for _, v := range []int{11, 12} {
		if _, err := store.Add(v); err != nil {
			t.Fatal(err)
		}
	}

	v, err := store.dbGetValue(1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 12 {
		t.Fatalf("value 1 should be 12, not %d", v)
	}

	if _, err := store.dbGetValue(2); !cm.IsStore(err, cm.KeyNotFound) {
		t.Fatalf("expected KeyNotFound, got %v", err)
	}

	if err := store.dbSetValue(0, 99); !cm.IsStore(err, cm.KeyAlreadyExists) {
		t.Fatalf("expected KeyAlreadyExists, got %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Add(13); !cm.IsStore(err, cm.Closed) {
		t.Fatalf("expected Closed, got %v", err)
	}
}

func TestBadgerStoreStartsEmpty(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "badger")

	first, err := newTestBadgerStore(t, root, path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.Add(1); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := newTestBadgerStore(t, root, path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	values, err := second.Values()
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 0 {
		t.Fatalf("a new store should not see values from a previous run, got %v", values)
	}
}

func TestValueEncoding(t *testing.T) {
	for _, v := range []int{0, 1, -7, 1 << 40} {
		b, err := marshalValue(v)
		if err != nil {
			t.Fatal(err)
		}
		res, err := unmarshalValue(b)
		if err != nil {
			t.Fatal(err)
		}
		if res != v {
			t.Fatalf("decoded %d, expected %d", res, v)
		}
	}
}

func TestBadgerStoreRefusesPathOutsideRoot(t *testing.T) {
	root := t.TempDir()
	keep := filepath.Join(root, "keep")
	if err := os.WriteFile(keep, []byte("keep"), 0600); err != nil {
		t.Fatal(err)
	}

	paths := []string{
		root,
		filepath.Dir(root),
		filepath.Join(root, ".."),
		filepath.Join(t.TempDir(), "badger"),
	}

	for _, path := range paths {
		if _, err := newTestBadgerStore(t, root, path); !errors.Is(err, ErrUnsafePath) {
			t.Fatalf("%s should be refused, got %v", path, err)
		}
	}

	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("files in the root should be left alone: %v", err)
	}
}

func TestNewRejectsNodeIDsThatEscapeDatabaseDir(t *testing.T) {
	dataDir := t.TempDir()
	keep := filepath.Join(dataDir, "maelnode.toml")
	if err := os.WriteFile(keep, []byte("log = \"debug\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	conf := config.NewTestConfig(t, cm.TestLogLevel)
	conf.Store = true
	conf.SetDataDir(dataDir)

	for _, id := range []string{"..", "../..", ".", "a/../..", "../badger_db"} {
		_, err := New(message.Init{NodeID: id, NodeIDs: []string{id}}, conf)
		if !errors.Is(err, config.ErrInvalidNodeID) {
			t.Fatalf("node id %q should be rejected, got %v", id, err)
		}
	}

	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("the data directory should be left alone: %v", err)
	}

	h, err := New(message.Init{NodeID: "n1", NodeIDs: []string{"n1"}}, conf)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if h.Store().StorePath() != filepath.Join(dataDir, config.DefaultBadgerFile, "n1") {
		t.Fatalf("unexpected store path %s", h.Store().StorePath())
	}
}

func TestBadgerStoreLogsThroughLogrus(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.Level = logrus.DebugLevel

	root := t.TempDir()
	store, err := NewBadgerStore(root, filepath.Join(root, "badger"), logger.WithField("component", "badger"))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	entries := hook.AllEntries()
	if len(entries) == 0 {
		t.Fatal("badger should log through the given entry")
	}
	for _, e := range entries {
		if e.Data["component"] != "badger" {
			t.Fatalf("entry %q is missing the component field", e.Message)
		}
	}
}
