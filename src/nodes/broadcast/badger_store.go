package broadcast

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dgraph-io/badger"
	cm "github.com/mosaicnetworks/maelnode/src/common"
	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
)

const (
	messagePrefix = "message"
)

// BadgerStore writes values to a Badger database and keeps an InmemStore in
// front of it for membership checks. The database only lives for one run: it
// is wiped when the store is created.
type BadgerStore struct {
	inmemStore *InmemStore
	db         *badger.DB
	path       string
	closed     bool
}

// ErrUnsafePath is returned by NewBadgerStore when the database path is not
// strictly inside its root directory.
var ErrUnsafePath = errors.New("broadcast: database path outside of root")

// NewBadgerStore creates a brand new Store with an empty database in path.
// Whatever path contains is deleted first, so path must be strictly inside
// root. Badger logs go through logger.
func NewBadgerStore(root, path string, logger *logrus.Entry) (*BadgerStore, error) {
	if !config.IsStrictlyUnder(root, path) {
		return nil, errors.Wrapf(ErrUnsafePath, "%s is not inside %s", path, root)
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(path).
		WithSyncWrites(false).
		WithLogger(logger)

	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{
		inmemStore: NewInmemStore(),
		db:         handle,
		path:       path,
	}
	return store, nil
}

/*******************************************************************************
Keys
*******************************************************************************/

func messageKey(index int) []byte {
	return []byte(fmt.Sprintf("%s_%09d", messagePrefix, index))
}

/*******************************************************************************
Implement the Store interface
*******************************************************************************/

// Add implements the Store interface.
func (s *BadgerStore) Add(value int) (bool, error) {
	if s.closed {
		return false, cm.NewStoreErr("Message", cm.Closed, fmt.Sprint(value))
	}
	if s.inmemStore.Has(value) {
		return false, nil
	}
	if err := s.dbSetValue(s.inmemStore.Len(), value); err != nil {
		return false, err
	}
	return s.inmemStore.Add(value)
}

// Has implements the Store interface.
func (s *BadgerStore) Has(value int) bool {
	return s.inmemStore.Has(value)
}

// Values implements the Store interface. Values are read back from the
// database, one index at a time.
func (s *BadgerStore) Values() ([]int, error) {
	if s.closed {
		return nil, cm.NewStoreErr("Message", cm.Closed, "")
	}

	res := make([]int, 0, s.inmemStore.Len())
	for i := 0; i < s.inmemStore.Len(); i++ {
		v, err := s.dbGetValue(i)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// Len implements the Store interface.
func (s *BadgerStore) Len() int {
	return s.inmemStore.Len()
}

// Close implements the Store interface.
func (s *BadgerStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.inmemStore.Close(); err != nil {
		return err
	}
	return s.db.Close()
}

// StorePath implements the Store interface.
func (s *BadgerStore) StorePath() string {
	return s.path
}

/*******************************************************************************
DB Methods
*******************************************************************************/

func (s *BadgerStore) dbGetValue(index int) (int, error) {
	var valueBytes []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(messageKey(index))
		if err != nil {
			return err
		}
		valueBytes, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return 0, mapError(err, "Message", string(messageKey(index)))
	}
	return unmarshalValue(valueBytes)
}

func (s *BadgerStore) dbSetValue(index int, value int) error {
	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	key := messageKey(index)

	if _, err := tx.Get(key); err == nil {
		return cm.NewStoreErr("Message", cm.KeyAlreadyExists, string(key))
	} else if !isDBKeyNotFound(err) {
		return err
	}

	val, err := marshalValue(value)
	if err != nil {
		return err
	}
	if err := tx.Set(key, val); err != nil {
		return err
	}

	return tx.Commit()
}

/*******************************************************************************
Encoding
*******************************************************************************/

func marshalValue(value int) ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(value); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func unmarshalValue(data []byte) (int, error) {
	var value int
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	if err := dec.Decode(&value); err != nil {
		return 0, err
	}

	return value, nil
}

func isDBKeyNotFound(err error) bool {
	return err == badger.ErrKeyNotFound
}

func mapError(err error, name, key string) error {
	if err != nil {
		if isDBKeyNotFound(err) {
			return cm.NewStoreErr(name, cm.KeyNotFound, key)
		}
	}
	return err
}
