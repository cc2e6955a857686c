// Package propstore keeps named snapshots of properties in a bbolt
// database. Each snapshot is a nested bucket whose keys are big endian
// sequence numbers, so a cursor walks the pairs in insertion order.
package propstore

import (
	"encoding/binary"
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/kolide/propkit/pkg/properties"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

const snapshotsBucket = "snapshots"

// NoDbError is an error type that represents a nil bbolt database
type NoDbError struct{}

func (e NoDbError) Error() string {
	return "bbolt db is nil"
}

// NoSnapshotError is returned when loading a snapshot that was never saved.
type NoSnapshotError struct {
	name string
}

func (e NoSnapshotError) Error() string {
	return fmt.Sprintf("no snapshot named %s", e.name)
}

type storedPair struct {
	Key   string `msgpack:"k"`
	Value string `msgpack:"v"`
}

type Store struct {
	logger log.Logger
	db     *bbolt.DB
}

func NewStore(logger log.Logger, db *bbolt.DB) (*Store, error) {
	if db == nil {
		return nil, NoDbError{}
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(snapshotsBucket))
		if err != nil {
			return fmt.Errorf("creating bucket: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s := &Store{
		logger: log.With(logger, "component", "propstore"),
		db:     db,
	}

	return s, nil
}

// Save stores props under name, replacing any earlier snapshot of that
// name.
func (s *Store) Save(name string, props *properties.Properties) error {
	if s == nil || s.db == nil {
		return NoDbError{}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		snapshots := tx.Bucket([]byte(snapshotsBucket))

		if snapshots.Bucket([]byte(name)) != nil {
			if err := snapshots.DeleteBucket([]byte(name)); err != nil {
				return errors.Wrapf(err, "replacing snapshot %s", name)
			}
		}

		b, err := snapshots.CreateBucket([]byte(name))
		if err != nil {
			return errors.Wrapf(err, "creating snapshot %s", name)
		}

		for i, pair := range props.KeyValues() {
			value, err := msgpack.Marshal(storedPair{Key: pair.Key, Value: pair.Value})
			if err != nil {
				return errors.Wrapf(err, "encoding pair %d", i)
			}

			if err := b.Put(sequenceKey(uint64(i)), value); err != nil {
				return errors.Wrapf(err, "storing pair %d", i)
			}
		}

		level.Debug(s.logger).Log("msg", "saved snapshot", "name", name, "pairs", props.Len())

		return nil
	})
}

// Load returns the snapshot stored under name.
func (s *Store) Load(name string) (*properties.Properties, error) {
	if s == nil || s.db == nil {
		return nil, NoDbError{}
	}

	props := properties.New()

	if err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(snapshotsBucket)).Bucket([]byte(name))
		if b == nil {
			return NoSnapshotError{name: name}
		}

		return b.ForEach(func(k, v []byte) error {
			var pair storedPair
			if err := msgpack.Unmarshal(v, &pair); err != nil {
				return errors.Wrapf(err, "decoding pair %d", binary.BigEndian.Uint64(k))
			}

			// decoding allocated fresh strings, nothing to copy
			props.InsertBorrowed(pair.Key, pair.Value)
			return nil
		})
	}); err != nil {
		return nil, err
	}

	return props, nil
}

// Delete removes the named snapshots. Missing names are ignored.
func (s *Store) Delete(names ...string) error {
	if s == nil || s.db == nil {
		return NoDbError{}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		snapshots := tx.Bucket([]byte(snapshotsBucket))

		for _, name := range names {
			err := snapshots.DeleteBucket([]byte(name))
			if err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
				return errors.Wrapf(err, "deleting snapshot %s", name)
			}
		}

		return nil
	})
}

// Names lists the stored snapshots, sorted.
func (s *Store) Names() ([]string, error) {
	if s == nil || s.db == nil {
		return nil, NoDbError{}
	}

	var names []string

	if err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(snapshotsBucket)).ForEach(func(k, v []byte) error {
			// nested buckets have a nil value
			if v == nil {
				names = append(names, string(k))
			}
			return nil
		})
	}); err != nil {
		return nil, err
	}

	return names, nil
}

func sequenceKey(i uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, i)
	return key
}
