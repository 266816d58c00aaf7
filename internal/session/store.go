package session

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// historyBucket holds entries keyed by big-endian sequence number, so a
// cursor visits them in the order they were appended.
var historyBucket = []byte("history")

// Store persists history in a bbolt database. It is safe for concurrent use.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens or creates the history database at path. It fails rather
// than waiting if another process holds the database for more than a second.
func OpenStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(historyBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Append adds an entry after all others.
func (s *Store) Append(e Entry) error {
	v, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(historyBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		var k [8]byte
		binary.BigEndian.PutUint64(k[:], seq)
		return b.Put(k[:], v)
	})
}

// Load returns all stored entries, oldest first.
func (s *Store) Load() ([]Entry, error) {
	var r []Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(historyBucket).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("history entry %d: %w", binary.BigEndian.Uint64(k), err)
			}
			r = append(r, e)
			return nil
		})
	})
	return r, err
}

// Clear removes all entries and restarts the sequence.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(historyBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(historyBucket)
		return err
	})
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.db.Path()
}

func (s *Store) Close() error {
	return s.db.Close()
}
