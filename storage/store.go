package storage

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Well-known document keys. Each document is serialized JSON, loaded whole
// and rewritten whole on every mutation.
const (
	keyUserSettings = "userSettings"
	keyMealLogs     = "mealLogs"
	keyLastSync     = "lastSync"
)

var bucketDocuments = []byte("documents")

// Store is the local persistence layer: a single BoltDB file holding the
// settings document, the meal log collection and a lastSync stamp.
type Store struct {
	db   *bolt.DB
	path string
}

// Open opens (creating if needed) the database file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketDocuments)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// getDocument returns the raw document stored under key, or nil if absent.
func (s *Store) getDocument(key string) []byte {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDocuments)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		slog.Error("storage read failed", "key", key, "error", err)
		return nil
	}
	return out
}

// putDocument rewrites the document under key and stamps lastSync.
func (s *Store) putDocument(key string, doc []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDocuments)
		if err := b.Put([]byte(key), doc); err != nil {
			return err
		}
		return stampLastSync(b)
	})
}

// replaceDocuments rewrites both documents in one transaction. Used by
// import so a snapshot is applied fully or not at all.
func (s *Store) replaceDocuments(settings, logs []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDocuments)
		if err := b.Put([]byte(keyUserSettings), settings); err != nil {
			return err
		}
		if err := b.Put([]byte(keyMealLogs), logs); err != nil {
			return err
		}
		return stampLastSync(b)
	})
}

func stampLastSync(b *bolt.Bucket) error {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return b.Put([]byte(keyLastSync), []byte(millis))
}

// LastSync returns the epoch-millis stamp of the last successful write,
// or 0 if nothing has been written yet.
func (s *Store) LastSync() int64 {
	raw := s.getDocument(keyLastSync)
	if raw == nil {
		return 0
	}
	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0
	}
	return millis
}

// ClearAll deletes every stored document. The confirmation gate is the
// caller's concern.
func (s *Store) ClearAll() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketDocuments) != nil {
			if err := tx.DeleteBucket(bucketDocuments); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(bucketDocuments)
		return err
	})
}

// Info describes the on-disk footprint of the store.
type Info struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"sizeBytes"`
}

// StorageInfo returns the database file size on disk.
func (s *Store) StorageInfo() (Info, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return Info{}, err
	}
	return Info{Path: s.path, SizeBytes: fi.Size()}, nil
}
