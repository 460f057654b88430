// Package ignorecache provides a persistent, self-cleaning BoltDB cache of
// ignore-scope rule text, so repeated runs over the same tree skip re-
// reading unchanged .gitignore files. Cached rule lines are compiled again
// on every hit.
//
// The self-cleaning scheme is the teacher's internal/cache pattern exactly:
// one database is opened read-only for lookups, a second is created fresh
// for writes, and on Close the write database atomically replaces the read
// database. Only entries actually looked up during the run survive into the
// next generation, so a cache that stops being exercised (a subtree that's
// no longer scanned) shrinks back out on its own rather than growing
// without bound.
package ignorecache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/jchain/ff/internal/ignorescope"
)

const bucketName = "ignorescopes"

// Cache provides persistent caching of ignore-scope rule lines keyed by
// (directory path, .gitignore mtime). A zero-value Cache (from Open("")) is
// disabled and simply defers every lookup to ignorescope.Open.
type Cache struct {
	readDB  *bolt.DB
	writeDB *bolt.DB
	path    string
	enabled bool
}

// Open opens the existing cache at path for reading and creates a fresh
// cache for writing. Returns a disabled cache if path is empty, the same
// "no --cache-file means no caching" convention the teacher's cache.Open
// uses for its --cache-file/-C flag.
func Open(path string) (*Cache, error) {
	if path == "" {
		return &Cache{enabled: false}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	c := &Cache{path: path, enabled: true}

	if _, statErr := os.Stat(path); statErr == nil {
		readDB, err := bolt.Open(path, 0o600, &bolt.Options{
			ReadOnly: true,
			Timeout:  1 * time.Second,
		})
		if err == nil {
			c.readDB = readDB
		}
	}

	newPath := path + ".new"
	writeDB, err := bolt.Open(newPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("create new ignore cache (locked by another instance?): %w", err)
	}
	c.writeDB = writeDB

	if err := c.writeDB.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

// Close closes both databases and, if the write database closed cleanly,
// atomically renames it over the original path.
func (c *Cache) Close() error {
	var firstErr error
	if c.readDB != nil {
		if err := c.readDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.writeDB != nil {
		if err := c.writeDB.Close(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		} else if err := os.Rename(c.path+".new", c.path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

const keyVersion byte = 1

// makeKey builds a deterministic key: ver(1) + dir + NUL + mtime(8).
func makeKey(dir string, mtime time.Time) []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(keyVersion)
	buf.WriteString(dir)
	buf.WriteByte(0)
	_ = binary.Write(buf, binary.BigEndian, mtime.UnixNano())
	return buf.Bytes()
}

// Open attempts to open an ignore-scope rooted at dir, consulting the cache
// first. On a cache miss (or a disabled cache) it falls through to
// ignorescope.Open and, on success, stores the raw rule lines for next time.
// The returned bool matches ignorescope.Open's: false means dir has no
// scope of its own and the caller should fall back to the parent's.
func (c *Cache) Open(dir string) (*ignorescope.Handle, bool) {
	info, statErr := os.Stat(filepath.Join(dir, ".gitignore"))
	if statErr != nil {
		return nil, false
	}

	if c.enabled && c.readDB != nil {
		if lines, ok := c.lookup(dir, info.ModTime()); ok {
			h, ok := ignorescope.FromLines(lines)
			if ok {
				c.store(dir, info.ModTime(), lines)
				return h, true
			}
		}
	}

	h, ok := ignorescope.Open(dir)
	if ok && c.enabled {
		if lines, err := readLines(filepath.Join(dir, ".gitignore")); err == nil {
			c.store(dir, info.ModTime(), lines)
		}
	}
	return h, ok
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

func (c *Cache) lookup(dir string, mtime time.Time) ([]string, bool) {
	key := makeKey(dir, mtime)
	var raw []byte

	_ = c.readDB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		if data := b.Get(key); data != nil {
			raw = make([]byte, len(data))
			copy(raw, data)
		}
		return nil
	})
	if raw == nil {
		return nil, false
	}
	return strings.Split(string(raw), "\n"), true
}

func (c *Cache) store(dir string, mtime time.Time, lines []string) {
	if !c.enabled || c.writeDB == nil {
		return
	}
	_ = c.writeDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.Put(makeKey(dir, mtime), []byte(strings.Join(lines, "\n")))
	})
}
