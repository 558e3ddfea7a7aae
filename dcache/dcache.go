// Package dcache caches decompressed entry bytes across repeat extractions
// of the same archive, for callers (typically archive.Archive) doing
// repeated random-access reads into a large ZIP rather than a single linear
// pass. It is grounded on the shape of the teacher's internal/spinner
// package — a generic tinylfu hot tier in front of an expensive recompute,
// keyed by a hash function passed to tinylfu.New — with a pebble/v2 cold
// tier added behind it so entries survive past the hot tier's eviction.
package dcache

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/pebble/v2"
	"github.com/cockroachdb/pebble/v2/vfs"
	tinylfu "github.com/dgryski/go-tinylfu"
)

const (
	hotSize    = 256
	hotSamples = hotSize * 10
)

var seed = maphash.MakeSeed()

// cacheKey is the hot tier's key type: the xxhash digest of
// (archiveID, entryName, crc), reduced to a fixed-size comparable value so
// it can also serve as the cold tier's key bytes.
type cacheKey [8]byte

func hasher(k cacheKey) uint64 {
	return maphash.Comparable(seed, k)
}

// Cache is a two-tier decompression cache: an in-memory tinylfu hot tier,
// grounded on internal/spinner's Pool.bcache, in front of an on-disk (or
// in-memory, see OpenMem) pebble cold tier.
type Cache struct {
	hot  *tinylfu.T[cacheKey, []byte]
	cold *pebble.DB
}

func newCache(db *pebble.DB) *Cache {
	c := &Cache{cold: db}
	c.hot = tinylfu.New[cacheKey, []byte](hotSize, hotSamples, hasher)
	return c
}

// Open opens a cache backed by a pebble store rooted at dir, creating it if
// necessary.
func Open(dir string) (*Cache, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return newCache(db), nil
}

// OpenMem opens a cache with no disk spill at all, for short-lived
// processes or tests that don't want to manage a temp directory.
func OpenMem() (*Cache, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, err
	}
	return newCache(db), nil
}

// Close releases the cold tier's resources.
func (c *Cache) Close() error {
	return c.cold.Close()
}

// key hashes (archiveID, entryName, crc) into a single digest, the same
// "identity ++ name ++ checksum" shape internal/fileid uses for its cache
// keys, just hashed with xxhash instead of baked into a [12]byte ID.
func key(archiveID uint64, entryName string, crc uint32) cacheKey {
	h := xxhash.New()
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], archiveID)
	h.Write(scratch[:])
	h.WriteString(entryName)
	binary.LittleEndian.PutUint32(scratch[:4], crc)
	h.Write(scratch[:4])

	var out cacheKey
	binary.BigEndian.PutUint64(out[:], h.Sum64())
	return out
}

// Get returns previously cached decompressed bytes for the given entry, if
// any, checking the hot tier before the cold tier.
func (c *Cache) Get(archiveID uint64, entryName string, crc uint32) ([]byte, bool) {
	k := key(archiveID, entryName, crc)

	if v, ok := c.hot.Get(k); ok {
		return v, true
	}

	data, closer, err := c.cold.Get(k[:])
	if err != nil {
		return nil, false
	}
	out := append([]byte(nil), data...)
	closer.Close()

	c.hot.Add(k, out)
	return out, true
}

// Put stores decompressed bytes for an entry, in both tiers.
func (c *Cache) Put(archiveID uint64, entryName string, crc uint32, data []byte) error {
	k := key(archiveID, entryName, crc)
	c.hot.Add(k, data)
	return c.cold.Set(k[:], data, pebble.Sync)
}
