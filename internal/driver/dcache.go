package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"pylens/internal/diag"
	"pylens/internal/source"
)

// Increment when DiskPayload changes shape; old entries become misses.
const diskCacheSchemaVersion uint16 = 1

// Digest identifies a cache entry: a SHA-256 over the file content hash
// and the effective configuration digest.
type Digest [sha256.Size]byte

// CacheKey derives the cache key for one file under one configuration.
func CacheKey(contentHash [sha256.Size]byte, configDigest string) Digest {
	h := sha256.New()
	h.Write(contentHash[:])
	h.Write([]byte{0})
	h.Write([]byte(configDigest))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DiskPayload is the cached result for one file. Spans are stored with
// offsets only; the FileID is rebound to the current run on load.
type DiskPayload struct {
	Schema uint16
	Path   string
	Diags  []CachedDiag
}

// CachedDiag is a Diagnostic flattened for stable serialization.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// DiskCache stores lint results keyed by content and configuration.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache at the platform cache location
// ($XDG_CACHE_HOME or ~/.cache) under the given application name.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory keeps the cache root listable next to other apps.
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes and atomically writes a payload.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; (false, nil) means a clean miss. Entries with a
// different schema version are treated as misses.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// resultToPayload flattens a bag for caching. Timing entries are skipped;
// they describe the run that produced them, not the file.
func resultToPayload(path string, bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   path,
	}
	for _, d := range bag.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		cd := CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diags = append(payload.Diags, cd)
	}
	return payload
}

// payloadToBag rebuilds a bag, binding every span to the current FileID.
func payloadToBag(payload *DiskPayload, id source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: id, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: id, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		bag.Add(d)
	}
	return bag
}
