package imaging

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// ImageCache provides thread-safe caching of decoded buffers to avoid
// redundant disk reads and decodes.
//
// Entries are keyed by the exact path string passed to Load. An entry is
// reused only while the file's size and modification time are unchanged;
// a file rewritten on disk is decoded again. Cached buffers are shared between callers and must be treated as read-only; every
// operation in this package already returns a new buffer rather than writing
// to its input.
//
// # Memory Management
//
// Cached buffers remain in memory until explicitly removed via Evict() or
// Clear(). A full HD buffer is roughly 8 MB.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	buf     *Buffer
	format  string
	size    int64
	modTime time.Time
}

func (e *cacheEntry) matches(info os.FileInfo) bool {
	return e.size == info.Size() && e.modTime.Equal(info.ModTime())
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		entries: make(map[string]*cacheEntry),
	}
}

// Load returns the decoded buffer for path, reading and decoding the file on
// the first request and whenever it has changed since.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image
func (c *ImageCache) Load(path string) (*Buffer, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (c *ImageCache) load(path string) (*cacheEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if ok && e.matches(stat) {
		return e, nil
	}

	buf, format, err := Decode(f)
	if err != nil {
		return nil, err
	}

	e = &cacheEntry{buf: buf, format: format, size: stat.Size(), modTime: stat.ModTime()}
	c.mu.Lock()
	c.entries[path] = e
	c.mu.Unlock()

	return e, nil
}

// Clear removes all buffers from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific entry from the cache by its path. Unknown paths
// are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoded format name, e.g. "png", "jpeg", "webp".
	// Detection is based on file contents.
	Format string `json:"format"`

	// FileType is the MIME type of the source file, e.g. "image/png".
	FileType string `json:"file_type"`

	// HasAlpha reports whether any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImage loads path through the cache and returns the buffer together
// with its metadata.
func LoadImage(cache *ImageCache, path string) (*Buffer, *ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, nil, err
	}

	return e.buf, &ImageInfo{
		Width:         e.buf.Width,
		Height:        e.buf.Height,
		Format:        e.format,
		FileType:      "image/" + e.format,
		HasAlpha:      hasAlpha(e.buf),
		FileSizeBytes: e.size,
	}, nil
}

func hasAlpha(buf *Buffer) bool {
	for i := 3; i < len(buf.Pix); i += 4 {
		if buf.Pix[i] != 255 {
			return true
		}
	}
	return false
}
