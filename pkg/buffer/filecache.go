package buffer

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/edsrzf/mmap-go"
)

// FileCache provides byte-range source access for the analyzer's
// GetClassSource/GetMethodSource accessors without keeping every analyzed
// file's bytes resident for the lifetime of the process.
//
// Get() lazily mmaps a file on first access and keeps it mapped until
// Close(); FetchCode() turns a tree-sitter byte range into a string with an
// O(1) slice of the mapped region. Mmap failures (permissions, filesystems
// that don't support it) fall back to a plain in-memory read so callers
// never have to special-case the failure mode.
type FileCache interface {
	Get(filePath string) (*MappedFile, error)
	FetchCode(filePath string, startByte, endByte uint32) (string, error)
	Size() int
	Stats() FileCacheStats
	Close() error
}

// FileCacheConfig bounds how much the cache will map before Get starts
// returning errors instead of growing without limit.
type FileCacheConfig struct {
	// MaxFiles caps the number of distinct files kept mapped. Zero means
	// unlimited.
	MaxFiles int
	// MaxMemoryMB caps total virtual memory mapped, in megabytes. This is
	// address-space, not resident memory; the OS pages in only what's
	// actually sliced. Zero means unlimited.
	MaxMemoryMB int
	Logger      *slog.Logger
}

// DefaultFileCacheConfig covers repositories up to a few tens of thousands
// of files without needing to be tuned.
func DefaultFileCacheConfig() *FileCacheConfig {
	return &FileCacheConfig{MaxFiles: 20000, MaxMemoryMB: 4096}
}

// MappedFile is one cached, memory-mapped source file.
type MappedFile struct {
	Path     string
	Data     mmap.MMap
	File     *os.File
	Size     int64
	MappedAt time.Time
}

// FileCacheStats reports cache hit/miss and mapping counters.
type FileCacheStats struct {
	FilesLoaded   int64
	FilesCached   int
	CacheHits     int64
	CacheMisses   int64
	MmapFailures  int64
	TotalMappedMB float64
}

// NewFileCache builds a FileCache. A nil config uses DefaultFileCacheConfig.
func NewFileCache(config *FileCacheConfig) FileCache {
	if config == nil {
		config = DefaultFileCacheConfig()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &fileCache{
		config:        config,
		cache:         make(map[string]*MappedFile),
		fallbackCache: make(map[string][]byte),
		logger:        config.Logger,
	}
}

type fileCache struct {
	config *FileCacheConfig
	logger *slog.Logger

	mu            sync.RWMutex
	cache         map[string]*MappedFile
	fallbackCache map[string][]byte

	statsMu sync.Mutex
	stats   FileCacheStats
}

func (fc *fileCache) Get(filePath string) (*MappedFile, error) {
	fc.mu.RLock()
	if mf, ok := fc.cache[filePath]; ok {
		fc.mu.RUnlock()
		fc.recordHit()
		return mf, nil
	}
	if data, ok := fc.fallbackCache[filePath]; ok {
		fc.mu.RUnlock()
		fc.recordHit()
		return wrapFallback(filePath, data), nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if mf, ok := fc.cache[filePath]; ok {
		fc.recordHit()
		return mf, nil
	}
	if data, ok := fc.fallbackCache[filePath]; ok {
		fc.recordHit()
		return wrapFallback(filePath, data), nil
	}

	if err := fc.checkLimitsLocked(filePath); err != nil {
		fc.recordMiss()
		return nil, err
	}

	mf, err := fc.loadLocked(filePath)
	if err != nil {
		fc.recordMiss()
		return nil, err
	}
	fc.cache[filePath] = mf
	fc.recordLoad(mf)
	return mf, nil
}

func (fc *fileCache) checkLimitsLocked(filePath string) error {
	if fc.config.MaxFiles > 0 {
		current := len(fc.cache) + len(fc.fallbackCache)
		if current >= fc.config.MaxFiles {
			return fmt.Errorf("file cache limit reached: %d files (limit %d)", current, fc.config.MaxFiles)
		}
	}
	if fc.config.MaxMemoryMB > 0 {
		stat, err := os.Stat(filePath)
		if err != nil {
			return fmt.Errorf("stat %q: %w", filePath, err)
		}
		currentMB := fc.totalMappedMBLocked()
		newMB := float64(stat.Size()) / (1024 * 1024)
		if currentMB+newMB >= float64(fc.config.MaxMemoryMB) {
			return fmt.Errorf("file cache memory limit reached: %.2fMB + %.2fMB >= %dMB",
				currentMB, newMB, fc.config.MaxMemoryMB)
		}
	}
	return nil
}

func (fc *fileCache) loadLocked(filePath string) (*MappedFile, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", filePath, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %q: %w", filePath, err)
	}

	if stat.Size() == 0 {
		return &MappedFile{Path: filePath, File: f, MappedAt: time.Now()}, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		fc.logger.Warn("mmap failed, falling back to read", "file", filePath, "error", err)
		raw, readErr := os.ReadFile(filePath)
		f.Close()
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed (%v) and fallback read failed: %w", err, readErr)
		}
		fc.fallbackCache[filePath] = raw
		fc.recordMmapFailure()
		return wrapFallback(filePath, raw), nil
	}

	return &MappedFile{Path: filePath, Data: data, File: f, Size: stat.Size(), MappedAt: time.Now()}, nil
}

func wrapFallback(filePath string, data []byte) *MappedFile {
	return &MappedFile{Path: filePath, Data: mmap.MMap(data), Size: int64(len(data)), MappedAt: time.Now()}
}

// FetchCode slices [startByte, endByte) out of filePath, loading and mapping
// it first if necessary.
func (fc *fileCache) FetchCode(filePath string, startByte, endByte uint32) (string, error) {
	mf, err := fc.Get(filePath)
	if err != nil {
		return "", err
	}
	if len(mf.Data) == 0 {
		return "", nil
	}
	if endByte <= startByte {
		return "", fmt.Errorf("invalid byte range: end %d <= start %d", endByte, startByte)
	}
	if endByte > uint32(len(mf.Data)) {
		return "", fmt.Errorf("invalid byte range: end %d > size %d for %q", endByte, len(mf.Data), filePath)
	}
	return string(mf.Data[startByte:endByte]), nil
}

func (fc *fileCache) Size() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.cache) + len(fc.fallbackCache)
}

func (fc *fileCache) Stats() FileCacheStats {
	fc.mu.RLock()
	cached := len(fc.cache) + len(fc.fallbackCache)
	mb := fc.totalMappedMBLocked()
	fc.mu.RUnlock()

	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()
	s := fc.stats
	s.FilesCached = cached
	s.TotalMappedMB = mb
	return s
}

func (fc *fileCache) totalMappedMBLocked() float64 {
	var total int64
	for _, mf := range fc.cache {
		total += mf.Size
	}
	for _, data := range fc.fallbackCache {
		total += int64(len(data))
	}
	return float64(total) / (1024 * 1024)
}

func (fc *fileCache) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var firstErr error
	for path, mf := range fc.cache {
		if mf.Data != nil {
			if err := mf.Data.Unmap(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("unmap %q: %w", path, err)
			}
		}
		if mf.File != nil {
			if err := mf.File.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("close %q: %w", path, err)
			}
		}
	}
	fc.cache = make(map[string]*MappedFile)
	fc.fallbackCache = make(map[string][]byte)
	return firstErr
}

func (fc *fileCache) recordHit() {
	fc.statsMu.Lock()
	fc.stats.CacheHits++
	fc.statsMu.Unlock()
}

func (fc *fileCache) recordMiss() {
	fc.statsMu.Lock()
	fc.stats.CacheMisses++
	fc.statsMu.Unlock()
}

func (fc *fileCache) recordLoad(mf *MappedFile) {
	fc.statsMu.Lock()
	fc.stats.FilesLoaded++
	fc.statsMu.Unlock()
}

func (fc *fileCache) recordMmapFailure() {
	fc.statsMu.Lock()
	fc.stats.MmapFailures++
	fc.statsMu.Unlock()
}
