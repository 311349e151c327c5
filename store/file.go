package store

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds how many decoded records a FileStore keeps
// in memory at once — the "memory usage per stream is bounded and
// published" requirement of spec_FULL.md §4.B. Published via CacheStats.
const defaultCacheSize = 4096

// FileStore is a temp-file-backed Store[T]. Each record is framed as a
// 4-byte big-endian length prefix followed by an independently
// gob-encoded value, so any record can be decoded in isolation given its
// byte offset — the encoding trades a few repeated type descriptors for
// simple random/reverse access, which this package's scope (spec_FULL.md
// §4.B treats file format as an opaque external collaborator) does not
// need to optimize away.
type FileStore[T any] struct {
	mu      sync.Mutex
	path    string
	f       *os.File
	offsets []int64
	sealed  bool
	closed  bool
	cache   *lru.Cache[int, T]
	writer  *fileWriter[T]
}

// NewFileStore creates a FileStore backed by a fresh temp file in dir (os
// default temp dir if dir is empty).
func NewFileStore[T any](dir string) (*FileStore[T], error) {
	f, err := os.CreateTemp(dir, "adiar-store-*")
	if err != nil {
		return nil, fmt.Errorf("store: create temp file: %w", err)
	}
	cache, err := lru.New[int, T](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("store: create cache: %w", err)
	}
	return &FileStore[T]{path: f.Name(), f: f, cache: cache}, nil
}

// CacheStats reports the cache's configured capacity and current length,
// satisfying spec_FULL.md §4.B's "published" memory bound.
func (s *FileStore[T]) CacheStats() (capacity, length int) {
	return defaultCacheSize, s.cache.Len()
}

func (s *FileStore[T]) Writer() (Writer[T], error) {
	if s.writer == nil {
		s.writer = &fileWriter[T]{store: s}
	}
	return s.writer, nil
}

func (s *FileStore[T]) Reader(reversed bool) (Reader[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sealed {
		return nil, ErrNotSealed
	}
	if s.f == nil {
		if err := s.reopenRead(); err != nil {
			return nil, err
		}
	}
	return &fileReader[T]{store: s, reversed: reversed}, nil
}

func (s *FileStore[T]) Len() int      { return len(s.offsets) }
func (s *FileStore[T]) Sealed() bool  { return s.sealed }
func (s *FileStore[T]) Attach() error { s.mu.Lock(); defer s.mu.Unlock(); return s.reopenRead() }

func (s *FileStore[T]) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	s.cache.Purge()
	return err
}

func (s *FileStore[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.f != nil {
		_ = s.f.Close()
	}
	s.cache.Purge()
	return os.Remove(s.path)
}

func (s *FileStore[T]) reopenRead() error {
	if s.f != nil {
		return nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("store: reopen %s: %w", s.path, err)
	}
	s.f = f
	return nil
}

// decode reads and gob-decodes the record at logical index i, using the
// LRU cache to avoid re-hitting disk for a recently-read index (the
// access pattern a Reader's Peek followed by Next produces: the same index
// is read once by Peek and again moments later by Next).
func (s *FileStore[T]) decode(i int) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache.Get(i); ok {
		return v, nil
	}
	if i < 0 || i >= len(s.offsets) {
		return zero, fmt.Errorf("store: index %d out of range [0,%d)", i, len(s.offsets))
	}
	if s.f == nil {
		if err := s.reopenRead(); err != nil {
			return zero, err
		}
	}

	if _, err := s.f.Seek(s.offsets[i], io.SeekStart); err != nil {
		return zero, fmt.Errorf("store: seek: %w", err)
	}
	var length uint32
	if err := binary.Read(s.f, binary.BigEndian, &length); err != nil {
		return zero, fmt.Errorf("store: read length prefix: %w", err)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(s.f, buf); err != nil {
		return zero, fmt.Errorf("store: read record body: %w", err)
	}
	var v T
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&v); err != nil {
		return zero, fmt.Errorf("store: decode record %d: %w", i, err)
	}
	s.cache.Add(i, v)
	return v, nil
}

type fileWriter[T any] struct {
	store *FileStore[T]
}

func (w *fileWriter[T]) Append(v T) error {
	s := w.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return ErrSealed
	}
	var body bytes.Buffer
	if err := gob.NewEncoder(&body).Encode(v); err != nil {
		return fmt.Errorf("store: encode record: %w", err)
	}
	offset, err := s.f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("store: seek to end: %w", err)
	}
	if err := binary.Write(s.f, binary.BigEndian, uint32(body.Len())); err != nil {
		return fmt.Errorf("store: write length prefix: %w", err)
	}
	if _, err := s.f.Write(body.Bytes()); err != nil {
		return fmt.Errorf("store: write record body: %w", err)
	}
	s.offsets = append(s.offsets, offset)
	return nil
}

func (w *fileWriter[T]) Seal() error {
	s := w.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return nil
	}
	s.sealed = true
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("store: close after seal: %w", err)
	}
	s.f = nil
	return nil
}

type fileReader[T any] struct {
	store    *FileStore[T]
	reversed bool
	idx      int
	closed   bool
}

func (r *fileReader[T]) physicalIndex(offsetFromCursor int) (int, bool) {
	n := r.store.Len()
	pos := r.idx + offsetFromCursor
	if pos >= n {
		return 0, false
	}
	if r.reversed {
		return n - 1 - pos, true
	}
	return pos, true
}

func (r *fileReader[T]) Peek() (T, bool, error) {
	var zero T
	if r.closed {
		return zero, false, ErrClosed
	}
	idx, ok := r.physicalIndex(0)
	if !ok {
		return zero, false, nil
	}
	v, err := r.store.decode(idx)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func (r *fileReader[T]) Next() (T, bool, error) {
	v, ok, err := r.Peek()
	if err == nil && ok {
		r.idx++
	}
	return v, ok, err
}

func (r *fileReader[T]) Close() error {
	r.closed = true
	return nil
}

var (
	_ Store[int]  = (*FileStore[int])(nil)
	_ Writer[int] = (*fileWriter[int])(nil)
	_ Reader[int] = (*fileReader[int])(nil)
)
