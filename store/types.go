package store

import "errors"

// ErrSealed is returned when Append is called on a Writer whose Store has
// already been sealed.
var ErrSealed = errors.New("store: writer is sealed")

// ErrNotSealed is returned when a Reader is requested from a Store that has
// not yet been sealed — readers only make sense over a closed, finished
// sequence.
var ErrNotSealed = errors.New("store: store is not sealed for reading")

// ErrClosed is returned by operations on an already-closed Reader/Writer.
var ErrClosed = errors.New("store: already closed")

// Writer appends records to a Store in the caller's natural order. Seal
// finalizes the sequence; after Seal, Append always fails with ErrSealed.
type Writer[T any] interface {
	Append(v T) error
	Seal() error
}

// Reader streams records out of a sealed Store, forward or reversed
// depending on how it was opened. Peek returns the next record without
// consuming it; Next consumes and advances.
type Reader[T any] interface {
	// Next returns the next record. ok is false once the stream is
	// exhausted, and also whenever err is non-nil; it is never true
	// together with a non-nil error.
	Next() (v T, ok bool, err error)
	// Peek returns the next record without advancing the cursor.
	Peek() (v T, ok bool, err error)
	Close() error
}

// Store is a sealed-once, read-many-times sequential record store.
type Store[T any] interface {
	// Writer opens the single write side of the store. Must be called
	// before any Append and before Seal.
	Writer() (Writer[T], error)
	// Reader opens a new read stream over the sealed store.
	Reader(reversed bool) (Reader[T], error)
	// Len reports how many records were written (valid only after Seal).
	Len() int
	// Sealed reports whether Seal has been called.
	Sealed() bool
	// Attach reserves the store's backing resources (e.g. reopens a file
	// handle) after a prior Detach. New stores are attached by default.
	Attach() error
	// Detach releases backing resources without discarding the data,
	// so a long-lived Store can be parked between uses.
	Detach() error
	// Close releases all resources permanently; the Store cannot be used
	// again afterwards.
	Close() error
}

// Kind selects a Store's memory-residency policy.
type Kind int

const (
	// Mem backs a Store entirely in process memory.
	Mem Kind = iota
	// File backs a Store with a temp file fronted by a bounded LRU cache.
	File
)

// CutBudget is the maximum 1-level cut (see GLOSSARY) the engine will hold
// entirely in memory before switching to a File-backed store. spec_FULL.md
// §4.B ties this to the same estimate product construction and reduce use
// to choose between an all-in-memory and an external-memory LPQ.
const CutBudget = 1 << 16

// Backing picks Mem or File for a store expected to hold roughly
// estimatedCut records simultaneously live.
func Backing(estimatedCut int) Kind {
	if estimatedCut <= CutBudget {
		return Mem
	}
	return File
}
