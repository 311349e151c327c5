// Package store is the engine's sorted stream store: a typed, append-only
// sequential file abstraction. It intentionally stays thin — spec_FULL.md
// §4.B treats the TPIE-style block-cached file abstraction as an opaque
// external collaborator, specified only at its interface, so this package
// does not attempt to reimplement TPIE. It provides just enough of a
// concrete backing (an in-memory slice store and a temp-file store fronted
// by a bounded LRU cache) that the rest of the engine — lpq, reduce,
// product — can be exercised end-to-end rather than stubbed.
//
// A Store[T] supports: writing records once in the caller's natural order,
// sealing the write side, then opening any number of read streams
// (optionally reversed), each with one-element lookahead via Peek. A
// MultiStream groups several named, independently-typed sub-streams under
// one logical file — e.g. the node file's "nodes" + "level_info", or the
// arc file's four sub-streams — exactly as spec_FULL.md §6 describes.
package store
