// Package book implements an opening book keyed by position hash rather
// than by the Polyglot wire format (a Western-chess-specific encoding with
// no Xiangqi equivalent): entries are stored in an embedded BadgerDB
// database via internal/storage, keyed by the 8-byte big-endian rendering
// of board.Position's Zobrist Hash.
package book

import (
	"encoding/binary"
	"encoding/json"
	"math/rand"
	"sort"

	"xiangqi/internal/board"
	"xiangqi/internal/storage"
)

const keyPrefix = "book:"

// BookEntry is a single candidate reply for a position, with a relative
// weight used for weighted-random selection among several candidates.
type BookEntry struct {
	Move   board.Move
	Weight uint16
}

// Book is an opening book backed by a Storage instance. A nil *Book always
// misses, so callers can probe a possibly-absent book without a nil check.
type Book struct {
	store *storage.Storage
}

// Open opens (creating if absent) the book database under dir.
func Open(dir string) (*Book, error) {
	store, err := storage.NewStorage(dir)
	if err != nil {
		return nil, err
	}
	return &Book{store: store}, nil
}

// Close closes the underlying database.
func (b *Book) Close() error {
	if b == nil || b.store == nil {
		return nil
	}
	return b.store.Close()
}

// AddEntry records a candidate reply for the position currently identified
// by hash, merging it with whatever entries are already stored there.
func (b *Book) AddEntry(hash uint64, entry BookEntry) error {
	entries, err := b.load(hash)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return b.save(hash, entries)
}

func (b *Book) load(hash uint64) ([]BookEntry, error) {
	raw, err := b.store.Get(storageKey(hash))
	if err != nil || raw == nil {
		return nil, err
	}
	var entries []BookEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (b *Book) save(hash uint64, entries []BookEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return b.store.Set(storageKey(hash), raw)
}

func storageKey(hash uint64) []byte {
	key := make([]byte, len(keyPrefix)+8)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], hash)
	return key
}

// Probe looks up pos.Hash in the book and returns a move chosen by weighted
// random selection among the stored entries, verified against the
// position's current legal moves so a stale or hash-colliding entry can
// never escape as a move the position cannot actually make.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}

	entries, err := b.load(pos.Hash)
	if err != nil || len(entries) == 0 {
		return board.NoMove, false
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Weight > entries[j].Weight
	})

	var totalWeight uint32
	for _, e := range entries {
		totalWeight += uint32(e.Weight)
	}

	if totalWeight == 0 {
		if m := verify(pos, entries[0].Move); m != board.NoMove {
			return m, true
		}
		return board.NoMove, false
	}

	r := rand.Uint32() % totalWeight
	var cumulative uint32
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			if m := verify(pos, e.Move); m != board.NoMove {
				return m, true
			}
			return board.NoMove, false
		}
	}

	return board.NoMove, false
}

// ProbeAll returns every stored candidate for pos.Hash, heaviest first,
// without the random selection or legality check Probe applies.
func (b *Book) ProbeAll(pos *board.Position) []BookEntry {
	if b == nil {
		return nil
	}
	entries, err := b.load(pos.Hash)
	if err != nil {
		return nil
	}
	result := make([]BookEntry, len(entries))
	copy(result, entries)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Weight > result[j].Weight
	})
	return result
}

// verify returns move with its flag taken from the matching legal move, or
// NoMove if no currently-legal move shares its from/to squares.
func verify(pos *board.Position, move board.Move) board.Move {
	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		lm := legal.Get(i)
		if lm.From() == move.From() && lm.To() == move.To() {
			return lm
		}
	}
	return board.NoMove
}
