// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyset.
//
// go-keyset is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package primitiveset provides an immutable collection of instantiated
// primitives indexed by wire prefix, with one designated primary. A set is
// built once from a keyset's enabled keys, frozen, and then shared freely
// across concurrent readers.
package primitiveset

import (
	"errors"

	"github.com/jeremyhahn/go-keyset/pkg/prefix"
	"github.com/jeremyhahn/go-keyset/pkg/types"
)

var (
	// ErrFrozen is returned when mutating a set after it has been frozen.
	ErrFrozen = errors.New("primitiveset: set is frozen")

	// ErrKeyNotEnabled is returned when adding a primitive for a key whose
	// status is not enabled. Only enabled keys participate in dispatch.
	ErrKeyNotEnabled = errors.New("primitiveset: key is not enabled")

	// ErrForeignEntry is returned by SetPrimary for an entry that was not
	// produced by this set's own Add.
	ErrForeignEntry = errors.New("primitiveset: entry does not belong to this set")
)

// Entry pairs one instantiated primitive with the wire identity of the key
// that backs it.
type Entry[P any] struct {
	// Primitive is the instantiated cryptographic capability.
	Primitive P

	// KeyID is the id of the backing key within its keyset.
	KeyID uint32

	// Status is the backing key's lifecycle state at build time.
	Status types.KeyStatus

	// Prefix is the exact wire prefix of output produced by this entry.
	// Empty for raw keys.
	Prefix []byte

	// PrefixType is the backing key's output prefix type.
	PrefixType types.OutputPrefixType
}

// Set maps exact wire prefixes to insertion-ordered entry lists. Because key
// ids are unique within a keyset, a non-raw bucket holds at most one entry in
// practice; the raw bucket (empty prefix) may accumulate entries across
// rotations and is always scanned in insertion order.
//
// A Set is not safe for concurrent mutation. Freeze it after construction;
// a frozen Set is read-only and safe to share without locking.
type Set[P any] struct {
	entries map[string][]*Entry[P]
	primary *Entry[P]
	frozen  bool
}

// New creates an empty, unfrozen Set.
func New[P any]() *Set[P] {
	return &Set[P]{
		entries: make(map[string][]*Entry[P]),
	}
}

// Add instantiates an Entry for primitive backed by key, computes the key's
// wire prefix, and appends the entry to that exact prefix's bucket.
func (s *Set[P]) Add(primitive P, key *types.Key) (*Entry[P], error) {
	if s.frozen {
		return nil, ErrFrozen
	}
	if key.Status != types.StatusEnabled {
		return nil, ErrKeyNotEnabled
	}
	p, err := prefix.OutputForKey(key)
	if err != nil {
		return nil, err
	}
	entry := &Entry[P]{
		Primitive:  primitive,
		KeyID:      key.ID,
		Status:     key.Status,
		Prefix:     p,
		PrefixType: key.PrefixType,
	}
	s.entries[string(p)] = append(s.entries[string(p)], entry)
	return entry, nil
}

// SetPrimary records entry as the set's primary. The entry must have been
// produced by this set's own Add. The last call wins.
func (s *Set[P]) SetPrimary(entry *Entry[P]) error {
	if s.frozen {
		return ErrFrozen
	}
	if entry == nil || !s.owns(entry) {
		return ErrForeignEntry
	}
	s.primary = entry
	return nil
}

// Primary returns the primary entry, or nil if none was set.
func (s *Set[P]) Primary() *Entry[P] {
	return s.primary
}

// EntriesForPrefix returns the insertion-ordered entries whose keys produce
// output with exactly the given prefix. The returned slice is read-only.
func (s *Set[P]) EntriesForPrefix(p []byte) []*Entry[P] {
	return s.entries[string(p)]
}

// RawEntries returns the insertion-ordered entries for raw keys, i.e. the
// empty-prefix bucket. The returned slice is read-only.
func (s *Set[P]) RawEntries() []*Entry[P] {
	return s.entries[""]
}

// Freeze makes the set permanently read-only. Add and SetPrimary fail after
// Freeze; reads require no synchronization.
func (s *Set[P]) Freeze() {
	s.frozen = true
}

func (s *Set[P]) owns(entry *Entry[P]) bool {
	for _, e := range s.entries[string(entry.Prefix)] {
		if e == entry {
			return true
		}
	}
	return false
}
