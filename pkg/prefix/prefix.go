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

// Package prefix computes the self-describing wire prefix prepended to
// primitive output. The prefix identifies the producing key so that
// consumption can dispatch to it without external metadata.
package prefix

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-keyset/pkg/types"
)

const (
	// NonRawSize is the length in bytes of a tink, legacy or crunchy prefix:
	// one tag byte followed by the 4-byte big-endian key id.
	NonRawSize = 5

	// RawSize is the length of a raw prefix. Raw output is not
	// self-describing and requires a linear scan on consumption.
	RawSize = 0

	// TinkTag is the tag byte of tink-prefixed output.
	TinkTag byte = 0x01

	// LegacyTag is the tag byte of legacy- and crunchy-prefixed output.
	LegacyTag byte = 0x00
)

// ErrUnknownPrefixType is returned when a key carries an unrecognized output
// prefix type.
var ErrUnknownPrefixType = errors.New("prefix: unknown output prefix type")

// Output returns the wire prefix for a key with the given output prefix type
// and id. Tink, legacy and crunchy prefixes are NonRawSize bytes; raw is empty.
func Output(prefixType types.OutputPrefixType, keyID uint32) ([]byte, error) {
	switch prefixType {
	case types.PrefixTypeTink:
		return tagged(TinkTag, keyID), nil
	case types.PrefixTypeLegacy, types.PrefixTypeCrunchy:
		return tagged(LegacyTag, keyID), nil
	case types.PrefixTypeRaw:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrefixType, prefixType)
	}
}

// OutputForKey returns the wire prefix for the given key record.
func OutputForKey(key *types.Key) ([]byte, error) {
	return Output(key.PrefixType, key.ID)
}

func tagged(tag byte, keyID uint32) []byte {
	buf := make([]byte, NonRawSize)
	buf[0] = tag
	binary.BigEndian.PutUint32(buf[1:], keyID)
	return buf
}
