// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// KeySchedule selects how round keys are cut out of the master key.
// The two schedules produce different round keys and are not
// interchangeable: ciphertext made under one only decrypts under the same.
type KeySchedule uint8

const (
	// KeyScheduleSlidingWindow takes round key i from key symbols [i, i+m).
	// A master key holds r+m symbols. This is the reference schedule.
	KeyScheduleSlidingWindow KeySchedule = iota
	// KeyScheduleSliced takes round key i from key symbols [i*m, (i+1)*m).
	// A master key holds (r+1)*m symbols.
	KeyScheduleSliced
)

func (k KeySchedule) String() string {
	switch k {
	case KeyScheduleSlidingWindow:
		return "SlidingWindow"
	case KeyScheduleSliced:
		return "Sliced"
	default:
		return fmt.Sprintf("KeySchedule(%d)", uint8(k))
	}
}

// DefaultKey returns the reference master key nibbles
// 0011 1010 1001 0100 1101 0110 0011 1111.
func DefaultKey() []uint16 {
	return []uint16{0x3, 0xA, 0x9, 0x4, 0xD, 0x6, 0x3, 0xF}
}

// GenerateRoundKeys derives the r+1 round keys from key. The key must hold
// exactly the number of symbols the schedule needs, each below 2^n.
func GenerateRoundKeys(p Params, schedule KeySchedule, key []uint16) ([]Block, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	want, err := p.KeySymbols(schedule)
	if err != nil {
		return nil, err
	}
	if len(key) != want {
		return nil, fmt.Errorf("%w: %s schedule needs a %d symbol key, got %d",
			ErrConfiguration, schedule, want, len(key))
	}

	stride := 1
	if schedule == KeyScheduleSliced {
		stride = p.SymbolCount
	}

	roundKeys := make([]Block, p.Rounds+1)
	for i := range roundKeys {
		offset := i * stride
		if roundKeys[i], err = BlockFromSymbols(p, key[offset:offset+p.SymbolCount]); err != nil {
			return nil, fmt.Errorf("round key %d: %w", i, err)
		}
	}

	return roundKeys, nil
}

// ParseKey reads a master key from a '0'/'1' string. The length must be a
// multiple of n; whether it suits a schedule is checked by NewCipher.
func ParseKey(p Params, bits string) ([]uint16, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(bits)%p.SymbolWidth != 0 {
		return nil, &errorLength{Op: "ParseKey", Got: len(bits), Want: (len(bits)/p.SymbolWidth + 1) * p.SymbolWidth}
	}

	return BitsToSymbols(bits, p.SymbolWidth)
}

// DeriveKey stretches a passphrase into a master key for p and schedule.
// The leading bits of a BLAKE2b-512 digest are used; keys wider than
// 512 bits are not supported.
func DeriveKey(passphrase []byte, p Params, schedule KeySchedule) ([]uint16, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	keyBits, err := p.KeyBits(schedule)
	if err != nil {
		return nil, err
	}
	if keyBits > blake2b.Size*8 {
		return nil, fmt.Errorf("%w: %d bit key is wider than the %d bit digest", ErrConfiguration, keyBits, blake2b.Size*8)
	}

	digest := blake2b.Sum512(passphrase)
	key := make([]uint16, keyBits/p.SymbolWidth)
	for i := range key {
		var s uint16
		for j := 0; j < p.SymbolWidth; j++ {
			bit := i*p.SymbolWidth + j
			s = s<<1 | uint16(digest[bit/8]>>(7-uint(bit%8))&1)
		}
		key[i] = s
	}

	return key, nil
}
