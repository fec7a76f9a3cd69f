// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import (
	"fmt"
	"math/bits"
)

var defaultSBox = []uint16{0xE, 0x4, 0xD, 0x1, 0x2, 0xF, 0xB, 0x8, 0x3, 0xA, 0x6, 0xC, 0x5, 0x9, 0x0, 0x7}

// DefaultSBox returns a copy of the 4-bit S-box E4D12FB83A6C5907.
func DefaultSBox() []uint16 {
	return append([]uint16(nil), defaultSBox...)
}

// invertTable returns the inverse of a bijection over [0, len(table)).
func invertTable[T uint16 | int](table []T) ([]T, error) {
	inverse := make([]T, len(table))
	seen := make([]bool, len(table))
	for i, v := range table {
		if int(v) < 0 || int(v) >= len(table) {
			return nil, fmt.Errorf("%w: entry %d maps to %d, outside [0, %d)", ErrConfiguration, i, v, len(table))
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: entry %d duplicates output %d", ErrConfiguration, i, v)
		}
		seen[v] = true
		inverse[v] = T(i)
	}

	return inverse, nil
}

// SBox is a validated substitution table over n-bit symbols together with
// its inverse. It is immutable once built.
type SBox struct {
	width   int
	forward []uint16
	inverse []uint16
}

// NewSBox validates table as a bijection over [0, 2^n) and derives the
// inverse. len(table) must be a power of two no larger than 2^16.
func NewSBox(table []uint16) (*SBox, error) {
	if len(table) < 2 || len(table) > 1<<maxSymbolWidth || bits.OnesCount(uint(len(table))) != 1 {
		return nil, fmt.Errorf("%w: S-box size %d is not 2^n for n in [1, %d]", ErrConfiguration, len(table), maxSymbolWidth)
	}

	inverse, err := invertTable(table)
	if err != nil {
		return nil, fmt.Errorf("S-box: %w", err)
	}

	return &SBox{
		width:   bits.TrailingZeros(uint(len(table))),
		forward: append([]uint16(nil), table...),
		inverse: inverse,
	}, nil
}

// Width returns n, the symbol width in bits.
func (s *SBox) Width() int {
	return s.width
}

// Lookup returns SBox[x].
func (s *SBox) Lookup(x uint16) (uint16, error) {
	if int(x) >= len(s.forward) {
		return 0, fmt.Errorf("%w: symbol %d, S-box has %d entries", ErrRange, x, len(s.forward))
	}

	return s.forward[x], nil
}

// InverseLookup returns InvSBox[y].
func (s *SBox) InverseLookup(y uint16) (uint16, error) {
	if int(y) >= len(s.inverse) {
		return 0, fmt.Errorf("%w: symbol %d, S-box has %d entries", ErrRange, y, len(s.inverse))
	}

	return s.inverse[y], nil
}

// Substitute replaces every symbol x with SBox[x] in place. Nothing is
// written when any symbol is out of range.
func (s *SBox) Substitute(symbols []uint16) error {
	return s.apply(s.forward, symbols)
}

// InverseSubstitute replaces every symbol y with InvSBox[y] in place.
func (s *SBox) InverseSubstitute(symbols []uint16) error {
	return s.apply(s.inverse, symbols)
}

func (s *SBox) apply(table, symbols []uint16) error {
	for i, x := range symbols {
		if int(x) >= len(table) {
			return fmt.Errorf("%w: symbol %d at index %d, S-box has %d entries", ErrRange, x, i, len(table))
		}
	}
	for i, x := range symbols {
		symbols[i] = table[x]
	}

	return nil
}

// substituteBlock runs every symbol of b through table. Symbols taken out
// of a Block are masked to n bits and cannot be out of range.
func substituteBlock(p Params, table []uint16, b Block) Block {
	var out uint64
	for i := 0; i < p.SymbolCount; i++ {
		out = out<<uint(p.SymbolWidth) | uint64(table[b.symbol(p, i)])
	}

	return Block(out)
}
