// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import "fmt"

var defaultPermutation = []int{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}

// DefaultPermutation returns a copy of the 16-bit transpose permutation.
func DefaultPermutation() []int {
	return append([]int(nil), defaultPermutation...)
}

// Permutation is a validated bit position bijection over a block and its
// inverse. Position 0 is the leftmost bit.
type Permutation struct {
	forward []int
	inverse []int
}

// NewPermutation validates table as a bijection over [0, len(table)).
func NewPermutation(table []int) (*Permutation, error) {
	if len(table) == 0 || len(table) > maxBlockBits {
		return nil, fmt.Errorf("%w: permutation size %d is not in [1, %d]", ErrConfiguration, len(table), maxBlockBits)
	}

	inverse, err := invertTable(table)
	if err != nil {
		return nil, fmt.Errorf("permutation: %w", err)
	}

	return &Permutation{
		forward: append([]int(nil), table...),
		inverse: inverse,
	}, nil
}

// Size returns the number of bit positions permuted.
func (p *Permutation) Size() int {
	return len(p.forward)
}

// Permute scatters input bit i to output position P[i].
func (p *Permutation) Permute(b Block) Block {
	return scatter(p.forward, b)
}

// InversePermute undoes Permute.
func (p *Permutation) InversePermute(b Block) Block {
	return scatter(p.inverse, b)
}

// PermuteBits applies Permute to a '0'/'1' string of exactly Size bits.
func (p *Permutation) PermuteBits(bits string) (string, error) {
	return p.bits(p.forward, bits)
}

// InversePermuteBits applies InversePermute to a '0'/'1' string.
func (p *Permutation) InversePermuteBits(bits string) (string, error) {
	return p.bits(p.inverse, bits)
}

func (p *Permutation) bits(table []int, bits string) (string, error) {
	if len(bits) != len(table) {
		return "", &errorLength{Op: "PermuteBits", Got: len(bits), Want: len(table)}
	}
	if err := checkBits(bits); err != nil {
		return "", err
	}

	out := make([]byte, len(bits))
	for i, to := range table {
		out[to] = bits[i]
	}

	return string(out), nil
}

func scatter(table []int, b Block) Block {
	width := len(table)
	var out uint64
	for i, to := range table {
		bit := (uint64(b) >> uint(width-1-i)) & 1
		out |= bit << uint(width-1-to)
	}

	return Block(out)
}
