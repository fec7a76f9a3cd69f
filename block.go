// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import (
	"fmt"
	"strings"
)

// Block is one n*m bit cipher block held in the low bits of a uint64.
// Symbol 0 and bit 0 are the most significant, leftmost positions, so
// the block 0x128F reads "0001001010001111" and has symbols [1 2 8 15].
type Block uint64

// BlockFromSymbols packs exactly m symbols, each below 2^n, into a Block.
func BlockFromSymbols(p Params, symbols []uint16) (Block, error) {
	if len(symbols) != p.SymbolCount {
		return 0, &errorLength{Op: "BlockFromSymbols", Got: len(symbols), Want: p.SymbolCount}
	}

	var b uint64
	for i, s := range symbols {
		if uint64(s) > p.symbolMask() {
			return 0, fmt.Errorf("%w: symbol %d is %d, width is %d bits", ErrRange, i, s, p.SymbolWidth)
		}
		b = b<<uint(p.SymbolWidth) | uint64(s)
	}

	return Block(b), nil
}

// Symbols returns the m symbols of b, most significant first.
func (b Block) Symbols(p Params) []uint16 {
	out := make([]uint16, p.SymbolCount)
	for i := range out {
		out[i] = b.symbol(p, i)
	}

	return out
}

func (b Block) symbol(p Params, i int) uint16 {
	shift := uint(p.SymbolWidth * (p.SymbolCount - 1 - i))
	return uint16((uint64(b) >> shift) & p.symbolMask())
}

// ParseBlock reads a block from a '0'/'1' string of exactly n*m characters.
func ParseBlock(p Params, bits string) (Block, error) {
	if len(bits) != p.BlockBits() {
		return 0, &errorLength{Op: "ParseBlock", Got: len(bits), Want: p.BlockBits()}
	}

	var b uint64
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			b <<= 1
		case '1':
			b = b<<1 | 1
		default:
			return 0, fmt.Errorf("%w: %q at offset %d", ErrMalformedBits, bits[i], i)
		}
	}

	return Block(b), nil
}

// Bits renders b as a '0'/'1' string of exactly n*m characters.
func (b Block) Bits(p Params) string {
	var sb strings.Builder
	sb.Grow(p.BlockBits())
	for i := p.BlockBits() - 1; i >= 0; i-- {
		if (uint64(b)>>uint(i))&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// ParseBlocks splits a block aligned bit string into Blocks.
func ParseBlocks(p Params, bits string) ([]Block, error) {
	width := p.BlockBits()
	if len(bits)%width != 0 {
		return nil, &errorLength{Op: "ParseBlocks", Got: len(bits), Want: (len(bits)/width + 1) * width}
	}

	blocks := make([]Block, 0, len(bits)/width)
	for i := 0; i < len(bits); i += width {
		b, err := ParseBlock(p, bits[i:i+width])
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}

	return blocks, nil
}

// FormatBlocks concatenates the bit strings of blocks in order.
func FormatBlocks(p Params, blocks []Block) string {
	var sb strings.Builder
	sb.Grow(len(blocks) * p.BlockBits())
	for _, b := range blocks {
		sb.WriteString(b.Bits(p))
	}

	return sb.String()
}
