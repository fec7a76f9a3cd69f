// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import (
	"fmt"
	"strings"
)

// paddingMarker terminates the message bits inside a padded stream.
const paddingMarker = '1'

func checkBits(bits string) error {
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return fmt.Errorf("%w: %q at offset %d", ErrMalformedBits, bits[i], i)
		}
	}

	return nil
}

func checkWidth(width, limit int) error {
	if width <= 0 || width > limit {
		return fmt.Errorf("%w: width must be in [1, %d], got %d", ErrConfiguration, limit, width)
	}

	return nil
}

// checkBlockWidth accepts any positive width. Bit strings are not bound by
// the 64-bit Block limit.
func checkBlockWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrConfiguration, width)
	}

	return nil
}

func appendBits(sb *strings.Builder, v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		if (v>>uint(i))&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
}

func parseBits(bits string) uint64 {
	var v uint64
	for i := 0; i < len(bits); i++ {
		v = v<<1 | uint64(bits[i]-'0')
	}

	return v
}

// rightPad extends bits with zeros up to the next multiple of width.
func rightPad(bits string, width int) string {
	if r := len(bits) % width; r != 0 {
		return bits + strings.Repeat("0", width-r)
	}

	return bits
}

// BitsToSymbols cuts bits into n-bit symbols, MSB first. A short trailing
// chunk is right-padded with zeros, so "101" with n=4 yields [10].
func BitsToSymbols(bits string, n int) ([]uint16, error) {
	if err := checkWidth(n, maxSymbolWidth); err != nil {
		return nil, err
	}
	if err := checkBits(bits); err != nil {
		return nil, err
	}

	bits = rightPad(bits, n)
	symbols := make([]uint16, 0, len(bits)/n)
	for i := 0; i < len(bits); i += n {
		symbols = append(symbols, uint16(parseBits(bits[i:i+n])))
	}

	return symbols, nil
}

// SymbolsToBits expands every symbol to exactly n bits, MSB first.
func SymbolsToBits(symbols []uint16, n int) (string, error) {
	if err := checkWidth(n, maxSymbolWidth); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(symbols) * n)
	for i, s := range symbols {
		if s>>uint(n) != 0 {
			return "", fmt.Errorf("%w: symbol %d is %d, width is %d bits", ErrRange, i, s, n)
		}
		appendBits(&sb, uint64(s), n)
	}

	return sb.String(), nil
}

// TextToBits encodes each character as 8 bits, MSB first. Only ASCII is
// accepted.
func TextToBits(text string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(text) * 8)
	for i, r := range text {
		if r > 0x7F {
			return "", fmt.Errorf("%w: non-ASCII character %q at offset %d", ErrRange, r, i)
		}
		appendBits(&sb, uint64(r), 8)
	}

	return sb.String(), nil
}

// BitsToText reverses PadForBlocks followed by TextToBits. Everything from
// the last '1' on is dropped and the rest is read as 8-bit characters.
// Bits without any '1' decode to the empty string.
func BitsToText(bits string) (string, error) {
	if err := checkBits(bits); err != nil {
		return "", err
	}

	end := strings.LastIndexByte(bits, paddingMarker)
	if end < 0 {
		return "", nil
	}
	bits = bits[:end]
	if len(bits)%8 != 0 {
		return "", &errorLength{Op: "BitsToText", Got: len(bits), Want: len(bits) - len(bits)%8}
	}

	out := make([]byte, 0, len(bits)/8)
	for i := 0; i < len(bits); i += 8 {
		c := parseBits(bits[i : i+8])
		if c > 0x7F {
			return "", fmt.Errorf("%w: non-ASCII byte %#x at offset %d", ErrRange, c, i)
		}
		out = append(out, byte(c))
	}

	return string(out), nil
}

// PadForBlocks appends the marker bit and then zeros until the length is a
// multiple of width. It always adds at least one bit.
func PadForBlocks(bits string, width int) (string, error) {
	if err := checkBlockWidth(width); err != nil {
		return "", err
	}
	if err := checkBits(bits); err != nil {
		return "", err
	}

	return rightPad(bits+string(paddingMarker), width), nil
}

// SplitIntoBlocks cuts bits into width sized chunks. A short trailing chunk
// is right-padded with zeros.
func SplitIntoBlocks(bits string, width int) ([]string, error) {
	if err := checkBlockWidth(width); err != nil {
		return nil, err
	}
	if err := checkBits(bits); err != nil {
		return nil, err
	}

	bits = rightPad(bits, width)
	chunks := make([]string, 0, len(bits)/width)
	for i := 0; i < len(bits); i += width {
		chunks = append(chunks, bits[i:i+width])
	}

	return chunks, nil
}

// XorBits returns the bitwise exclusive-or of two equally long bit strings.
func XorBits(a, b string) (string, error) {
	if len(a) != len(b) {
		return "", &errorLength{Op: "XorBits", Got: len(b), Want: len(a)}
	}
	if err := checkBits(a); err != nil {
		return "", err
	}
	if err := checkBits(b); err != nil {
		return "", err
	}

	out := make([]byte, len(a))
	for i := range out {
		out[i] = '0' + ((a[i] - '0') ^ (b[i] - '0'))
	}

	return string(out), nil
}
