// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsToSymbols(t *testing.T) {
	symbols, err := BitsToSymbols("0001001010001111", 4)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 8, 15}, symbols)

	bits, err := SymbolsToBits(symbols, 4)
	require.NoError(t, err)
	assert.Equal(t, "0001001010001111", bits)
}

func TestBitsToSymbolsShortChunk(t *testing.T) {
	// A short trailing chunk is right-padded: "101" reads as "1010".
	symbols, err := BitsToSymbols("11110101", 3)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0b111, 0b101, 0b010}, symbols)

	symbols, err = BitsToSymbols("101", 4)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0b1010}, symbols)
}

func TestBitsToSymbolsErrors(t *testing.T) {
	_, err := BitsToSymbols("0102", 4)
	assert.ErrorIs(t, err, ErrMalformedBits)

	_, err = BitsToSymbols("0101", 0)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = SymbolsToBits([]uint16{16}, 4)
	assert.ErrorIs(t, err, ErrRange)
}

func TestTextToBits(t *testing.T) {
	bits, err := TextToBits("Gu")
	require.NoError(t, err)
	assert.Equal(t, "0100011101110101", bits)

	_, err = TextToBits("Grüße")
	assert.ErrorIs(t, err, ErrRange)
}

func TestBitsToText(t *testing.T) {
	text, err := BitsToText("0100011101110101" + "1000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "Gu", text)

	// No marker at all is a degenerate, not an error.
	text, err = BitsToText("0000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "", text)

	text, err = BitsToText("")
	require.NoError(t, err)
	assert.Equal(t, "", text)

	_, err = BitsToText("01000111011" + "1")
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = BitsToText("11000111" + "1")
	assert.ErrorIs(t, err, ErrRange)
}

func TestPaddingRoundTrip(t *testing.T) {
	for _, s := range []string{"", "G", "Gut gemacht!", "exactly 16 bytes", "\x00\x01\x7f"} {
		for _, width := range []int{1, 7, 8, 16, 24, 64, 128, 1000} {
			bits, err := TextToBits(s)
			require.NoError(t, err)

			padded, err := PadForBlocks(bits, width)
			require.NoError(t, err)
			assert.Zero(t, len(padded)%width)
			assert.Greater(t, len(padded), len(bits))

			text, err := BitsToText(padded)
			require.NoError(t, err)
			assert.Equal(t, s, text, "width %d", width)
		}
	}
}

func TestPadForBlocks(t *testing.T) {
	padded, err := PadForBlocks("0101", 8)
	require.NoError(t, err)
	assert.Equal(t, "01011000", padded)

	// An aligned input still gets a full block of padding.
	padded, err = PadForBlocks("01010101", 8)
	require.NoError(t, err)
	assert.Equal(t, "0101010110000000", padded)

	_, err = PadForBlocks("01", 0)
	assert.ErrorIs(t, err, ErrConfiguration)

	// Bit strings are not limited to the width of a Block.
	padded, err = PadForBlocks("0101", 128)
	require.NoError(t, err)
	assert.Len(t, padded, 128)
	assert.Equal(t, "01011", padded[:5])
}

func TestSplitIntoBlocks(t *testing.T) {
	chunks, err := SplitIntoBlocks("1111000011", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"1111", "0000", "1100"}, chunks)

	chunks, err = SplitIntoBlocks("", 4)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = SplitIntoBlocks(strings.Repeat("1", 130), 128)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "11"+strings.Repeat("0", 126), chunks[1])

	_, err = SplitIntoBlocks("01", -1)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestXorBits(t *testing.T) {
	out, err := XorBits("1100", "1010")
	require.NoError(t, err)
	assert.Equal(t, "0110", out)

	_, err = XorBits("1100", "101")
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = XorBits("1100", "10a0")
	assert.ErrorIs(t, err, ErrMalformedBits)
}
