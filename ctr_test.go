// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// IV 0000010011010010 followed by seven payload blocks.
const referenceCTRCiphertext = "0000010011010010" +
	"0000101110111000" + "0000001010001111" + "1000111001111111" + "0110000001010001" +
	"0100001110100000" + "0001001101100111" + "0010101110110000"

const referenceCTRPlaintext = "0100011101110101011101000010000001100111011001010110110101100001" +
	"011000110110100001110100001000011000000000000000"

func TestDecryptCTRReferenceVector(t *testing.T) {
	c, err := NewCipher(DefaultKey())
	require.NoError(t, err)

	bits, err := c.DecryptCTRBits(referenceCTRCiphertext)
	require.NoError(t, err)
	assert.Equal(t, referenceCTRPlaintext, bits)

	text, err := BitsToText(bits)
	require.NoError(t, err)
	assert.Equal(t, "Gut gemacht!", text)
}

func TestEncryptCTRReferenceVector(t *testing.T) {
	c, err := NewCipher(DefaultKey())
	require.NoError(t, err)

	bits, err := c.EncryptCTRBits(0x04D2, referenceCTRPlaintext)
	require.NoError(t, err)
	assert.Equal(t, referenceCTRCiphertext, bits)
}

func TestCTRKeyStreamIndependence(t *testing.T) {
	c, err := NewCipher(DefaultKey())
	require.NoError(t, err)

	stream, err := ParseBlocks(c.Params(), referenceCTRCiphertext)
	require.NoError(t, err)
	want, err := c.DecryptCTR(stream)
	require.NoError(t, err)

	for i := 1; i < len(stream); i++ {
		tampered := append([]Block(nil), stream...)
		tampered[i] ^= 0x0101

		got, err := c.DecryptCTR(tampered)
		require.NoError(t, err)
		for j := range got {
			if j == i-1 {
				assert.Equal(t, want[j]^0x0101, got[j])
			} else {
				assert.Equal(t, want[j], got[j], "block %d changed by tampering block %d", j+1, i)
			}
		}
	}
}

func TestCTRCounterWraps(t *testing.T) {
	c, err := NewCipher(DefaultKey())
	require.NoError(t, err)

	stream, err := c.EncryptCTR(0xFFFF, []Block{0, 0})
	require.NoError(t, err)
	assert.Equal(t, []Block{0xFFFF, 0xCFDF, 0x9278}, stream)
	assert.Equal(t, c.EncryptBlock(0), stream[2])
}

func TestCTRRoundTrip(t *testing.T) {
	c, err := NewCipher(referenceVectorKey)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(1)) //nolint:gosec
	for n := 0; n < 40; n++ {
		plaintext := make([]Block, n)
		for i := range plaintext {
			plaintext[i] = Block(r.Intn(1 << 16))
		}
		iv := Block(r.Intn(1 << 16))

		stream, err := c.EncryptCTR(iv, plaintext)
		require.NoError(t, err)
		require.Len(t, stream, n+1)
		assert.Equal(t, iv, stream[0])

		got, err := c.DecryptCTR(stream)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestCTRParallelMatchesSerial(t *testing.T) {
	serial, err := NewCipher(DefaultKey())
	require.NoError(t, err)
	parallel, err := NewCipher(DefaultKey(), WithWorkers(8))
	require.NoError(t, err)

	for _, count := range []int{0, 1, 63, 64, 129, 1000, 1 << 16, 1<<16 + 5} {
		assert.Equal(t, serial.KeyStream(0xFFF0, count), parallel.KeyStream(0xFFF0, count), "count %d", count)
	}
}

func TestDecryptCTRErrors(t *testing.T) {
	c, err := NewCipher(DefaultKey())
	require.NoError(t, err)

	_, err = c.DecryptCTR(nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	plaintext, err := c.DecryptCTR([]Block{0x1234})
	require.NoError(t, err)
	assert.Empty(t, plaintext)

	_, err = c.DecryptCTR([]Block{0x1234, 0x10000})
	assert.ErrorIs(t, err, ErrRange)

	_, err = c.EncryptCTR(0x10000, nil)
	assert.ErrorIs(t, err, ErrRange)

	_, err = c.DecryptCTRBits(referenceCTRCiphertext[:120])
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestKeyStreamNegativeCount(t *testing.T) {
	c, err := NewCipher(DefaultKey())
	require.NoError(t, err)

	assert.PanicsWithValue(t, "spn: negative keystream length -1", func() { c.KeyStream(0, -1) })
	assert.Empty(t, c.KeyStream(0, 0))
}

func benchmarkKeyStream(b *testing.B, workers, count int) {
	c, err := NewCipher(DefaultKey(), WithWorkers(workers))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.KeyStream(Block(i&0xFFFF), count)
	}
}

func BenchmarkKeyStream4KSerial(b *testing.B) {
	benchmarkKeyStream(b, 1, 4096)
}

func BenchmarkKeyStream4KParallel(b *testing.B) {
	benchmarkKeyStream(b, 4, 4096)
}
