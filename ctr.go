// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// minBlocksPerWorker keeps short messages on the calling goroutine.
const minBlocksPerWorker = 64

// counter returns the counter block for 0-based payload index i:
// (iv + i) mod 2^(n*m).
func (c *Cipher) counter(iv Block, i int) Block {
	return Block((uint64(iv) + uint64(i)) & c.params.blockMask())
}

func (c *Cipher) checkBlocks(blocks []Block) error {
	for i, b := range blocks {
		if uint64(b)&^c.params.blockMask() != 0 {
			return fmt.Errorf("%w: block %d is %#x, blocks are %d bits", ErrRange, i, uint64(b), c.params.BlockBits())
		}
	}

	return nil
}

// KeyStream returns E(iv), E(iv+1), ... E(iv+count-1). Only the encrypt
// direction of the block cipher is used. It panics when iv is wider than
// n*m bits or count is negative.
func (c *Cipher) KeyStream(iv Block, count int) []Block {
	c.checkBlock(iv)
	if count < 0 {
		panic(fmt.Sprintf("spn: negative keystream length %d", count))
	}
	out := make([]Block, count)

	workers := c.workers
	if limit := count / minBlocksPerWorker; limit < workers {
		workers = limit
	}
	if workers <= 1 {
		c.fillKeyStream(out, iv, 0)
		return out
	}

	c.log.Tracef("keystream: %d blocks over %d workers", count, workers)

	chunk := (count + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < count; start += chunk {
		end := start + chunk
		if end > count {
			end = count
		}
		part, offset := out[start:end], start
		g.Go(func() error {
			c.fillKeyStream(part, iv, offset)
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	return out
}

func (c *Cipher) fillKeyStream(dst []Block, iv Block, offset int) {
	for i := range dst {
		dst[i] = c.EncryptBlock(c.counter(iv, offset+i))
	}
}

// xorKeyStream returns src XOR the keystream starting at iv.
func (c *Cipher) xorKeyStream(iv Block, src []Block) []Block {
	out := c.KeyStream(iv, len(src))
	for i, b := range src {
		out[i] ^= b
	}

	return out
}

// EncryptCTR encrypts plaintext blocks in counter mode. The result starts
// with iv followed by P[i] XOR E(iv+i) for 0-based i.
func (c *Cipher) EncryptCTR(iv Block, plaintext []Block) ([]Block, error) {
	if err := c.checkBlocks(append([]Block{iv}, plaintext...)); err != nil {
		return nil, err
	}

	c.log.Tracef("CTR encrypt: %d blocks", len(plaintext))

	return append([]Block{iv}, c.xorKeyStream(iv, plaintext)...), nil
}

// DecryptCTR takes a stream whose block 0 is the IV and returns the
// plaintext blocks P[i] = C[i] XOR E(C[0] + i - 1) for i in 1..N.
func (c *Cipher) DecryptCTR(stream []Block) ([]Block, error) {
	if len(stream) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrLengthMismatch, errNoIV)
	}
	if err := c.checkBlocks(stream); err != nil {
		return nil, err
	}

	c.log.Tracef("CTR decrypt: %d blocks", len(stream)-1)

	return c.xorKeyStream(stream[0], stream[1:]), nil
}

// EncryptCTRBits is EncryptCTR over a block aligned '0'/'1' string.
func (c *Cipher) EncryptCTRBits(iv Block, bits string) (string, error) {
	plaintext, err := ParseBlocks(c.params, bits)
	if err != nil {
		return "", err
	}

	stream, err := c.EncryptCTR(iv, plaintext)
	if err != nil {
		return "", err
	}

	return FormatBlocks(c.params, stream), nil
}

// DecryptCTRBits is DecryptCTR over a block aligned '0'/'1' string whose
// first block is the IV.
func (c *Cipher) DecryptCTRBits(bits string) (string, error) {
	stream, err := ParseBlocks(c.params, bits)
	if err != nil {
		return "", err
	}

	plaintext, err := c.DecryptCTR(stream)
	if err != nil {
		return "", err
	}

	return FormatBlocks(c.params, plaintext), nil
}
