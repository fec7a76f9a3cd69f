// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Counter (CTR) mode over block ciphers of any block size.

// The counter is the IV read as one big-endian integer and wraps modulo
// 2^(8*BlockSize), matching the block level counter of package spn.

package ctrstream

import (
	"crypto/cipher"

	"github.com/pion/transport/v3/utils/xor"
)

// Blocks of keystream generated per refill.
const streamBlocks = 32

// Stream is a CTR cipher stream for an arbitrary cipher.Block.
type Stream struct {
	b       cipher.Block
	ctr     []byte
	out     []byte
	outUsed int
}

// New returns a Stream which encrypts/decrypts using the given Block in
// counter mode. The length of iv must be the same as the Block's block size.
func New(block cipher.Block, iv []byte) *Stream {
	if len(iv) != block.BlockSize() {
		panic("ctrstream.New: IV length must equal block size")
	}

	x := &Stream{
		b:   block,
		ctr: append([]byte(nil), iv...),
		out: make([]byte, streamBlocks*block.BlockSize()),
	}
	x.outUsed = len(x.out)

	return x
}

func (x *Stream) increment() {
	for i := len(x.ctr) - 1; i >= 0; i-- {
		x.ctr[i]++
		if x.ctr[i] != 0 {
			break
		}
	}
}

func (x *Stream) refill() {
	bs := x.b.BlockSize()
	for i := 0; i < len(x.out); i += bs {
		x.b.Encrypt(x.out[i:i+bs], x.ctr)
		x.increment()
	}
	x.outUsed = 0
}

// XORKeyStream XORs each byte in the given slice with a byte from the
// cipher's key stream.
//
// If len(dst) < len(src), or dst and src overlap other than entirely,
// XORKeyStream panics. Multiple calls behave as if
// the concatenation of the src buffers was passed in a single run.
func (x *Stream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("ctrstream: output smaller than input")
	}

	if inexactOverlap(dst[:len(src)], src) {
		panic("ctrstream: invalid buffer overlap")
	}

	for len(src) > 0 {
		if x.outUsed == len(x.out) {
			x.refill()
		}

		n := xor.XorBytes(dst, src, x.out[x.outUsed:])
		dst = dst[n:]
		src = src[n:]
		x.outUsed += n
	}
}

// Reset will reset the stream to the given IV.
func (x *Stream) Reset(iv []byte) {
	if len(iv) != len(x.ctr) {
		panic("ctrstream.Reset: IV length must equal block size")
	}

	copy(x.ctr, iv)
	x.outUsed = len(x.out)
}
