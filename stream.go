// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import (
	"crypto/cipher"

	"github.com/pion/spn/internal/ctrstream"
)

// NewStream returns a byte oriented CTR stream keyed by c. iv is one
// big-endian block and the counter wraps modulo 2^(n*m), so a byte
// stream agrees with EncryptCTR on whole blocks. The block width must be a
// multiple of 8.
func (c *Cipher) NewStream(iv []byte) (cipher.Stream, error) {
	block, err := c.AsBlock()
	if err != nil {
		return nil, err
	}
	if len(iv) != block.BlockSize() {
		return nil, &errorLength{Op: "NewStream", Got: len(iv), Want: block.BlockSize()}
	}

	return ctrstream.New(block, iv), nil
}
