// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package spn implements a small substitution-permutation network block
// cipher and a counter mode stream driver on top of it.
//
// The reference instance runs 4 rounds over 16-bit blocks made of four
// 4-bit S-boxes and takes a 32-bit master key. The cipher is a teaching
// construction and offers no real security.
package spn

import (
	"crypto/cipher"
	"fmt"

	"github.com/pion/logging"
)

// Cipher is an SPN keyed once with a master key. All state is fixed at
// construction, so a Cipher may be shared by any number of goroutines.
type Cipher struct {
	params    Params
	schedule  KeySchedule
	roundKeys []Block
	sbox      *SBox
	perm      *Permutation
	workers   int

	log logging.LeveledLogger
}

// NewCipher builds a Cipher for key, given as n-bit symbols, most
// significant first.
func NewCipher(key []uint16, opts ...CipherOption) (*Cipher, error) {
	cfg := defaultCipherConfig()
	for _, o := range opts {
		if err := o(cfg); err != nil {
			return nil, err
		}
	}

	p := cfg.params
	sbox, err := NewSBox(cfg.sbox)
	if err != nil {
		return nil, err
	}
	if sbox.Width() != p.SymbolWidth {
		return nil, fmt.Errorf("%w: S-box is %d bits wide, symbols are %d", ErrConfiguration, sbox.Width(), p.SymbolWidth)
	}

	perm, err := NewPermutation(cfg.permutation)
	if err != nil {
		return nil, err
	}
	if perm.Size() != p.BlockBits() {
		return nil, fmt.Errorf("%w: permutation covers %d bits, blocks are %d", ErrConfiguration, perm.Size(), p.BlockBits())
	}

	roundKeys, err := GenerateRoundKeys(p, cfg.schedule, key)
	if err != nil {
		return nil, err
	}

	c := &Cipher{
		params:    p,
		schedule:  cfg.schedule,
		roundKeys: roundKeys,
		sbox:      sbox,
		perm:      perm,
		workers:   cfg.workers,
		log:       cfg.loggerFactory.NewLogger("spn"),
	}
	c.log.Debugf("cipher ready: %s, %s key schedule, %d workers", p, c.schedule, c.workers)

	return c, nil
}

// Params returns the network shape.
func (c *Cipher) Params() Params {
	return c.params
}

// RoundKeys returns a copy of the r+1 round keys.
func (c *Cipher) RoundKeys() []Block {
	return append([]Block(nil), c.roundKeys...)
}

func (c *Cipher) checkBlock(b Block) {
	if uint64(b)&^c.params.blockMask() != 0 {
		panic(fmt.Sprintf("spn: block %#x is wider than %d bits", uint64(b), c.params.BlockBits()))
	}
}

// EncryptBlock encrypts one block. b must fit in n*m bits.
func (c *Cipher) EncryptBlock(b Block) Block {
	c.checkBlock(b)
	r := c.params.Rounds

	b ^= c.roundKeys[0]
	for i := 1; i < r; i++ {
		b = substituteBlock(c.params, c.sbox.forward, b)
		b = c.perm.Permute(b)
		b ^= c.roundKeys[i]
	}

	// The last round skips the permutation.
	b = substituteBlock(c.params, c.sbox.forward, b)

	return b ^ c.roundKeys[r]
}

// DecryptBlock inverts EncryptBlock. b must fit in n*m bits.
func (c *Cipher) DecryptBlock(b Block) Block {
	c.checkBlock(b)
	r := c.params.Rounds

	b ^= c.roundKeys[r]
	b = substituteBlock(c.params, c.sbox.inverse, b)
	for i := r - 1; i >= 1; i-- {
		b ^= c.roundKeys[i]
		b = c.perm.InversePermute(b)
		b = substituteBlock(c.params, c.sbox.inverse, b)
	}

	return b ^ c.roundKeys[0]
}

// EncryptBits encrypts one block given as a '0'/'1' string.
func (c *Cipher) EncryptBits(bits string) (string, error) {
	b, err := ParseBlock(c.params, bits)
	if err != nil {
		return "", err
	}

	return c.EncryptBlock(b).Bits(c.params), nil
}

// DecryptBits decrypts one block given as a '0'/'1' string.
func (c *Cipher) DecryptBits(bits string) (string, error) {
	b, err := ParseBlock(c.params, bits)
	if err != nil {
		return "", err
	}

	return c.DecryptBlock(b).Bits(c.params), nil
}

// AsBlock exposes c as a crypto/cipher.Block over big-endian byte blocks.
// It fails when n*m is not a multiple of 8.
func (c *Cipher) AsBlock() (cipher.Block, error) {
	size, err := c.params.BlockBytes()
	if err != nil {
		return nil, err
	}

	return &byteBlock{c: c, size: size}, nil
}

type byteBlock struct {
	c    *Cipher
	size int
}

func (b *byteBlock) BlockSize() int {
	return b.size
}

func (b *byteBlock) Encrypt(dst, src []byte) {
	b.crypt(dst, src, b.c.EncryptBlock)
}

func (b *byteBlock) Decrypt(dst, src []byte) {
	b.crypt(dst, src, b.c.DecryptBlock)
}

func (b *byteBlock) crypt(dst, src []byte, fn func(Block) Block) {
	if len(src) < b.size {
		panic("spn: input not full block")
	}
	if len(dst) < b.size {
		panic("spn: output not full block")
	}

	var in uint64
	for _, v := range src[:b.size] {
		in = in<<8 | uint64(v)
	}

	out := uint64(fn(Block(in)))
	for i := b.size - 1; i >= 0; i-- {
		dst[i] = byte(out)
		out >>= 8
	}
}
