// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import "strings"

// EncryptText frames an ASCII message and encrypts it in counter mode.
// The message bits get a '1' marker and zero fill to the block width; the
// returned bit string starts with the IV block.
func (c *Cipher) EncryptText(iv Block, text string) (string, error) {
	bits, err := TextToBits(text)
	if err != nil {
		return "", err
	}

	padded, err := PadForBlocks(bits, c.params.BlockBits())
	if err != nil {
		return "", err
	}

	chunks, err := SplitIntoBlocks(padded, c.params.BlockBits())
	if err != nil {
		return "", err
	}

	plaintext := make([]Block, len(chunks))
	for i, chunk := range chunks {
		if plaintext[i], err = ParseBlock(c.params, chunk); err != nil {
			return "", err
		}
	}

	stream, err := c.EncryptCTR(iv, plaintext)
	if err != nil {
		return "", err
	}

	return FormatBlocks(c.params, stream), nil
}

// DecryptText reverses EncryptText. A stream that decrypts to bits without
// a padding marker yields the empty string.
func (c *Cipher) DecryptText(ciphertext string) (string, error) {
	bits, err := c.DecryptCTRBits(ciphertext)
	if err != nil {
		return "", err
	}

	text, err := BitsToText(bits)
	if err != nil {
		return "", err
	}
	if len(bits) > 0 && !strings.ContainsRune(bits, paddingMarker) {
		c.log.Warnf("no padding marker in %d decrypted bits", len(bits))
	}

	return text, nil
}
