// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a Cipher cannot be built from the
	// supplied parameters, tables or key.
	ErrConfiguration = errors.New("invalid cipher configuration")
	// ErrLengthMismatch is returned when an input does not have the length
	// an operation requires.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrRange is returned when a symbol or character does not fit its domain.
	ErrRange = errors.New("value out of range")
	// ErrMalformedBits is returned when a bit string holds anything but '0' and '1'.
	ErrMalformedBits = errors.New("malformed bit string")

	errNotByteAligned = errors.New("block width is not a multiple of 8 bits")
	errNoIV           = errors.New("ciphertext stream has no IV block")
)

type errorLength struct {
	Op   string
	Got  int
	Want int
}

func (e *errorLength) Error() string {
	return fmt.Sprintf("%s: got %d, want %d: %v", e.Op, e.Got, e.Want, ErrLengthMismatch)
}

func (e *errorLength) Unwrap() error {
	return ErrLengthMismatch
}
