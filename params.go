// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import "fmt"

const (
	maxSymbolWidth = 16
	maxBlockBits   = 64
)

// Params is the shape of the network: how many rounds it runs and how a
// block is split into S-box sized symbols.
type Params struct {
	Rounds      int // r
	SymbolWidth int // n, bits per S-box
	SymbolCount int // m, S-boxes per block
}

// DefaultParams returns r=4, n=4, m=4: 16-bit blocks and a 32-bit key.
func DefaultParams() Params {
	return Params{Rounds: 4, SymbolWidth: 4, SymbolCount: 4}
}

// Validate reports whether the parameters describe a network this package
// can run.
func (p Params) Validate() error {
	switch {
	case p.Rounds <= 0:
		return fmt.Errorf("%w: rounds must be positive, got %d", ErrConfiguration, p.Rounds)
	case p.SymbolWidth <= 0 || p.SymbolWidth > maxSymbolWidth:
		return fmt.Errorf("%w: symbol width must be in [1, %d], got %d", ErrConfiguration, maxSymbolWidth, p.SymbolWidth)
	case p.SymbolCount <= 0:
		return fmt.Errorf("%w: symbol count must be positive, got %d", ErrConfiguration, p.SymbolCount)
	case p.BlockBits() > maxBlockBits:
		return fmt.Errorf("%w: block width %d exceeds %d bits", ErrConfiguration, p.BlockBits(), maxBlockBits)
	}

	return nil
}

// BlockBits returns the block width n*m.
func (p Params) BlockBits() int {
	return p.SymbolWidth * p.SymbolCount
}

// BlockBytes returns the block width in bytes. It fails when the width is
// not byte aligned.
func (p Params) BlockBytes() (int, error) {
	if p.BlockBits()%8 != 0 {
		return 0, errNotByteAligned
	}

	return p.BlockBits() / 8, nil
}

// KeySymbols returns how many n-bit symbols a master key must hold for the
// given schedule.
func (p Params) KeySymbols(schedule KeySchedule) (int, error) {
	switch schedule {
	case KeyScheduleSlidingWindow:
		return p.Rounds + p.SymbolCount, nil
	case KeyScheduleSliced:
		return (p.Rounds + 1) * p.SymbolCount, nil
	default:
		return 0, fmt.Errorf("%w: no such KeySchedule %#v", ErrConfiguration, schedule)
	}
}

// KeyBits returns the master key width in bits for the given schedule.
func (p Params) KeyBits(schedule KeySchedule) (int, error) {
	symbols, err := p.KeySymbols(schedule)
	if err != nil {
		return 0, err
	}

	return symbols * p.SymbolWidth, nil
}

func (p Params) symbolMask() uint64 {
	return 1<<uint(p.SymbolWidth) - 1
}

func (p Params) blockMask() uint64 {
	if p.BlockBits() == maxBlockBits {
		return ^uint64(0)
	}

	return 1<<uint(p.BlockBits()) - 1
}

func (p Params) String() string {
	return fmt.Sprintf("r=%d n=%d m=%d", p.Rounds, p.SymbolWidth, p.SymbolCount)
}
