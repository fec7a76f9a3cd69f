// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spn

import (
	"fmt"

	"github.com/pion/logging"
)

// CipherOption configures a Cipher in NewCipher.
type CipherOption func(*cipherConfig) error

type cipherConfig struct {
	params        Params
	sbox          []uint16
	permutation   []int
	schedule      KeySchedule
	loggerFactory logging.LoggerFactory
	workers       int
}

func defaultCipherConfig() *cipherConfig {
	return &cipherConfig{
		params:        DefaultParams(),
		sbox:          defaultSBox,
		permutation:   defaultPermutation,
		schedule:      KeyScheduleSlidingWindow,
		loggerFactory: logging.NewDefaultLoggerFactory(),
		workers:       1,
	}
}

// WithParams sets rounds, symbol width and symbol count. Tables sized for
// the defaults have to be replaced too when the width changes.
func WithParams(p Params) CipherOption {
	return func(c *cipherConfig) error {
		if err := p.Validate(); err != nil {
			return err
		}
		c.params = p

		return nil
	}
}

// WithSBox replaces the substitution table. The table must be a bijection
// over [0, 2^n).
func WithSBox(table []uint16) CipherOption {
	return func(c *cipherConfig) error {
		c.sbox = table

		return nil
	}
}

// WithPermutation replaces the bit permutation. The table must be a
// bijection over [0, n*m).
func WithPermutation(table []int) CipherOption {
	return func(c *cipherConfig) error {
		c.permutation = table

		return nil
	}
}

// WithKeySchedule selects the round key derivation.
func WithKeySchedule(schedule KeySchedule) CipherOption {
	return func(c *cipherConfig) error {
		if schedule != KeyScheduleSlidingWindow && schedule != KeyScheduleSliced {
			return fmt.Errorf("%w: no such KeySchedule %#v", ErrConfiguration, schedule)
		}
		c.schedule = schedule

		return nil
	}
}

// WithLoggerFactory sets the factory the cipher takes its logger from.
func WithLoggerFactory(factory logging.LoggerFactory) CipherOption {
	return func(c *cipherConfig) error {
		if factory == nil {
			return fmt.Errorf("%w: nil LoggerFactory", ErrConfiguration)
		}
		c.loggerFactory = factory

		return nil
	}
}

// WithWorkers sets how many goroutines CTR keystream generation may fan
// out to. 1 keeps it on the calling goroutine.
func WithWorkers(n int) CipherOption {
	return func(c *cipherConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be positive, got %d", ErrConfiguration, n)
		}
		c.workers = n

		return nil
	}
}
