// Package daserr defines the sentinel error kinds shared by every package in
// this module, so callers can errors.Is against a stable value instead of
// matching on error strings.
package daserr

import "errors"

var (
	// ErrInvalidDomain is returned when a requested FFT/roots-of-unity size
	// is not a power of two, or does not divide r-1.
	ErrInvalidDomain = errors.New("kzgshard: invalid domain")

	// ErrLengthMismatch is returned when paired-sequence inputs (MSM
	// points/scalars, polynomial division operands) differ in length.
	ErrLengthMismatch = errors.New("kzgshard: length mismatch")

	// ErrSetupTooSmall is returned when a commitment or proof needs a
	// higher power of the trusted-setup secret than was loaded.
	ErrSetupTooSmall = errors.New("kzgshard: trusted setup too small")

	// ErrInvalidCoset is returned when a coset shift is zero or the
	// requested coset size is not a power of two.
	ErrInvalidCoset = errors.New("kzgshard: invalid coset")
)
