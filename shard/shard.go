// Package shard implements the DAS "blobs matrix" sample abstraction: rows
// of blobs, each split into fixed-size samples, each sample owning a KZG
// multiproof against its row's commitment.
package shard

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/dascore/kzgshard/fft"
	"github.com/dascore/kzgshard/field"
	"github.com/dascore/kzgshard/internal/daserr"
	"github.com/dascore/kzgshard/internal/dlog"
	"github.com/dascore/kzgshard/kzg"
	"github.com/dascore/kzgshard/params"
	"github.com/dascore/kzgshard/roots"
	"github.com/dascore/kzgshard/trustedsetup"
)

// Sample is a contiguous M-element stripe of a blob's evaluations, plus the
// multiproof that those values sit on the row polynomial restricted to the
// sample's coset.
type Sample struct {
	SampleIndex int
	DataPoints  []field.Element
	Multiproof  bls12381.G1Affine
}

// CosetShift returns h_i, the shift of the coset sample i's contiguous
// storage stripe lines up with once read in reverse-bit-order. Indexing
// domain.RBO (ω_n^(reverse_bits(k, n)) for k in [0, n)) at k = i*M lands
// exactly on ω_n^(reverse_bits(i, samplesPerRow)), since i*M's low log2(M)
// bits are zero and bit-reversal turns them into the high, discarded bits.
func CosetShift(domain *roots.Domain, sampleIndex, m int) field.Element {
	return domain.RBO[sampleIndex*m]
}

// VerifyMultiproof checks this sample's multiproof against a row commitment.
// s.DataPoints is already stored in the coset-local natural evaluation
// order (NewBlob built it with one RBOPermute of the raw storage stripe),
// so it is handed to the coset verifier as-is.
func (s *Sample) VerifyMultiproof(setup *trustedsetup.Setup, domain *roots.Domain, m int, commitment bls12381.G1Affine) (bool, error) {
	h := CosetShift(domain, s.SampleIndex, m)
	return kzg.VerifyMultiproof(setup, commitment, h, s.DataPoints, s.Multiproof)
}

// Blob is one row of the sharding matrix: n field-element evaluations over
// the canonical domain, their KZG commitment, and the n/M samples covering
// the full domain.
type Blob struct {
	Commitment bls12381.G1Affine
	Samples    []*Sample
}

// NewBlob builds a Blob from n field elements already reduced mod r. n must
// be a power of two divisible by m (the sample width); samples are computed
// in parallel, one goroutine per coset, since each is independent.
func NewBlob(ctx context.Context, setup *trustedsetup.Setup, data []field.Element, m int) (*Blob, error) {
	n := len(data)
	if !field.IsPowerOfTwo(uint64(n)) {
		return nil, daserr.ErrInvalidDomain
	}
	if m <= 0 || n%m != 0 {
		return nil, daserr.ErrInvalidCoset
	}

	domain, err := roots.Canonical(uint64(n))
	if err != nil {
		return nil, err
	}

	commitment, err := kzg.BlobToCommitment(setup, data)
	if err != nil {
		return nil, err
	}

	permuted, err := field.RBOPermute(data)
	if err != nil {
		return nil, err
	}
	rowPoly, err := transformToCoefficients(permuted, domain)
	if err != nil {
		return nil, err
	}

	samplesPerRow := n / m
	samples := make([]*Sample, samplesPerRow)

	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < samplesPerRow; i++ {
		i := i
		g.Go(func() error {
			h := CosetShift(domain, i, m)
			proof, err := kzg.CreateMultiproof(setup, rowPoly, h, m)
			if err != nil {
				return fmt.Errorf("shard: sample %d: %w", i, err)
			}
			dataPoints, err := field.RBOPermute(data[i*m : (i+1)*m])
			if err != nil {
				return err
			}
			samples[i] = &Sample{SampleIndex: i, DataPoints: dataPoints, Multiproof: proof}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Blob{Commitment: commitment, Samples: samples}, nil
}

// transformToCoefficients recovers the coefficient-form row polynomial from
// rbo-permuted evaluations, the same inverse FFT kzg.BlobToCommitment
// performs internally — shard keeps its own copy so it can reuse the result
// across every sample's multiproof instead of repeating the work per sample.
func transformToCoefficients(permuted []field.Element, domain *roots.Domain) ([]field.Element, error) {
	return fft.Transform(permuted, domain.Roots, true)
}

// BlobsMatrix owns R independent blobs (rows) and exposes sample lookup by
// linear index, row, or column.
type BlobsMatrix struct {
	Rows          []*Blob
	SamplesPerRow int
}

// NewBlobsMatrix builds a matrix of `rows` independent random blobs, each
// covering a domain of size n (n/m samples per row). Rows are constructed in
// parallel.
func NewBlobsMatrix(ctx context.Context, setup *trustedsetup.Setup, rows, n, m int) (*BlobsMatrix, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("shard: rows must be positive")
	}
	if !field.IsPowerOfTwo(uint64(n)) || n%m != 0 {
		return nil, daserr.ErrInvalidDomain
	}

	blobs := make([]*Blob, rows)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < rows; i++ {
		i := i
		g.Go(func() error {
			data, err := randomFieldElements(n)
			if err != nil {
				return err
			}
			blob, err := NewBlob(gctx, setup, data, m)
			if err != nil {
				return fmt.Errorf("shard: row %d: %w", i, err)
			}
			blobs[i] = blob
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dlog.Logger().Info().Int("rows", rows).Int("samplesPerRow", n/m).Msg("blobs matrix built")
	return &BlobsMatrix{Rows: blobs, SamplesPerRow: n / m}, nil
}

func randomFieldElements(n int) ([]field.Element, error) {
	out := make([]field.Element, n)
	modulus := field.Modulus()
	for i := range out {
		v, err := rand.Int(rand.Reader, modulus)
		if err != nil {
			return nil, err
		}
		out[i].SetBigInt(v)
	}
	return out, nil
}

// total returns the number of samples across the whole matrix, R*(n/M).
func (bm *BlobsMatrix) total() int {
	return len(bm.Rows) * bm.SamplesPerRow
}

// Sample returns the sample and row commitment at linear index r.
func (bm *BlobsMatrix) Sample(r int) (*Sample, bls12381.G1Affine, error) {
	if r < 0 || r >= bm.total() {
		return nil, bls12381.G1Affine{}, daserr.ErrLengthMismatch
	}
	row := r / bm.SamplesPerRow
	col := r % bm.SamplesPerRow
	blob := bm.Rows[row]
	return blob.Samples[col], blob.Commitment, nil
}

// RandomSample picks a uniformly random sample via the half-open
// [0, total) convention (randIntn, backed by crypto/rand), not the inclusive
// off-by-one range an earlier, superseded version of this selector used.
func (bm *BlobsMatrix) RandomSample() (*Sample, bls12381.G1Affine, error) {
	r, err := randIntn(bm.total())
	if err != nil {
		return nil, bls12381.G1Affine{}, err
	}
	return bm.Sample(r)
}

// Row returns every sample in row r plus that row's commitment.
func (bm *BlobsMatrix) Row(r int) ([]*Sample, bls12381.G1Affine, error) {
	if r < 0 || r >= len(bm.Rows) {
		return nil, bls12381.G1Affine{}, daserr.ErrLengthMismatch
	}
	return bm.Rows[r].Samples, bm.Rows[r].Commitment, nil
}

// RandomRow picks a uniformly random row.
func (bm *BlobsMatrix) RandomRow() ([]*Sample, bls12381.G1Affine, error) {
	r, err := randIntn(len(bm.Rows))
	if err != nil {
		return nil, bls12381.G1Affine{}, err
	}
	return bm.Row(r)
}

// Column returns the column-th sample of every row, along with each row's
// commitment.
func (bm *BlobsMatrix) Column(c int) ([]*Sample, []bls12381.G1Affine, error) {
	if c < 0 || c >= bm.SamplesPerRow {
		return nil, nil, daserr.ErrLengthMismatch
	}
	samples := make([]*Sample, len(bm.Rows))
	commitments := make([]bls12381.G1Affine, len(bm.Rows))
	for i, blob := range bm.Rows {
		samples[i] = blob.Samples[c]
		commitments[i] = blob.Commitment
	}
	return samples, commitments, nil
}

// RandomColumn picks a uniformly random column.
func (bm *BlobsMatrix) RandomColumn() ([]*Sample, []bls12381.G1Affine, error) {
	c, err := randIntn(bm.SamplesPerRow)
	if err != nil {
		return nil, nil, err
	}
	return bm.Column(c)
}

func randIntn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("shard: non-positive range")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Coverage tracks which of a BlobsMatrix's linear sample indices a light
// client sampler has already drawn and verified, so it can decide when it
// has sampled enough of the matrix to gain confidence in availability.
type Coverage struct {
	total int
	seen  *bitset.BitSet
}

// NewCoverage allocates a coverage tracker for a matrix with the given total
// sample count (see BlobsMatrix.total).
func NewCoverage(total int) *Coverage {
	return &Coverage{total: total, seen: bitset.New(uint(total))}
}

// Mark records that linear sample index r has been verified.
func (c *Coverage) Mark(r int) {
	if r < 0 || r >= c.total {
		return
	}
	c.seen.Set(uint(r))
}

// Count returns how many distinct samples have been marked.
func (c *Coverage) Count() int {
	return int(c.seen.Count())
}

// Covered reports whether at least `threshold` distinct samples have been
// marked.
func (c *Coverage) Covered(threshold int) bool {
	return c.Count() >= threshold
}

// samplesPerRowDefault is the n/M value for the reference parameters, handy
// for callers that want BlobsMatrix sized per params.FieldElementsPerBlob.
func samplesPerRowDefault() int {
	return params.SamplesPerRow()
}
