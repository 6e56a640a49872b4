// Package params holds kzgshard's reference compile-time constants. The core
// (field, poly, fft, msm, kzg) does not depend on these values — every
// exported function there takes its sizes as arguments — and neither do
// shard's constructors or the trusted-setup loader; shard reads them only in
// its samplesPerRowDefault helper.
package params

const (
	// FieldElementsPerBlob is the canonical size of the blob evaluation
	// domain. Must be a power of two dividing r-1.
	FieldElementsPerBlob = 4096

	// FieldElementsPerSample is the width of one DAS sample (a coset of
	// the canonical domain).
	FieldElementsPerSample = 16

	// NMatrixRows is the number of blobs (rows) in the reference sharding
	// matrix.
	NMatrixRows = 4

	// NMatrixColumns is the number of samples per row in the reference
	// sharding matrix.
	NMatrixColumns = 4
)

// SamplesPerRow is the number of samples covering one blob's full domain.
func SamplesPerRow() int {
	return FieldElementsPerBlob / FieldElementsPerSample
}
