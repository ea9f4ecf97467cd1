// Package stats carries the numeric code spec.md §1 calls "bundled
// alongside" the parser and explicitly out of scope for its correctness
// contract (pairwise correlation, rolling mean/variance over genotype
// dosage columns). It is plain, uninteresting numerical code compared to
// the parser; it exists here only because the teacher's own domain keeps
// this kind of analysis next to the parser it feeds.
package stats

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// PairwiseCorrelation computes the Pearson correlation coefficient between
// two equal-length float64 columns, e.g. two samples' GT dosage vectors
// produced by a calldata/GT chunk flattened to per-sample allele counts.
// Reports NaN if either column has zero variance.
func PairwiseCorrelation(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}
	sa := stats.Sample{Xs: a}
	sb := stats.Sample{Xs: b}
	meanA, meanB := sa.Mean(), sb.Mean()
	sdA, sdB := sa.StdDev(), sb.StdDev()
	if sdA == 0 || sdB == 0 {
		return math.NaN()
	}
	var cov float64
	for i := range a {
		cov += (a[i] - meanA) * (b[i] - meanB)
	}
	cov /= float64(len(a) - 1)
	return cov / (sdA * sdB)
}

// RollingWindow summarizes a sliding window of width over xs, one
// (mean, variance) pair per window position, e.g. smoothing a per-variant
// missingness rate. Uses go-moremath/stats.Sample per window rather than
// an incremental accumulator: windows are expected to be small relative to
// a chunk, so recomputation isn't worth the bookkeeping.
type RollingWindow struct {
	Mean     []float64
	Variance []float64
}

func RollingMeanVar(xs []float64, width int) RollingWindow {
	if width <= 0 || width > len(xs) {
		return RollingWindow{}
	}
	n := len(xs) - width + 1
	out := RollingWindow{Mean: make([]float64, n), Variance: make([]float64, n)}
	for i := 0; i < n; i++ {
		s := stats.Sample{Xs: xs[i : i+width]}
		out.Mean[i] = s.Mean()
		out.Variance[i] = s.Variance()
	}
	return out
}

// HaplotypeHomozygosity estimates the shared-prefix homozygosity between
// two phased allele sequences of equal ploidy: the fraction of leading
// alleles that match before the first mismatch, averaged over both
// directions. A thin stand-in for spec.md §1's "shared-prefix/haplotype
// homozygosity", not a full linkage-pruning implementation.
func HaplotypeHomozygosity(a, b []int32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.NaN()
	}
	n := len(a)
	fwd := 0
	for fwd < n && a[fwd] == b[fwd] {
		fwd++
	}
	rev := 0
	for rev < n && a[n-1-rev] == b[n-1-rev] {
		rev++
	}
	return float64(fwd+rev) / float64(2*n)
}
