package vcfchunk

// genotypeSubParser implements spec.md §4.8.1: GT is the one FORMAT key
// with a dedicated shape, (chunk_len, n_samples, ploidy), and its own
// separator grammar ('/' unphased, '|' phased; either may appear between
// any pair of alleles). Unlike INFO/calldata "number" fields, the trailing
// ploidy dimension is never squeezed, even when ploidy is 1 (spec.md §6).
type genotypeSubParser struct {
	buf      *numBuffer[int32]
	nSamples int
	ploidy   int
	dtype    DType
}

// newGenotypeSubParser always accumulates alleles as int32 (the '/' '|'
// scan needs one stable width) and narrows to dtype only on freeze, so a
// config declaring GT as int8/int16/int32/int64 all share this code path.
// Like calldata_subparsers.go, the backing buffer only knows a flat "row"
// dimension, so (variant, sample) collapses to row = variant*nSamples+sample
// with a [ploidy] tail; that is the row-major flattening of the 3-D
// (variant, sample, ploidy) array, reshaped without copying at freeze.
func newGenotypeSubParser(chunkLen, nSamples, ploidy int, dtype DType) *genotypeSubParser {
	return &genotypeSubParser{
		buf:      newNumBuffer[int32](chunkLen*nSamples, -1, []int{ploidy}),
		nSamples: nSamples,
		ploidy:   ploidy,
		dtype:    dtype,
	}
}

// parse reads one sample's allele list, e.g. "0/1" or "1|1" or "./.", into
// buf's (sample, allele) slots. It stops at (without consuming) the next
// COLON/TAB/NEWLINE/0.
func (g *genotypeSubParser) parse(ctx *parserContext, sample int) {
	row := ctx.chunkVariantIndex*g.nSamples + sample
	allele := 0
	ctx.tempClear()
	store := func() {
		if allele >= g.ploidy {
			if allele == g.ploidy {
				ctx.warn("more alleles than configured ploidy, dropping excess")
			}
			ctx.tempClear()
			return
		}
		if v, ok := ctx.tempToLong(); ok {
			g.buf.set(row, allele, int32(v))
		} else if b := ctx.tempBytes(); !(len(b) == 1 && b[0] == dot) {
			ctx.warn("unparseable GT allele, leaving fill value")
		}
		ctx.tempClear()
	}
	for {
		if ctx.c == slash || ctx.c == pipe {
			store()
			allele++
			ctx.getc()
			continue
		}
		if isCalldataValueEnd(ctx.c) {
			store()
			return
		}
		ctx.tempAppend(ctx.c)
		ctx.getc()
	}
}

func (g *genotypeSubParser) freeze(rows int) (string, Array) {
	data := g.buf.freeze(rows * g.nSamples)
	arr := toArray(data, rows, []int{g.nSamples, g.ploidy}, DTypeInt32, false)
	return "calldata/GT", narrowGT(arr, g.dtype)
}

// narrowGT re-types the internally-wide int32 genotype array down to the
// declared storage width, matching spec.md §6's "declared type governs the
// emitted array's dtype" rule. GT is parsed as int32 unconditionally
// because allele indices are small but the multi-byte '/' '|' scan needs a
// single stable accumulator type; the copy below is the one place that
// reconciles that with the caller's chosen width.
func narrowGT(wide Array, dtype DType) Array {
	switch dtype {
	case DTypeInt8:
		out := make([]int8, len(wide.Int32))
		for i, v := range wide.Int32 {
			out[i] = int8(v)
		}
		return Array{DType: DTypeInt8, Shape: wide.Shape, Int8: out}
	case DTypeInt16:
		out := make([]int16, len(wide.Int32))
		for i, v := range wide.Int32 {
			out[i] = int16(v)
		}
		return Array{DType: DTypeInt16, Shape: wide.Shape, Int16: out}
	case DTypeInt64:
		out := make([]int64, len(wide.Int32))
		for i, v := range wide.Int32 {
			out[i] = int64(v)
		}
		return Array{DType: DTypeInt64, Shape: wide.Shape, Int64: out}
	default:
		return wide
	}
}
