package vcfchunk

import "math"

// calldataNumSubParser and calldataStringSubParser are the non-GT FORMAT
// sub-parsers (spec.md §4.8.2/§4.8.3): logically shaped (chunk_len,
// n_samples, number), reusing the same comma-separated-value machinery
// INFO uses (multivalue.go), keyed by isCalldataValueEnd instead of
// isInfoValueEnd.
//
// The backing numBuffer/byteBuffer only knows a flat "row" dimension, so
// each sample's values are stored at row = variant*nSamples+sample with a
// [number] tail; that is exactly the flattening of a row-major
// (variant, sample, number) array, so freeze can reshape it into the
// 3-D Array shape without copying.
type calldataNumSubParser[T Storable] struct {
	name     string
	buf      *numBuffer[T]
	number   int
	nSamples int
	dtype    DType
	convert  func(*parserContext) (T, bool)
}

func (s *calldataNumSubParser[T]) parse(ctx *parserContext, sample int) {
	row := ctx.chunkVariantIndex*s.nSamples + sample
	parseCommaSeparatedNumeric(ctx, s.buf, row, s.number, s.convert, isCalldataValueEnd)
}

func (s *calldataNumSubParser[T]) freeze(rows int) (string, Array) {
	data := s.buf.freeze(rows * s.nSamples)
	return s.name, toArray(data, rows, []int{s.nSamples, s.number}, s.dtype, true)
}

type calldataStringSubParser struct {
	name     string
	buf      *byteBuffer
	number   int
	nSamples int
}

func (s *calldataStringSubParser) parse(ctx *parserContext, sample int) {
	row := ctx.chunkVariantIndex*s.nSamples + sample
	parseCommaSeparatedString(ctx, s.buf, row, s.number, isCalldataValueEnd)
}

func (s *calldataStringSubParser) freeze(rows int) (string, Array) {
	data := s.buf.freeze(rows * s.nSamples)
	arr := s.buf.toArray(data, rows, true)
	arr.Shape = squeezeLastIfOne(append([]int{rows, s.nSamples}, s.number))
	return s.name, arr
}

func newCalldataSubParser(chunkLen int, key string, cfg *Config) calldataSubParser {
	name := "calldata/" + key
	number := cfg.numberOf(key)
	nSamples := cfg.NSamples
	rows := chunkLen * nSamples
	switch cfg.Types[key] {
	case DTypeInt8:
		return &calldataNumSubParser[int8]{name: name, number: number, nSamples: nSamples, dtype: DTypeInt8,
			buf:     newNumBuffer[int8](rows, -1, []int{number}),
			convert: func(ctx *parserContext) (int8, bool) { v, ok := ctx.tempToLong(); return int8(v), ok }}
	case DTypeInt16:
		return &calldataNumSubParser[int16]{name: name, number: number, nSamples: nSamples, dtype: DTypeInt16,
			buf:     newNumBuffer[int16](rows, -1, []int{number}),
			convert: func(ctx *parserContext) (int16, bool) { v, ok := ctx.tempToLong(); return int16(v), ok }}
	case DTypeInt32:
		return &calldataNumSubParser[int32]{name: name, number: number, nSamples: nSamples, dtype: DTypeInt32,
			buf:     newNumBuffer[int32](rows, -1, []int{number}),
			convert: func(ctx *parserContext) (int32, bool) { v, ok := ctx.tempToLong(); return int32(v), ok }}
	case DTypeInt64:
		return &calldataNumSubParser[int64]{name: name, number: number, nSamples: nSamples, dtype: DTypeInt64,
			buf:     newNumBuffer[int64](rows, -1, []int{number}),
			convert: func(ctx *parserContext) (int64, bool) { return ctx.tempToLong() }}
	case DTypeFloat32:
		return &calldataNumSubParser[float32]{name: name, number: number, nSamples: nSamples, dtype: DTypeFloat32,
			buf:     newNumBuffer[float32](rows, float32(math.NaN()), []int{number}),
			convert: func(ctx *parserContext) (float32, bool) { v, ok := ctx.tempToDouble(); return float32(v), ok }}
	case DTypeFloat64:
		return &calldataNumSubParser[float64]{name: name, number: number, nSamples: nSamples, dtype: DTypeFloat64,
			buf:     newNumBuffer[float64](rows, math.NaN(), []int{number}),
			convert: func(ctx *parserContext) (float64, bool) { return ctx.tempToDouble() }}
	case DTypeBool:
		return &calldataNumSubParser[bool]{name: name, number: number, nSamples: nSamples, dtype: DTypeBool,
			buf: newNumBuffer[bool](rows, false, []int{number}),
			convert: func(ctx *parserContext) (bool, bool) {
				b := ctx.tempBytes()
				return len(b) == 1 && b[0] != '0', len(b) > 0
			}}
	default: // DTypeBytes
		return &calldataStringSubParser{name: name, number: number, nSamples: nSamples,
			buf: newByteBuffer(rows, cfg.itemSizeOf(key), []int{number})}
	}
}
