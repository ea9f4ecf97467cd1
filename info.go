package vcfchunk

import "math"

// infoSubParser is the typed sub-parser interface spec.md §4.6 describes:
// one instance per declared INFO key, dispatched on by key=value or bare
// flag form.
type infoSubParser interface {
	// parseValue consumes a key=value's value, up to SEMICOLON/TAB/NEWLINE/0.
	parseValue(ctx *parserContext)
	// parseFlag handles the key-with-no-value form; it must not consume
	// anything further (the caller is already positioned at the terminator).
	parseFlag(ctx *parserContext)
	freeze(rows int) (string, Array)
}

type infoNumSubParser[T Storable] struct {
	name    string
	buf     *numBuffer[T]
	number  int
	dtype   DType
	convert func(*parserContext) (T, bool)
}

func (s *infoNumSubParser[T]) parseValue(ctx *parserContext) {
	parseCommaSeparatedNumeric(ctx, s.buf, ctx.chunkVariantIndex, s.number, s.convert, isInfoValueEnd)
}

func (s *infoNumSubParser[T]) parseFlag(ctx *parserContext) {
	ctx.warner.Warn(ctx.variantIndex, "INFO key declared numeric but used as a bare flag")
}

func (s *infoNumSubParser[T]) freeze(rows int) (string, Array) {
	data := s.buf.freeze(rows)
	return s.name, toArray(data, rows, []int{s.number}, s.dtype, true)
}

type infoStringSubParser struct {
	name   string
	buf    *byteBuffer
	number int
}

func (s *infoStringSubParser) parseValue(ctx *parserContext) {
	parseCommaSeparatedString(ctx, s.buf, ctx.chunkVariantIndex, s.number, isInfoValueEnd)
}

func (s *infoStringSubParser) parseFlag(ctx *parserContext) {
	ctx.warner.Warn(ctx.variantIndex, "INFO key declared string but used as a bare flag")
}

func (s *infoStringSubParser) freeze(rows int) (string, Array) {
	data := s.buf.freeze(rows)
	return s.name, s.buf.toArray(data, rows, true)
}

type infoFlagSubParser struct {
	name string
	buf  *numBuffer[bool]
}

func (s *infoFlagSubParser) parseValue(ctx *parserContext) {
	// Defensive: a flag-typed key appeared with "=value". Still record the
	// flag, but discard whatever value was attached.
	skipValue(ctx, isInfoValueEnd)
	s.buf.set(ctx.chunkVariantIndex, 0, true)
}

func (s *infoFlagSubParser) parseFlag(ctx *parserContext) {
	s.buf.set(ctx.chunkVariantIndex, 0, true)
}

func (s *infoFlagSubParser) freeze(rows int) (string, Array) {
	data := s.buf.freeze(rows)
	return s.name, toArray(data, rows, nil, DTypeBool, true)
}

// infoParser implements spec.md §4.6: dispatches semicolon-separated
// key[=value] entries to a typed sub-parser per declared key, skipping
// (and warning about) anything undeclared.
type infoParser struct {
	byKey map[string]infoSubParser
}

func newInfoParser(chunkLen int, keys []string, cfg *Config) *infoParser {
	ip := &infoParser{byKey: make(map[string]infoSubParser, len(keys))}
	for _, key := range keys {
		ip.byKey[key] = newInfoSubParser(chunkLen, key, cfg)
	}
	return ip
}

func newInfoSubParser(chunkLen int, key string, cfg *Config) infoSubParser {
	name := "variants/" + key
	number := cfg.numberOf(key)
	switch cfg.Types[key] {
	case DTypeInt8:
		return &infoNumSubParser[int8]{name: name, number: number, dtype: DTypeInt8,
			buf:     newNumBuffer[int8](chunkLen, -1, []int{number}),
			convert: func(ctx *parserContext) (int8, bool) { v, ok := ctx.tempToLong(); return int8(v), ok }}
	case DTypeInt16:
		return &infoNumSubParser[int16]{name: name, number: number, dtype: DTypeInt16,
			buf:     newNumBuffer[int16](chunkLen, -1, []int{number}),
			convert: func(ctx *parserContext) (int16, bool) { v, ok := ctx.tempToLong(); return int16(v), ok }}
	case DTypeInt32:
		return &infoNumSubParser[int32]{name: name, number: number, dtype: DTypeInt32,
			buf:     newNumBuffer[int32](chunkLen, -1, []int{number}),
			convert: func(ctx *parserContext) (int32, bool) { v, ok := ctx.tempToLong(); return int32(v), ok }}
	case DTypeInt64:
		return &infoNumSubParser[int64]{name: name, number: number, dtype: DTypeInt64,
			buf:     newNumBuffer[int64](chunkLen, -1, []int{number}),
			convert: func(ctx *parserContext) (int64, bool) { return ctx.tempToLong() }}
	case DTypeFloat32:
		return &infoNumSubParser[float32]{name: name, number: number, dtype: DTypeFloat32,
			buf:     newNumBuffer[float32](chunkLen, float32(math.NaN()), []int{number}),
			convert: func(ctx *parserContext) (float32, bool) { v, ok := ctx.tempToDouble(); return float32(v), ok }}
	case DTypeFloat64:
		return &infoNumSubParser[float64]{name: name, number: number, dtype: DTypeFloat64,
			buf:     newNumBuffer[float64](chunkLen, math.NaN(), []int{number}),
			convert: func(ctx *parserContext) (float64, bool) { return ctx.tempToDouble() }}
	case DTypeBool:
		return &infoFlagSubParser{name: name, buf: newNumBuffer[bool](chunkLen, false, nil)}
	default: // DTypeBytes
		return &infoStringSubParser{name: name, number: number, buf: newByteBuffer(chunkLen, cfg.itemSizeOf(key), []int{number})}
	}
}

// parse implements the INFO top-level dispatch (spec.md §4.6).
func (ip *infoParser) parse(ctx *parserContext) {
	if ctx.c == dot {
		skipUntilTab(ctx)
		return
	}
	ctx.tempClear()
loop:
	for {
		switch {
		case ctx.c == equals:
			key := string(ctx.tempBytes())
			sub, ok := ip.byKey[key]
			ctx.tempClear()
			ctx.getc() // consume '='
			if ok {
				sub.parseValue(ctx)
			} else {
				skipValue(ctx, isInfoValueEnd)
				ctx.warn("unknown INFO key " + key)
			}
		case ctx.c == semicolon:
			ip.flagIfPending(ctx)
			ctx.tempClear()
			ctx.getc()
		case ctx.c == tab || isRecordEnd(ctx.c):
			ip.flagIfPending(ctx)
			break loop
		default:
			ctx.tempAppend(ctx.c)
			ctx.getc()
		}
	}
	if ctx.c == tab {
		ctx.getc()
	}
}

func (ip *infoParser) flagIfPending(ctx *parserContext) {
	if ctx.scratchLen == 0 {
		return
	}
	key := string(ctx.tempBytes())
	if sub, ok := ip.byKey[key]; ok {
		sub.parseFlag(ctx)
	} else if key != "" {
		ctx.warn("unknown INFO flag " + key)
	}
}

func (ip *infoParser) freezeAll(rows int, keys []string) []namedArray {
	out := make([]namedArray, 0, len(keys))
	for _, key := range keys {
		name, arr := ip.byKey[key].freeze(rows)
		out = append(out, namedArray{name: name, arr: arr})
	}
	return out
}
