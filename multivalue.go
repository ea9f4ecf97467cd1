package vcfchunk

// stopFn reports whether c terminates a multi-value token stream. INFO
// values stop at SEMICOLON/TAB/NEWLINE/0 (spec.md §4.6); calldata
// subfields stop at COLON/TAB/NEWLINE/0 (spec.md §4.8.2/4.8.3). In both
// cases COMMA separates individual values within the field and is never a
// stop byte.
type stopFn func(c byte) bool

func isInfoValueEnd(c byte) bool {
	return c == semicolon || c == tab || c == newline || c == sentinelByte
}

func isCalldataValueEnd(c byte) bool {
	return c == colon || c == tab || c == newline || c == sentinelByte
}

// parseCommaSeparatedNumeric reads comma-separated tokens from ctx until
// stop(ctx.c), converting each with convert and storing up to number
// values at row's slots; excess values are dropped with a warning, an
// unparseable or empty/'.' token leaves its slot at the buffer's fill
// value (spec.md §4.6, §4.8.2). It does not consume the terminating byte.
func parseCommaSeparatedNumeric[T Storable](ctx *parserContext, buf *numBuffer[T], row, number int, convert func(*parserContext) (T, bool), stop stopFn) {
	valueIdx := 0
	warnedOverflow := false
	ctx.tempClear()
	store := func() {
		if ctx.scratchLen == 0 {
			ctx.tempClear()
			return
		}
		if valueIdx >= number {
			if !warnedOverflow {
				warnedOverflow = true
				ctx.warn("more values than configured number, dropping excess")
			}
			ctx.tempClear()
			return
		}
		if v, ok := convert(ctx); ok {
			buf.set(row, valueIdx, v)
		} else if b := ctx.tempBytes(); !(len(b) == 1 && b[0] == dot) {
			ctx.warn("unparseable numeric value, leaving fill value")
		}
		ctx.tempClear()
	}
	for {
		if ctx.c == comma {
			store()
			valueIdx++
			ctx.getc()
			continue
		}
		if stop(ctx.c) {
			store()
			return
		}
		ctx.tempAppend(ctx.c)
		ctx.getc()
	}
}

// parseCommaSeparatedString is parseCommaSeparatedNumeric's byte-string
// counterpart (spec.md §4.6 String sub-parser, §4.8.3).
func parseCommaSeparatedString(ctx *parserContext, buf *byteBuffer, row, number int, stop stopFn) {
	valueIdx := 0
	warnedOverflow := false
	ctx.tempClear()
	store := func() {
		if valueIdx >= number {
			if ctx.scratchLen > 0 && !warnedOverflow {
				warnedOverflow = true
				ctx.warn("more values than configured number, dropping excess")
			}
			ctx.tempClear()
			return
		}
		buf.setString(row, valueIdx, ctx.tempBytes())
		ctx.tempClear()
	}
	for {
		if ctx.c == comma {
			store()
			valueIdx++
			ctx.getc()
			continue
		}
		if stop(ctx.c) {
			store()
			return
		}
		ctx.tempAppend(ctx.c)
		ctx.getc()
	}
}

// skipValue consumes a value without storing it (unknown INFO key or
// unknown FORMAT subfield, spec.md §7).
func skipValue(ctx *parserContext, stop stopFn) {
	for !stop(ctx.c) {
		ctx.getc()
	}
}
