package vcfchunk

// skipUntilTab consumes bytes up to and including the next TAB, without
// storing anything (spec.md §4.4 SkipField, interior-field case).
func skipUntilTab(ctx *parserContext) {
	for ctx.c != tab && !isRecordEnd(ctx.c) {
		ctx.getc()
	}
	if ctx.c == tab {
		ctx.getc()
	}
}

// skipUntilRecordEnd consumes bytes up to TAB/NEWLINE/0, advancing past a
// TAB if that's what stopped it (spec.md §4.4 SkipField, trailing-field
// case).
func skipUntilRecordEnd(ctx *parserContext) {
	for !isRecordEnd(ctx.c) && ctx.c != tab {
		ctx.getc()
	}
	if ctx.c == tab {
		ctx.getc()
	}
}

// stringFieldParser implements CHROM/ID/REF (spec.md §4.4): fixed
// chunk_length x itemsize byte matrix, copied verbatim up to itemsize,
// truncated beyond that.
type stringFieldParser struct {
	name string
	buf  *byteBuffer
}

func newStringFieldParser(name string, chunkLen, itemSize int) *stringFieldParser {
	return &stringFieldParser{name: name, buf: newByteBuffer(chunkLen, itemSize, nil)}
}

func (s *stringFieldParser) parse(ctx *parserContext) {
	ctx.tempClear()
	for ctx.c != tab && !isRecordEnd(ctx.c) {
		ctx.tempAppend(ctx.c)
		ctx.getc()
	}
	s.buf.setString(ctx.chunkVariantIndex, 0, ctx.tempBytes())
	if ctx.c == tab {
		ctx.getc()
	}
}

func (s *stringFieldParser) freeze(rows int) (string, Array) {
	data := s.buf.freeze(rows)
	return s.name, s.buf.toArray(data, rows, true)
}

// posParser implements POS (spec.md §4.4): parsed as a signed 32-bit
// integer, fill -1 on empty/unparseable input (spec.md §9 Open Question,
// decided authoritative).
type posParser struct {
	name string
	buf  *numBuffer[int32]
}

func newPosParser(name string, chunkLen int) *posParser {
	return &posParser{name: name, buf: newNumBuffer[int32](chunkLen, -1, nil)}
}

func (s *posParser) parse(ctx *parserContext) {
	ctx.tempClear()
	for ctx.c != tab && !isRecordEnd(ctx.c) {
		ctx.tempAppend(ctx.c)
		ctx.getc()
	}
	if v, ok := ctx.tempToLong(); ok {
		s.buf.set(ctx.chunkVariantIndex, 0, int32(v))
	} else {
		ctx.warn("unparseable POS, leaving fill value")
	}
	if ctx.c == tab {
		ctx.getc()
	}
}

func (s *posParser) freeze(rows int) (string, Array) {
	data := s.buf.freeze(rows)
	return s.name, toArray(data, rows, nil, DTypeInt32, true)
}

// altParser implements ALT (spec.md §4.4): chunk_length x number x
// itemsize, comma-separated alternates, extras dropped, overlong alternates
// truncated.
type altParser struct {
	name   string
	buf    *byteBuffer
	number int
}

func newAltParser(name string, chunkLen, number, itemSize int) *altParser {
	return &altParser{name: name, buf: newByteBuffer(chunkLen, itemSize, []int{number}), number: number}
}

func (s *altParser) parse(ctx *parserContext) {
	altIdx := 0
	warnedOverflow := false
	ctx.tempClear()
	flush := func() {
		if altIdx < s.number {
			s.buf.setString(ctx.chunkVariantIndex, altIdx, ctx.tempBytes())
		} else if !warnedOverflow {
			warnedOverflow = true
			ctx.warn("more ALT alternates than configured number, dropping excess")
		}
		ctx.tempClear()
	}
	for {
		switch {
		case ctx.c == comma:
			flush()
			altIdx++
			ctx.getc()
		case ctx.c == tab || isRecordEnd(ctx.c):
			flush()
			if ctx.c == tab {
				ctx.getc()
			}
			return
		default:
			ctx.tempAppend(ctx.c)
			ctx.getc()
		}
	}
}

func (s *altParser) freeze(rows int) (string, Array) {
	data := s.buf.freeze(rows)
	return s.name, s.buf.toArray(data, rows, true)
}

// qualParser implements QUAL (spec.md §4.4): empty or a single '.' leaves
// the fill value -1.0; otherwise parsed as a float.
type qualParser struct {
	name string
	buf  *numBuffer[float32]
}

func newQualParser(name string, chunkLen int) *qualParser {
	return &qualParser{name: name, buf: newNumBuffer[float32](chunkLen, -1, nil)}
}

func (s *qualParser) parse(ctx *parserContext) {
	ctx.tempClear()
	for ctx.c != tab && !isRecordEnd(ctx.c) {
		ctx.tempAppend(ctx.c)
		ctx.getc()
	}
	if v, ok := ctx.tempToDouble(); ok {
		s.buf.set(ctx.chunkVariantIndex, 0, float32(v))
	} else if b := ctx.tempBytes(); len(b) != 0 && !(len(b) == 1 && b[0] == dot) {
		ctx.warn("unparseable QUAL, leaving fill value")
	}
	if ctx.c == tab {
		ctx.getc()
	}
}

func (s *qualParser) freeze(rows int) (string, Array) {
	data := s.buf.freeze(rows)
	return s.name, toArray(data, rows, nil, DTypeFloat32, true)
}
