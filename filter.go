package vcfchunk

// namedArray pairs a canonical field name with its frozen Array, for
// components (FilterParser, InfoParser, CalldataParser) that emit more
// than one column per record.
type namedArray struct {
	name string
	arr  Array
}

// filterParser implements spec.md §4.5: an ordered tuple of configured
// filter names, each materialized as its own boolean column
// (variants/FILTER_<NAME>) when requested. Unknown tokens are silently
// discarded; '.' naturally falls into that bucket (it never matches a
// configured name), which is exactly spec.md's "leave the row zeroed"
// rule for the explicit-missing case. Historically lenient about COLON
// and SEMICOLON as additional separators alongside COMMA (spec.md §9 Open
// Question, kept).
type filterParser struct {
	names     []string
	index     map[string]int
	bufs      []*numBuffer[bool]
	requested []bool
	anyReq    bool
}

func newFilterParser(chunkLen int, names []string, requested map[string]bool) *filterParser {
	f := &filterParser{
		names: names,
		index: make(map[string]int, len(names)),
		bufs:  make([]*numBuffer[bool], len(names)),
	}
	f.requested = make([]bool, len(names))
	for i, n := range names {
		f.index[n] = i
		f.bufs[i] = newNumBuffer[bool](chunkLen, false, nil)
		if requested[n] {
			f.requested[i] = true
			f.anyReq = true
		}
	}
	return f
}

func (f *filterParser) parse(ctx *parserContext) {
	ctx.tempClear()
	for {
		switch ctx.c {
		case comma, colon, semicolon:
			f.storeToken(ctx)
			ctx.tempClear()
			ctx.getc()
		case tab, newline, sentinelByte:
			f.storeToken(ctx)
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

func (f *filterParser) storeToken(ctx *parserContext) {
	if ctx.scratchLen == 0 {
		ctx.warn("empty FILTER token")
		return
	}
	tok := string(ctx.tempBytes())
	if idx, ok := f.index[tok]; ok {
		f.bufs[idx].set(ctx.chunkVariantIndex, 0, true)
	}
}

func (f *filterParser) freezeAll(rows int) []namedArray {
	out := make([]namedArray, 0, len(f.names))
	for i, n := range f.names {
		data := f.bufs[i].freeze(rows)
		if !f.requested[i] {
			continue
		}
		out = append(out, namedArray{name: "variants/FILTER_" + n, arr: toArray(data, rows, nil, DTypeBool, true)})
	}
	return out
}
