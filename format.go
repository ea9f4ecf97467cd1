package vcfchunk

// formatParser implements spec.md §4.7: parses the colon-delimited FORMAT
// field and resolves each declared name against the CalldataParser's
// registered-key table, writing the per-record dispatch vector that the
// following CALLDATA state consumes. Unknown names get a nil entry (the
// calldata loop skips that subfield); the dispatch vector is invalidated
// (rebuilt from scratch) on every FORMAT parse, per spec.md §3's
// "dispatch pointers are valid only within the record that declared them"
// invariant.
type formatParser struct {
	calldata *calldataParser
}

func newFormatParser(cd *calldataParser) *formatParser {
	return &formatParser{calldata: cd}
}

func (f *formatParser) parse(ctx *parserContext) {
	ctx.dispatch = ctx.dispatch[:0]
	ctx.tempClear()
	resolve := func() {
		name := string(ctx.tempBytes())
		sub, ok := f.calldata.byKey[name]
		if !ok {
			ctx.warn("unknown FORMAT key")
		}
		ctx.dispatch = append(ctx.dispatch, sub) // nil if unknown
		ctx.tempClear()
	}
	for {
		switch {
		case ctx.c == colon:
			resolve()
			ctx.getc()
		case ctx.c == tab || isRecordEnd(ctx.c):
			resolve()
			if ctx.c == tab {
				ctx.getc()
			}
			ctx.nFormats = len(ctx.dispatch)
			return
		default:
			ctx.tempAppend(ctx.c)
			ctx.getc()
		}
	}
}
