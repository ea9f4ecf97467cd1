package vcfchunk

// calldataSubParser is the per-FORMAT-key sub-parser interface (spec.md
// §4.8): one registered instance per declared FORMAT key, resolved into
// the per-record dispatch vector by formatParser and invoked once per
// sample by calldataParser. parse must consume exactly one subfield's
// bytes, stopping at (not consuming) the next COLON/TAB/NEWLINE/0.
type calldataSubParser interface {
	parse(ctx *parserContext, sample int)
	freeze(rows int) (string, Array)
}

// calldataParser implements spec.md §4.8: walks colon-delimited per-sample
// subfields in FORMAT's declared order, delegating each to the resolved
// sub-parser (or skipping it, for subfields beyond variant_n_formats or
// with no dispatch entry).
type calldataParser struct {
	byKey map[string]calldataSubParser
}

func newCalldataParser(chunkLen int, keys []string, cfg *Config) *calldataParser {
	cd := &calldataParser{byKey: make(map[string]calldataSubParser, len(keys)+1)}
	for _, key := range keys {
		if key == "GT" {
			cd.byKey[key] = newGenotypeSubParser(chunkLen, cfg.NSamples, cfg.Ploidy, cfg.Types[key])
			continue
		}
		cd.byKey[key] = newCalldataSubParser(chunkLen, key, cfg)
	}
	return cd
}

// parse drives one record's sample columns (spec.md §4.8's loop).
func (cd *calldataParser) parse(ctx *parserContext) {
	ctx.sampleIndex = 0
	ctx.formatIndex = 0
	for {
		if isRecordEnd(ctx.c) {
			if ctx.c == newline {
				ctx.getc()
			}
			return
		}
		switch ctx.c {
		case tab:
			ctx.sampleIndex++
			ctx.formatIndex = 0
			ctx.getc()
		case colon:
			ctx.formatIndex++
			ctx.getc()
		default:
			if ctx.formatIndex < ctx.nFormats && ctx.dispatch[ctx.formatIndex] != nil {
				ctx.dispatch[ctx.formatIndex].parse(ctx, ctx.sampleIndex)
			} else {
				skipValue(ctx, isCalldataValueEnd)
			}
		}
	}
}

func (cd *calldataParser) freezeAll(rows int, keys []string) []namedArray {
	out := make([]namedArray, 0, len(keys))
	for _, key := range keys {
		sub, ok := cd.byKey[key]
		if !ok {
			continue
		}
		name, arr := sub.freeze(rows)
		out = append(out, namedArray{name: name, arr: arr})
	}
	return out
}
