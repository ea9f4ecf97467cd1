package vcfchunk

import "strings"

const (
	fieldChrom = "variants/CHROM"
	fieldPos   = "variants/POS"
	fieldID    = "variants/ID"
	fieldRef   = "variants/REF"
	fieldAlt   = "variants/ALT"
	fieldQual  = "variants/QUAL"

	filterFieldPrefix   = "variants/FILTER_"
	infoFieldPrefix     = "variants/"
	calldataFieldPrefix = "calldata/"
)

// buildFieldSet splits cfg.Fields (spec.md §6's canonical field names) into
// the groups the driver dispatches on. CHROM/POS/ID/REF/ALT/QUAL are a
// fixed, known set; everything under "variants/FILTER_" names a FilterParser
// column, everything else under "variants/" names an INFO key, and
// everything under "calldata/" names a FORMAT key.
func buildFieldSet(cfg *Config) fieldSet {
	fs := fieldSet{
		chrom: cfg.hasField(fieldChrom),
		pos:   cfg.hasField(fieldPos),
		id:    cfg.hasField(fieldID),
		ref:   cfg.hasField(fieldRef),
		alt:   cfg.hasField(fieldAlt),
		qual:  cfg.hasField(fieldQual),
	}
	for _, f := range cfg.Fields {
		switch {
		case f == fieldChrom, f == fieldPos, f == fieldID, f == fieldRef, f == fieldAlt, f == fieldQual:
			// already captured above
		case strings.HasPrefix(f, filterFieldPrefix):
			fs.filterNames = append(fs.filterNames, strings.TrimPrefix(f, filterFieldPrefix))
		case strings.HasPrefix(f, calldataFieldPrefix):
			fs.formatKeys = append(fs.formatKeys, strings.TrimPrefix(f, calldataFieldPrefix))
		case strings.HasPrefix(f, infoFieldPrefix):
			fs.infoKeys = append(fs.infoKeys, strings.TrimPrefix(f, infoFieldPrefix))
		}
	}
	return fs
}

// Parser is the top-level driver (spec.md §4.3, §4.9): it owns the
// ParserContext and one sub-parser per requested field, sequences them in
// fixed CHROM...CALLDATA order for every record, and finalizes chunks at
// chunk_length boundaries and at end-of-stream.
type Parser struct {
	ctx *parserContext
	cfg *Config

	chrom *stringFieldParser
	pos   *posParser
	id    *stringFieldParser
	ref   *stringFieldParser
	alt   *altParser
	qual  *qualParser

	filter *filterParser
	info   *infoParser
	format *formatParser
	cd     *calldataParser

	infoKeys   []string
	formatKeys []string
}

// NewParser builds a driver over src using cfg's declared fields and types.
// cfg is normalized in place if it hasn't been already (LoadConfig already
// does this; callers constructing a Config by hand don't have to).
func NewParser(cfg *Config, src *ByteSource, warner Warner) *Parser {
	if cfg.Types == nil {
		cfg.normalize(warner)
	}
	fs := buildFieldSet(cfg)
	chunkLen := cfg.ChunkLength

	p := &Parser{
		ctx:        newParserContext(src, cfg, warner),
		cfg:        cfg,
		infoKeys:   fs.infoKeys,
		formatKeys: fs.formatKeys,
	}

	if fs.chrom {
		p.chrom = newStringFieldParser(fieldChrom, chunkLen, cfg.itemSizeOf("CHROM"))
	}
	if fs.pos {
		p.pos = newPosParser(fieldPos, chunkLen)
	}
	if fs.id {
		p.id = newStringFieldParser(fieldID, chunkLen, cfg.itemSizeOf("ID"))
	}
	if fs.ref {
		p.ref = newStringFieldParser(fieldRef, chunkLen, cfg.itemSizeOf("REF"))
	}
	if fs.alt {
		p.alt = newAltParser(fieldAlt, chunkLen, cfg.numberOf("ALT"), cfg.itemSizeOf("ALT"))
	}
	if fs.qual {
		p.qual = newQualParser(fieldQual, chunkLen)
	}

	requested := make(map[string]bool, len(fs.filterNames))
	for _, n := range fs.filterNames {
		requested[n] = true
	}
	p.filter = newFilterParser(chunkLen, cfg.Filters, requested)
	p.info = newInfoParser(chunkLen, fs.infoKeys, cfg)
	p.cd = newCalldataParser(chunkLen, fs.formatKeys, cfg)
	p.format = newFormatParser(p.cd)

	return p
}

// Parse runs the driver to completion over the whole stream and returns
// every emitted chunk (tests and small inputs; Run is the streaming form).
func (p *Parser) Parse() []Chunk {
	sink := &sliceSink{}
	p.run(sink)
	return sink.chunks
}

// Run drives the parser on its own goroutine, streaming chunks out over the
// returned channel (closed at end-of-stream), mirroring mendelics-vcf's
// ToChannel.
func (p *Parser) Run() <-chan Chunk {
	ch := make(chan Chunk)
	go func() {
		defer close(ch)
		p.run(channelSink{ch: ch})
	}()
	return ch
}

func (p *Parser) run(sink chunkSink) {
	ctx := p.ctx
	ctx.getc()
	for ctx.c != sentinelByte {
		p.parseRecord(ctx)
		ctx.variantIndex++
		if ctx.chunkVariantIndex == p.cfg.ChunkLength-1 {
			p.emit(sink, p.cfg.ChunkLength)
			ctx.chunkVariantIndex = 0
		} else {
			ctx.chunkVariantIndex++
		}
	}
	if ctx.chunkVariantIndex > 0 {
		p.emit(sink, ctx.chunkVariantIndex)
	}
}

// parseRecord sequences the fixed CHROM...CALLDATA states for one record
// (spec.md §4.3). Fields that weren't requested still have to be walked
// past; skipUntilTab stands in for their parsers.
func (p *Parser) parseRecord(ctx *parserContext) {
	if p.chrom != nil {
		p.chrom.parse(ctx)
	} else {
		skipUntilTab(ctx)
	}
	if p.pos != nil {
		p.pos.parse(ctx)
	} else {
		skipUntilTab(ctx)
	}
	if p.id != nil {
		p.id.parse(ctx)
	} else {
		skipUntilTab(ctx)
	}
	if p.ref != nil {
		p.ref.parse(ctx)
	} else {
		skipUntilTab(ctx)
	}
	if p.alt != nil {
		p.alt.parse(ctx)
	} else {
		skipUntilTab(ctx)
	}
	if p.qual != nil {
		p.qual.parse(ctx)
	} else {
		skipUntilTab(ctx)
	}
	p.filter.parse(ctx)
	p.info.parse(ctx)
	p.format.parse(ctx)
	p.cd.parse(ctx)
}

func (p *Parser) emit(sink chunkSink, rows int) {
	arrays := make(map[string]Array, 8+len(p.infoKeys)+len(p.formatKeys))
	add := func(name string, arr Array) { arrays[name] = arr }

	if p.chrom != nil {
		add(p.chrom.freeze(rows))
	}
	if p.pos != nil {
		add(p.pos.freeze(rows))
	}
	if p.id != nil {
		add(p.id.freeze(rows))
	}
	if p.ref != nil {
		add(p.ref.freeze(rows))
	}
	if p.alt != nil {
		add(p.alt.freeze(rows))
	}
	if p.qual != nil {
		add(p.qual.freeze(rows))
	}
	for _, na := range p.filter.freezeAll(rows) {
		add(na.name, na.arr)
	}
	for _, na := range p.info.freezeAll(rows, p.infoKeys) {
		add(na.name, na.arr)
	}
	for _, na := range p.cd.freezeAll(rows, p.formatKeys) {
		add(na.name, na.arr)
	}

	sink.emit(Chunk{Length: rows, Arrays: arrays})
}
