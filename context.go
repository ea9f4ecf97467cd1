package vcfchunk

import (
	"github.com/klauspost/cpuid/v2"
)

// wideWordScan gates an 8-byte-at-a-time digit scan in tempToLong
// (tempToDouble always uses strconv). It degrades to a byte-at-a-time loop on CPUs that don't
// report the feature, exactly the shape of raceordie690-simdcsv's
// SupportedCPU() capability gate (there deciding between a SIMD scan path
// and the stdlib encoding/csv fallback; here deciding between an 8-byte
// word compare and a byte loop, since this module has no SIMD assembly of
// its own).
var wideWordScan = cpuid.CPU.Supports(cpuid.SSE2)

// parserContext is the shared mutable state described in spec.md §4.2: the
// current lookahead byte, the scratch buffer, parsed-scalar scratch, and
// the per-record counters and FORMAT dispatch vector.
type parserContext struct {
	src *ByteSource
	c   byte

	scratch    []byte
	scratchLen int
	scratchCap int
	overflowed bool

	variantIndex      int
	chunkVariantIndex int
	sampleIndex       int
	formatIndex       int
	nFormats          int

	// dispatch is the per-record FORMAT dispatch vector (spec.md §4.7):
	// dispatch[i] is the sub-parser registered for the i-th declared
	// FORMAT subfield of the current record, or nil to skip it. It is
	// only valid within the record that declared it (spec.md §3
	// Invariants) and is rebuilt, not appended to, by each FORMAT parse.
	dispatch []calldataSubParser

	nSamples    int
	chunkLength int
	ploidy      int

	warner Warner
}

func newParserContext(src *ByteSource, cfg *Config, warner Warner) *parserContext {
	if warner == nil {
		warner = discardWarner{}
	}
	return &parserContext{
		src:         src,
		scratch:     make([]byte, cfg.TempBufferSize),
		scratchCap:  cfg.TempBufferSize,
		nSamples:    cfg.NSamples,
		chunkLength: cfg.ChunkLength,
		ploidy:      cfg.Ploidy,
		warner:      warner,
	}
}

// getc reads one byte into c via the ByteSource.
func (p *parserContext) getc() {
	p.c = p.src.nextByte()
}

// tempClear resets the scratch buffer without reallocating.
func (p *parserContext) tempClear() {
	p.scratchLen = 0
	p.overflowed = false
}

// tempAppend appends c to the scratch buffer. Appending beyond capacity is
// clamped (the extra bytes are silently dropped, spec.md §9 Open Question)
// and warns at most once per token via the overflowed flag.
func (p *parserContext) tempAppend(c byte) {
	if p.scratchLen >= p.scratchCap {
		if !p.overflowed {
			p.overflowed = true
			p.warner.Warn(p.variantIndex, "scratch buffer overflow, clamping token")
		}
		return
	}
	p.scratch[p.scratchLen] = c
	p.scratchLen++
}

func (p *parserContext) tempBytes() []byte {
	return p.scratch[:p.scratchLen]
}

// tempToLong parses the scratch buffer as a base-10 signed integer.
// Empty or a single '.' is a missing value: returns (0, false) and the
// caller leaves the field's fill value, per spec.md §4.2.
func (p *parserContext) tempToLong() (int64, bool) {
	b := p.tempBytes()
	if len(b) == 0 || (len(b) == 1 && b[0] == '.') {
		return 0, false
	}
	neg := false
	i := 0
	if b[0] == '-' || b[0] == '+' {
		neg = b[0] == '-'
		i++
	}
	if i == len(b) {
		return 0, false
	}
	var v int64
	if wideWordScan && len(b)-i >= 8 {
		// Wide-word fast path: consume 8 digits at a time while every
		// byte in the window is a plain ASCII digit.
		for len(b)-i >= 8 {
			if !allDigitsASCII(b[i : i+8]) {
				break
			}
			for _, d := range b[i : i+8] {
				v = v*10 + int64(d-'0')
			}
			i += 8
		}
	}
	for ; i < len(b); i++ {
		d := b[i]
		if d < '0' || d > '9' {
			return 0, false
		}
		v = v*10 + int64(d-'0')
	}
	if neg {
		v = -v
	}
	return v, true
}

func allDigitsASCII(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// tempToDouble parses the scratch buffer as a floating-point value, with
// the same empty/'.' missing-value convention as tempToLong.
func (p *parserContext) tempToDouble() (float64, bool) {
	b := p.tempBytes()
	if len(b) == 0 || (len(b) == 1 && b[0] == '.') {
		return 0, false
	}
	return parseFloatBytes(b)
}

// warn records a recoverable anomaly with the current variant index and
// the offending scratch contents (spec.md §7).
func (p *parserContext) warn(msg string) {
	p.warner.Warn(p.variantIndex, msg+": "+string(p.tempBytes()))
}
