package vcfchunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ByteSourceSuite struct {
	suite.Suite
}

func (s *ByteSourceSuite) TestReadsThroughToSentinel() {
	src := NewByteSource(strings.NewReader("ab"), 1)
	s.Equal(byte('a'), src.nextByte())
	s.Equal(byte('b'), src.nextByte())
	s.Equal(byte(sentinelByte), src.nextByte(), "exhausted reader yields the sentinel")
	s.Equal(byte(sentinelByte), src.nextByte(), "sentinel repeats once exhausted")
}

func (s *ByteSourceSuite) TestRefillAcrossMultipleChunks() {
	src := NewByteSource(strings.NewReader("abcdef"), 2)
	var got []byte
	for {
		c := src.nextByte()
		if c == sentinelByte {
			break
		}
		got = append(got, c)
	}
	s.Equal("abcdef", string(got), "small capacity buffer still yields every byte in order")
}

func TestByteSourceSuite(t *testing.T) {
	suite.Run(t, new(ByteSourceSuite))
}

type ParserContextSuite struct {
	suite.Suite
}

func newTestContext(s string) *parserContext {
	cfg := &Config{TempBufferSize: 32, NSamples: 1, ChunkLength: 1, Ploidy: 2}
	ctx := newParserContext(NewByteSource(strings.NewReader(s), 16), cfg, nil)
	return ctx
}

func (s *ParserContextSuite) TestTempToLongMissing() {
	ctx := newTestContext("")
	ctx.tempClear()
	_, ok := ctx.tempToLong()
	s.False(ok, "empty scratch is a missing value")

	ctx.tempAppend('.')
	_, ok = ctx.tempToLong()
	s.False(ok, "a single '.' is a missing value")
}

func (s *ParserContextSuite) TestTempToLongParsesSignedDecimal() {
	ctx := newTestContext("")
	for _, c := range "-1234" {
		ctx.tempAppend(byte(c))
	}
	v, ok := ctx.tempToLong()
	s.True(ok)
	s.EqualValues(-1234, v)
}

func (s *ParserContextSuite) TestTempToLongWideWordPath() {
	ctx := newTestContext("")
	for _, c := range "123456789" {
		ctx.tempAppend(byte(c))
	}
	v, ok := ctx.tempToLong()
	s.True(ok)
	s.EqualValues(123456789, v, "9-digit token exercises the 8-byte wide-word scan plus one leftover digit")
}

func (s *ParserContextSuite) TestTempToLongRejectsNonDigits() {
	ctx := newTestContext("")
	for _, c := range "12a4" {
		ctx.tempAppend(byte(c))
	}
	_, ok := ctx.tempToLong()
	s.False(ok)
}

func (s *ParserContextSuite) TestTempAppendClampsAndWarnsOnce() {
	var got []string
	warner := recordingWarner{out: &got}
	cfg := &Config{TempBufferSize: 4, NSamples: 1, ChunkLength: 1, Ploidy: 2}
	ctx := newParserContext(NewByteSource(strings.NewReader(""), 16), cfg, warner)
	for _, c := range "abcdefgh" {
		ctx.tempAppend(byte(c))
	}
	s.Equal(4, ctx.scratchLen, "appends beyond capacity are clamped, not grown")
	s.Equal("abcd", string(ctx.tempBytes()))
	s.Len(got, 1, "overflow warns exactly once per token")
}

func TestParserContextSuite(t *testing.T) {
	suite.Run(t, new(ParserContextSuite))
}

type recordingWarner struct {
	out *[]string
}

func (w recordingWarner) Warn(variantIndex int, msg string) {
	*w.out = append(*w.out, msg)
}

type BufferSuite struct {
	suite.Suite
}

func (s *BufferSuite) TestNumBufferFillAndFreeze() {
	buf := newNumBuffer[int32](2, -1, []int{3})
	buf.set(0, 1, 42)
	data := buf.freeze(2)
	s.Equal([]int32{-1, 42, -1, -1, -1, -1}, data, "unset slots keep the fill value")
}

func (s *BufferSuite) TestNumBufferResetAfterFreezeIsIndependent() {
	buf := newNumBuffer[int32](1, 0, nil)
	buf.set(0, 0, 7)
	first := buf.freeze(1)
	buf.set(0, 0, 9)
	second := buf.freeze(1)
	s.Equal([]int32{7}, first, "freeze must not be aliased by the buffer's next generation")
	s.Equal([]int32{9}, second)
}

func (s *BufferSuite) TestSqueezeDropsTrailingUnitDimension() {
	data := []int32{1, 2}
	arr := toArray(data, 2, []int{1}, DTypeInt32, true)
	s.Equal([]int{2}, arr.Shape, "number==1 cardinality dims are squeezed")
}

func (s *BufferSuite) TestGTPloidyNeverSqueezed() {
	data := []int32{0, 1}
	arr := toArray(data, 1, []int{1, 1}, DTypeInt32, false)
	s.Equal([]int{1, 1, 1}, arr.Shape, "ploidy dimension is kept even when ploidy==1")
}

func (s *BufferSuite) TestByteBufferTruncatesOverlongStrings() {
	buf := newByteBuffer(1, 4, nil)
	buf.setString(0, 0, []byte("TOOLONG"))
	data := buf.freeze(1)
	s.Equal("TOOL", string(data))
}

func TestBufferSuite(t *testing.T) {
	suite.Run(t, new(BufferSuite))
}

type FilterParserSuite struct {
	suite.Suite
}

func (s *FilterParserSuite) runFilter(names []string, requested map[string]bool, input string) *filterParser {
	f := newFilterParser(1, names, requested)
	ctx := newTestContext(input)
	ctx.getc()
	f.parse(ctx)
	return f
}

func (s *FilterParserSuite) TestExplicitMissingLeavesAllZeroed() {
	f := s.runFilter([]string{"PASS", "q10"}, map[string]bool{"PASS": true, "q10": true}, ".\t")
	out := f.freezeAll(1)
	for _, na := range out {
		s.Equal([]bool{false}, na.arr.Bool)
	}
}

func (s *FilterParserSuite) TestLenientColonAndSemicolonSeparators() {
	f := s.runFilter([]string{"PASS", "q10", "LowQual"}, map[string]bool{"PASS": true, "q10": true, "LowQual": true}, "PASS;q10:LowQual\t")
	out := f.freezeAll(1)
	byName := map[string]bool{}
	for _, na := range out {
		byName[na.name] = na.arr.Bool[0]
	}
	s.True(byName["variants/FILTER_PASS"])
	s.True(byName["variants/FILTER_q10"])
	s.True(byName["variants/FILTER_LowQual"])
}

func (s *FilterParserSuite) TestUnrequestedColumnOmittedFromFreeze() {
	f := s.runFilter([]string{"PASS", "q10"}, map[string]bool{"PASS": true}, "PASS\t")
	out := f.freezeAll(1)
	s.Len(out, 1, "only requested FILTER columns are emitted")
	s.Equal("variants/FILTER_PASS", out[0].name)
}

func (s *FilterParserSuite) TestUnknownTokenDiscardedSilently() {
	f := s.runFilter([]string{"PASS"}, map[string]bool{"PASS": true}, "weird_filter\t")
	out := f.freezeAll(1)
	s.Equal([]bool{false}, out[0].arr.Bool, "unknown tokens never match a configured name")
}

func TestFilterParserSuite(t *testing.T) {
	suite.Run(t, new(FilterParserSuite))
}

type InfoParserSuite struct {
	suite.Suite
}

func (s *InfoParserSuite) newConfig() *Config {
	return &Config{
		Types:     map[string]DType{"DP": DTypeInt32, "AF": DTypeFloat64, "DB": DTypeBool},
		Numbers:   map[string]int{},
		ItemSizes: map[string]int{},
	}
}

func (s *InfoParserSuite) TestKeyValueAndBareFlag() {
	cfg := s.newConfig()
	ip := newInfoParser(1, []string{"DP", "AF", "DB"}, cfg)
	ctx := newTestContext("DP=14;AF=0.5;DB\t")
	ctx.getc()
	ip.parse(ctx)

	out := ip.freezeAll(1, []string{"DP", "AF", "DB"})
	byName := map[string]Array{}
	for _, na := range out {
		byName[na.name] = na.arr
	}
	s.Equal([]int32{14}, byName["variants/DP"].Int32)
	s.InDelta(0.5, byName["variants/AF"].Float64[0], 0.0001)
	s.Equal([]bool{true}, byName["variants/DB"].Bool)
}

func (s *InfoParserSuite) TestUnknownKeySkippedRestStillParses() {
	cfg := s.newConfig()
	ip := newInfoParser(1, []string{"DP"}, cfg)
	ctx := newTestContext("DP=5;FOO=bar;AF=0.1\t")
	ctx.getc()
	ip.parse(ctx)
	out := ip.freezeAll(1, []string{"DP"})
	s.Equal([]int32{5}, out[0].arr.Int32)
}

func (s *InfoParserSuite) TestLeadingDotShortcut() {
	cfg := s.newConfig()
	ip := newInfoParser(1, []string{"DP"}, cfg)
	ctx := newTestContext(".\t")
	ctx.getc()
	ip.parse(ctx)
	out := ip.freezeAll(1, []string{"DP"})
	s.Equal([]int32{-1}, out[0].arr.Int32, "leading '.' leaves every declared key at its fill")
}

func TestInfoParserSuite(t *testing.T) {
	suite.Run(t, new(InfoParserSuite))
}

type GenotypeSuite struct {
	suite.Suite
}

func (s *GenotypeSuite) TestPhasedAndUnphasedSeparators() {
	g := newGenotypeSubParser(1, 1, 2, DTypeInt8)
	ctx := newTestContext("0|1\t")
	ctx.getc()
	g.parse(ctx, 0)
	_, arr := g.freeze(1)
	s.Equal([]int8{0, 1}, arr.Int8)
}

func (s *GenotypeSuite) TestExcessPloidyDropped() {
	g := newGenotypeSubParser(1, 1, 2, DTypeInt8)
	ctx := newTestContext("0|1|2\t")
	ctx.getc()
	g.parse(ctx, 0)
	_, arr := g.freeze(1)
	s.Equal([]int8{0, 1}, arr.Int8, "alleles beyond ploidy are dropped, not reallocated into")
}

func (s *GenotypeSuite) TestMissingAlleleLeavesFill() {
	g := newGenotypeSubParser(1, 1, 2, DTypeInt8)
	ctx := newTestContext(".|1\t")
	ctx.getc()
	g.parse(ctx, 0)
	_, arr := g.freeze(1)
	s.Equal(int8(-1), arr.Int8[0])
	s.Equal(int8(1), arr.Int8[1])
}

func TestGenotypeSuite(t *testing.T) {
	suite.Run(t, new(GenotypeSuite))
}
