// Package vcfchunk provides a streaming, byte-at-a-time parser that turns a
// tab-delimited variant-call text stream into fixed-shape typed arrays
// ("chunks") suitable for downstream numerical analysis.
//
// The package does not parse the VCF header: sample names, declared field
// types and cardinalities are supplied by the caller through a Config. I/O
// transport (compression, seeking, network) and downstream storage are the
// caller's concern; vcfchunk only consumes an io.Reader and emits Chunk
// values on a channel, closed when the reader is exhausted.
package vcfchunk
