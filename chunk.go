package vcfchunk

// Chunk maps a canonical field name (spec.md §3, e.g. "variants/POS",
// "variants/FILTER_PASS", "calldata/GT") to the array of values parsed for
// the records in this chunk.
type Chunk struct {
	// Length is the number of records in this chunk: ChunkLength for every
	// chunk but (possibly) the last, which carries the true tail length
	// (spec.md §3, "Chunk").
	Length int
	Arrays map[string]Array
}

// chunkSink receives completed chunks from the driver. Abstracted so tests
// can collect into a slice without a channel.
type chunkSink interface {
	emit(Chunk)
}

type sliceSink struct {
	chunks []Chunk
}

func (s *sliceSink) emit(c Chunk) { s.chunks = append(s.chunks, c) }

type channelSink struct {
	ch chan<- Chunk
}

func (s channelSink) emit(c Chunk) { s.ch <- c }
