package vcfchunk

import "strconv"

const (
	tab       = '\t'
	newline   = '\n'
	comma     = ','
	semicolon = ';'
	colon     = ':'
	equals    = '='
	dot       = '.'
	slash     = '/'
	pipe      = '|'
)

func parseFloatBytes(b []byte) (float64, bool) {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isRecordEnd reports whether c terminates a record: NEWLINE or the
// exhaustion sentinel 0 (spec.md §4.3, "Terminal condition: c == 0").
func isRecordEnd(c byte) bool {
	return c == newline || c == sentinelByte
}
