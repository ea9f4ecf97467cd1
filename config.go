package vcfchunk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DType is a declared storage type for a field, matching the types spec.md
// §6 says the caller's header-derived config may request.
type DType int

const (
	DTypeInt8 DType = iota
	DTypeInt16
	DTypeInt32
	DTypeInt64
	DTypeFloat32
	DTypeFloat64
	DTypeBool
	DTypeBytes
)

func (d DType) String() string {
	switch d {
	case DTypeInt8:
		return "int8"
	case DTypeInt16:
		return "int16"
	case DTypeInt32:
		return "int32"
	case DTypeInt64:
		return "int64"
	case DTypeFloat32:
		return "float32"
	case DTypeFloat64:
		return "float64"
	case DTypeBool:
		return "bool"
	case DTypeBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Config is the external, header-derived configuration spec.md §6 requires:
// everything the parser needs to know that it cannot learn from the record
// stream itself.
type Config struct {
	// ChunkLength is the number of records materialized into each emitted chunk.
	ChunkLength int `yaml:"chunk_length"`
	// InputBufferSize is the ByteSource's refill buffer capacity, in bytes.
	InputBufferSize int `yaml:"input_buffer_size"`
	// TempBufferSize is the ParserContext scratch buffer capacity, in bytes.
	TempBufferSize int `yaml:"temp_buffer_size"`
	// Ploidy is the number of genotype allele slots per sample.
	Ploidy int `yaml:"ploidy"`
	// NSamples is the number of sample columns in every record.
	NSamples int `yaml:"n_samples"`
	// SampleNames optionally names the NSamples columns; unused by the
	// parser itself and not copied onto Chunk.
	SampleNames []string `yaml:"sample_names"`

	// Fields is the set of canonical field names to materialize, e.g.
	// "variants/CHROM", "variants/FILTER_PASS", "calldata/GT".
	Fields []string `yaml:"fields"`
	// Types maps a declared key (INFO key or FORMAT key, bare, not the
	// canonical field name) to its storage type.
	Types map[string]DType `yaml:"-"`
	// Numbers maps a declared key to its cardinality.
	Numbers map[string]int `yaml:"-"`
	// ItemSizes maps a declared key to its fixed byte-string width, for
	// DTypeBytes fields only.
	ItemSizes map[string]int `yaml:"-"`

	// Filters is the ordered tuple of configured filter names
	// (spec.md §4.5); callers that want a PASS column include "PASS".
	Filters []string `yaml:"filters"`

	RawTypes     map[string]string `yaml:"types"`
	RawNumbers   map[string]int    `yaml:"numbers"`
	RawItemSizes map[string]int    `yaml:"item_sizes"`
}

const (
	defaultChunkLength     = 16384
	defaultInputBufferSize = 1 << 16
	defaultTempBufferSize  = 4096
	defaultItemSize        = 16
)

// fieldSet captures which canonical fields were requested, split into the
// groups the driver dispatches on.
type fieldSet struct {
	chrom, pos, id, ref, qual bool
	alt                       bool
	filterNames               []string // configured filter columns actually requested
	infoKeys                  []string
	formatKeys                []string
}

func parseDType(s string) (DType, error) {
	switch s {
	case "int8":
		return DTypeInt8, nil
	case "int16":
		return DTypeInt16, nil
	case "int32":
		return DTypeInt32, nil
	case "int64":
		return DTypeInt64, nil
	case "float32":
		return DTypeFloat32, nil
	case "float64":
		return DTypeFloat64, nil
	case "bool":
		return DTypeBool, nil
	case "bytes", "string":
		return DTypeBytes, nil
	default:
		return 0, fmt.Errorf("vcfchunk: unsupported declared type %q", s)
	}
}

// normalize fills defaults and resolves the RawTypes/RawNumbers/RawItemSizes
// string-keyed maps (the YAML-friendly shape) into the typed maps the
// parser uses. Unsupported declared types warn and are skipped, per
// spec.md §6 ("Any other type for a declared field -> warn and skip that
// field").
func (c *Config) normalize(w Warner) {
	if c.ChunkLength <= 0 {
		c.ChunkLength = defaultChunkLength
	}
	if c.InputBufferSize <= 0 {
		c.InputBufferSize = defaultInputBufferSize
	}
	if c.TempBufferSize <= 0 {
		c.TempBufferSize = defaultTempBufferSize
	}
	if c.Ploidy <= 0 {
		c.Ploidy = 2
	}

	c.Types = make(map[string]DType, len(c.RawTypes))
	for key, raw := range c.RawTypes {
		dt, err := parseDType(raw)
		if err != nil {
			if w != nil {
				w.Warn(-1, fmt.Sprintf("field %q: %v, skipping", key, err))
			}
			kept := make([]string, 0, len(c.Fields))
			for _, f := range c.Fields {
				if f != infoFieldPrefix+key && f != calldataFieldPrefix+key {
					kept = append(kept, f)
				}
			}
			c.Fields = kept
			continue
		}
		c.Types[key] = dt
	}
	c.Numbers = make(map[string]int, len(c.RawNumbers))
	for key, n := range c.RawNumbers {
		c.Numbers[key] = n
	}
	c.ItemSizes = make(map[string]int, len(c.RawItemSizes))
	for key, n := range c.RawItemSizes {
		c.ItemSizes[key] = n
	}
}

func (c *Config) numberOf(key string) int {
	if n, ok := c.Numbers[key]; ok && n > 0 {
		return n
	}
	return 1
}

func (c *Config) itemSizeOf(key string) int {
	if n, ok := c.ItemSizes[key]; ok && n > 0 {
		return n
	}
	return defaultItemSize
}

func (c *Config) hasField(name string) bool {
	for _, f := range c.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// LoadConfig reads a Config from a YAML document, grounded on
// sqldef-sqldef's database.Config loader (gopkg.in/yaml.v3).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vcfchunk: reading config %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("vcfchunk: parsing config %s: %w", path, err)
	}
	c.normalize(nil)
	return &c, nil
}
