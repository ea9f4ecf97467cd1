package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"

	"github.com/mendelics/vcfchunk"
)

type options struct {
	Config      string `long:"config" description:"YAML file declaring chunk_length, ploidy, n_samples, fields and their types" value-name:"config_file" required:"true"`
	ChunkLength int    `long:"chunk-length" description:"Override the config's chunk_length"`
	Input       string `long:"input" description:"VCF file to parse, rather than stdin" value-name:"vcf_file"`
	Debug       bool   `long:"debug" description:"Pretty-print the first 3 rows of every emitted chunk"`
	Help        bool   `long:"help" description:"Show this help"`
}

func parseOptions(args []string) *options {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "--config config.yaml [--chunk-length N] [--input sample.vcf] [--debug]"
	if _, err := parser.ParseArgs(args); err != nil {
		log.Fatal(err)
	}
	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	return &opts
}

func main() {
	opts := parseOptions(os.Args[1:])

	cfg, err := vcfchunk.LoadConfig(opts.Config)
	if err != nil {
		log.Fatal(err)
	}
	if opts.ChunkLength > 0 {
		cfg.ChunkLength = opts.ChunkLength
	}

	in := os.Stdin
	if opts.Input != "" {
		f, err := os.Open(opts.Input)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	warner := vcfchunk.NewLogWarner(log.Default())
	src := vcfchunk.NewByteSource(in, cfg.InputBufferSize)
	p := vcfchunk.NewParser(cfg, src, warner)

	offset := 0
	for chunk := range p.Run() {
		fmt.Printf("chunk: %d records, offset %d\n", chunk.Length, offset)
		offset += chunk.Length
		if opts.Debug {
			debugPrintRows(chunk)
		}
	}
}

// debugPrintRows pretty-prints up to the first 3 rows of a chunk, one
// array at a time, via k0kubun/pp (mirrors sqldef's own pp-based debug
// dump elsewhere in its CLI tooling).
func debugPrintRows(chunk vcfchunk.Chunk) {
	n := chunk.Length
	if n > 3 {
		n = 3
	}
	for name, arr := range chunk.Arrays {
		pp.Printf("%s[:%d] (dtype=%v shape=%v) = %v\n", name, n, arr.DType, arr.Shape, firstRows(arr, n))
	}
}

func firstRows(arr vcfchunk.Array, n int) interface{} {
	stride := 1
	for _, d := range arr.Shape[1:] {
		stride *= d
	}
	switch arr.DType {
	case vcfchunk.DTypeInt8:
		return arr.Int8[:n*stride]
	case vcfchunk.DTypeInt16:
		return arr.Int16[:n*stride]
	case vcfchunk.DTypeInt32:
		return arr.Int32[:n*stride]
	case vcfchunk.DTypeInt64:
		return arr.Int64[:n*stride]
	case vcfchunk.DTypeFloat32:
		return arr.Float32[:n*stride]
	case vcfchunk.DTypeFloat64:
		return arr.Float64[:n*stride]
	case vcfchunk.DTypeBool:
		return arr.Bool[:n*stride]
	default:
		return arr.Bytes[:n*stride*arr.ItemSize]
	}
}
