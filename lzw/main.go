// Command lzw compresses and decompresses files with LZW and a universal integer code.
//
//	lzw --encode|--decode [--type gamma|delta|omega|fibonacci] <input_path> <output_path>
//
// The code defaults to omega. A file must be decoded with the code it was encoded with.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fumin/lzwuc"
	"github.com/fumin/lzwuc/uc"
)

var (
	encode    = flag.Bool("encode", false, "compress input_path into output_path")
	decode    = flag.Bool("decode", false, "decompress input_path into output_path")
	codeType  = flag.String("type", uc.Omega.String(), "universal code: gamma, delta, omega or fibonacci")
	verify    = flag.Bool("verify", false, "when encoding, decode the result in memory and compare digests")
	chartPath = flag.String("chart", "", "when encoding, write an SVG plot of codeword lengths to this path")
	verbose   = flag.Bool("v", false, "verbosity")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s --encode|--decode [--type gamma|delta|omega|fibonacci] <input_path> <output_path>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *encode == *decode || flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	kind, err := uc.ParseKind(*codeType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	src, dst := flag.Arg(0), flag.Arg(1)
	if *encode {
		err = runEncode(log, kind, src, dst)
	} else {
		err = runDecode(log, kind, src, dst)
	}
	if err != nil {
		log.Sugar().Fatalf("%+v", err)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.DisableStacktrace = true
	}
	return cfg.Build()
}

func runEncode(log *zap.Logger, kind uc.Kind, src, dst string) error {
	log.Info("coding", zap.String("src", src), zap.Stringer("type", kind))
	stats, err := lzwuc.CompressFile(dst, src, kind, lzwuc.WithLogger(log))
	if err != nil {
		return errors.Wrap(err, "")
	}
	fmt.Println(stats)

	if *verify {
		data, err := os.ReadFile(src)
		if err != nil {
			return errors.Wrap(err, "")
		}
		if _, err := lzwuc.RoundTrip(data, kind, lzwuc.WithLogger(log)); err != nil {
			return errors.Wrap(err, "")
		}
		log.Info("verified", zap.Uint64("digest", stats.Digest))
	}

	if *chartPath != "" {
		if err := plotCodeLengths(*chartPath, stats.CodeLengths); err != nil {
			return errors.Wrap(err, "")
		}
		log.Info("chart written", zap.String("path", *chartPath))
	}
	return nil
}

func runDecode(log *zap.Logger, kind uc.Kind, src, dst string) error {
	log.Info("decoding", zap.String("src", src), zap.Stringer("type", kind))
	stats, err := lzwuc.DecompressFile(dst, src, kind, lzwuc.WithLogger(log))
	if err != nil {
		return errors.Wrap(err, "")
	}
	fmt.Println(stats)
	return nil
}
