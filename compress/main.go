package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/fumin/lzwuc"
	"github.com/fumin/lzwuc/uc"
)

var codeType = flag.String("type", uc.Omega.String(), "universal code: gamma, delta, omega or fibonacci")
var verbose = flag.Bool("verbose", false, "verbosity")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] filename\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	name := flag.Arg(0)
	if name == "" {
		flag.Usage()
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		log = zap.Must(zap.NewDevelopment())
	}
	defer log.Sync()

	kind, err := uc.ParseKind(*codeType)
	if err != nil {
		log.Sugar().Fatalf("%v", err)
	}
	stats, err := lzwuc.Compress(os.Stdout, name, kind, lzwuc.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
	log.Sugar().Infof("\n%s", stats)
}
