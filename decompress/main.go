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

func main() {
	flag.Parse()
	log := zap.Must(zap.NewProduction())
	defer log.Sync()

	kind, err := uc.ParseKind(*codeType)
	if err != nil {
		log.Fatal("bad -type", zap.Error(err))
	}
	if err := lzwuc.Decompress(os.Stdout, os.Stdin, kind, lzwuc.WithLogger(log)); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
