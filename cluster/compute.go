// Command cluster prints the normalized compression distance between every pair of files in a directory.
//
// The complexity of a file is the size of its compressed form, with LZW and a universal code,
// or with zstd as a baseline.
package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fumin/lzwuc"
	"github.com/fumin/lzwuc/uc"
)

var (
	intelligenceType = flag.String("i", uc.Omega.String(), "complexity estimator: gamma, delta, omega, fibonacci or zstd")
	dataDir          = flag.String("d", "testdata", "data directory")
	cacheSize        = flag.Int("cache", 1024, "number of compressed sizes to remember")
)

func main() {
	flag.Parse()
	log := zap.Must(zap.NewDevelopment())
	defer log.Sync()
	if err := run(log, *intelligenceType, *dataDir, *cacheSize); err != nil {
		log.Sugar().Fatalf("%+v", err)
	}
}

func run(log *zap.Logger, intelligence, dir string, size int) error {
	data, err := listFiles(dir)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if len(data) < 2 {
		return errors.Errorf("need at least two files in %s, have %d", dir, len(data))
	}
	c, err := newComplexity(intelligence, size)
	if err != nil {
		return errors.Wrap(err, "")
	}
	distMat, err := distanceMatrix(log, c, data)
	if err != nil {
		return errors.Wrap(err, "")
	}

	log.Info("files", zap.String("names", display(data)))
	log.Info("distances", zap.String("matrix", displayFloats(distMat)))
	return nil
}

// display prints names as a comma separated array.
func display(data []string) string {
	names := make([]string, 0, len(data))
	for _, fpath := range data {
		name := filepath.Base(fpath)
		names = append(names, strconv.Quote(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	return "[" + strings.Join(names, ",") + "]"
}

func displayFloats(fs []float64) string {
	strs := make([]string, 0, len(fs))
	for _, f := range fs {
		strs = append(strs, strconv.FormatFloat(f, 'f', -1, 64))
	}
	return "[" + strings.Join(strs, ",") + "]"
}

// complexity estimates the information content of byte strings by compressing them.
type complexity struct {
	compress func([]byte) (float64, error)
	cache    *lru.Cache[string, float64]
}

func newComplexity(intelligence string, size int) (*complexity, error) {
	cache, err := lru.New[string, float64](size)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	c := &complexity{cache: cache}

	if intelligence == "zstd" {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		c.compress = func(p []byte) (float64, error) {
			return float64(len(enc.EncodeAll(p, nil))), nil
		}
		return c, nil
	}

	kind, err := uc.ParseKind(intelligence)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	c.compress = func(p []byte) (float64, error) {
		enc := uc.NewEncoder(kind)
		lzwuc.Encode(enc, p)
		return float64(enc.Len()) / 8, nil
	}
	return c, nil
}

// of returns the complexity of p, remembering it under key.
func (c *complexity) of(key string, p []byte) (float64, error) {
	if size, ok := c.cache.Get(key); ok {
		return size, nil
	}
	size, err := c.compress(p)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	c.cache.Add(key, size)
	return size, nil
}

// distance returns the normalized compression distance between x and y.
func distance(c *complexity, x, y string) (float64, error) {
	xb, err := os.ReadFile(x)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	yb, err := os.ReadFile(y)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}

	kxy, err := c.of(x+"\x00"+y, bytes.Join([][]byte{xb, yb}, nil))
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	kx, err := c.of(x, xb)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	ky, err := c.of(y, yb)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	return ncd(kx, ky, kxy), nil
}

func ncd(kx, ky, kxy float64) float64 {
	minxy := kx
	if ky < kx {
		minxy = ky
	}
	maxxy := kx
	if ky > kx {
		maxxy = ky
	}
	if maxxy == 0 {
		return 0
	}
	return (kxy - minxy) / maxxy
}

func distanceMatrix(log *zap.Logger, c *complexity, data []string) ([]float64, error) {
	n := len(data)
	mat := make([]float64, 0, n*(n-1)/2)
	for i, dx := range data[:n-1] {
		for _, dy := range data[i+1:] {
			dist, err := distance(c, dx, dy)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			mat = append(mat, dist)
			log.Debug("distance", zap.String("x", dx), zap.String("y", dy), zap.Float64("ncd", dist))
		}
	}
	return mat, nil
}

func listFiles(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	data := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data = append(data, filepath.Join(dir, f.Name()))
	}
	return data, nil
}
