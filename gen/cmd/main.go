package main

import (
	"aggscan/gen"
	"flag"
	"log"
	"time"

	"golang.org/x/exp/slog"
)

var (
	rows     int
	stations int
	seed     uint64
	outPath  string
)

func init() {
	flag.IntVar(&rows, "rows", 1_000_000, "number of rows to write")
	flag.IntVar(&stations, "stations", 400, "number of distinct stations")
	flag.Uint64Var(&seed, "seed", 42, "random seed")
	flag.StringVar(&outPath, "out", "measurements.txt", "output file")
	flag.Parse()
}

func main() {
	t := time.Now()
	cfg := gen.Config{Rows: rows, Stations: stations, Seed: seed}
	if err := gen.WriteFile(outPath, cfg); err != nil {
		log.Fatal(err)
	}
	slog.Info(
		"generated measurements",
		slog.String("file", outPath),
		slog.Int("rows", rows),
		slog.Int("stations", stations),
		slog.Duration("elapsed", time.Since(t)),
	)
}
