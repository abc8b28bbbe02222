//go:build ignore

// generate_testdata.go creates glossary datasets for benchmarking the network view.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	testdata/benchmark/small.csv   (50 terms)
//	testdata/benchmark/medium.csv  (250 terms)
//	testdata/benchmark/large.csv   (1000 terms)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/glossnet/pkg/testutil"
)

type datasetSpec struct {
	name    string
	size    int
	vocab   int
	perTerm int
}

var datasets = []datasetSpec{
	{"small", 50, 40, 3},
	{"medium", 250, 150, 3},
	{"large", 1000, 400, 4},
}

func main() {
	outputDir := filepath.Join("testdata", "benchmark")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range datasets {
		fmt.Printf("Generating %s dataset (%d terms)...\n", ds.name, ds.size)

		cfg := testutil.DefaultConfig()
		cfg.Seed = uint64(ds.size) // reproducible per size
		gen := testutil.New(cfg)
		gf := gen.Random(ds.size, ds.vocab, ds.perTerm)
		data := testutil.ToCSV(gen.ToEntries(gf))

		outputPath := filepath.Join(outputDir, ds.name+".csv")
		if err := os.WriteFile(outputPath, []byte(data), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}

		fmt.Printf("  Written %s (%d bytes, %d links)\n", outputPath, len(data), len(gf.Edges))
	}

	fmt.Println("\nDone! Datasets created in", outputDir)
}
