// pcscli commits to a multilinear polynomial given by its evaluation table,
// opens it at a point, and verifies the opening. Exit status 0 means the
// proof verified; 1 means rejection or any input error, so the binary slots
// directly into scripted checks.
//
// Inputs are JSON arrays of field elements (integers in [0, 65535]):
//
//	pcscli -poly evals.json -point point.json -rate 4 -queries 32
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/bits"
	"os"

	pcs "binius-PCS/PCS"
	"binius-PCS/binaryfield"
	"binius-PCS/prof"
)

func main() {
	polyPath := flag.String("poly", "", "JSON file holding the evaluation table (power-of-two length)")
	pointPath := flag.String("point", "", "JSON file holding the evaluation point")
	rate := flag.Int("rate", 4, "Reed-Solomon expansion rate (power of two)")
	queries := flag.Int("queries", 32, "number of spot-checked columns")
	cols := flag.Int("cols", 0, "matrix width override (power of two, 0 = automatic)")
	timings := flag.Bool("timings", false, "print per-phase timing summary")
	flag.Parse()

	if *polyPath == "" || *pointPath == "" {
		log.Fatal("pcscli: -poly and -point are required")
	}
	evals, err := loadElems(*polyPath)
	if err != nil {
		log.Fatalf("pcscli: load poly: %v", err)
	}
	point, err := loadElems(*pointPath)
	if err != nil {
		log.Fatalf("pcscli: load point: %v", err)
	}

	logRate, err := exactLog2(*rate, "rate")
	if err != nil {
		log.Fatalf("pcscli: %v", err)
	}
	if *queries < 1 {
		log.Fatal("pcscli: -queries must be positive")
	}
	params := pcs.Params{LogRate: logRate, Queries: *queries}
	if *cols > 0 {
		if params.LogCols, err = exactLog2(*cols, "cols"); err != nil {
			log.Fatalf("pcscli: %v", err)
		}
	}
	scheme := pcs.NewScheme(params)

	com, st, err := scheme.Commit(evals)
	if err != nil {
		log.Fatalf("pcscli: commit: %v", err)
	}
	op, err := scheme.Open(st, point)
	if err != nil {
		log.Fatalf("pcscli: open: %v", err)
	}
	stats := pcs.ComputeOpeningStats(op)
	log.Printf("committed %d evaluations as a %dx%d matrix (%d extended columns)", len(evals), com.Rows, com.Cols, com.ExtCols)
	log.Printf("evaluation at point: %d (0x%04x), proof %d bytes", op.Eval, uint16(op.Eval), stats.TotalBytes)

	accepted := scheme.Verify(com, point, op.Eval, op)
	if *timings {
		for _, s := range prof.Summarize(prof.SnapshotAndReset()) {
			log.Printf("%s", s)
		}
	}
	if !accepted {
		log.Print("proof REJECTED")
		os.Exit(1)
	}
	log.Print("proof accepted")
}

func loadElems(path string) ([]binaryfield.Elem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vals []int
	if err := json.Unmarshal(raw, &vals); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out := make([]binaryfield.Elem, len(vals))
	for i, v := range vals {
		if v < 0 || v > 0xFFFF {
			return nil, fmt.Errorf("%s: element %d out of [0, 65535]", path, v)
		}
		out[i] = binaryfield.Elem(v)
	}
	return out, nil
}

func exactLog2(v int, name string) (int, error) {
	if v < 2 || v&(v-1) != 0 {
		return 0, fmt.Errorf("%s %d is not a power of two >= 2", name, v)
	}
	return bits.TrailingZeros(uint(v)), nil
}
