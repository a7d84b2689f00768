//go:build analysis

// analysis sweeps the commitment scheme over expansion rates and query
// counts, recording proof size and the soundness it buys. Results land in a
// JSON table plus an HTML report of line charts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	pcs "binius-PCS/PCS"
	"binius-PCS/binaryfield"
	"binius-PCS/prof"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type sweepRow struct {
	LogVars       int     `json:"log_vars"`
	Rate          int     `json:"rate"`
	Queries       int     `json:"queries"`
	ProofBytes    int     `json:"proof_bytes"`
	TPrimeBytes   int     `json:"tprime_bytes"`
	ColumnBytes   int     `json:"column_bytes"`
	PathBytes     int     `json:"path_bytes"`
	SoundnessBits float64 `json:"soundness_bits"`
	CommitMs      float64 `json:"commit_ms"`
	OpenMs        float64 `json:"open_ms"`
	VerifyMs      float64 `json:"verify_ms"`
}

func main() {
	logVars := flag.Int("m", 12, "log2 of the evaluation table length")
	outDir := flag.String("out", "analysis_out", "output directory")
	seed := flag.Int64("seed", 1, "PRNG seed for the sampled polynomial")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("analysis: %v", err)
	}
	rng := rand.New(rand.NewSource(*seed))
	evals := make([]binaryfield.Elem, 1<<*logVars)
	for i := range evals {
		evals[i] = binaryfield.Elem(rng.Intn(1 << 16))
	}
	point := make([]binaryfield.Elem, *logVars)
	for i := range point {
		point[i] = binaryfield.Elem(rng.Intn(1 << 16))
	}

	queryGrid := []int{8, 16, 32, 64, 128}
	var rows []sweepRow
	for logRate := 1; logRate <= 3; logRate++ {
		for _, q := range queryGrid {
			row, err := runOne(*logVars, logRate, q, evals, point)
			if err != nil {
				log.Fatalf("analysis: rate=%d queries=%d: %v", 1<<logRate, q, err)
			}
			rows = append(rows, row)
			log.Printf("rate=%d queries=%-4d proof=%6dB soundness=%.1f bits",
				row.Rate, row.Queries, row.ProofBytes, row.SoundnessBits)
		}
	}

	jsonPath := filepath.Join(*outDir, "sweep.json")
	raw, _ := json.MarshalIndent(rows, "", "  ")
	if err := os.WriteFile(jsonPath, raw, 0o644); err != nil {
		log.Fatalf("analysis: write %s: %v", jsonPath, err)
	}

	htmlPath := filepath.Join(*outDir, "sweep.html")
	if err := renderCharts(htmlPath, rows, queryGrid); err != nil {
		log.Fatalf("analysis: render %s: %v", htmlPath, err)
	}
	log.Printf("wrote %s and %s", jsonPath, htmlPath)
}

func runOne(logVars, logRate, queries int, evals, point []binaryfield.Elem) (sweepRow, error) {
	prof.SnapshotAndReset()
	scheme := pcs.NewScheme(pcs.Params{LogRate: logRate, Queries: queries})

	com, st, err := scheme.Commit(evals)
	if err != nil {
		return sweepRow{}, err
	}
	op, err := scheme.Open(st, point)
	if err != nil {
		return sweepRow{}, err
	}
	if !scheme.Verify(com, point, op.Eval, op) {
		return sweepRow{}, fmt.Errorf("honest proof rejected")
	}

	stats := pcs.ComputeOpeningStats(op)
	row := sweepRow{
		LogVars:       logVars,
		Rate:          1 << logRate,
		Queries:       queries,
		ProofBytes:    stats.TotalBytes,
		TPrimeBytes:   stats.TPrimeBytes,
		ColumnBytes:   stats.ColumnBytes,
		PathBytes:     stats.PathBytes,
		SoundnessBits: soundnessBits(logRate, queries),
	}
	for _, s := range prof.Summarize(prof.SnapshotAndReset()) {
		ms := float64(s.Total) / float64(s.Count) / float64(time.Millisecond)
		switch s.Label {
		case "pcs.Commit":
			row.CommitMs = ms
		case "pcs.Open":
			row.OpenMs = ms
		case "pcs.Verify":
			row.VerifyMs = ms
		}
	}
	return row, nil
}

// soundnessBits estimates the spot-check security: a cheating row outside
// the code disagrees with it on a delta = 1 - rho fraction of columns, and
// each of the Q queries independently misses the disagreement set with
// probability at most 1 - delta/2.
func soundnessBits(logRate, queries int) float64 {
	rho := 1.0 / float64(int(1)<<logRate)
	perQuery := (1.0 + rho) / 2.0
	return -float64(queries) * math.Log2(perQuery)
}

func renderCharts(path string, rows []sweepRow, queryGrid []int) error {
	xLabels := make([]string, len(queryGrid))
	for i, q := range queryGrid {
		xLabels[i] = fmt.Sprintf("%d", q)
	}
	byRate := make(map[int][]sweepRow)
	for _, r := range rows {
		byRate[r.Rate] = append(byRate[r.Rate], r)
	}

	proof := charts.NewLine()
	proof.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Opening size vs query count"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "bytes"}),
	)
	proof.SetXAxis(xLabels)
	sound := charts.NewLine()
	sound.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Soundness vs query count"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "bits"}),
	)
	sound.SetXAxis(xLabels)

	for rate := 2; rate <= 8; rate <<= 1 {
		series := byRate[rate]
		var sizeData, soundData []opts.LineData
		for _, r := range series {
			sizeData = append(sizeData, opts.LineData{Value: r.ProofBytes})
			soundData = append(soundData, opts.LineData{Value: r.SoundnessBits})
		}
		name := fmt.Sprintf("rate %d", rate)
		proof.AddSeries(name, sizeData)
		sound.AddSeries(name, soundData)
	}

	page := components.NewPage()
	page.AddCharts(proof, sound)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
