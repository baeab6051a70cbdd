// Command gpsample draws sample paths from a random-feature Gaussian
// process approximation on a 1-D grid and writes them to CSV.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/rff"
	"github.com/nozzle/rff/kernel"
	"github.com/nozzle/rff/tensor"
)

func main() {
	kernelName := flag.String("kernel", "sqexp", "Kernel name ("+strings.Join(kernel.Names(), ", ")+")")
	variance := flag.Float64("variance", 1.0, "Kernel variance")
	lengthscale := flag.Float64("lengthscale", 1.0, "Kernel length scale")
	features := flag.Int("features", 1024, "Number of random features")
	samples := flag.Int("samples", 5, "Number of sample paths")
	points := flag.Int("points", 200, "Number of grid points")
	gridMin := flag.Float64("min", -5.0, "Grid start")
	gridMax := flag.Float64("max", 5.0, "Grid end")
	seed := flag.Int64("seed", 42, "Random seed")
	grad := flag.Bool("grad", false, "Write path gradients instead of values")
	outputFile := flag.String("output", "paths.csv", "Output CSV file")
	flag.Parse()

	if *points < 2 {
		fmt.Fprintln(os.Stderr, "Error: -points must be at least 2")
		os.Exit(1)
	}

	k, ok := kernel.New(*kernelName, *variance, []float64{*lengthscale})
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown kernel %q\n", *kernelName)
		os.Exit(1)
	}

	cfg := rff.DefaultConfig()
	cfg.NumFeatures = *features
	cfg.NumSamples = *samples
	cfg.Seed = *seed

	rf, err := rff.New(k, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error constructing basis: %v\n", err)
		os.Exit(1)
	}

	x := mat.NewDense(1, *points, nil)
	step := (*gridMax - *gridMin) / float64(*points-1)
	for j := range *points {
		x.Set(0, j, *gridMin+float64(j)*step)
	}

	var out *tensor.Dense3
	if *grad {
		out, err = rf.EvaluateGradient(x, kernel.Gradient{Kernel: k})
	} else {
		out, err = rf.Evaluate(x, k)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating: %v\n", err)
		os.Exit(1)
	}

	if err := saveCSV(*outputFile, x, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving output: %v\n", err)
		os.Exit(1)
	}
}

// saveCSV writes one row per grid point: the input location followed by one
// column per sample path.
func saveCSV(filename string, x *mat.Dense, out *tensor.Dense3) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	_, n, numSamples := out.Dims()
	record := make([]string, 1+numSamples)
	for j := range n {
		record[0] = strconv.FormatFloat(x.At(0, j), 'f', 6, 64)
		for s := range numSamples {
			record[1+s] = strconv.FormatFloat(out.At(0, j, s), 'f', 6, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
