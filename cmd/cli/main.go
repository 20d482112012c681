package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"geoks/adapters/excel"
	"geoks/adapters/report"
	"geoks/adapters/stats/kstest"
	"geoks/adapters/stats/visualize"
	"geoks/domain/core"
	"geoks/domain/geochron"
	"geoks/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "geoks",
		Short: "Uncertainty-weighted two-sample K-S comparison of radiometric ages",
	}

	rootCmd.AddCommand(
		newCompareCmd(),
		newFilterCmd(),
		newCurveCmd(),
		newDemoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCompareCmd() *cobra.Command {
	var filter bool
	var threshold, sigmaScale float64
	var markdown bool

	cmd := &cobra.Command{
		Use:   "compare <x-file> <y-file>",
		Short: "Compare two age samples read from spreadsheet or CSV files",
		Long: `Compare two samples of (age, two-sigma) pairs with the modified two-sample
Kolmogorov-Smirnov test. Each file holds one sample: ages in the first
column, two-sigma uncertainties in the second.

Example: geoks compare tuff_a.xlsx tuff_b.csv --filter --threshold 2.2222`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := excel.NewDataReader(args[0]).ReadSample("x", "")
			if err != nil {
				return err
			}
			y, err := excel.NewDataReader(args[1]).ReadSample("y", "")
			if err != nil {
				return err
			}

			tester := kstest.NewTester()
			result, err := tester.Run(x, y, kstest.Options{
				Filter:        filter,
				FilterOptions: kstest.FilterOptions{Threshold: threshold, SigmaScale: sigmaScale},
			})
			if err != nil {
				return err
			}

			if markdown {
				md, err := report.Markdown(result, x, y)
				if err != nil {
					return err
				}
				fmt.Println(md)
				return nil
			}
			return printJSON(result)
		},
	}

	cmd.Flags().BoolVar(&filter, "filter", false, "Run the xenocryst scan on both samples before testing")
	cmd.Flags().Float64Var(&threshold, "threshold", kstest.DefaultSlopeThreshold, "Maximum local CDF slope still treated as a gap")
	cmd.Flags().Float64Var(&sigmaScale, "sigma-scale", kstest.DefaultFilterSigmaScale, "Sigma multiplier inside the filter's mixture")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Emit a markdown report instead of JSON")

	return cmd
}

func newFilterCmd() *cobra.Command {
	var threshold, sigmaScale float64

	cmd := &cobra.Command{
		Use:   "filter <file>",
		Short: "Run the standalone xenocryst scan on one sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := excel.NewDataReader(args[0]).ReadSample("sample", "")
			if err != nil {
				return err
			}

			result, err := kstest.FilterXenocrysts(sample, kstest.FilterOptions{
				Threshold:  threshold,
				SigmaScale: sigmaScale,
			})
			if err != nil {
				return err
			}

			if !result.Found() {
				fmt.Println("no xenocrysts found")
				return nil
			}
			return printJSON(result)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", kstest.DefaultSlopeThreshold, "Maximum local CDF slope still treated as a gap")
	cmd.Flags().Float64Var(&sigmaScale, "sigma-scale", kstest.DefaultFilterSigmaScale, "Sigma multiplier inside the filter's mixture")

	return cmd
}

func newCurveCmd() *cobra.Command {
	var points int
	var density bool

	cmd := &cobra.Command{
		Use:   "curve <file>",
		Short: "Emit one sample's mixture CDF as CSV (x,y per line)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := excel.NewDataReader(args[0]).ReadSample(core.SampleLabel(baseName(args[0])), "")
			if err != nil {
				return err
			}

			mode := visualize.ModeProbability
			if density {
				mode = visualize.ModeDensity
			}
			series, err := visualize.Curve(sample, mode, points)
			if err != nil {
				return err
			}

			for _, p := range series.Points {
				fmt.Printf("%s,%s\n",
					strconv.FormatFloat(p.X, 'g', -1, 64),
					strconv.FormatFloat(p.Y, 'g', -1, 64))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&points, "points", visualize.DefaultGridPoints, "Number of grid points across the domain")
	cmd.Flags().BoolVar(&density, "density", false, "Emit unnormalized density instead of probability")

	return cmd
}

func newDemoCmd() *cobra.Command {
	var seed int64
	var n int
	var filter, markdown bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Compare two deterministic synthetic samples",
		Long: `Generate two synthetic age clusters from a fixed seed and run the
comparison on them. The first sample carries two artificially old dates so
that --filter has something to excise. Useful for trying the tool without
lab data; the same seed always produces the same result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := testkit.NewGenerator(seed)
			base := g.AgeCluster(n, 90.0, 0.01)
			xValues := g.WithXenocrysts(base, 2, 1.5, 0.01)
			x, err := geochron.NewSample("demo-x", xValues, testkit.TwoSigma(xValues, 0.0005))
			if err != nil {
				return err
			}
			y := g.Sample("demo-y", n, 90.02, 0.01, 0.0005)

			result, err := kstest.NewTester().Run(x, y, kstest.Options{Filter: filter})
			if err != nil {
				return err
			}

			if markdown {
				md, err := report.Markdown(result, x, y)
				if err != nil {
					return err
				}
				fmt.Println(md)
				return nil
			}
			return printJSON(result)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Generator seed; identical seeds reproduce identical runs")
	cmd.Flags().IntVar(&n, "n", 12, "Observations per cluster")
	cmd.Flags().BoolVar(&filter, "filter", false, "Run the xenocryst scan before testing")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Emit a markdown report instead of JSON")

	return cmd
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func baseName(path string) string {
	parts := strings.Split(path, "/")
	name := parts[len(parts)-1]
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}
