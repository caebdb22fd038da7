// Package report assembles the plain-text stdout summary: pass 1/2
// statistics, chi-square intermediate arrays, per-distribution criteria, and
// the winning distribution. Grounded on the original Main.cpp print
// sequence (print_first_pass_info/print_second_pass_info/
// perform_chi_square_calc) and the teacher's sum.go tabwriter usage for the
// tabular criteria section.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kivppr/distfit/internal/chisquare"
	"github.com/kivppr/distfit/internal/pipeline"
)

// WritePass1 prints the first-pass summary.
func WritePass1(w io.Writer, p1 pipeline.Pass1Result) {
	fmt.Fprintln(w, "**** FIRST PASS INFO **** START")
	fmt.Fprintf(w, "minimum number: %v\n", p1.Min)
	fmt.Fprintf(w, "maximum number: %v\n", p1.Max)
	fmt.Fprintf(w, "valid number count: %d\n", p1.Count)
	fmt.Fprintf(w, "negative value present (omit Poisson + exponential): %v\n", p1.HasNegative)
	fmt.Fprintf(w, "decimal point value present (omit Poisson): %v\n", p1.HasNonInt)
	fmt.Fprintln(w, "**** FIRST PASS INFO **** END")
}

// WritePass2 prints the second-pass summary plus per-bin counts.
func WritePass2(w io.Writer, p2 pipeline.Pass2Result) {
	m := p2.Interval
	fmt.Fprintln(w, "**** SECOND PASS INFO **** START")
	fmt.Fprintf(w, "interval count (Sturges rule): %d\n", m.Count)
	fmt.Fprintf(w, "interval size: %v\n", m.Size)
	fmt.Fprintf(w, "average: %v\n", p2.Stats.Mean())
	fmt.Fprintf(w, "standard deviation: %v\n", p2.Stats.StdDev())
	fmt.Fprintf(w, "first interval boundaries: %v - %v\n", m.BoundLow[0], m.BoundUp[0])
	fmt.Fprintf(w, "last interval boundaries: %v - %v\n", m.BoundLow[m.Count-1], m.BoundUp[m.Count-1])
	for i := 0; i < m.Count; i++ {
		fmt.Fprintf(w, "index: %d, interval: %v - %v, count: %d\n", i, m.BoundLow[i], m.BoundUp[i], m.Counter[i])
	}
	fmt.Fprintln(w, "**** SECOND PASS INFO **** END")
}

// WritePartial prints one pipeline stage's per-distribution arrays, labeled
// by label (e.g. "distribution functions", "expected probabilities").
func WritePartial(w io.Writer, label string, res chisquare.PartialResult) {
	fmt.Fprintf(w, "**** CALCULATED %s **** START\n", label)
	writeArr(w, "uniform", res.Uniform)
	writeArr(w, "normal", res.Normal)
	switch res.Class {
	case chisquare.PositiveInteger:
		writeArr(w, "exponential", res.Exponential)
		writeArr(w, "Poisson", res.Poisson)
	case chisquare.PositiveDecimal:
		writeArr(w, "exponential", res.Exponential)
	}
	fmt.Fprintf(w, "**** CALCULATED %s **** END\n", label)
}

func writeArr(w io.Writer, name string, vals []float64) {
	for i, v := range vals {
		fmt.Fprintf(w, "index: %d, %s result: %v\n", i, name, v)
	}
}

// WriteCriteria prints the per-distribution test criteria in a tabular
// form.
func WriteCriteria(w io.Writer, c chisquare.CritResult) {
	fmt.Fprintln(w, "**** CALCULATED CHI-SQUARE TEST CRITERIA **** START")

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "distribution\tcriterion\n")
	fmt.Fprintf(tw, "uniform\t%v\n", c.Uniform)
	fmt.Fprintf(tw, "normal\t%v\n", c.Normal)
	switch c.Class {
	case chisquare.PositiveInteger:
		fmt.Fprintf(tw, "exponential\t%v\n", c.Exponential)
		fmt.Fprintf(tw, "Poisson\t%v\n", c.Poisson)
	case chisquare.PositiveDecimal:
		fmt.Fprintf(tw, "exponential\t%v\n", c.Exponential)
	}
	tw.Flush()

	fmt.Fprintln(w, "**** CALCULATED CHI-SQUARE TEST CRITERIA **** END")
}

// WriteWinner prints the closest distribution and its criterion.
func WriteWinner(w io.Writer, win chisquare.WinResult) {
	fmt.Fprintln(w, "**** CLOSEST DISTRIBUTION INFO **** START")
	fmt.Fprintf(w, "closest distribution is: %s\n", win.Winner)
	fmt.Fprintf(w, "test criterium: %v\n", win.Crit)
	fmt.Fprintln(w, "**** CLOSEST DISTRIBUTION INFO **** END")
}
