// Command wininfo prints the properties of window shapes that matter for
// STFT analysis and overlap-add resynthesis.
//
// Usage:
//
//	wininfo [flags] [window-name ...]
//
// Without arguments it prints info for all known window types.
//
// Examples:
//
//	wininfo hann
//	wininfo -size 1024 -hop 256 blackman hamming
//	wininfo -alpha 0.25 tukey
//	wininfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

type windowEntry struct {
	name     string
	typ      window.Type
	hasAlpha bool
	defAlpha float64
}

var registry = []windowEntry{
	{"rectangular", window.TypeRectangular, false, 0},
	{"hann", window.TypeHann, false, 0},
	{"hamming", window.TypeHamming, false, 0},
	{"blackman", window.TypeBlackman, false, 0},
	{"blackman-harris", window.TypeBlackmanHarris, false, 0},
	{"blackman-nuttall", window.TypeBlackmanNuttall, false, 0},
	{"nuttall", window.TypeNuttall, false, 0},
	{"flat-top", window.TypeFlatTop, false, 0},
	{"bartlett-hann", window.TypeBartlettHann, false, 0},
	{"triangular", window.TypeTriangular, false, 0},
	{"sine", window.TypeSine, false, 0},
	{"lanczos", window.TypeLanczos, false, 0},
	{"tukey", window.TypeTukey, true, 0.5},
	{"gauss", window.TypeGaussian, true, 0.4},
}

func main() {
	size := flag.Int("size", 1024, "window length in samples")
	hop := flag.Int("hop", 0, "overlap-add hop in samples (default size/2)")
	alpha := flag.Float64("alpha", math.NaN(), "shape parameter for parametric windows (tukey, gauss)")
	all := flag.Bool("all", false, "show all window types")
	list := flag.Bool("list", false, "list available window names")
	symmetric := flag.Bool("symmetric", false, "use the symmetric form instead of the periodic (STFT) form")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wininfo [flags] [window-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints gain, noise bandwidth and overlap-add weights of window shapes.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	names := flag.Args()
	if len(names) == 0 || *all {
		names = nil
		for _, e := range registry {
			names = append(names, e.name)
		}
	}

	entries := resolveEntries(names, *alpha)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching window types\n")
		os.Exit(1)
	}

	if *hop == 0 {
		*hop = max(*size/2, 1)
	}
	var opts []window.Option
	if !*symmetric {
		opts = append(opts, window.WithPeriodic())
	}

	if err := printAnalysis(os.Stdout, entries, *size, *hop, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList(w io.Writer) {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

type resolvedEntry struct {
	windowEntry
	alphaOverride float64
}

func resolveEntries(names []string, alphaFlag float64) []resolvedEntry {
	byName := make(map[string]windowEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []resolvedEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown window %q (use -list to see available)\n", name)
			continue
		}
		a := e.defAlpha
		if e.hasAlpha && !math.IsNaN(alphaFlag) {
			a = alphaFlag
		}
		result = append(result, resolvedEntry{e, a})
	}
	return result
}

type analysis struct {
	coherentGain float64
	enbw         float64
	olaMin       float64
	olaMax       float64
}

// ripple returns the overlap-add weight variation in dB. 0 means the
// window/hop pair sums to a constant.
func (a analysis) ripple() float64 {
	if a.olaMin <= 0 {
		return math.Inf(1)
	}
	return core.LinearPowerToDB(a.olaMax / a.olaMin)
}

func analyze(e resolvedEntry, size, hop int, baseOpts []window.Option) (analysis, error) {
	opts := append([]window.Option(nil), baseOpts...)
	if e.hasAlpha {
		opts = append(opts, window.WithAlpha(e.alphaOverride))
	}
	coeffs := window.Generate(e.typ, size, opts...)
	if err := window.Validate(coeffs, size); err != nil {
		return analysis{}, err
	}
	enbw, err := window.EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		return analysis{}, err
	}
	weights, err := window.OverlapWeights(coeffs, hop)
	if err != nil {
		return analysis{}, err
	}
	a := analysis{coherentGain: window.CoherentGain(coeffs), enbw: enbw, olaMin: weights[0], olaMax: weights[0]}
	for _, w := range weights {
		a.olaMin = min(a.olaMin, w)
		a.olaMax = max(a.olaMax, w)
	}
	return a, nil
}

func printAnalysis(w io.Writer, entries []resolvedEntry, size, hop int, baseOpts []window.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tHop\tCoherent Gain\tENBW [bins]\tOLA min\tOLA max\tRipple [dB]\n")
	fmt.Fprintf(tw, "------\t----\t---\t-------------\t-----------\t-------\t-------\t-----------\n")

	for _, e := range entries {
		a, err := analyze(e, size, hop, baseOpts)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		label := e.name
		if e.hasAlpha {
			label = fmt.Sprintf("%s (a=%.2f)", e.name, e.alphaOverride)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.6f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			label, size, hop, a.coherentGain, a.enbw, a.olaMin, a.olaMax, a.ripple())
	}
	return tw.Flush()
}
