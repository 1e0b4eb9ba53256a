// Package main is the headless pattern-generator front end for the
// wavestorm editing engine. It evaluates a formula over a cycle range
// and prints one value per cycle, which is useful for previewing a
// generator expression before applying it inside an editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/wavestorm/internal/config"
	"github.com/dshills/wavestorm/internal/engine"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 1
	}

	settings := config.Default()
	if opts.configPath != "" {
		var err error
		settings, err = config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading settings: %v\n", err)
			return 1
		}
	}

	e := engine.New(engine.WithSettings(settings))
	idx, err := e.AddSignal("generated", engine.KindBusData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := e.Generate(idx, opts.start, opts.end, opts.formula, opts.vars...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	values, err := e.Values(idx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for t := opts.start; t <= opts.end && t < len(values); t++ {
		fmt.Printf("%d\t%s\n", t, values[t])
	}
	return 0
}

type options struct {
	formula    string
	start      int
	end        int
	configPath string
	vars       []engine.Variable
}

// varList parses repeatable -var flags of the form name=start:end:step.
type varList []engine.Variable

func (v *varList) String() string {
	names := make([]string, 0, len(*v))
	for _, item := range *v {
		names = append(names, item.Name)
	}
	return strings.Join(names, ",")
}

func (v *varList) Set(s string) error {
	name, rangeDef, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=start:end:step, got %q", s)
	}
	parts := strings.Split(rangeDef, ":")
	if len(parts) != 3 {
		return fmt.Errorf("expected name=start:end:step, got %q", s)
	}
	nums := make([]float64, 3)
	for i, p := range parts {
		n, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q in %q", p, s)
		}
		nums[i] = n
	}
	*v = append(*v, engine.Variable{Name: name, Start: nums[0], End: nums[1], Step: nums[2]})
	return nil
}

func parseFlags() (options, bool) {
	var opts options
	var vars varList
	var showVersion bool

	flag.StringVar(&opts.formula, "formula", "", "Lua expression evaluated once per cycle")
	flag.StringVar(&opts.formula, "f", "", "Lua expression evaluated once per cycle (shorthand)")
	flag.IntVar(&opts.start, "start", 0, "First cycle of the generated range")
	flag.IntVar(&opts.end, "end", 15, "Last cycle of the generated range")
	flag.StringVar(&opts.configPath, "config", "", "Path to a settings file")
	flag.StringVar(&opts.configPath, "c", "", "Path to a settings file (shorthand)")
	flag.Var(&vars, "var", "Looping counter as name=start:end:step (repeatable)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Wavestorm - timing diagram pattern generator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wavestorm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wavestorm -f 't %% 2'                        Alternating bit\n")
		fmt.Fprintf(os.Stderr, "  wavestorm -f 'addr' -var addr=0:7:1         Looping counter\n")
		fmt.Fprintf(os.Stderr, "  wavestorm -f 'math.floor(i / 4)' -end 31    Slow ramp\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Wavestorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.formula == "" {
		fmt.Fprintln(os.Stderr, "Error: -formula is required")
		flag.Usage()
		return opts, false
	}
	if opts.end < opts.start {
		fmt.Fprintf(os.Stderr, "Error: -end %d is before -start %d\n", opts.end, opts.start)
		return opts, false
	}

	opts.vars = vars
	return opts, true
}
