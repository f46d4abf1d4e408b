package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/courseplan/internal/config"
	"github.com/limaJavier/courseplan/pkg/model"
	"github.com/limaJavier/courseplan/pkg/scheduler"
	"go.uber.org/zap"
)

const (
	exitScheduled  = 10
	exitUnverified = 15
	exitInfeasible = 20
)

var validFormats = []string{"json", "table"}

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the course bundle (JSON)")
	configPathPtr := flag.String("config", "", "Path to a YAML run configuration; flags given explicitly override its values")
	initConfigPtr := flag.String("init-config", "", "Write a default YAML configuration to the given path and exit")
	degreePtr := flag.String("degree", "", "Name of the degree course to plan for")
	slotsPtr := flag.Int("slots", config.DefaultSlotsPerTerm, "Number of course slots per term")
	requiredPtr := flag.Int("required", config.DefaultRequiredCount, "Minimum number of courses in the plan")
	startPtr := flag.String("start", model.Fall.String(), "Term type of the first planned term: \"Fall\" or \"Winter\"")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	formatPtr := flag.String("format", "json", "Output format. Allowed values are: \"json\" and \"table\", where \"json\" is the default")
	verbosePtr := flag.Bool("verbose", false, "Log every placement")
	flag.Parse()

	logger := newLogger(*verbosePtr)
	defer logger.Sync()

	if *initConfigPtr != "" {
		if err := config.WriteDefault(*initConfigPtr); err != nil {
			logger.Fatal("cannot write configuration", zap.Error(err))
		}
		return
	}

	// Build configuration: file first, then explicit flags
	cfg := config.Default()
	if *configPathPtr != "" {
		loaded, err := config.Load(*configPathPtr)
		if err != nil {
			logger.Fatal("cannot load configuration", zap.Error(err))
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "degree":
			cfg.Degree = *degreePtr
		case "slots":
			cfg.SlotsPerTerm = *slotsPtr
		case "required":
			cfg.RequiredCount = *requiredPtr
		case "start":
			cfg.StartingTerm = *startPtr
		}
	})

	// Validate arguments
	format := strings.ToLower(*formatPtr)
	if !slices.Contains(validFormats, format) {
		logger.Fatal("invalid format", zap.String("format", format))
	} else if *filePathPtr == "" {
		logger.Fatal("an input file must be specified")
	} else if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	options, err := cfg.Options()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Extract input
	data, err := model.InputFromJson(*filePathPtr)
	if err != nil {
		logger.Fatal("cannot parse input file", zap.Error(err))
	}
	graph, err := model.FromCourseData(data)
	if err != nil {
		logger.Fatal("cannot build course graph", zap.Error(err))
	}
	degree, ok := graph.Course(cfg.Degree)
	if !ok {
		logger.Fatal("degree not found in input", zap.String("degree", cfg.Degree))
	}

	// Build schedule
	planner := scheduler.NewGreedyScheduler(append(options, scheduler.WithLogger(logger))...)
	schedule, err := planner.Schedule(graph, cfg.SlotsPerTerm, cfg.RequiredCount, degree)
	if errors.Is(err, scheduler.ErrInfeasible) {
		logger.Error("no feasible schedule", zap.Error(err))
		logger.Sync()
		os.Exit(exitInfeasible)
	} else if err != nil {
		logger.Fatal("an error occurred during schedule construction", zap.Error(err))
	}

	// Verify schedule correctness
	if !planner.Verify(schedule, graph) {
		logger.Error("schedule failed verification")
		logger.Sync()
		os.Exit(exitUnverified)
	}

	var output string
	if format == "table" {
		output = renderTable(schedule, degree)
	} else {
		output, err = renderJson(schedule, degree)
		if err != nil {
			logger.Fatal("an error occurred while building output json", zap.Error(err))
		}
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		fmt.Println(output)
	} else if err := os.WriteFile(*outFilePathPtr, []byte(output), 0666); err != nil {
		logger.Fatal("an error occurred while writing to the output file", zap.Error(err))
	}

	logger.Sync()
	os.Exit(exitScheduled)
}

func newLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
