package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/loglens/loglens/internal/analyze"
	"github.com/loglens/loglens/internal/report"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath, output string
	var units, topK int
	var serial, showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/loglens/config.yml)")
	flag.StringVar(&output, "output", "", "path of the JSON report to write")
	flag.IntVar(&units, "units", 0, "total cooperating units: 1 coordinator + one worker per source (0 = derive)")
	flag.IntVar(&topK, "top-k", 0, "number of top paths per summary (0 = default)")
	flag.BoolVar(&serial, "serial", false, "analyze sources one at a time instead of in parallel")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("loglens - parallel access log analyzer\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override config file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = output
		case "units":
			cfg.Units = units
		case "top-k":
			cfg.TopK = topK
		case "serial":
			cfg.Serial = serial
		}
	})
	// Positional arguments are the log sources, in assignment order.
	if flag.NArg() > 0 {
		cfg.Sources = flag.Args()
	}

	if err := runAnalysis(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAnalysis(cfg appConfig) error {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	runCfg := analyze.Config{
		Sources: cfg.Sources,
		Units:   cfg.Units,
		TopK:    cfg.TopK,
	}

	start := time.Now()
	var (
		rep *report.Report
		err error
	)
	if cfg.Serial {
		rep, err = analyze.RunSerial(context.Background(), runCfg)
	} else {
		rep, err = analyze.Run(context.Background(), runCfg)
	}
	if err != nil {
		return err
	}

	if err := report.WriteAtomic(cfg.Output, rep); err != nil {
		return err
	}

	fmt.Printf("Analysis complete in %s:\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("- Sources analyzed: %d\n", len(cfg.Sources))
	fmt.Printf("- Total requests:   %d\n", rep.Global.TotalRequests)
	fmt.Printf("- JSON report:      %s\n", cfg.Output)
	return nil
}
