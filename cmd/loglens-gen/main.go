package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/loglens/loglens/internal/loggen"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var servers, rows, spanHours int
	var seed int64
	var outputDir, profilesPath string
	var showVersion bool

	flag.IntVar(&servers, "servers", 3, "number of server logs to generate")
	flag.IntVar(&rows, "rows", 5000, "base rows per server (adjusted by the profile multiplier)")
	flag.IntVar(&spanHours, "span-hours", 24, "time window for timestamps")
	flag.Int64Var(&seed, "seed", 0, "RNG seed for reproducibility (0 = from clock)")
	flag.StringVar(&outputDir, "output-dir", "logs", "directory for generated log files")
	flag.StringVar(&profilesPath, "profiles", "", "YAML file of server profiles (default: built-in profiles)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("loglens-gen - synthetic access log generator\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	if err := run(servers, rows, spanHours, seed, outputDir, profilesPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(servers, rows, spanHours int, seed int64, outputDir, profilesPath string) error {
	profiles := loggen.DefaultProfiles()
	if profilesPath != "" {
		loaded, err := loggen.LoadProfiles(profilesPath)
		if err != nil {
			return err
		}
		profiles = loaded
	}

	if servers < 1 || servers > len(profiles) {
		return fmt.Errorf("-servers must be between 1 and %d (got %d)", len(profiles), servers)
	}

	g := loggen.New(seed)
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		absDir = outputDir
	}

	fmt.Printf("Generating %d log files in %s\n", servers, absDir)
	for _, profile := range profiles[:servers] {
		path, written, err := g.WriteLog(profile, outputDir, rows, spanHours)
		if err != nil {
			return err
		}
		fmt.Printf("  - %s: %d lines\n", filepath.Base(path), written)
	}
	return nil
}
