package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/loglens/loglens/internal/httpserver"
	"github.com/loglens/loglens/internal/report"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath, addr, reportPath, logsDir string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/loglens/config.yml)")
	flag.StringVar(&addr, "addr", "", "host:port to serve the dashboard on")
	flag.StringVar(&reportPath, "report", "", "path of the JSON report to watch")
	flag.StringVar(&logsDir, "logs-dir", "", "directory of raw server logs (enables /api/raw)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("loglens-dash - report dashboard\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	cfg, err := loadDashConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if reportPath != "" {
		cfg.Report = reportPath
	}
	if logsDir != "" {
		cfg.LogsDir = logsDir
	}

	if err := runDashboard(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDashboard(cfg dashConfig) error {
	srv := httpserver.NewServer(cfg.Addr, report.NewCache(cfg.Report), cfg.LogsDir)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting dashboard server: %w", err)
	}
	defer srv.Stop()

	fmt.Printf("Dashboard listening on http://%s\n", srv.Addr())
	fmt.Printf("- Report:   %s\n", cfg.Report)
	if cfg.LogsDir != "" {
		fmt.Printf("- Raw logs: %s\n", cfg.LogsDir)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Println("\nShutting down.")
	return nil
}
