package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hollowspire/dungeongen/config/yamlcfg"
	"github.com/hollowspire/dungeongen/export/jsonexport"
	"github.com/hollowspire/dungeongen/floor"
	"github.com/hollowspire/dungeongen/internal/obslog"
	"github.com/hollowspire/dungeongen/render/asciirender"
	"github.com/hollowspire/dungeongen/render/svgrender"
)

const version = "1.0.0"

var (
	configPath = flag.String("config", "", "Path to YAML configuration file (required)")
	outputDir  = flag.String("output", ".", "Output directory for generated files")
	format     = flag.String("format", "json", "Export format: json, svg, ascii, or all")
	seedFlag   = flag.Int64("seed", 0, "Override the seed from config (0 = use config seed)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("dungeongen version %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config flag is required")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "ascii": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, ascii, all\n", *format)
		os.Exit(1)
	}

	if *verbose {
		obslog.SetLevel(logrus.DebugLevel)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log := obslog.New("cli")

	log.Infof("loading configuration from %s", *configPath)
	cfg, err := yamlcfg.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *seedFlag != 0 {
		log.Infof("overriding seed from %d to %d", cfg.Seed, *seedFlag)
		cfg.Seed = *seedFlag
	}
	log.Debugf("using seed %d, room count %d", cfg.Seed, cfg.RoomCount)

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	floorCfg, err := cfg.ToFloorConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	start := time.Now()
	log.Infof("generating floor layout")
	fl, err := floor.Generate[string](floorCfg)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	elapsed := time.Since(start)
	log.Infof("generation completed in %v", elapsed)

	if *verbose {
		printStats(fl, elapsed)
	}

	runID := uuid.New().String()
	baseName := fmt.Sprintf("dungeon_%d_%s", fl.Seed, runID[:8])

	if *format == "json" || *format == "all" {
		if err := exportJSON(fl, baseName, log); err != nil {
			return err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(fl, baseName, log); err != nil {
			return err
		}
	}
	if *format == "ascii" || *format == "all" {
		if err := exportASCII(fl, baseName, log); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully generated floor (seed=%d, run=%s) in %v\n", fl.Seed, runID, elapsed)
	return nil
}

func exportJSON(fl *floor.FloorLayout[string], baseName string, log *obslog.Logger) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	log.Debugf("exporting JSON to %s", filename)
	if err := jsonexport.SaveToFile(fl, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	return nil
}

func exportSVG(fl *floor.FloorLayout[string], baseName string, log *obslog.Logger) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	log.Debugf("exporting SVG to %s", filename)
	opts := svgrender.DefaultOptions()
	opts.Title = fmt.Sprintf("Floor (seed=%d)", fl.Seed)
	data := svgrender.Render[string](fl, opts)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	return nil
}

func exportASCII(fl *floor.FloorLayout[string], baseName string, log *obslog.Logger) error {
	filename := filepath.Join(*outputDir, baseName+".txt")
	log.Debugf("exporting ASCII map to %s", filename)
	data := []byte(asciirender.Render[string](fl))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to export ASCII map: %w", err)
	}
	return nil
}

func printStats(fl *floor.FloorLayout[string], elapsed time.Duration) {
	fmt.Println("\nFloor Statistics:")
	fmt.Printf("  Rooms: %d\n", len(fl.Rooms))
	fmt.Printf("  Hallways: %d\n", len(fl.Hallways))
	fmt.Printf("  Secret passages: %d\n", len(fl.SecretPassages))
	fmt.Printf("  Critical path length: %d\n", len(fl.CriticalPath))
	if len(fl.Clusters) > 0 {
		fmt.Printf("  Clusters: %d\n", len(fl.Clusters))
	}
	if fl.ZoneOf != nil {
		fmt.Printf("  Zoned rooms: %d (transitions: %d)\n", len(fl.ZoneOf), len(fl.TransitionRooms))
	}
	fmt.Printf("  Generation time: %v\n", elapsed)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: dungeongen -config <config.yaml> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'dungeongen -help' for detailed help")
}

func printHelp() {
	fmt.Printf("dungeongen version %s\n\n", version)
	fmt.Println("A command-line tool for generating procedural dungeon floors.")
	fmt.Println("\nUsage:")
	fmt.Println("  dungeongen -config <config.yaml> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML configuration file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, svg, ascii, or all (default: json)")
	fmt.Println("  -seed int")
	fmt.Println("        Override the seed from config (0 = use config seed) (default: 0)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Generate a floor with default JSON export")
	fmt.Println("  dungeongen -config floor.yaml")
	fmt.Println("\n  # Generate with a custom seed and all export formats")
	fmt.Println("  dungeongen -config floor.yaml -seed 12345 -format all -output ./out")
	fmt.Println("\n  # Generate an SVG visualization with verbose output")
	fmt.Println("  dungeongen -config floor.yaml -format svg -verbose")
	fmt.Println("\nConfiguration File:")
	fmt.Println("  The YAML configuration file specifies floor parameters including:")
	fmt.Println("  - Seed (for deterministic generation)")
	fmt.Println("  - Room count and templates")
	fmt.Println("  - Branching factor and hallway mode")
	fmt.Println("  - Constraints, zones, difficulty curve, and clustering")
}
