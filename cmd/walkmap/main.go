package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/planbiir/walkmap/internal/pipeline"
	"github.com/planbiir/walkmap/internal/trips"
)

func main() {
	var (
		outputFile = flag.String("o", "", "Output GeoJSON file (default: stdout)")
		tripsFile  = flag.String("trips", "", "Trip metadata JSON to cross-check against")
		doClean    = flag.Bool("clean", false, "Drop GPS teleport spikes before building")
		pretty     = flag.Bool("pretty", false, "Indent the GeoJSON output")
		version    = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Printf("walkmap - Build a walking map GeoJSON from a directory of GPX tracks\n\n")
		fmt.Printf("usage: walkmap [options] /path/to/gpx-dir\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  walkmap tracks/ > walks.geojson\n")
		fmt.Printf("  walkmap -clean -o walks.geojson tracks/\n")
		fmt.Printf("  walkmap -trips trips.json tracks/\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Println("walkmap v1.0.0 - GPX walking map builder")
		fmt.Println("https://github.com/planbiir/walkmap")
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	sourceDir := flag.Arg(0)

	fmt.Fprintf(os.Stderr, "📖 Reading GPX files from: %s\n", sourceDir)
	fc, stats, err := pipeline.Build(sourceDir, pipeline.Options{Clean: *doClean})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building collection: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "📊 Read %d tracks from %d files\n", stats.Tracks, stats.Files)
	if stats.DroppedShapes > 0 {
		fmt.Fprintf(os.Stderr, "⚠️  Dropped %d non-track shapes\n", stats.DroppedShapes)
	}
	if *doClean {
		fmt.Fprintf(os.Stderr, "🧹 Removed %d teleport points\n", stats.RemovedPoints)
	}

	if *tripsFile != "" {
		idx, err := trips.Load(*tripsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading trip metadata: %v\n", err)
			os.Exit(1)
		}
		missingMeta, missingTracks := idx.Coverage(fc)
		for _, date := range missingMeta {
			fmt.Fprintf(os.Stderr, "⚠️  No trip metadata for %s\n", date)
		}
		for _, date := range missingTracks {
			fmt.Fprintf(os.Stderr, "⚠️  No track for trip on %s\n", date)
		}
	}

	var data []byte
	if *pretty {
		data, err = json.MarshalIndent(fc, "", "  ")
	} else {
		data, err = json.Marshal(fc)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling GeoJSON: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *outputFile != "" {
		fmt.Fprintf(os.Stderr, "💾 Writing collection: %s\n", *outputFile)
		if err := os.WriteFile(*outputFile, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
	} else if _, err := os.Stdout.Write(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ %s walking days, %s meters of track\n",
		humanize.Comma(int64(stats.Days)), humanize.Comma(stats.TotalMeters))
}
