package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"github.com/FlavioCFOliveira/neurograph/internal/classify"
	"github.com/FlavioCFOliveira/neurograph/internal/config"
	"github.com/FlavioCFOliveira/neurograph/internal/dataset"
	"github.com/FlavioCFOliveira/neurograph/internal/glyph"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  dataset show [-config file.yaml] [-index N]")
	fmt.Fprintln(os.Stderr, "  dataset add [-config file.yaml] -letter A -grid file.txt")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "show":
		show(os.Args[2:])
	case "add":
		add(os.Args[2:])
	default:
		usage()
	}
}

func loadConfig(filename string) config.Config {
	cfg, err := config.Load(filename)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return cfg
}

// show prints one sample, or all of them when index is negative.
func show(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	configFile := fs.String("config", "", "YAML configuration file")
	index := fs.Int("index", -1, "sample to show (all when negative)")
	fs.Parse(args)

	cfg := loadConfig(*configFile)
	data, err := dataset.LoadJSON(cfg.Dataset)
	if err != nil {
		log.Fatalf("Error loading dataset: %v", err)
	}
	if *index >= data.Len() {
		log.Fatalf("Sample %d out of range, dataset has %d samples", *index, data.Len())
	}

	for i := 0; i < data.Len(); i++ {
		if *index >= 0 && i != *index {
			continue
		}
		grid, err := glyph.FromInput(data.Samples[i])
		if err != nil {
			log.Fatalf("Sample %d: %v", i, err)
		}
		letter, err := classify.Label(data.Labels[i])
		if err != nil {
			log.Fatalf("Sample %d: %v", i, err)
		}
		fmt.Printf("Sample %d/%d  Letter: %s\n%s\n", i+1, data.Len(), letter, grid.String())
	}
}

// add appends a drawn letter to the training document.
func add(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	configFile := fs.String("config", "", "YAML configuration file")
	letter := fs.String("letter", "", "letter drawn in the grid")
	gridFile := fs.String("grid", "", "text grid with the drawn letter")
	fs.Parse(args)

	if utf8.RuneCountInString(*letter) != 1 || *gridFile == "" {
		usage()
	}
	target, err := glyph.OneHot([]rune(*letter)[0])
	if err != nil {
		log.Fatalf("Invalid letter: %v", err)
	}
	grid, err := glyph.ParseFile(*gridFile)
	if err != nil {
		log.Fatalf("Error reading grid: %v", err)
	}

	cfg := loadConfig(*configFile)
	if err := dataset.AppendJSON(cfg.Dataset, grid.Input(), target); err != nil {
		log.Fatalf("Error saving sample: %v", err)
	}
	fmt.Printf("Added letter %s to %s\n", *letter, cfg.Dataset)
}
