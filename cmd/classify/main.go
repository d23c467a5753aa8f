package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/neurograph/internal/classify"
	"github.com/FlavioCFOliveira/neurograph/internal/config"
	"github.com/FlavioCFOliveira/neurograph/internal/glyph"
	"github.com/FlavioCFOliveira/neurograph/internal/net"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	gridFile := flag.String("grid", "", "text grid with the drawn letter")
	threshold := flag.Float64("threshold", -1, "lowest output accepted as a letter (overrides config)")
	flag.Parse()

	if *gridFile == "" {
		log.Fatal("Missing -grid")
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *threshold >= 0 {
		cfg.Threshold = *threshold
	}

	network, err := net.LoadModel(cfg.Model.Dir, cfg.Model.Name)
	if err != nil {
		log.Fatalf("Error loading model: %v", err)
	}
	grid, err := glyph.ParseFile(*gridFile)
	if err != nil {
		log.Fatalf("Error reading grid: %v", err)
	}
	fmt.Print(grid.String())

	letter, err := network.Predict(grid.Input(), classify.Letters(cfg.Threshold))
	if errors.Is(err, classify.ErrNoLetter) {
		fmt.Println("No letter identified")
		return
	}
	if err != nil {
		log.Fatalf("Error classifying grid: %v", err)
	}
	fmt.Printf("Letter: %s\n", letter)
}
