package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/FlavioCFOliveira/neurograph/internal/activations"
	"github.com/FlavioCFOliveira/neurograph/internal/net"
	"github.com/FlavioCFOliveira/neurograph/internal/report"
)

const modelName = "playground_model"

func main() {
	hidden := flag.Int("hidden", 50, "hidden layer size")
	epochs := flag.Int("epochs", 10000, "training epochs")
	lr := flag.Float64("lr", 0.1, "learning rate")
	seed := flag.Uint64("seed", 0, "weight initialisation seed (0 for random)")
	models := flag.String("models", net.DefaultModelsDir, "models directory")
	interval := flag.Int("log", 1000, "print the loss every N epochs")
	chart := flag.String("plot", "", "write the loss chart to this file")
	flag.Parse()

	fmt.Println("=== XOR Training Example ===")

	// XOR is not linearly separable, so it needs the hidden layer.
	var opts []net.Option
	if *seed != 0 {
		opts = append(opts, net.WithSeed(*seed))
	}
	network := net.New(2, *hidden, 1, activations.Sigmoid, opts...)
	network.Summary(os.Stdout)

	trainX := [][]float64{
		{0, 0},
		{0, 1},
		{1, 0},
		{1, 1},
	}
	trainY := [][]float64{
		{0},
		{1},
		{1},
		{0},
	}

	callbacks := []net.Callback{net.Logger{Interval: *interval}}
	var lossChart *report.Chart
	if *chart != "" {
		lossChart = &report.Chart{Title: "XOR training loss", Filename: *chart}
		callbacks = append(callbacks, lossChart)
	}
	if err := network.Train(trainX, trainY, *epochs, *lr, callbacks...); err != nil {
		log.Fatalf("Error training network: %v", err)
	}
	if lossChart != nil && lossChart.Err != nil {
		log.Fatalf("Error writing loss chart: %v", lossChart.Err)
	}

	fmt.Println("\nTesting trained network:")
	for i := range trainX {
		pred, err := network.Feedforward(trainX[i])
		if err != nil {
			log.Fatalf("Error running network: %v", err)
		}
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n", trainX[i], pred[0], trainY[i][0])
	}

	// Saved under the bare name and reloaded with the extension appended.
	fmt.Println("\nSaving network to disk...")
	if err := net.SaveModel(network, *models, modelName+net.ModelExt); err != nil {
		log.Fatalf("Error saving network: %v", err)
	}
	fmt.Printf("Network saved to %s\n", filepath.Join(*models, modelName+net.ModelExt))

	loaded, err := net.LoadModel(*models, modelName)
	if err != nil {
		log.Fatalf("Error loading network: %v", err)
	}

	fmt.Println("\nVerifying loaded network:")
	allMatch := true
	for i := range trainX {
		originalPred, err := network.Feedforward(trainX[i])
		if err != nil {
			log.Fatalf("Error running network: %v", err)
		}
		loadedPred, err := loaded.Feedforward(trainX[i])
		if err != nil {
			log.Fatalf("Error running loaded network: %v", err)
		}
		match := "OK"
		if math.Abs(originalPred[0]-loadedPred[0]) > 1e-9 {
			match = "MISMATCH"
			allMatch = false
		}
		fmt.Printf("Input: %v, Original: %.4f, Loaded: %.4f [%s]\n",
			trainX[i], originalPred[0], loadedPred[0], match)
	}

	if allMatch {
		fmt.Println("\nSUCCESS: All predictions match between original and loaded network!")
	} else {
		fmt.Println("\nFAILURE: Predictions differ between original and loaded network!")
	}
}
