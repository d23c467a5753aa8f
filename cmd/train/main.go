package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/FlavioCFOliveira/neurograph/internal/config"
	"github.com/FlavioCFOliveira/neurograph/internal/dataset"
	"github.com/FlavioCFOliveira/neurograph/internal/net"
	"github.com/FlavioCFOliveira/neurograph/internal/report"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	epochs := flag.Int("epochs", -1, "training epochs (overrides config)")
	lr := flag.Float64("lr", 0, "learning rate (overrides config)")
	seed := flag.Uint64("seed", 0, "weight initialisation seed for a new model (overrides config)")
	chart := flag.String("plot", "", "write the loss chart to this file")
	csvLog := flag.String("csv", "", "append per-epoch losses to this CSV file")
	holdout := flag.Float64("holdout", 0, "fraction of samples kept out of training for evaluation")
	header := flag.Bool("header", false, "CSV datasets start with a header row")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *epochs >= 0 {
		cfg.Training.Epochs = *epochs
	}
	if *lr > 0 {
		cfg.Training.LearningRate = *lr
	}
	if *seed != 0 {
		cfg.Training.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	network := setupModel(cfg)
	network.SetLoss(cfg.LossMetric())
	network.Summary(os.Stdout)

	data, err := dataset.Load(cfg.Dataset, network.OutputSize(), *header)
	if err != nil {
		log.Fatalf("Error loading dataset: %v", err)
	}
	if err := data.Validate(network.InputSize(), network.OutputSize()); err != nil {
		log.Fatalf("Dataset does not fit the model: %v", err)
	}
	fmt.Printf("Loaded %d samples from %s\n", data.Len(), cfg.Dataset)
	data, test := data.Split(1 - *holdout)

	callbacks := []net.Callback{net.Logger{Interval: cfg.Training.LogInterval}}
	var lossChart *report.Chart
	if *chart != "" {
		lossChart = &report.Chart{Title: "Letter model training loss", Filename: *chart}
		callbacks = append(callbacks, lossChart)
	}
	var csvLogger *net.CSVLogger
	if *csvLog != "" {
		csvLogger = net.NewCSVLogger(*csvLog, true)
		callbacks = append(callbacks, csvLogger)
	}

	if err := network.Train(data.Samples, data.Labels, cfg.Training.Epochs, cfg.Training.LearningRate, callbacks...); err != nil {
		log.Fatalf("Error training model: %v", err)
	}
	if lossChart != nil && lossChart.Err != nil {
		log.Printf("Error writing loss chart: %v", lossChart.Err)
	}
	if csvLogger != nil && csvLogger.Err != nil {
		log.Printf("Error writing CSV log: %v", csvLogger.Err)
	}

	loss, err := network.Evaluate(data.Samples, data.Labels)
	if err != nil {
		log.Fatalf("Error evaluating model: %v", err)
	}
	fmt.Printf("Final loss: %.6f\n", loss)
	if test.Len() > 0 {
		loss, err := network.Evaluate(test.Samples, test.Labels)
		if err != nil {
			log.Fatalf("Error evaluating model: %v", err)
		}
		fmt.Printf("Holdout loss (%d samples): %.6f\n", test.Len(), loss)
	}

	if err := net.SaveModel(network, cfg.Model.Dir, cfg.Model.Name+net.ModelExt); err != nil {
		log.Fatalf("Error saving model: %v", err)
	}
	fmt.Printf("Model saved to %s\n", cfg.ModelFile())
}

// setupModel resumes the saved model when one exists and builds a new one
// from the configuration otherwise.
func setupModel(cfg config.Config) *net.Network {
	if _, err := os.Stat(cfg.ModelFile()); err == nil {
		network, err := net.Load(cfg.ModelFile())
		if err != nil {
			log.Fatalf("Error loading model: %v", err)
		}
		fmt.Printf("Resuming model %s\n", cfg.ModelFile())
		return network
	}

	kind, err := cfg.Kind()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	var opts []net.Option
	if cfg.Training.Seed != 0 {
		opts = append(opts, net.WithSeed(cfg.Training.Seed))
	}
	fmt.Printf("Creating model %d-%d-%d %s\n", cfg.Network.Input, cfg.Network.Hidden, cfg.Network.Output, kind)
	return net.New(cfg.Network.Input, cfg.Network.Hidden, cfg.Network.Output, kind, opts...)
}
