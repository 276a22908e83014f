package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"survivalweb/logging"
	"survivalweb/ml"
)

func main() {
	modelPath := flag.String("model", "model.json", "model artifact path")
	describe := flag.Bool("describe", false, "print the model schema and exit")
	verbose := flag.Bool("v", false, "log the frame and class probabilities")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: predict [flags] Name=value ...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := logging.MustNew(logging.Options{Level: level, Debug: true})
	defer logger.Sync()

	loader, err := ml.NewLoader(1)
	if err != nil {
		log.Fatalf("failed to create loader: %v", err)
	}
	predictor, err := ml.NewPredictor(*modelPath, loader, logger)
	if err != nil {
		log.Fatalf("failed to load model: %v", err)
	}

	if *describe {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(predictor.Describe()); err != nil {
			log.Fatalf("failed to print schema: %v", err)
		}
		return
	}

	features, err := parseFeatures(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	result, err := predictor.Predict(context.Background(), features)
	if err != nil {
		log.Fatalf("prediction failed: %v", err)
	}
	fmt.Println(result)
}

func parseFeatures(args []string) (map[string]string, error) {
	features := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected Name=value, got %q", arg)
		}
		if _, seen := features[name]; !seen {
			features[name] = value
		}
	}
	return features, nil
}
