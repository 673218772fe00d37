package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aven-ai/support-agent/internal/models"
	"github.com/aven-ai/support-agent/internal/setup"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	question := flag.String("question", "", "The question to ask about Aven's products")
	stdin := flag.Bool("stdin", false, "Read the question from stdin")
	showContext := flag.Bool("show-context", false, "Print the retrieved context as well")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var finalQuestion string

	if *stdin {
		bytes, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal("Failed to read from stdin:", err)
		}
		finalQuestion = string(bytes)
	} else if *question != "" {
		finalQuestion = *question
	} else {
		log.Fatal("Please provide a question using -question or -stdin")
	}

	ctx := context.Background()

	cfg := setup.LoadConfig()
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatalf("Failed to initialize query pipeline: %v", err)
	}

	response, err := deps.Orchestrator.Query(ctx, models.QueryRequest{Question: finalQuestion})
	if err != nil {
		log.Fatalf("Failed to process question: %v", err)
	}

	fmt.Println(response.Answer)

	if response.GuardrailTriggered != "" {
		fmt.Printf("\n[guardrail: %s]\n", response.GuardrailTriggered)
	}

	if len(response.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, source := range response.Sources {
			fmt.Printf("%d. %s (%s)\n", i+1, source.Title, source.SourceReference)
		}
	}

	if *showContext {
		fmt.Println("\nContext:")
		fmt.Println(response.Context)
	}
}
