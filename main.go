package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/claimpilot/server/internal/agent/graph"
	"github.com/claimpilot/server/internal/agent/graph/gates"
	"github.com/claimpilot/server/internal/agent/graph/prompts"
	"github.com/claimpilot/server/internal/agent/graph/reasoner"
	"github.com/claimpilot/server/internal/agent/graph/tools"
	"github.com/claimpilot/server/internal/agent/model"
	"github.com/claimpilot/server/internal/agent/repo"
	"github.com/claimpilot/server/internal/core"
	logx "github.com/claimpilot/server/pkg/logger"
	pkgredis "github.com/claimpilot/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the claims assistant,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Reasoner model.ReasonerModelConfig
	Run      model.RunConfig
	Approval model.ApprovalRulesConfig
	Prompt   model.PromptConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	rdb, err := cfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(cfg.Run.TTL)
	if err != nil {
		log.Fatalf("Invalid THREAD_TTL '%s': %v", cfg.Run.TTL, err)
	}

	system, err := prompts.RenderSystem(ctx, cfg.Prompt)
	if err != nil {
		log.Fatalf("Failed to render system prompt: %v", err)
	}

	claimsDB := tools.NewClaimsDB()
	registry, err := tools.NewRegistry(ctx, tools.DefaultTools(claimsDB)...)
	if err != nil {
		log.Fatalf("Failed to build tool registry: %v", err)
	}

	gem, err := reasoner.NewGeminiReasoner(ctx, reasoner.GeminiConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Reasoner,
	})
	if err != nil {
		log.Fatalf("Failed to create reasoner: %v", err)
	}

	engine, err := graph.NewEngine(graph.Config{
		Reasoner:     gem,
		Registry:     registry,
		ClaimGate:    gates.NewClaimDetailGate(),
		ApprovalGate: gates.NewApprovalGate(cfg.Approval),
		Store:        repo.NewRedisCheckpointStore(rdb, ttl),
		SystemPrompt: system,
		Run:          cfg.Run,
	})
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	threadID := "demo-thread-001"
	messages := []struct {
		description string
		text        string
	}{
		{
			description: "File a new claim",
			text:        "Hi, I was in a car accident yesterday. I'm user usr-001 and I'd like to claim 4200 for the bumper damage.",
		},
		{
			description: "Ask for a payout",
			text:        "Thanks. Can you approve the payment for that claim?",
		},
		{
			description: "Wrap up",
			text:        "Great, please email me a confirmation.",
		},
	}

	for i, msg := range messages {
		fmt.Printf("\nTurn %d: %s\n", i+1, msg.description)
		fmt.Printf("User: %s\n", msg.text)

		reply, err := engine.Run(ctx, threadID, msg.text)
		if err != nil {
			log.Fatalf("Run failed on turn %d: %v", i+1, err)
		}

		fmt.Printf("Assistant: %s\n", reply)
	}

	fmt.Println("\nDemo conversation completed.")
}
