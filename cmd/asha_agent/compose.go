package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/askasha/asha-agent/internal/agent"
	"github.com/askasha/asha-agent/internal/config"
	"github.com/askasha/asha-agent/internal/jobsearch"
	"github.com/askasha/asha-agent/internal/llm"
	"github.com/askasha/asha-agent/internal/respond"
	"github.com/askasha/asha-agent/internal/safety"
)

// components holds everything composed from configuration. Close releases
// the LLM client.
type components struct {
	orchestrator *agent.Orchestrator
	client       llm.Client
	tokens       jobsearch.SessionTokenProvider
}

func (c *components) Close() {
	if c.client != nil {
		_ = c.client.Close()
	}
}

// compose wires the full pipeline from configuration: LLM client, safety
// classifiers, platform clients, token provider (redis-cached when
// configured), templates, and the orchestrator.
func compose(ctx context.Context, cfg *config.Config) (*components, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var gibberish safety.GibberishClassifier
	if cfg.GibberishEndpoint != "" {
		gibberish = safety.NewHTTPGibberishClassifier(cfg.GibberishEndpoint)
	}
	var profanity safety.ProfanityClassifier
	if cfg.ProfanityAPIKey != "" {
		profanity = safety.NewNinjaProfanityClient(cfg.ProfanityAPIKey)
	}
	filter := safety.NewFilter(gibberish, profanity)

	var tokens jobsearch.SessionTokenProvider = jobsearch.NewHerkeyTokenProvider()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		tokens = jobsearch.NewCachedTokenProvider(tokens, rdb)
	}

	registry := jobsearch.NewRegistry(
		jobsearch.NewHerkeyClient(tokens),
		jobsearch.NewLinkedInClient(),
		jobsearch.NewGlassdoorClient(),
	)
	aggregator := jobsearch.NewAggregator(registry)

	community := jobsearch.NewCommunityClient(tokens)
	capabilities := jobsearch.NewCapabilitySet(
		jobsearch.JobSearchCapability(aggregator),
		jobsearch.SessionSearchCapability(community),
		jobsearch.GroupSearchCapability(community),
	)

	templates := respond.NewStaticTemplates()
	formatter := respond.NewFormatter(templates, tokens)

	return &components{
		orchestrator: agent.New(client, filter, aggregator, capabilities, templates, formatter),
		client:       client,
		tokens:       tokens,
	}, nil
}
