package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askasha/asha-agent/internal/agent"
	"github.com/askasha/asha-agent/internal/config"
	"github.com/askasha/asha-agent/internal/observability"
	"github.com/askasha/asha-agent/internal/types"
)

var (
	chatVerbose bool
	chatResume  string
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send one message to the agent and print the response",
	Long:  `Run the full pipeline for a single message and print the response envelope as JSON. Useful for smoke testing without the HTTP server.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().BoolVarP(&chatVerbose, "verbose", "v", false, "Print intermediate pipeline output")
	chatCmd.Flags().StringVar(&chatResume, "resume", "", "Path to a resume profile JSON file")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	parts, err := compose(ctx, cfg)
	if err != nil {
		return err
	}
	defer parts.Close()

	req := agent.Request{Query: strings.Join(args, " ")}
	if chatResume != "" {
		profile, err := loadResumeProfile(chatResume)
		if err != nil {
			return err
		}
		req.Resume = profile
		req.UseResume = true
	}

	env := parts.orchestrator.Respond(ctx, req)

	if chatVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintEnvelope(env)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(env)
}

func loadResumeProfile(path string) (*types.ResumeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file %s: %w", path, err)
	}
	var profile types.ResumeProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	return &profile, nil
}
