package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/askasha/asha-agent/internal/config"
	"github.com/askasha/asha-agent/internal/interview"
	"github.com/askasha/asha-agent/internal/server"
	"github.com/askasha/asha-agent/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the chat and mock-interview endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
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

	deps := server.Deps{
		Orchestrator: parts.orchestrator,
		Conductor:    interview.NewConductor(parts.client, interview.NewStore()),
	}

	if cfg.DatabaseURL != "" {
		db, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
		deps.DB = db
		deps.Conversations = store.NewConversationStore(db)
		deps.Profiles = store.NewResumeProfileStore(db)
	} else {
		log.Println("DATABASE_URL not set; conversation persistence disabled")
	}

	if jwtCfg, err := config.NewJWTConfig(); err == nil {
		deps.JWT = server.NewJWTService(jwtCfg)
	} else {
		log.Printf("JWT auth disabled: %v", err)
	}

	return server.New(server.Config{Port: cfg.Port}, deps).Start()
}
