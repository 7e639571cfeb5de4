package main

import (
	"fmt"
	"log"
	"time"

	"claimlens/internal/config"
	"claimlens/internal/email/noop"
	"claimlens/internal/email/ses"
	"claimlens/internal/extract"
	"claimlens/internal/handler"
	"claimlens/internal/llm/openai"
	"claimlens/internal/port"
	"claimlens/internal/repository/postgres"
	"claimlens/internal/router"
	"claimlens/internal/service"
	s3storage "claimlens/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	policyRepo := postgres.NewPolicyRepo(db)
	convRepo := postgres.NewConversationRepo(db)
	msgRepo := postgres.NewMessageRepo(db)

	// External adapters
	llmClient := openai.NewClient(&cfg.LLM)

	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Println("server: no S3 bucket configured, bill archival disabled")
	}

	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Extraction pipeline
	pipeline := extract.New(llmClient, extract.Config{
		MinPDFTextChars: cfg.Extract.MinPDFTextChars,
		MaxPages:        cfg.Extract.MaxPages,
		MaxRows:         cfg.Extract.MaxRows,
		Concurrency:     cfg.Extract.Concurrency,
	})

	// Services
	policySvc := service.NewPolicyService(policyRepo)
	authSvc := service.NewAuthService(&cfg.Auth)
	convSvc := service.NewConversationService(
		pipeline, policySvc, convRepo, msgRepo, storage, llmClient, emailSender,
		service.ConversationServiceConfig{
			Bucket:        cfg.S3.Bucket,
			HistoryWindow: cfg.Chat.HistoryWindow,
			RetryBackoff:  time.Duration(cfg.LLM.RetryBackoffSecs) * time.Second,
		},
	)

	// Handlers
	healthH := handler.NewHealthHandler(db)
	policyH := handler.NewPolicyHandler(policySvc)
	convH := handler.NewConversationHandler(convSvc, cfg.S3.MaxFileSizeMB)
	utilsH := handler.NewUtilsHandler()
	authH := handler.NewAuthHandler(authSvc)

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, healthH, policyH, convH, utilsH, authH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
