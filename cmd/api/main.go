package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/appbuilder-io/appbuilder-backend/config"
	"github.com/appbuilder-io/appbuilder-backend/internal/auth"
	"github.com/appbuilder-io/appbuilder-backend/internal/billing"
	"github.com/appbuilder-io/appbuilder-backend/internal/bootstrap"
	"github.com/appbuilder-io/appbuilder-backend/internal/codegen"
	"github.com/appbuilder-io/appbuilder-backend/pkg/logging"
)

const serviceName = "appbuilder-backend"

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	app, authClient, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		slog.Error("init firebase", "err", err)
		os.Exit(1)
	}

	db, err := bootstrap.OpenFirestore(ctx, app)
	if err != nil {
		slog.Error("open firestore", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.App.FrontendOrigins,
		Verifier:       authClient,
		Generator:      codegen.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model),
		Payments:       billing.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey),
		DB:             db,
	})

	slog.Info("listening", "port", cfg.Server.Port, "env", cfg.App.Environment)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
