package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/angelmondragon/stationdesk-backend/internal/auth"
	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
	"github.com/angelmondragon/stationdesk-backend/pkg/security"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seedadmin"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	email := flag.String("email", cfg.Owner.Email, "admin email (defaults to the configured owner)")
	password := flag.String("password", "", "admin password; a random one is generated when empty")
	name := flag.String("name", cfg.Owner.Name, "display name")
	flag.Parse()

	logg = logger.ForApp("seedadmin", cfg.App)
	ctx = logg.WithFields(ctx, map[string]any{
		"env":   cfg.App.Env,
		"email": *email,
	})

	if *email == "" {
		fmt.Fprintln(os.Stderr, "missing -email and STATIONDESK_OWNER_EMAIL is unset")
		os.Exit(1)
	}
	if !cfg.DB.Configured() {
		fmt.Fprintln(os.Stderr, "database not configured")
		os.Exit(1)
	}

	generated := false
	if *password == "" {
		*password, err = security.GenerateTempPassword(20)
		requireResource(ctx, logg, "password", err)
		generated = true
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	provisioner, err := auth.NewOwnerProvisioner(auth.OwnerProvisionerParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	requireResource(ctx, logg, "provisioner", err)

	result, err := provisioner.Provision(ctx, auth.ProvisionOwnerRequest{
		Email:    *email,
		Password: *password,
		Name:     *name,
	})
	if err != nil {
		logg.Error(ctx, "failed to provision admin", err)
		os.Exit(1)
	}

	ctx = logg.WithField(ctx, "user_id", result.User.ID.String())
	if result.Created {
		logg.Info(ctx, "admin created")
	} else {
		logg.Info(ctx, "existing user promoted to admin")
	}
	if generated {
		fmt.Printf("generated password for %s: %s\n", result.User.Email, *password)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err != nil {
		logg.Error(ctx, fmt.Sprintf("failed to initialize %s", name), err)
		os.Exit(1)
	}
}
