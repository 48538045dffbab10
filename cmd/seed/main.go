package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"slotboard/internal/domain/user"
	"slotboard/internal/infra"
	"slotboard/internal/infra/db"
	"slotboard/internal/infra/repository"
	"slotboard/internal/pkg/config"
	"slotboard/internal/pkg/password"

	"github.com/joho/godotenv"
)

// Seeds the initial admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
// Safe to run repeatedly: an existing account is left untouched.
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		slog.Error("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := seedAdmin(ctx, pool, adminEmail, adminPassword); err != nil {
		slog.Error("Failed to seed admin account", "error", err)
		os.Exit(1)
	}
}

func seedAdmin(ctx context.Context, dbtx db.DBTX, adminEmail, adminPassword string) error {
	email, err := user.NewEmail(adminEmail)
	if err != nil {
		return err
	}
	pass, err := user.NewPassword(adminPassword)
	if err != nil {
		return err
	}

	hash, err := password.HashPassword(pass.Value())
	if err != nil {
		return err
	}

	admin := user.NewUser(email, hash, user.RoleAdmin, "Admin", "")

	users := repository.NewUserRepository()
	if _, err := users.Create(ctx, dbtx, admin); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			slog.Info("Admin account already exists", "email", email.Value())
			return nil
		}
		return err
	}

	slog.Info("Admin account created", "email", email.Value())
	return nil
}
