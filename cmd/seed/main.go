package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/config"
	"github.com/cmlabs-hris/hrms-engine/internal/fixtures"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-engine/internal/repository"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/keyvalue"
)

// seed loads the default workforce into the configured store and prints an
// access token for each seeded employee.
func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	store, closeStore, err := repository.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	now := time.Now()
	created, err := fixtures.SeedEmployees(ctx, keyvalue.NewEmployeeRepository(store), now)
	if err != nil {
		return err
	}
	slog.Info("seeded default employees", "created", created)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.AccessTokenTTL())
	for _, emp := range fixtures.GetDefaultEmployees(now) {
		token, expiresAt, err := JWTService.GenerateAccessToken(fixtures.ActorFor(emp))
		if err != nil {
			return fmt.Errorf("failed to issue token for %s: %w", emp.ID, err)
		}
		fmt.Printf("%-12s %-8s %s (expires %s)\n", emp.ID, emp.Role, token, time.Unix(expiresAt, 0).Format(time.RFC3339))
	}
	return nil
}
