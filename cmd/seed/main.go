// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/carterperez-dev/accounts-api/internal/config"
	"github.com/carterperez-dev/accounts-api/internal/core"
	"github.com/carterperez-dev/accounts-api/internal/user"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// Development fixtures; passwords are throwaway by design.
var seedUsers = []seedUser{
	{Name: "John Doe", Email: "johndoe@example.com", Password: "password1", IsAdmin: false},
	{Name: "Bob Marley", Email: "bobmarley@example.com", Password: "password2", IsAdmin: true},
	{Name: "Tom Hardy", Email: "tomhardy@example.com", Password: "password3", IsAdmin: true},
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(*configPath, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seeding completed")
}

func run(configPath string, logger *slog.Logger) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // best-effort close

	repo := user.NewRepository(db.DB, cfg.Pagination)
	svc := user.NewService(repo, cfg.Security)

	for _, su := range seedUsers {
		exists, err := svc.EmailExists(ctx, su.Email)
		if err != nil {
			return err
		}

		if exists {
			logger.Info("user already seeded", "email", su.Email)
			continue
		}

		created, err := svc.CreateAccount(ctx, user.CreateAccountParams{
			Name:           su.Name,
			Email:          su.Email,
			Password:       su.Password,
			IsAdmin:        su.IsAdmin,
			EmailConfirmed: true,
		})
		if err != nil {
			return err
		}

		logger.Info("user seeded",
			"id", created.ID,
			"email", su.Email,
			"is_admin", su.IsAdmin,
		)
	}

	return nil
}
