package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/services/auth"
	"github.com/mkaran/planetary-api/internal/storage"
	"github.com/mkaran/planetary-api/internal/storage/postgres"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalogue with initial planets and a demo user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.requireDatabaseURL(); err != nil {
				return err
			}

			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

			store, err := postgres.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := seed(cmd.Context(), store); err != nil {
				return err
			}
			logger.Info("database seeded")
			return nil
		},
	}
}

// seed loads the initial catalogue: the inner planets orbiting Sol, and a
// demo user homed on Earth.
func seed(ctx context.Context, store storage.Store) error {
	sol := &model.Planet{
		Name: "Sol", Class: "G", Mass: 1.989e30, Radius: 432690, Distance: 2.46e17,
	}
	mercury := &model.Planet{
		Name: "Mercury", Class: "D", Mass: 3.258e23, Radius: 1516, Distance: 35.98e6,
	}
	venus := &model.Planet{
		Name: "Venus", Class: "K", Mass: 4.867e24, Radius: 3760, Distance: 67.24e6,
	}
	earth := &model.Planet{
		Name: "Earth", Class: "M", Mass: 5.972e24, Radius: 3969, Distance: 92.96e6,
	}

	for _, p := range []*model.Planet{sol, mercury, venus, earth} {
		if err := store.CreatePlanet(ctx, p); err != nil {
			return fmt.Errorf("seeding planet %s: %w", p.Name, err)
		}
	}

	for _, p := range []*model.Planet{mercury, venus, earth} {
		if err := store.AddHomestar(ctx, p.ID, sol.ID); err != nil {
			return fmt.Errorf("linking %s to Sol: %w", p.Name, err)
		}
	}

	hash, err := auth.HashPassword("paSSworD")
	if err != nil {
		return err
	}
	tom := &model.User{
		FirstName:    "Tom",
		LastName:     "John",
		Email:        "hello@hello.com",
		PasswordHash: hash,
		HomePlanetID: &earth.ID,
	}
	if err := store.CreateUser(ctx, tom); err != nil {
		return fmt.Errorf("seeding user: %w", err)
	}
	return nil
}
