// Command migrate applies the rate database schema.
// Usage: go run ./cmd/migrate up | down | steps N | version | force V
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/urfave/cli/v2"

	"tradeflow/internal/config"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "Apply tariff database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Value: "db/migrations",
				Usage: "Migrations directory",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: withMigrator(func(_ *cli.Context, m *migrate.Migrate) error {
					if err := ignoreNoChange(m.Up()); err != nil {
						return fmt.Errorf("migration up failed: %w", err)
					}
					log.Println("migrations applied successfully")
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "Revert all migrations",
				Action: withMigrator(func(_ *cli.Context, m *migrate.Migrate) error {
					if err := ignoreNoChange(m.Down()); err != nil {
						return fmt.Errorf("migration down failed: %w", err)
					}
					log.Println("migrations reverted successfully")
					return nil
				}),
			},
			{
				Name:      "steps",
				Usage:     "Apply N migrations (negative reverts)",
				ArgsUsage: "N",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrate) error {
					n, err := intArg(c)
					if err != nil {
						return err
					}
					if err := ignoreNoChange(m.Steps(n)); err != nil {
						return fmt.Errorf("migration steps failed: %w", err)
					}
					log.Printf("applied %d migration steps", n)
					return nil
				}),
			},
			{
				Name:  "version",
				Usage: "Print the current schema version",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrate) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						fmt.Fprintln(c.App.Writer, "version: none")
						return nil
					}
					if err != nil {
						return fmt.Errorf("failed to get version: %w", err)
					}
					fmt.Fprintf(c.App.Writer, "version: %d, dirty: %v\n", version, dirty)
					return nil
				}),
			},
			{
				Name:      "force",
				Usage:     "Mark version V as applied and clear the dirty flag",
				ArgsUsage: "V",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrate) error {
					v, err := intArg(c)
					if err != nil {
						return err
					}
					if err := m.Force(v); err != nil {
						return fmt.Errorf("force version failed: %w", err)
					}
					log.Printf("forced version %d", v)
					return nil
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withMigrator opens a migrator against the configured database for one command.
func withMigrator(fn func(*cli.Context, *migrate.Migrate) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		m, err := migrate.New("file://"+c.String("path"), cfg.DB.DSN())
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
		defer m.Close()
		return fn(c, m)
	}
}

func intArg(c *cli.Context) (int, error) {
	if c.NArg() < 1 {
		return 0, fmt.Errorf("%s requires a number argument", c.Command.Name)
	}
	n, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, fmt.Errorf("invalid %s argument: %w", c.Command.Name, err)
	}
	return n, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
