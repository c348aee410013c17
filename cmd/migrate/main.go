package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
	"github.com/angelmondragon/stationdesk-backend/pkg/migrate"
	"github.com/joho/godotenv"
)

const usage = `usage: migrate -cmd <command> [flags]

commands:
  up        apply every pending migration
  down      roll back the latest migration
  status    list migrations and whether they are applied
  version   migrate up or down to -version
  create    write an empty migration named -name into -dir
  validate  check the migration files in -dir
`

func main() {
	cmd := flag.String("cmd", "up", "migration command")
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory for create and validate")
	name := flag.String("name", "", "migration name for create")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for version")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// create and validate work on files only.
	switch *cmd {
	case "create":
		if *name == "" {
			fail("missing -name for create")
		}
		path, err := migrate.CreateSQLMigration(*dir, *name)
		if err != nil {
			fail(err.Error())
		}
		fmt.Println(path)
		return
	case "validate":
		if err := migrate.Validate(os.DirFS(*dir)); err != nil {
			fail(err.Error())
		}
		fmt.Println("migrations valid")
		return
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fail(err.Error())
	}
	if !cfg.DB.Configured() {
		fail(fmt.Sprintf("%s is required for -cmd=%s", config.EnvDBDSN, *cmd))
	}

	logg := logger.ForApp("migrate", cfg.App)
	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env, "cmd": *cmd})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "database unavailable", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		logg.Error(ctx, "database handle unavailable", err)
		os.Exit(1)
	}
	runner, err := migrate.NewRunner(sqlDB, migrate.Source(), os.Stdout)
	if err != nil {
		logg.Error(ctx, "migration runner unavailable", err)
		os.Exit(1)
	}

	switch *cmd {
	case "up":
		var applied int
		applied, err = runner.Up(ctx)
		ctx = logg.WithField(ctx, "applied", applied)
	case "down":
		err = runner.Down(ctx)
	case "status":
		err = runner.Status(ctx)
	case "version":
		target, parseErr := strconv.ParseInt(*version, 10, 64)
		if parseErr != nil {
			fail(fmt.Sprintf("invalid -version %q: expected YYYYMMDDHHMMSS", *version))
		}
		err = runner.To(ctx, target)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migration finished")
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
