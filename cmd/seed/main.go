package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/seeder"
	"jobboard/internal/infrastructure/persistence/postgres"
	"jobboard/internal/pkg/jwt"
	"jobboard/migrations"
)

func main() {
	password := flag.String("password", "password123", "password for every demo account")
	tokens := flag.Bool("tokens", true, "print an access token per demo account")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	r := migration.Runner{Dir: cfg.App.MigrationsDir, FS: migrations.FS, Logger: logger}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults(*password)}).Run(ctx, db); err != nil {
		logger.Fatalf("seed failed: %v", err)
	}
	logger.Printf("seed complete accounts=%d", len(seeder.DemoAccounts))

	if !*tokens {
		return
	}

	pgdb, err := postgres.NewPostgresDB(db)
	if err != nil {
		logger.Fatalf("failed to open user repository: %v", err)
	}
	users, err := postgres.NewUserRepository(pgdb)
	if err != nil {
		logger.Fatalf("failed to open user repository: %v", err)
	}
	defer func() {
		_ = users.Close()
	}()

	jwtSvc := jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn)
	for _, a := range seeder.DemoAccounts {
		u, err := users.GetByEmail(ctx, a.Email)
		if err != nil {
			logger.Printf("lookup %s failed: %v", a.Email, err)
			continue
		}
		tok, err := jwtSvc.GenerateAccessToken(u.ID, u.Email, string(u.Role))
		if err != nil {
			logger.Printf("token for %s failed: %v", a.Email, err)
			continue
		}
		logger.Printf("role=%s email=%s id=%s token=%s", u.Role, u.Email, u.ID, tok)
	}
}
