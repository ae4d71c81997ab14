package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"pulseralux/internal/config"
	"pulseralux/internal/db"
	"pulseralux/internal/model"
	"pulseralux/internal/repository"
)

// SeedUser represents one demo account in the seed file.
type SeedUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func main() {
	file := flag.String("file", "cmd/seed/users.json", "path to the demo users JSON file")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users, err := loadSeedUsers(*file)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded %d demo accounts from %s", len(users), *file)

	userRepo := repository.NewUserRepository(gormDB)
	created, skipped, err := seedUsers(context.Background(), userRepo, users)
	if err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New accounts created: %d", created)
	log.Printf("  - Existing accounts skipped: %d", skipped)

	all, err := userRepo.List(context.Background())
	if err != nil {
		log.Fatalf("Failed to list accounts: %v", err)
	}
	log.Printf("  - Total accounts: %d", len(all))
}

// loadSeedUsers reads and parses the demo account file.
func loadSeedUsers(path string) ([]SeedUser, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var users []SeedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return users, nil
}

// seedUsers creates accounts that do not exist yet; existing emails are skipped.
func seedUsers(ctx context.Context, repo repository.UserRepository, users []SeedUser) (created int, skipped int, err error) {
	for _, u := range users {
		existing, err := repo.FindByEmail(ctx, u.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, skipped, fmt.Errorf("error checking account %s: %w", u.Email, err)
		}
		if existing != nil {
			skipped++
			continue
		}
		if err := repo.Create(ctx, &model.User{Name: u.Name, Email: u.Email, Password: u.Password}); err != nil {
			return created, skipped, fmt.Errorf("error creating account %s: %w", u.Email, err)
		}
		created++
	}
	return created, skipped, nil
}
