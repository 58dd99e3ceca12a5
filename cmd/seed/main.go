// seed inserts a demo user and a batch of tasks into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/taskhive/taskhive/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedName     = "Seed User"
	seedPassword = "Password123"
)

type taskSpec struct {
	title       string
	description string
	status      string
	priority    string
}

var tasks = []taskSpec{
	{"Buy milk", "2 liters, lactose-free", "pending", "low"},
	{"Write quarterly report", "Numbers from finance are in the shared folder", "in_progress", "high"},
	{"Review pull request #42", "", "pending", "medium"},
	{"Renew passport", "Appointment booked for next month", "pending", "high"},
	{"Clean the garage", "", "pending", "low"},
	{"Prepare demo for Friday", "Walk through register → create → filter flow", "in_progress", "high"},
	{"Book flights", "Check Tuesday departures first", "completed", "medium"},
	{"Update dependencies", "Minor versions only", "completed", "low"},
	{"Plan team offsite", "Collect venue options", "pending", "medium"},
	{"Fix flaky signup test", "Fails roughly one run in ten", "in_progress", "medium"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	if err := postgres.Migrate(ctx, dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (lower(email)) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedName, seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Insert tasks, skip titles that already exist for idempotent re-runs
	var inserted, skipped int
	for _, spec := range tasks {
		var exists bool
		err := pool.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM tasks WHERE user_id = $1 AND title = $2)`,
			userID, spec.title,
		).Scan(&exists)
		if err != nil {
			log.Fatalf("check task %q: %v", spec.title, err)
		}
		if exists {
			skipped++
			continue
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO tasks (user_id, title, description, status, priority)
			VALUES ($1, $2, $3, $4, $5)`,
			userID, spec.title, spec.description, spec.status, spec.priority,
		)
		if err != nil {
			log.Fatalf("insert task %q: %v", spec.title, err)
		}
		inserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:          %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:       %s\n", userID)
	fmt.Printf("  Tasks created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — list tasks:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s 'http://localhost:8080/tasks?status=pending' -H \"Authorization: Bearer $JWT\"")
}
