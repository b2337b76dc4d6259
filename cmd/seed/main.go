// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the admin user (+10000000000) already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"phone-auth-service/internal/config"
	"phone-auth-service/internal/db"
	"phone-auth-service/internal/user/domain"
	"phone-auth-service/internal/user/repository"
)

const (
	adminPhone  = "+10000000000"
	alicePhone  = "+15550000001"
	bobPhone    = "+15550000002"
	adminID     = "dev-admin-001"
	aliceID     = "dev-user-001"
	bobID       = "dev-user-002"
	adminInvite = "adm001"
	aliceInvite = "usr001"
	bobInvite   = "usr002"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	users := repository.NewPostgresRepository(conn)
	ctx := context.Background()

	existing, err := users.GetByPhone(ctx, adminPhone)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (admin exists). Skipping.")
		os.Exit(0)
	}

	now := time.Now().UTC()

	admin := &domain.User{
		ID:         adminID,
		Phone:      adminPhone,
		Username:   "admin",
		FirstName:  "Admin",
		InviteCode: adminInvite,
		IsAdmin:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	alice := &domain.User{
		ID:         aliceID,
		Phone:      alicePhone,
		Username:   "alice",
		FirstName:  "Alice",
		InviteCode: aliceInvite,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := users.Create(ctx, alice); err != nil {
		log.Fatalf("create alice: %v", err)
	}

	// Bob was invited by Alice so a referral edge exists out of the box.
	bob := &domain.User{
		ID:         bobID,
		Phone:      bobPhone,
		Username:   "bob",
		FirstName:  "Bob",
		InviteCode: bobInvite,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := users.Create(ctx, bob); err != nil {
		log.Fatalf("create bob: %v", err)
	}
	if _, err := users.SetInvitedBy(ctx, bobID, aliceID); err != nil {
		log.Fatalf("link bob to alice: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Admin phone: %s\n", adminPhone)
	fmt.Printf("Sample users: %s (invite %s), %s (invited by alice)\n", alicePhone, aliceInvite, bobPhone)
}
