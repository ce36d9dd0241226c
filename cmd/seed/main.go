package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/peergrouptools/peergroup-api/internal/adapter/repository"
	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/database"
	"github.com/peergrouptools/peergroup-api/internal/usecase/meeting"
	"github.com/peergrouptools/peergroup-api/pkg/config"
)

const (
	demoClerkID = "user_demo_local"
	demoEmail   = "demo@peergrouptools.local"
)

func main() {
	log.Println("🚀 Seeding demo data...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatalf("Refusing to seed a production database")
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(db)
	user, err := userRepo.FindByClerkID(ctx, demoClerkID)
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		user = entities.NewUser(demoClerkID)
		user.ApplyProfile(entities.Profile{Email: demoEmail, FirstName: "Demo", LastName: "User", FullName: "Demo User"})
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("✅ Created user %s (%s)", user.ID, demoEmail)
	case err != nil:
		log.Fatalf("Failed to look up demo user: %v", err)
	default:
		log.Printf("ℹ️  User %s already exists", user.ID)
	}

	meetings := meeting.NewMeetingService(repository.NewMeetingRepository(db))
	description := "Seeded for local development"
	m, err := meetings.CreateMeeting(ctx, meeting.CreateMeetingInput{
		UserID:      user.ID,
		Title:       "Weekly peer group",
		Description: &description,
		HumeLabel:   "Peer group check-in",
		HumeConfig:  "demo-config",
	})
	if err != nil {
		log.Fatalf("Failed to create demo meeting: %v", err)
	}
	log.Printf("✅ Created meeting %s", m.ID)
}
