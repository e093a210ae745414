// Command seed loads a small demo data set for local development. Running it twice
// is safe; existing rows are left alone.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	admindomain "campus-clubs/backend/internal/admin/domain"
	adminrepo "campus-clubs/backend/internal/admin/repository"
	clubdomain "campus-clubs/backend/internal/club/domain"
	clubrepo "campus-clubs/backend/internal/club/repository"
	"campus-clubs/backend/internal/config"
	"campus-clubs/backend/internal/db"
	eventdomain "campus-clubs/backend/internal/event/domain"
	eventrepo "campus-clubs/backend/internal/event/repository"
	"campus-clubs/backend/internal/security"
	userdomain "campus-clubs/backend/internal/user/domain"
	userrepo "campus-clubs/backend/internal/user/repository"
)

const demoPassword = "campus-demo"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("seed: DATABASE_URL must be set")
	}
	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(database)
	admins := adminrepo.NewPostgresRepository(database)
	clubs := clubrepo.NewPostgresRepository(database)
	events := eventrepo.NewPostgresRepository(database)
	hasher := security.NewHasher(cfg.BcryptCost)

	hash, err := hasher.Hash([]byte(demoPassword))
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	now := time.Now().UTC()
	seedUsers := []*userdomain.User{
		{ID: "seed-admin", Email: "admin@campus.edu", Name: "Demo Admin"},
		{ID: "seed-ana", Email: "ana@campus.edu", Name: "Ana Ortiz"},
		{ID: "seed-bo", Email: "bo@campus.edu", Name: "Bo Lindqvist"},
	}
	for _, u := range seedUsers {
		existing, err := users.GetByEmail(ctx, u.Email)
		if err != nil {
			log.Fatalf("seed: lookup %s: %v", u.Email, err)
		}
		if existing != nil {
			continue
		}
		u.PasswordHash = hash
		u.Status = userdomain.UserStatusActive
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("seed: create user %s: %v", u.Email, err)
		}
		log.Printf("seed: user %s (password %q)", u.Email, demoPassword)
	}

	if err := admins.Grant(ctx, &admindomain.PlatformAdmin{UserID: "seed-admin", CreatedAt: now}); err != nil {
		log.Fatalf("seed: grant admin: %v", err)
	}

	chess, err := clubs.GetByID(ctx, "seed-chess")
	if err != nil {
		log.Fatalf("seed: lookup club: %v", err)
	}
	if chess == nil {
		if err := clubs.Create(ctx, &clubdomain.Club{
			ID:           "seed-chess",
			Name:         "Chess Club",
			Description:  "Weekly games and campus tournaments.",
			CategoryID:   "games",
			ContactEmail: "chess@campus.edu",
			CreatedAt:    now,
		}); err != nil {
			log.Fatalf("seed: create club: %v", err)
		}
		for i, member := range []struct {
			userID string
			role   string
		}{
			{"seed-ana", clubdomain.RoleOfficer},
			{"seed-bo", clubdomain.RoleMember},
		} {
			if err := clubs.AddMember(ctx, &clubdomain.Member{
				ID:       uuid.New().String(),
				ClubID:   "seed-chess",
				UserID:   member.userID,
				Role:     member.role,
				JoinedAt: now.Add(time.Duration(i) * time.Second),
			}); err != nil {
				log.Fatalf("seed: add member: %v", err)
			}
		}

		start := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		for _, hour := range []int{9, 14, 19} {
			if err := events.Create(ctx, &eventdomain.Event{
				ID:           uuid.New().String(),
				ClubID:       "seed-chess",
				Title:        "Open play",
				Tags:         []string{"casual", "beginners"},
				LocationType: eventdomain.LocationInPerson,
				Status:       eventdomain.StatusScheduled,
				StartsAt:     start.Add(time.Duration(hour) * time.Hour),
				EndsAt:       start.Add(time.Duration(hour+2) * time.Hour),
				CreatedAt:    now,
			}); err != nil {
				log.Fatalf("seed: create event: %v", err)
			}
		}
		log.Print("seed: chess club with roster and events")
	}

	log.Print("seed: done")
}
