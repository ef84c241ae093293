package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"studysphere/internal/config"
	"studysphere/internal/database"
	"studysphere/internal/domain"
	"studysphere/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM materials")
	db.Exec("DELETE FROM gateway_payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM study_sessions")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := createUser(ctx, users, "admin@studysphere.io", "admin123", domain.RoleAdmin, "Platform Admin")
	log.Println("Admin created:", admin.Email, "/ admin123")

	tutors := []*domain.User{
		createUser(ctx, users, "marat@studysphere.io", "tutor123", domain.RoleTutor, "Marat Bekov"),
		createUser(ctx, users, "aliya@studysphere.io", "tutor123", domain.RoleTutor, "Aliya Serikova"),
	}

	for i := 1; i <= 3; i++ {
		createUser(ctx, users,
			fmt.Sprintf("student%d@studysphere.io", i), "student123",
			domain.RoleStudent, fmt.Sprintf("Student %d", i))
	}

	// ================== SESSIONS ==================
	log.Println("Creating study sessions...")
	now := time.Now()

	// Approved, free, registration open right now.
	seedSession(ctx, sessions, &domain.StudySession{
		Title:             "Calculus I Crash Course",
		Description:       "Limits, derivatives and integrals over four evening classes.",
		TutorID:           tutors[0].ID,
		TutorEmail:        tutors[0].Email,
		TutorName:         tutors[0].Name,
		Status:            domain.SessionApproved,
		RegistrationStart: now.AddDate(0, 0, -3),
		RegistrationEnd:   now.AddDate(0, 0, 11),
		ClassStart:        now.AddDate(0, 0, 14),
		ClassEnd:          now.AddDate(0, 0, 42),
		DurationWeeks:     4,
		RegistrationFee:   0,
	})

	// Approved, paid, registration open right now.
	seedSession(ctx, sessions, &domain.StudySession{
		Title:             "IELTS Speaking Intensive",
		Description:       "Small-group speaking practice with weekly mock interviews.",
		TutorID:           tutors[1].ID,
		TutorEmail:        tutors[1].Email,
		TutorName:         tutors[1].Name,
		Status:            domain.SessionApproved,
		RegistrationStart: now.AddDate(0, 0, -1),
		RegistrationEnd:   now.AddDate(0, 0, 6),
		ClassStart:        now.AddDate(0, 0, 7),
		ClassEnd:          now.AddDate(0, 0, 49),
		DurationWeeks:     6,
		RegistrationFee:   4500,
	})

	// Approved but the window has already closed.
	seedSession(ctx, sessions, &domain.StudySession{
		Title:             "Linear Algebra Review",
		Description:       "Matrix operations, eigenvalues and applications.",
		TutorID:           tutors[0].ID,
		TutorEmail:        tutors[0].Email,
		TutorName:         tutors[0].Name,
		Status:            domain.SessionApproved,
		RegistrationStart: now.AddDate(0, 0, -30),
		RegistrationEnd:   now.AddDate(0, 0, -10),
		ClassStart:        now.AddDate(0, 0, -7),
		ClassEnd:          now.AddDate(0, 0, 21),
		DurationWeeks:     4,
		RegistrationFee:   0,
	})

	// Waiting for moderation.
	seedSession(ctx, sessions, &domain.StudySession{
		Title:             "Intro to Python",
		Description:       "From zero to writing small scripts.",
		TutorID:           tutors[1].ID,
		TutorEmail:        tutors[1].Email,
		TutorName:         tutors[1].Name,
		Status:            domain.SessionPending,
		RegistrationStart: now.AddDate(0, 0, 5),
		RegistrationEnd:   now.AddDate(0, 0, 19),
		ClassStart:        now.AddDate(0, 0, 21),
		ClassEnd:          now.AddDate(0, 0, 77),
		DurationWeeks:     8,
		RegistrationFee:   3000,
	})

	// Rejected with feedback, so the tutor dashboard has something to show.
	seedSession(ctx, sessions, &domain.StudySession{
		Title:             "Chemistry Help",
		Description:       "General chemistry.",
		TutorID:           tutors[0].ID,
		TutorEmail:        tutors[0].Email,
		TutorName:         tutors[0].Name,
		Status:            domain.SessionRejected,
		RegistrationStart: now.AddDate(0, 0, 10),
		RegistrationEnd:   now.AddDate(0, 0, 24),
		ClassStart:        now.AddDate(0, 0, 28),
		ClassEnd:          now.AddDate(0, 0, 56),
		DurationWeeks:     4,
		RegistrationFee:   0,
		RejectionReason:   domain.ReasonIncompleteInformation,
		RejectionFeedback: "Please describe the topics covered and the target grade level.",
	})

	log.Println("Seed data created.")
}

func createUser(ctx context.Context, users *repository.UserRepository, email, password string, role domain.UserRole, name string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password:", err)
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func seedSession(ctx context.Context, sessions *repository.SessionRepository, s *domain.StudySession) {
	if err := sessions.Create(ctx, s); err != nil {
		log.Fatalf("create session %q: %v", s.Title, err)
	}
	log.Printf("Session created: %s (%s)", s.Title, s.Status)
}
