package repository

import (
	"context"
	"testing"
	"time"

	"modamart/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/crypto/bcrypt"
)

// Feature: storefront, Property 4: Registration stores bcrypt hashes, never plaintext
func TestProperty_RegistrationCreatesHashedPasswords(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("passwords are hashed with bcrypt and not stored as plaintext", prop.ForAll(
		func(email string, password string, firstName string, lastName string) bool {
			// Clean up before each test
			_, _ = testDB.Exec("DELETE FROM users WHERE email = $1", email)

			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				t.Logf("Failed to hash password: %v", err)
				return false
			}

			user := &domain.User{
				ID:           uuid.New(),
				Email:        email,
				PasswordHash: string(hashedPassword),
				FirstName:    firstName,
				LastName:     lastName,
				Role:         "customer",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}

			err = repo.Create(ctx, user)
			if err != nil {
				t.Logf("Failed to create user: %v", err)
				return false
			}

			retrievedUser, err := repo.FindByEmail(ctx, email)
			if err != nil {
				t.Logf("Failed to find user: %v", err)
				return false
			}

			if retrievedUser.PasswordHash == password {
				t.Logf("Password was stored as plaintext!")
				return false
			}

			err = bcrypt.CompareHashAndPassword([]byte(retrievedUser.PasswordHash), []byte(password))
			if err != nil {
				t.Logf("Stored password is not a valid bcrypt hash: %v", err)
				return false
			}

			// Clean up after test
			_, _ = testDB.Exec("DELETE FROM users WHERE email = $1", email)

			return true
		},
		gen.RegexMatch(`[a-z]{5,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestUserDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	email := "dup-" + uuid.New().String()[:8] + "@example.com"
	defer testDB.Exec("DELETE FROM users WHERE email = $1", email)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		FirstName:    "Ada",
		LastName:     "Shopper",
		Role:         "customer",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("unexpected error creating user: %v", err)
	}

	dup := *user
	dup.ID = uuid.New()
	if err := repo.Create(ctx, &dup); err != ErrUserAlreadyExists {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestRefreshTokenRevokeAllForUser(t *testing.T) {
	users := NewUserRepository(testDB)
	tokens := NewRefreshTokenRepository(testDB)
	ctx := context.Background()

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "tokens-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         "customer",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("unexpected error creating user: %v", err)
	}
	defer testDB.Exec("DELETE FROM users WHERE id = $1", user.ID)

	issued := []string{}
	for i := 0; i < 3; i++ {
		token := &domain.RefreshToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     uuid.New().String(),
			ExpiresAt: time.Now().Add(24 * time.Hour),
			CreatedAt: time.Now(),
		}
		if err := tokens.Create(ctx, token); err != nil {
			t.Fatalf("unexpected error creating token: %v", err)
		}
		issued = append(issued, token.Token)
	}

	if err := tokens.RevokeAllForUser(ctx, user.ID); err != nil {
		t.Fatalf("unexpected error revoking tokens: %v", err)
	}

	for _, tok := range issued {
		if _, err := tokens.FindByToken(ctx, tok); err != ErrRefreshTokenRevoked {
			t.Errorf("expected ErrRefreshTokenRevoked after revoke-all, got %v", err)
		}
	}
}
