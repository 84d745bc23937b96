package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openshelf/book-catalog/internal/core/domain"
	"github.com/openshelf/book-catalog/internal/core/ports"
	"github.com/openshelf/book-catalog/internal/core/validation"
)

func newUserService(repo ports.UserRepository) *UserService {
	return NewUserService(repo, validation.New(), zerolog.Nop())
}

func seedUser(t *testing.T, repo ports.UserRepository, username, password, role string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	return user
}

func TestUserService_Get(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	alice := seedUser(t, repo, "alice", "secret1", domain.RoleUser)
	bob := seedUser(t, repo, "bob", "secret1", domain.RoleUser)
	admin := seedUser(t, repo, "root", "secret1", domain.RoleAdmin)

	if _, err := svc.Get(context.Background(), nil, alice.ID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Get(context.Background(), bob, alice.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other user, got %v", err)
	}
	if _, err := svc.Get(context.Background(), alice, alice.ID); err != nil {
		t.Fatalf("self get failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, alice.ID); err != nil {
		t.Fatalf("admin get failed: %v", err)
	}
}

func TestUserService_List_AdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	alice := seedUser(t, repo, "alice", "secret1", domain.RoleUser)
	admin := seedUser(t, repo, "root", "secret1", domain.RoleAdmin)

	if _, err := svc.List(context.Background(), alice, ports.UserFilter{}, 10, 0); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	users, err := svc.List(context.Background(), admin, ports.UserFilter{}, 10, 0)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	role := domain.RoleAdmin
	admins, err := svc.List(context.Background(), admin, ports.UserFilter{Role: &role}, 10, 0)
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(admins) != 1 || admins[0].Username != "root" {
		t.Fatalf("expected only root, got %+v", admins)
	}
}

func TestUserService_Search_AdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	alice := seedUser(t, repo, "alice", "secret1", domain.RoleUser)
	admin := seedUser(t, repo, "root", "secret1", domain.RoleAdmin)

	if _, err := svc.Search(context.Background(), alice, "ali", 10, 0); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	found, err := svc.Search(context.Background(), admin, "ALI", 10, 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != alice.ID {
		t.Fatalf("expected alice, got %+v", found)
	}
}

func TestUserService_Update_RoleGating(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	alice := seedUser(t, repo, "alice", "secret1", domain.RoleUser)
	bob := seedUser(t, repo, "bob", "secret1", domain.RoleUser)
	admin := seedUser(t, repo, "root", "secret1", domain.RoleAdmin)

	// A user cannot update someone else's profile.
	first := "Alice"
	if _, err := svc.Update(context.Background(), bob, alice.ID, ports.UpdateUserInput{FirstName: &first}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Self-update works, but role and active flag changes are dropped for
	// non-admins.
	adminRole := domain.RoleAdmin
	inactive := false
	updated, err := svc.Update(context.Background(), alice, alice.ID, ports.UpdateUserInput{
		FirstName: &first,
		Role:      &adminRole,
		IsActive:  &inactive,
	})
	if err != nil {
		t.Fatalf("self update failed: %v", err)
	}
	if updated.FirstName != "Alice" {
		t.Fatalf("expected first name set, got %q", updated.FirstName)
	}
	if updated.Role != domain.RoleUser || !updated.IsActive {
		t.Fatalf("non-admin must not change role or active flag: %+v", updated)
	}

	// Admin may change the role.
	promoted, err := svc.Update(context.Background(), admin, alice.ID, ports.UpdateUserInput{Role: &adminRole})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if promoted.Role != domain.RoleAdmin {
		t.Fatalf("expected promotion, got %q", promoted.Role)
	}

	// Username collisions surface as validation errors.
	taken := "bob"
	if _, err := svc.Update(context.Background(), alice, alice.ID, ports.UpdateUserInput{Username: &taken}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for taken username, got %v", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	alice := seedUser(t, repo, "alice", "secret1", domain.RoleUser)

	before, err := repo.FindByID(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("find alice: %v", err)
	}

	// Wrong current password: hash unchanged, authentication error.
	_, err = svc.ChangePassword(context.Background(), alice, ports.ChangePasswordInput{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	after, err := repo.FindByID(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("find alice: %v", err)
	}
	if after.PasswordHash != before.PasswordHash {
		t.Fatalf("stored hash must be unchanged after failed attempt")
	}

	// Correct current password rotates the hash.
	if _, err := svc.ChangePassword(context.Background(), alice, ports.ChangePasswordInput{
		CurrentPassword: "secret1",
		NewPassword:     "newsecret",
	}); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	rotated, err := repo.FindByID(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("find alice: %v", err)
	}
	if rotated.PasswordHash == before.PasswordHash {
		t.Fatalf("expected hash to change")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rotated.PasswordHash), []byte("newsecret")); err != nil {
		t.Fatalf("new hash does not match new password: %v", err)
	}

	// Weak new passwords are rejected up front.
	if _, err := svc.ChangePassword(context.Background(), alice, ports.ChangePasswordInput{
		CurrentPassword: "newsecret",
		NewPassword:     "short",
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserService_Delete_AdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	alice := seedUser(t, repo, "alice", "secret1", domain.RoleUser)
	admin := seedUser(t, repo, "root", "secret1", domain.RoleAdmin)

	if err := svc.Delete(context.Background(), alice, admin.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	if err := svc.Delete(context.Background(), admin, admin.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for self-delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), admin, alice.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected alice gone, got %v", err)
	}
}

func TestUserService_ToggleStatus(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	alice := seedUser(t, repo, "alice", "secret1", domain.RoleUser)
	admin := seedUser(t, repo, "root", "secret1", domain.RoleAdmin)

	if _, err := svc.ToggleStatus(context.Background(), alice, alice.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	if _, err := svc.ToggleStatus(context.Background(), admin, admin.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for self-toggle, got %v", err)
	}

	toggled, err := svc.ToggleStatus(context.Background(), admin, alice.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.IsActive {
		t.Fatalf("expected alice deactivated")
	}

	toggled, err = svc.ToggleStatus(context.Background(), admin, alice.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if !toggled.IsActive {
		t.Fatalf("expected alice reactivated")
	}
}
