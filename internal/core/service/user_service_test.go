package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teachreach/marketplace/internal/core/domain"
	"github.com/teachreach/marketplace/internal/core/ports"
)

type stubRevoker struct {
	revoked map[string]bool
	err     error
}

func newStubRevoker() *stubRevoker { return &stubRevoker{revoked: make(map[string]bool)} }

func (r *stubRevoker) Revoke(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[id] = true
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	return r.revoked[id], nil
}

type userFixture struct {
	users   *stubUserRepo
	reviews *stubReviewRepo
	revoker *stubRevoker
	svc     *UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:   newStubUserRepo(),
		reviews: &stubReviewRepo{},
		revoker: newStubRevoker(),
	}
	f.svc = NewUserService(f.users, f.reviews, f.revoker, "admin@myapp.com", discardLogger)
	return f
}

func (f *userFixture) seed(id, email, role string, created time.Time) {
	f.users.users[id] = &domain.User{ID: id, Name: id, Email: email, Role: role, CreatedAt: created}
}

func TestUserService_Delete_CascadesReviewsAndRevokes(t *testing.T) {
	f := newUserFixture()
	f.seed("u1", "ana@example.com", domain.RoleClient, time.Now())
	f.reviews.reviews = []*domain.Review{
		{ID: "r1", UserID: "u1"},
		{ID: "r2", UserID: "u2"},
		{ID: "r3", UserID: "u1"},
	}

	if err := f.svc.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.users.users["u1"]; ok {
		t.Error("user still present")
	}
	if len(f.reviews.reviews) != 1 || f.reviews.reviews[0].ID != "r2" {
		t.Errorf("expected only r2 to survive, got %+v", f.reviews.reviews)
	}
	if !f.revoker.revoked["u1"] {
		t.Error("tokens not revoked")
	}
}

func TestUserService_Delete_AdminRefused(t *testing.T) {
	f := newUserFixture()
	f.seed("a1", "admin@myapp.com", domain.RoleAdmin, time.Now())

	if err := f.svc.Delete(context.Background(), "a1"); !errors.Is(err, domain.ErrAdminUndeletable) {
		t.Fatalf("expected ErrAdminUndeletable, got %v", err)
	}
	if _, ok := f.users.users["a1"]; !ok {
		t.Fatal("admin must not be removed")
	}
	if f.revoker.revoked["a1"] {
		t.Fatal("admin tokens must not be revoked")
	}
}

func TestUserService_DeleteSelf(t *testing.T) {
	f := newUserFixture()
	f.seed("u1", "ana@example.com", domain.RoleClient, time.Now())

	if err := f.svc.DeleteSelf(context.Background(), ports.Caller{ID: "u1", Role: domain.RoleClient}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.DeleteSelf(context.Background(), ports.Caller{ID: "a1", Role: domain.RoleAdmin}); !errors.Is(err, domain.ErrAdminUndeletable) {
		t.Fatalf("expected ErrAdminUndeletable for admin caller, got %v", err)
	}
}

func TestUserService_Delete_RevokerFailureStillDeletes(t *testing.T) {
	f := newUserFixture()
	f.seed("u1", "ana@example.com", domain.RoleClient, time.Now())
	f.revoker.err = errors.New("redis down")

	if err := f.svc.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("revocation failure must not fail the deletion: %v", err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := newUserFixture()
	f.seed("u1", "ana@example.com", domain.RoleClient, time.Now())
	f.seed("u2", "taken@example.com", domain.RoleClient, time.Now())
	caller := ports.Caller{ID: "u1"}

	updated, err := f.svc.UpdateProfile(context.Background(), caller, domain.ProfileUpdate{Name: "Ana B", Email: "NEW@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Ana B" || updated.Email != "new@example.com" {
		t.Errorf("unexpected profile: %+v", updated)
	}

	if _, err := f.svc.UpdateProfile(context.Background(), caller, domain.ProfileUpdate{Email: "taken@example.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
	for _, email := range []string{"broken", "Eve <eve@x.io>"} {
		if _, err := f.svc.UpdateProfile(context.Background(), caller, domain.ProfileUpdate{Email: email}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%q: expected ErrInvalidInput, got %v", email, err)
		}
	}
	if got, _ := f.users.FindByID(context.Background(), "u1"); got.Email != "new@example.com" {
		t.Errorf("email changed by rejected update: %s", got.Email)
	}
}

func TestUserService_SupportRecipient(t *testing.T) {
	f := newUserFixture()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := f.svc.SupportRecipient(context.Background()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound without admins, got %v", err)
	}

	f.seed("a2", "second@example.com", domain.RoleAdmin, base.Add(time.Hour))
	f.seed("a1", "first@example.com", domain.RoleAdmin, base)
	got, err := f.svc.SupportRecipient(context.Background())
	if err != nil || got.ID != "a1" {
		t.Fatalf("expected oldest admin a1, got %+v (%v)", got, err)
	}

	f.seed("a0", "admin@myapp.com", domain.RoleAdmin, base.Add(2*time.Hour))
	got, err = f.svc.SupportRecipient(context.Background())
	if err != nil || got.ID != "a0" {
		t.Fatalf("expected designated admin a0, got %+v (%v)", got, err)
	}
}
