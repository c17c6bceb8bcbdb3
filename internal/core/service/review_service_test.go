package service

import (
	"context"
	"errors"
	"testing"

	"github.com/teachreach/marketplace/internal/core/domain"
	"github.com/teachreach/marketplace/internal/core/ports"
)

type stubReviewRepo struct {
	reviews []*domain.Review
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) error {
	clone := *rv
	r.reviews = append(r.reviews, &clone)
	return nil
}

func (r *stubReviewRepo) List(_ context.Context) ([]*domain.Review, error) {
	out := make([]*domain.Review, len(r.reviews))
	copy(out, r.reviews)
	return out, nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id string) error {
	for i, rv := range r.reviews {
		if rv.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return domain.ErrReviewNotFound
}

func (r *stubReviewRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	kept := r.reviews[:0]
	var n int64
	for _, rv := range r.reviews {
		if rv.UserID == userID {
			n++
			continue
		}
		kept = append(kept, rv)
	}
	r.reviews = kept
	return n, nil
}

func TestReviewService_Create_NameFromCaller(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := NewReviewService(repo, discardLogger)

	review, err := svc.Create(context.Background(), ports.CreateReviewInput{
		Caller:  ports.Caller{ID: "u1", Name: "Maria"},
		Rating:  5,
		Comment: "  Great work  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.Name != "Maria" || review.UserID != "u1" {
		t.Errorf("author not taken from caller: %+v", review)
	}
	if review.Comment != "Great work" {
		t.Errorf("comment not trimmed: %q", review.Comment)
	}
	if len(repo.reviews) != 1 {
		t.Fatalf("expected 1 stored review, got %d", len(repo.reviews))
	}
}

func TestReviewService_Create_Validation(t *testing.T) {
	svc := NewReviewService(&stubReviewRepo{}, discardLogger)
	caller := ports.Caller{ID: "u1", Name: "Maria"}

	cases := []struct {
		name string
		in   ports.CreateReviewInput
		want error
	}{
		{"rating too low", ports.CreateReviewInput{Caller: caller, Rating: 0, Comment: "x"}, domain.ErrInvalidInput},
		{"rating too high", ports.CreateReviewInput{Caller: caller, Rating: 6, Comment: "x"}, domain.ErrInvalidInput},
		{"blank comment", ports.CreateReviewInput{Caller: caller, Rating: 3, Comment: "   "}, domain.ErrInvalidInput},
		{"anonymous", ports.CreateReviewInput{Rating: 3, Comment: "x"}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestReviewService_Delete(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := NewReviewService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), ports.CreateReviewInput{
		Caller: ports.Caller{ID: "u1", Name: "Maria"}, Rating: 4, Comment: "ok",
	})

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound on second delete, got %v", err)
	}
}
