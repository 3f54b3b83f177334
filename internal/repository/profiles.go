package repository

import (
	"context"
	"fmt"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/remote"
)

// ProfileRepository is the gateway to the backend "profiles" table.
type ProfileRepository interface {
	Get(ctx context.Context, id string) (*domain.UserProfile, error)
	Insert(ctx context.Context, input ProfileInput) error
	Count(ctx context.Context) (int, error)
}

// ProfileInput is the writable column set of a profile row. The id is the
// auth identity's id, not backend-generated.
type ProfileInput struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type profileRepository struct {
	client *remote.Client
}

func NewProfileRepository(client *remote.Client) ProfileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.client.From("profiles").
		Select("*").
		Eq("id", id).
		Single().
		Get(ctx, &profile)
	if remote.IsNotFound(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}
	return &profile, nil
}

func (r *profileRepository) Insert(ctx context.Context, input ProfileInput) error {
	if err := r.client.From("profiles").Insert(ctx, input, nil); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Count(ctx context.Context) (int, error) {
	n, err := r.client.From("profiles").Select("*").Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}
