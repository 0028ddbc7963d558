package usecase

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type ProfileInput struct {
	Headline   *string
	Experience *int
	Skills     string
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, in ProfileInput) (user.Profile, error)
	UpdateResume(ctx context.Context, userID uuid.UUID, resumeURL string) (user.Profile, error)
}

type Profiles struct {
	profiles repository.ProfileRepository
}

func NewProfileUsecase(profiles repository.ProfileRepository) *Profiles {
	return &Profiles{profiles: profiles}
}

func (u *Profiles) Get(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

// Upsert replaces headline, experience and skills. The résumé reference is
// kept as is.
func (u *Profiles) Upsert(ctx context.Context, userID uuid.UUID, in ProfileInput) (user.Profile, error) {
	if in.Experience != nil && *in.Experience < 0 {
		return user.Profile{}, ErrInvalidInput
	}
	var headline *string
	if in.Headline != nil {
		h := strings.TrimSpace(*in.Headline)
		headline = &h
	}

	p, err := u.profiles.Upsert(ctx, user.Profile{
		UserID:     userID,
		Headline:   headline,
		Experience: in.Experience,
		Skills:     strings.TrimSpace(in.Skills),
	})
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Profiles) UpdateResume(ctx context.Context, userID uuid.UUID, resumeURL string) (user.Profile, error) {
	resumeURL = strings.TrimSpace(resumeURL)
	if resumeURL == "" {
		return user.Profile{}, ErrInvalidInput
	}
	p, err := u.profiles.UpdateResume(ctx, userID, resumeURL)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	return p, nil
}
