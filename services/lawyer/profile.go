package lawyer

import (
	"context"
	"errors"
	"strings"

	"lawease/database"
	"lawease/models"
	"lawease/services/availability"
	"lawease/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrAlreadyOnboarded = utils.NewDomain("You already have a lawyer profile")
	ErrNoProfile        = utils.NewForbidden("You do not have a lawyer profile")
	ErrLawyerNotFound   = utils.NewNotFound("Lawyer not found")
	ErrAdminOnly        = utils.NewForbidden("Admin access required")
	ErrBarNumberTaken   = utils.NewDomain("This bar registration number is already registered")
)

// Onboard creates the actor's lawyer profile with its weekly slots and
// promotes the account to the LAWYER role.
func (s *DefaultLawyerService) Onboard(ctx context.Context, actor models.Actor, input models.LawyerProfileInput) (*models.LawyerProfile, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	if _, err := s.lawyers.GetByUserID(ctx, actor.UserID); err == nil {
		return nil, ErrAlreadyOnboarded
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewInternal("failed to check lawyer profile", err)
	}

	slots, err := availability.BuildSlots(input.Availability)
	if err != nil {
		return nil, err
	}

	profile := &models.LawyerProfile{UserID: actor.UserID, IsAvailable: true}
	s.apply(profile, input)
	profile.Availability = slots

	if err := s.lawyers.CreateWithSlots(ctx, profile); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrBarNumberTaken
		}
		return nil, utils.NewInternal("failed to create lawyer profile", err)
	}

	s.logger.Info("lawyer onboarded", zap.String("lawyerID", profile.ID), zap.String("userID", actor.UserID))
	s.invalidate(ctx)
	return profile, nil
}

// UpdateProfile saves profile edits and replaces the whole weekly schedule.
func (s *DefaultLawyerService) UpdateProfile(ctx context.Context, actor models.Actor, input models.LawyerProfileInput) (*models.LawyerProfile, error) {
	profile, err := s.ownProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	slots, err := availability.BuildSlots(input.Availability)
	if err != nil {
		return nil, err
	}

	s.apply(profile, input)
	if err := s.lawyers.UpdateWithSlots(ctx, profile, slots); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrBarNumberTaken
		}
		return nil, utils.NewInternal("failed to update lawyer profile", err)
	}

	s.invalidate(ctx)
	return profile, nil
}

func (s *DefaultLawyerService) apply(p *models.LawyerProfile, in models.LawyerProfileInput) {
	p.BarNumber = strings.TrimSpace(in.BarNumber)
	p.YearsExperience = in.YearsExperience
	p.Specializations = cleanList(in.Specializations)
	p.Languages = cleanList(in.Languages)
	p.Bio = strings.TrimSpace(in.Bio)
	p.City = strings.TrimSpace(in.City)
	p.HourlyRate = utils.RoundMoney(in.HourlyRate)
	p.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if p.Currency == "" {
		p.Currency = s.cfg.DefaultCurrency
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
}

func (s *DefaultLawyerService) ownProfile(ctx context.Context, actor models.Actor) (*models.LawyerProfile, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	profile, err := s.lawyers.GetByUserID(ctx, actor.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, utils.NewInternal("failed to load lawyer profile", err)
	}
	return profile, nil
}

func (s *DefaultLawyerService) GetDetail(ctx context.Context, id string) (*models.LawyerDetail, error) {
	profile, err := s.lawyers.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrLawyerNotFound
	}
	if err != nil {
		return nil, utils.NewInternal("failed to load lawyer", err)
	}
	reviews, err := s.reviews.ListByLawyer(ctx, id, s.cfg.ReviewsOnDetail)
	if err != nil {
		return nil, utils.NewInternal("failed to load reviews", err)
	}
	public := profile.Public()
	return &models.LawyerDetail{Profile: &public, Reviews: reviews}, nil
}

// Search serves the directory, from the cache when possible. Only the public
// view of each profile is returned or cached.
func (s *DefaultLawyerService) Search(ctx context.Context, criteria models.LawyerSearch) ([]models.PublicLawyer, error) {
	criteria.Specialization = strings.TrimSpace(criteria.Specialization)
	criteria.City = strings.TrimSpace(criteria.City)

	if s.cache != nil {
		if profiles, ok := s.cache.Get(ctx, criteria); ok {
			return profiles, nil
		}
	}
	found, err := s.lawyers.Search(ctx, criteria)
	if err != nil {
		return nil, utils.NewInternal("failed to search lawyers", err)
	}
	profiles := models.PublicLawyers(found)
	if s.cache != nil {
		if err := s.cache.Set(ctx, criteria, profiles); err != nil {
			s.logger.Warn("failed to cache lawyer search", zap.Error(err))
		}
	}
	return profiles, nil
}

// Verify sets the verification badge. Admin only.
func (s *DefaultLawyerService) Verify(ctx context.Context, actor models.Actor, lawyerID string, verified bool) error {
	if !actor.Authenticated() {
		return utils.ErrUnauthenticated
	}
	if actor.Role != models.RoleAdmin {
		return ErrAdminOnly
	}
	err := s.lawyers.SetVerified(ctx, lawyerID, verified)
	if errors.Is(err, database.ErrNotFound) {
		return ErrLawyerNotFound
	}
	if err != nil {
		return utils.NewInternal("failed to verify lawyer", err)
	}
	s.logger.Info("lawyer verification changed",
		zap.String("lawyerID", lawyerID), zap.Bool("verified", verified), zap.String("by", actor.UserID))
	s.invalidate(ctx)
	return nil
}

func (s *DefaultLawyerService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate lawyer directory cache", zap.Error(err))
	}
}

func cleanList(in []string) models.StringList {
	out := make(models.StringList, 0, len(in))
	seen := make(map[string]bool)
	for _, v := range in {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// isUniqueViolation relies on gorm's TranslateError being enabled.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
