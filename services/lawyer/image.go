package lawyer

import (
	"context"
	"io"

	"lawease/models"
	"lawease/services/storage"
	"lawease/utils"

	"go.uber.org/zap"
)

// UploadImage replaces the lawyer's profile image. The previous image is
// removed from storage after the new one is saved.
func (s *DefaultLawyerService) UploadImage(ctx context.Context, actor models.Actor, file io.Reader) (*models.User, error) {
	if s.images == nil {
		return nil, storage.ErrStorageDisabled
	}
	if _, err := s.ownProfile(ctx, actor); err != nil {
		return nil, err
	}
	img, err := storage.ReadImage(file)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, utils.NewInternal("failed to load user", err)
	}

	result, err := s.images.Upload(ctx, img.Reader(), s.cfg.ImageFolder)
	if err != nil {
		return nil, utils.NewInternal("failed to upload image", err)
	}

	previous := user.ImagePublicID
	user.ImageURL = result.SecureURL
	user.ImagePublicID = result.PublicID
	if err := s.users.Update(ctx, user); err != nil {
		s.deleteImage(ctx, result.PublicID)
		return nil, utils.NewInternal("failed to save profile image", err)
	}
	if previous != "" {
		s.deleteImage(ctx, previous)
	}

	s.invalidate(ctx)
	return user, nil
}

func (s *DefaultLawyerService) DeleteImage(ctx context.Context, actor models.Actor) (*models.User, error) {
	if s.images == nil {
		return nil, storage.ErrStorageDisabled
	}
	if _, err := s.ownProfile(ctx, actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, utils.NewInternal("failed to load user", err)
	}
	if user.ImagePublicID == "" {
		return user, nil
	}

	previous := user.ImagePublicID
	user.ImageURL = ""
	user.ImagePublicID = ""
	if err := s.users.Update(ctx, user); err != nil {
		return nil, utils.NewInternal("failed to remove profile image", err)
	}
	s.deleteImage(ctx, previous)
	s.invalidate(ctx)
	return user, nil
}

func (s *DefaultLawyerService) deleteImage(ctx context.Context, publicID string) {
	if err := s.images.Delete(ctx, publicID); err != nil {
		s.logger.Warn("failed to delete stored image", zap.String("publicID", publicID), zap.Error(err))
	}
}
