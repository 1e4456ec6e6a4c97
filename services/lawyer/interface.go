package lawyer

import (
	"context"
	"io"

	lawyerRepo "lawease/database/repository/lawyer"
	reviewRepo "lawease/database/repository/review"
	userRepo "lawease/database/repository/user"
	"lawease/models"
	"lawease/services/storage"

	"go.uber.org/zap"
)

// LawyerService manages lawyer profiles and the public directory.
type LawyerService interface {
	Onboard(ctx context.Context, actor models.Actor, input models.LawyerProfileInput) (*models.LawyerProfile, error)
	UpdateProfile(ctx context.Context, actor models.Actor, input models.LawyerProfileInput) (*models.LawyerProfile, error)
	GetDetail(ctx context.Context, id string) (*models.LawyerDetail, error)
	Search(ctx context.Context, criteria models.LawyerSearch) ([]models.PublicLawyer, error)
	UploadImage(ctx context.Context, actor models.Actor, file io.Reader) (*models.User, error)
	DeleteImage(ctx context.Context, actor models.Actor) (*models.User, error)
	Verify(ctx context.Context, actor models.Actor, lawyerID string, verified bool) error
}

// Config carries the lawyer service settings taken from AppConfig.
type Config struct {
	DefaultCurrency string
	ImageFolder     string
	ReviewsOnDetail int
}

type DefaultLawyerService struct {
	lawyers lawyerRepo.LawyerProfileStore
	users   userRepo.UserRepository
	reviews reviewRepo.ReviewStore
	images  storage.ImageStorage
	cache   DirectoryCache
	cfg     Config
	logger  *zap.Logger
}

// NewLawyerService builds the service. images and cache may be nil: uploads
// are then refused and searches always hit the database.
func NewLawyerService(
	lawyers lawyerRepo.LawyerProfileStore,
	users userRepo.UserRepository,
	reviews reviewRepo.ReviewStore,
	images storage.ImageStorage,
	cache DirectoryCache,
	cfg Config,
	logger *zap.Logger,
) *DefaultLawyerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "INR"
	}
	if cfg.ImageFolder == "" {
		cfg.ImageFolder = "lawease/profiles"
	}
	if cfg.ReviewsOnDetail <= 0 {
		cfg.ReviewsOnDetail = 10
	}
	return &DefaultLawyerService{
		lawyers: lawyers,
		users:   users,
		reviews: reviews,
		images:  images,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
	}
}
