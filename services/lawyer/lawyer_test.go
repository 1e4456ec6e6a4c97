package lawyer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"lawease/database"
	lawyerRepo "lawease/database/repository/lawyer"
	reviewRepo "lawease/database/repository/review"
	userRepo "lawease/database/repository/user"
	"lawease/models"
	"lawease/services/storage"
	"lawease/utils"
)

type MockLawyerStore struct {
	lawyerRepo.LawyerProfileStore
	Profiles    map[string]*models.LawyerProfile
	Searches    int
	Verified    map[string]bool
	ReplacedFor string
}

func (m *MockLawyerStore) CreateWithSlots(ctx context.Context, p *models.LawyerProfile) error {
	p.ID = "lawyer-" + p.UserID
	m.Profiles[p.UserID] = p
	return nil
}

func (m *MockLawyerStore) UpdateWithSlots(ctx context.Context, p *models.LawyerProfile, slots []models.AvailabilitySlot) error {
	p.Availability = slots
	m.Profiles[p.UserID] = p
	m.ReplacedFor = p.ID
	return nil
}

func (m *MockLawyerStore) GetByUserID(ctx context.Context, userID string) (*models.LawyerProfile, error) {
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return p, nil
}

func (m *MockLawyerStore) GetByID(ctx context.Context, id string) (*models.LawyerProfile, error) {
	for _, p := range m.Profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockLawyerStore) Search(ctx context.Context, c models.LawyerSearch) ([]models.LawyerProfile, error) {
	m.Searches++
	var out []models.LawyerProfile
	for _, p := range m.Profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (m *MockLawyerStore) SetVerified(ctx context.Context, id string, verified bool) error {
	if _, err := m.GetByID(ctx, id); err != nil {
		return err
	}
	m.Verified[id] = verified
	return nil
}

type MockUserRepo struct {
	userRepo.UserRepository
	Users map[string]*models.User
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) Update(ctx context.Context, u *models.User) error {
	cp := *u
	m.Users[u.ID] = &cp
	return nil
}

type MockReviewStore struct {
	reviewRepo.ReviewStore
}

func (m *MockReviewStore) ListByLawyer(ctx context.Context, lawyerID string, limit int) ([]models.Review, error) {
	return []models.Review{{LawyerID: lawyerID, Rating: 5}}, nil
}

type MockImages struct {
	n       int
	Deleted []string
}

func (m *MockImages) Upload(ctx context.Context, file io.Reader, folder string) (*storage.UploadResult, error) {
	m.n++
	id := fmt.Sprintf("%s/img-%d", folder, m.n)
	return &storage.UploadResult{SecureURL: "https://cdn.example.com/" + id, PublicID: id}, nil
}

func (m *MockImages) Delete(ctx context.Context, publicID string) error {
	m.Deleted = append(m.Deleted, publicID)
	return nil
}

type MockCache struct {
	Entries     map[string][]models.PublicLawyer
	Invalidated int
}

func (m *MockCache) Get(ctx context.Context, c models.LawyerSearch) ([]models.PublicLawyer, bool) {
	p, ok := m.Entries[c.CacheKey()]
	return p, ok
}

func (m *MockCache) Set(ctx context.Context, c models.LawyerSearch, p []models.PublicLawyer) error {
	m.Entries[c.CacheKey()] = p
	return nil
}

func (m *MockCache) Invalidate(ctx context.Context) error {
	m.Invalidated++
	m.Entries = map[string][]models.PublicLawyer{}
	return nil
}

type fixture struct {
	svc     *DefaultLawyerService
	lawyers *MockLawyerStore
	users   *MockUserRepo
	images  *MockImages
	cache   *MockCache
}

func newFixture() *fixture {
	f := &fixture{
		lawyers: &MockLawyerStore{Profiles: map[string]*models.LawyerProfile{}, Verified: map[string]bool{}},
		users: &MockUserRepo{Users: map[string]*models.User{
			"u1": {ID: "u1", Name: "Asha"},
		}},
		images: &MockImages{},
		cache:  &MockCache{Entries: map[string][]models.PublicLawyer{}},
	}
	f.svc = NewLawyerService(f.lawyers, f.users, &MockReviewStore{}, f.images, f.cache, Config{ImageFolder: "profiles"}, nil)
	return f
}

var owner = models.Actor{UserID: "u1", Role: models.RoleClient}

func validInput() models.LawyerProfileInput {
	return models.LawyerProfileInput{
		BarNumber:       " MAH/123/2015 ",
		YearsExperience: 9,
		Specializations: []string{"Family Law", " family law ", "Property"},
		HourlyRate:      1999.999,
		Availability: []models.SlotInput{
			{DayOfWeek: 1, StartTime: "9:00", EndTime: "13:00"},
		},
	}
}

func TestOnboard(t *testing.T) {
	f := newFixture()

	p, err := f.svc.Onboard(context.Background(), owner, validInput())
	if err != nil {
		t.Fatalf("Onboard() error = %v", err)
	}
	if p.BarNumber != "MAH/123/2015" || p.Currency != "INR" || p.HourlyRate != 2000 {
		t.Errorf("profile = %+v", p)
	}
	if len(p.Specializations) != 2 {
		t.Errorf("Specializations = %v, want duplicates removed", p.Specializations)
	}
	if len(p.Availability) != 1 || p.Availability[0].StartTime != "09:00" {
		t.Errorf("Availability = %+v", p.Availability)
	}
	if !p.IsAvailable {
		t.Error("new profile should accept bookings")
	}
	if f.cache.Invalidated != 1 {
		t.Errorf("cache invalidations = %d, want 1", f.cache.Invalidated)
	}

	if _, err := f.svc.Onboard(context.Background(), owner, validInput()); !errors.Is(err, ErrAlreadyOnboarded) {
		t.Errorf("second Onboard() error = %v, want ErrAlreadyOnboarded", err)
	}
}

func TestOnboardRejectsBadSlots(t *testing.T) {
	f := newFixture()
	in := validInput()
	in.Availability = []models.SlotInput{{DayOfWeek: 1, StartTime: "13:00", EndTime: "09:00"}}

	if _, err := f.svc.Onboard(context.Background(), owner, in); !utils.IsKind(err, utils.KindValidation) {
		t.Errorf("Onboard() error = %v, want validation", err)
	}
	if len(f.lawyers.Profiles) != 0 {
		t.Error("profile created despite invalid slots")
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.UpdateProfile(context.Background(), owner, validInput()); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("UpdateProfile() without profile error = %v, want ErrNoProfile", err)
	}

	if _, err := f.svc.Onboard(context.Background(), owner, validInput()); err != nil {
		t.Fatal(err)
	}
	off := false
	in := validInput()
	in.IsAvailable = &off
	in.Currency = "usd"
	in.Availability = []models.SlotInput{
		{DayOfWeek: 2, StartTime: "10:00", EndTime: "12:00"},
		{DayOfWeek: 4, StartTime: "10:00", EndTime: "12:00"},
	}

	p, err := f.svc.UpdateProfile(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if p.IsAvailable || p.Currency != "USD" || len(p.Availability) != 2 {
		t.Errorf("profile = %+v", p)
	}
	if f.lawyers.ReplacedFor != p.ID {
		t.Error("slots were not replaced")
	}
}

func TestSearchUsesCache(t *testing.T) {
	f := newFixture()
	f.lawyers.Profiles["u1"] = &models.LawyerProfile{ID: "l1", UserID: "u1"}
	criteria := models.LawyerSearch{City: " Pune "}

	for i := 0; i < 3; i++ {
		got, err := f.svc.Search(context.Background(), criteria)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("len(Search()) = %d, want 1", len(got))
		}
	}
	if f.lawyers.Searches != 1 {
		t.Errorf("database searches = %d, want 1", f.lawyers.Searches)
	}

	_ = f.svc.Verify(context.Background(), models.Actor{UserID: "admin", Role: models.RoleAdmin}, "l1", true)
	if _, err := f.svc.Search(context.Background(), criteria); err != nil {
		t.Fatal(err)
	}
	if f.lawyers.Searches != 2 {
		t.Errorf("database searches after invalidation = %d, want 2", f.lawyers.Searches)
	}
}

func TestVerify(t *testing.T) {
	f := newFixture()
	f.lawyers.Profiles["u1"] = &models.LawyerProfile{ID: "l1", UserID: "u1"}
	admin := models.Actor{UserID: "admin", Role: models.RoleAdmin}

	if err := f.svc.Verify(context.Background(), owner, "l1", true); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("Verify() by non-admin error = %v, want ErrAdminOnly", err)
	}
	if err := f.svc.Verify(context.Background(), admin, "missing", true); !errors.Is(err, ErrLawyerNotFound) {
		t.Errorf("Verify(missing) error = %v, want ErrLawyerNotFound", err)
	}
	if err := f.svc.Verify(context.Background(), admin, "l1", true); err != nil || !f.lawyers.Verified["l1"] {
		t.Errorf("Verify() error = %v, verified = %v", err, f.lawyers.Verified["l1"])
	}
}

func TestGetDetail(t *testing.T) {
	f := newFixture()
	f.lawyers.Profiles["u1"] = &models.LawyerProfile{ID: "l1", UserID: "u1"}

	d, err := f.svc.GetDetail(context.Background(), "l1")
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}
	if d.Profile.ID != "l1" || len(d.Reviews) != 1 {
		t.Errorf("detail = %+v", d)
	}
	if _, err := f.svc.GetDetail(context.Background(), "nope"); !errors.Is(err, ErrLawyerNotFound) {
		t.Errorf("GetDetail(nope) error = %v", err)
	}
}

func TestUploadImageReplacesPrevious(t *testing.T) {
	f := newFixture()
	f.lawyers.Profiles["u1"] = &models.LawyerProfile{ID: "l1", UserID: "u1"}
	png := []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")

	first, err := f.svc.UploadImage(context.Background(), owner, bytes.NewReader(png))
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if first.ImagePublicID != "profiles/img-1" {
		t.Errorf("ImagePublicID = %q", first.ImagePublicID)
	}

	second, err := f.svc.UploadImage(context.Background(), owner, bytes.NewReader(png))
	if err != nil {
		t.Fatalf("second UploadImage() error = %v", err)
	}
	if second.ImagePublicID != "profiles/img-2" {
		t.Errorf("ImagePublicID = %q", second.ImagePublicID)
	}
	if len(f.images.Deleted) != 1 || f.images.Deleted[0] != "profiles/img-1" {
		t.Errorf("deleted = %v, want the first image", f.images.Deleted)
	}

	if _, err := f.svc.UploadImage(context.Background(), owner, bytes.NewReader([]byte("plain text"))); !errors.Is(err, storage.ErrImageType) {
		t.Errorf("UploadImage(text) error = %v, want ErrImageType", err)
	}

	cleared, err := f.svc.DeleteImage(context.Background(), owner)
	if err != nil {
		t.Fatalf("DeleteImage() error = %v", err)
	}
	if cleared.ImageURL != "" || len(f.images.Deleted) != 2 {
		t.Errorf("after delete user = %+v deleted = %v", cleared, f.images.Deleted)
	}
}
