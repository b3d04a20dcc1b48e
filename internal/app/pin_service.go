package app

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"pinboard/internal/cache"
	"pinboard/internal/model"
	"pinboard/internal/repository"
)

var (
	ErrPinNotFound  = errors.New("no pins found")
	ErrAlreadyLiked = errors.New("you already liked this pin")
	ErrNotVerified  = errors.New("email not verified, please verify to continue")
	ErrImageUpload  = errors.New("image upload failed")
)

// ImageUploader stores raw image bytes and returns a public URL.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

type PinService struct {
	pinRepo  *repository.PinRepository
	userRepo *repository.UserRepository
	explore  *cache.ExploreCache
	images   ImageUploader
}

type CreatePinInput struct {
	Image       string
	Title       string
	Description string
	Tags        []string
}

type UpdatePinInput struct {
	Image       string
	Title       string
	Description string
	Tags        []string
}

// PageResult is the windowed listing envelope.
type PageResult struct {
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
	Pins        []model.Pin `json:"pins"`
}

func NewPinService(
	pinRepo *repository.PinRepository,
	userRepo *repository.UserRepository,
	explore *cache.ExploreCache,
	images ImageUploader,
) *PinService {
	return &PinService{
		pinRepo:  pinRepo,
		userRepo: userRepo,
		explore:  explore,
		images:   images,
	}
}

// Create requires a verified account. A non-URL image payload is treated as
// base64 data and pushed to the image store.
func (s *PinService) Create(ctx context.Context, userID uint, input CreatePinInput) (*model.Pin, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	title := strings.TrimSpace(input.Title)
	image := strings.TrimSpace(input.Image)
	if title == "" || image == "" || len(title) > 30 || len(input.Description) > 300 {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	imageURL, err := s.resolveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	pin := &model.Pin{
		UserID:      userID,
		Image:       imageURL,
		Title:       title,
		Description: input.Description,
		Tags:        model.StringList(tags),
		Likes:       model.StringList{},
	}
	if err := s.pinRepo.Create(pin); err != nil {
		return nil, err
	}
	return pin, nil
}

func (s *PinService) resolveImage(ctx context.Context, image string) (string, error) {
	if strings.HasPrefix(image, "http") {
		return image, nil
	}
	if s.images == nil {
		return "", ErrImageUpload
	}

	contentType := "image/jpeg"
	payload := image
	if strings.HasPrefix(image, "data:") {
		meta, data, found := strings.Cut(image, ",")
		if !found {
			return "", ErrImageUpload
		}
		payload = data
		contentType = strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrImageUpload
	}

	url, err := s.images.Upload(ctx, raw, contentType)
	if err != nil {
		return "", ErrImageUpload
	}
	return url, nil
}

func (s *PinService) Get(id uint) (*model.Pin, error) {
	pin, err := s.pinRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, ErrPinNotFound
	}
	return pin, nil
}

// Paginate treats an empty page as a reportable condition, not a silent
// empty list.
func (s *PinService) Paginate(params repository.PaginateParams) ([]model.Pin, error) {
	pins, err := s.pinRepo.Paginate(params)
	if err != nil {
		return nil, err
	}
	if len(pins) == 0 {
		return nil, ErrPinNotFound
	}
	return pins, nil
}

// RandomExplore samples the whole collection, windows the sample, and
// caches the window. The second return reports a cache hit; cached payloads
// come back as raw JSON.
func (s *PinService) RandomExplore(ctx context.Context, page, limit int) (interface{}, bool, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	if cached, ok, err := s.explore.GetRandomPins(ctx, page, limit); err != nil {
		log.Printf("random pins cache read failed: %v", err)
	} else if ok {
		return json.RawMessage(cached), true, nil
	}

	count, err := s.pinRepo.Count()
	if err != nil {
		return nil, false, err
	}

	pins, err := s.pinRepo.ListRandom()
	if err != nil {
		return nil, false, err
	}

	window := windowPins(pins, page, limit)
	if len(window) == 0 {
		return nil, false, ErrPinNotFound
	}

	result := &PageResult{
		CurrentPage: page,
		TotalPages:  totalPages(count, limit),
		Pins:        window,
	}
	if err := s.explore.SetRandomPins(ctx, page, limit, result); err != nil {
		log.Printf("random pins cache write failed: %v", err)
	}
	return result, false, nil
}

func (s *PinService) ListByUser(userID uint, page, limit int) (*PageResult, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	pins, count, err := s.pinRepo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &PageResult{
		CurrentPage: normalizePage(page),
		TotalPages:  totalPages(count, normalizeLimit(limit)),
		Pins:        pins,
	}, nil
}

func (s *PinService) ListLikedBy(userID uint, page, limit int) (*PageResult, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	pins, count, err := s.pinRepo.ListLikedBy(userID, page, limit)
	if err != nil {
		return nil, err
	}
	if len(pins) == 0 {
		return nil, ErrPinNotFound
	}
	return &PageResult{
		CurrentPage: normalizePage(page),
		TotalPages:  totalPages(count, normalizeLimit(limit)),
		Pins:        pins,
	}, nil
}

// FollowedFeed lists pins from the user and everyone they follow.
func (s *PinService) FollowedFeed(userID uint, page, limit int) (*PageResult, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	pins, count, err := s.pinRepo.ListFeed(userID, user.Following, page, limit)
	if err != nil {
		return nil, err
	}
	return &PageResult{
		CurrentPage: normalizePage(page),
		TotalPages:  totalPages(count, normalizeLimit(limit)),
		Pins:        pins,
	}, nil
}

// Related samples ten random pins and keeps those sharing at least one tag
// with the given pin.
func (s *PinService) Related(id uint) ([]model.Pin, error) {
	pin, err := s.pinRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, ErrPinNotFound
	}

	sample, err := s.pinRepo.SampleRandom(10)
	if err != nil {
		return nil, err
	}

	return relatedPins(sample, pin.Tags), nil
}

func relatedPins(sample []model.Pin, tags model.StringList) []model.Pin {
	related := []model.Pin{}
	for _, candidate := range sample {
		if sharesTag(candidate.Tags, tags) {
			related = append(related, candidate)
		}
	}
	return related
}

// Like rejects a second like from the same user.
func (s *PinService) Like(pinID, userID uint) (*model.Pin, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	pin, err := s.pinRepo.GetByID(pinID)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, ErrPinNotFound
	}

	liker := repository.IDString(userID)
	if pin.Likes.Contains(liker) {
		return nil, ErrAlreadyLiked
	}
	return s.pinRepo.UpdateLikes(pinID, pin.Likes.AddUnique(liker))
}

// Dislike removes the user from the like set without a membership
// pre-check; removing an absent member is a no-op.
func (s *PinService) Dislike(pinID, userID uint) (*model.Pin, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	pin, err := s.pinRepo.GetByID(pinID)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, ErrPinNotFound
	}

	return s.pinRepo.UpdateLikes(pinID, pin.Likes.Remove(repository.IDString(userID)))
}

func (s *PinService) Update(pinID, actingUserID uint, input UpdatePinInput) (*model.Pin, error) {
	pin, err := s.pinRepo.GetByID(pinID)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, ErrPinNotFound
	}
	if err := assertOwner(pin.UserID, actingUserID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if v := strings.TrimSpace(input.Title); v != "" {
		if len(v) > 30 {
			return nil, ErrInvalidInput
		}
		fields["title"] = v
	}
	if v := strings.TrimSpace(input.Description); v != "" {
		if len(v) > 300 {
			return nil, ErrInvalidInput
		}
		fields["description"] = v
	}
	if v := strings.TrimSpace(input.Image); v != "" {
		fields["image"] = v
	}
	if input.Tags != nil {
		fields["tags"] = model.StringList(input.Tags)
	}
	if len(fields) == 0 {
		return nil, ErrInvalidInput
	}

	return s.pinRepo.UpdateFields(pinID, fields)
}

// Delete cascades to the pin's comments.
func (s *PinService) Delete(pinID, actingUserID uint) (*model.Pin, error) {
	pin, err := s.pinRepo.GetByID(pinID)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, ErrPinNotFound
	}
	if err := assertOwner(pin.UserID, actingUserID); err != nil {
		return nil, err
	}

	if err := s.pinRepo.DeleteCascade(pinID); err != nil {
		return nil, err
	}
	return pin, nil
}

// windowPins slices one page out of an already-ordered sample. Pages past
// the end come back empty rather than erroring.
func windowPins(pins []model.Pin, page, limit int) []model.Pin {
	skip := (page - 1) * limit
	if skip > len(pins) {
		skip = len(pins)
	}
	end := skip + limit
	if end > len(pins) {
		end = len(pins)
	}
	return pins[skip:end]
}

func sharesTag(a, b model.StringList) bool {
	for _, tag := range a {
		if b.Contains(tag) {
			return true
		}
	}
	return false
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizeLimit(limit int) int {
	if limit < 1 {
		return 10
	}
	return limit
}

func totalPages(count int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := count / int64(limit)
	if count%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
