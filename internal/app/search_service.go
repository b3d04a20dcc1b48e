package app

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"

	"pinboard/internal/cache"
	"pinboard/internal/model"
	"pinboard/internal/repository"
)

var ErrTagIndex = errors.New("tag index out of range")

const tagSampleSize = 40

type SearchService struct {
	pinRepo  *repository.PinRepository
	userRepo *repository.UserRepository
	explore  *cache.ExploreCache
}

// SearchResult is the heterogeneous union of matching users and pins.
type SearchResult struct {
	Users []model.User `json:"users"`
	Pins  []model.Pin  `json:"pins"`
}

func NewSearchService(
	pinRepo *repository.PinRepository,
	userRepo *repository.UserRepository,
	explore *cache.ExploreCache,
) *SearchService {
	return &SearchService{
		pinRepo:  pinRepo,
		userRepo: userRepo,
		explore:  explore,
	}
}

// Search treats a comma-separated query as literal tag tokens; otherwise
// the query matches usernames and pin title/description/tags as a
// case-insensitive substring.
func (s *SearchService) Search(query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}

	var tags []string
	if strings.Contains(query, ",") {
		for _, token := range strings.Split(query, ",") {
			if token = strings.TrimSpace(token); token != "" {
				tags = append(tags, token)
			}
		}
	}

	users, err := s.userRepo.SearchByUsername(query)
	if err != nil {
		return nil, err
	}
	pins, err := s.pinRepo.SearchText(query, tags)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Users: users, Pins: pins}, nil
}

// Flatten returns users and pins as one sequence, users first.
func (r *SearchResult) Flatten() []interface{} {
	combined := make([]interface{}, 0, len(r.Users)+len(r.Pins))
	for i := range r.Users {
		combined = append(combined, r.Users[i])
	}
	for i := range r.Pins {
		combined = append(combined, r.Pins[i])
	}
	return combined
}

// Tags derives the explore tag list: flatten every pin's tags, shuffle,
// truncate to 40, then drop duplicates and blank entries. Truncation runs
// before deduplication, so the result can fall short of 40 distinct tags.
// The second return reports a cache hit.
func (s *SearchService) Tags(ctx context.Context) ([]string, bool, error) {
	if cached, ok, err := s.explore.GetTags(ctx); err != nil {
		log.Printf("tags cache read failed: %v", err)
	} else if ok {
		return cached, true, nil
	}

	pins, err := s.pinRepo.ListAll()
	if err != nil {
		return nil, false, err
	}

	tags := sampleTags(pins, tagSampleSize)
	if err := s.explore.SetTags(ctx, tags); err != nil {
		log.Printf("tags cache write failed: %v", err)
	}
	return tags, false, nil
}

func sampleTags(pins []model.Pin, limit int) []string {
	flattened := []string{}
	for _, pin := range pins {
		flattened = append(flattened, pin.Tags...)
	}

	rand.Shuffle(len(flattened), func(i, j int) {
		flattened[i], flattened[j] = flattened[j], flattened[i]
	})
	if len(flattened) > limit {
		flattened = flattened[:limit]
	}

	seen := map[string]bool{}
	result := []string{}
	for _, tag := range flattened {
		if strings.TrimSpace(tag) == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}

// DeleteTag splices one tag out of a pin's tag list, owner only.
func (s *SearchService) DeleteTag(pinID, actingUserID uint, index int) (*model.Pin, error) {
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
	if index < 0 || index >= len(pin.Tags) {
		return nil, ErrTagIndex
	}

	tags := make(model.StringList, 0, len(pin.Tags)-1)
	tags = append(tags, pin.Tags[:index]...)
	tags = append(tags, pin.Tags[index+1:]...)

	return s.pinRepo.UpdateFields(pinID, map[string]interface{}{"tags": tags})
}
