package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pinboard/internal/model"
)

// Columns a caller-supplied filter or sort may touch. Anything else in the
// query string is dropped instead of reaching the SQL layer.
var (
	filterableColumns = map[string]bool{
		"user_id":     true,
		"title":       true,
		"description": true,
		"image":       true,
	}
	sortableColumns = map[string]bool{
		"created_at": true,
		"updated_at": true,
		"title":      true,
		"id":         true,
	}
)

type PaginateParams struct {
	PageNumber int
	PageSize   int
	Filter     map[string]string
	SortField  string
	SortDir    string
	Search     string
}

// Normalize applies the defaults: page 1, size 10, created_at descending.
func (p *PaginateParams) Normalize() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.SortField == "" || !sortableColumns[p.SortField] {
		p.SortField = "created_at"
		p.SortDir = "desc"
	}
	if p.SortDir != "asc" && p.SortDir != "desc" {
		p.SortDir = "desc"
	}
}

func (p *PaginateParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

type PinRepository struct {
	db *gorm.DB
}

func NewPinRepository(db *gorm.DB) *PinRepository {
	return &PinRepository{db: db}
}

func (r *PinRepository) Create(pin *model.Pin) error {
	if err := r.db.Create(pin).Error; err != nil {
		return fmt.Errorf("create pin failed: %w", err)
	}
	return nil
}

func (r *PinRepository) GetByID(id uint) (*model.Pin, error) {
	var pin model.Pin
	if err := r.db.First(&pin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query pin by id failed: %w", err)
	}
	return &pin, nil
}

// Paginate sorts first, then skips and limits, so pages are stable for a
// fixed sort key. Search narrows on the title only.
func (r *PinRepository) Paginate(params PaginateParams) ([]model.Pin, error) {
	params.Normalize()

	query := r.db.Model(&model.Pin{})
	for column, value := range params.Filter {
		if filterableColumns[column] {
			query = query.Where(fmt.Sprintf("%s = ?", column), value)
		}
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
	}

	var pins []model.Pin
	err := query.
		Order(fmt.Sprintf("%s %s", params.SortField, strings.ToUpper(params.SortDir))).
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&pins).Error
	if err != nil {
		return nil, fmt.Errorf("paginate pins failed: %w", err)
	}
	return pins, nil
}

func (r *PinRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Pin{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count pins failed: %w", err)
	}
	return count, nil
}

// ListRandom returns the whole collection in random order; the caller
// windows the sample.
func (r *PinRepository) ListRandom() ([]model.Pin, error) {
	var pins []model.Pin
	if err := r.db.Order("RAND()").Find(&pins).Error; err != nil {
		return nil, fmt.Errorf("list random pins failed: %w", err)
	}
	return pins, nil
}

// SampleRandom returns up to limit pins in random order.
func (r *PinRepository) SampleRandom(limit int) ([]model.Pin, error) {
	var pins []model.Pin
	if err := r.db.Order("RAND()").Limit(limit).Find(&pins).Error; err != nil {
		return nil, fmt.Errorf("sample random pins failed: %w", err)
	}
	return pins, nil
}

func (r *PinRepository) ListByUser(userID uint, page, limit int) ([]model.Pin, int64, error) {
	params := PaginateParams{PageNumber: page, PageSize: limit}
	params.Normalize()

	var count int64
	if err := r.db.Model(&model.Pin{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count user pins failed: %w", err)
	}

	var pins []model.Pin
	err := r.db.Where("user_id = ?", userID).
		Order("id DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&pins).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list user pins failed: %w", err)
	}
	return pins, count, nil
}

// ListLikedBy returns pins whose like set contains the user id.
func (r *PinRepository) ListLikedBy(userID uint, page, limit int) ([]model.Pin, int64, error) {
	params := PaginateParams{PageNumber: page, PageSize: limit}
	params.Normalize()

	likedBy := datatypes.JSONArrayQuery("likes").Contains(IDString(userID))

	var count int64
	if err := r.db.Model(&model.Pin{}).Where(likedBy).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count liked pins failed: %w", err)
	}

	var pins []model.Pin
	err := r.db.Where(likedBy).
		Order("id DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&pins).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list liked pins failed: %w", err)
	}
	return pins, count, nil
}

// ListFeed returns pins authored by the user or anyone in authorIDs.
func (r *PinRepository) ListFeed(userID uint, authorIDs []string, page, limit int) ([]model.Pin, int64, error) {
	params := PaginateParams{PageNumber: page, PageSize: limit}
	params.Normalize()

	query := r.db.Model(&model.Pin{})
	if len(authorIDs) > 0 {
		query = query.Where("user_id IN ? OR user_id = ?", authorIDs, userID)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count feed pins failed: %w", err)
	}

	var pins []model.Pin
	err := query.
		Order("id DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&pins).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list feed pins failed: %w", err)
	}
	return pins, count, nil
}

func (r *PinRepository) ListAll() ([]model.Pin, error) {
	var pins []model.Pin
	if err := r.db.Find(&pins).Error; err != nil {
		return nil, fmt.Errorf("list pins failed: %w", err)
	}
	return pins, nil
}

// SearchText matches the query case-insensitively against title and
// description, or any of the given tag tokens against the tag set.
func (r *PinRepository) SearchText(query string, tags []string) ([]model.Pin, error) {
	db := r.db.Model(&model.Pin{})

	if len(tags) > 0 {
		var cond *gorm.DB
		for _, tag := range tags {
			match := r.db.Where(datatypes.JSONArrayQuery("tags").Contains(tag))
			if cond == nil {
				cond = match
			} else {
				cond = cond.Or(match)
			}
		}
		db = db.Where(cond)
	} else {
		pattern := "%" + query + "%"
		db = db.Where(
			r.db.Where("LOWER(title) LIKE LOWER(?)", pattern).
				Or("LOWER(description) LIKE LOWER(?)", pattern).
				Or(datatypes.JSONArrayQuery("tags").Contains(query)),
		)
	}

	var pins []model.Pin
	if err := db.Find(&pins).Error; err != nil {
		return nil, fmt.Errorf("search pins failed: %w", err)
	}
	return pins, nil
}

func (r *PinRepository) UpdateFields(id uint, fields map[string]interface{}) (*model.Pin, error) {
	if len(fields) > 0 {
		if err := r.db.Model(&model.Pin{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("update pin failed: %w", err)
		}
	}
	return r.GetByID(id)
}

func (r *PinRepository) UpdateLikes(id uint, likes model.StringList) (*model.Pin, error) {
	if err := r.db.Model(&model.Pin{}).Where("id = ?", id).Update("likes", likes).Error; err != nil {
		return nil, fmt.Errorf("update pin likes failed: %w", err)
	}
	return r.GetByID(id)
}

// DeleteCascade removes the pin's comments first, then the pin, in one
// transaction.
func (r *PinRepository) DeleteCascade(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pin_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return fmt.Errorf("delete pin comments failed: %w", err)
		}
		if err := tx.Delete(&model.Pin{}, id).Error; err != nil {
			return fmt.Errorf("delete pin failed: %w", err)
		}
		return nil
	})
	return err
}
