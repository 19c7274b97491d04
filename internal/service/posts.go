package service

import (
	"context"
	"strings"

	"github.com/localroots/marketplace/internal/models"
	"gorm.io/gorm"
)

const maxPostList = 500

// PostInput carries story fields from a request. Nil fields are unset.
type PostInput struct {
	Title    *string
	Excerpt  *string
	Category *string
	Image    *string
	Author   *string
	Date     *string
	Tags     []string
	Content  []string
}

// PostService manages stories.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// List returns stories, newest first, optionally filtered by category and
// a case-insensitive title search.
func (s *PostService) List(ctx context.Context, category, q string) ([]models.Post, error) {
	query := s.db.WithContext(ctx).Model(&models.Post{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if q = strings.TrimSpace(q); q != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Limit(maxPostList).Find(&posts).Error; err != nil {
		return nil, storeError(err, "")
	}
	return posts, nil
}

// Get returns a single story.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if err = storeError(err, ""); err == ErrNotFound {
			return nil, notFound("Post not found")
		}
		return nil, err
	}
	return &post, nil
}

// Create stores a story. A title is required.
func (s *PostService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, invalid("Missing title")
	}
	post := models.Post{
		Category: "Platform Updates",
		Author:   "Local Roots",
		Tags:     []string{},
		Content:  []string{},
	}
	applyPostInput(&post, in)

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, storeError(err, "")
	}
	return &post, nil
}

// Update sets every provided field of a story.
func (s *PostService) Update(ctx context.Context, id string, in PostInput) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, invalid("Missing title")
	}
	applyPostInput(post, in)

	if err := s.db.WithContext(ctx).Save(post).Error; err != nil {
		return nil, storeError(err, "")
	}
	return post, nil
}

// Delete removes a story.
func (s *PostService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if result.Error != nil {
		return storeError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return notFound("Post not found")
	}
	return nil
}

func applyPostInput(p *models.Post, in PostInput) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Author != nil {
		p.Author = *in.Author
	}
	if in.Date != nil {
		p.Date = *in.Date
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.Content != nil {
		p.Content = in.Content
	}
}
