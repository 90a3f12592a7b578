package repository

import (
	"context"
	"errors"

	"gamehaven/internal/cache"
	"gamehaven/internal/models"

	"gorm.io/gorm"
)

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	ListPublished(ctx context.Context, category string, limit, offset int) ([]*models.Blog, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Blog, error)
	ListPending(ctx context.Context, limit, offset int) ([]*models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	SetPublished(ctx context.Context, id uint, published bool) error
	Delete(ctx context.Context, id uint) error
	CountPending(ctx context.Context) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// withCommentsCount adds a subquery counting live comments per blog.
func (r *blogRepository) withCommentsCount(db *gorm.DB) *gorm.DB {
	return db.Select("blogs.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.blog_id = blogs.id AND comments.deleted_at IS NULL) as comments_count")
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	err := r.withCommentsCount(r.db.WithContext(ctx).Model(&models.Blog{})).
		Preload("User").
		First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &blog, nil
}

func (r *blogRepository) ListPublished(ctx context.Context, category string, limit, offset int) ([]*models.Blog, error) {
	var blogs []*models.Blog

	fetch := func() error {
		query := r.withCommentsCount(r.db.WithContext(ctx).Model(&models.Blog{})).
			Preload("User").
			Where("blogs.published = ?", true)
		if category != "" {
			query = query.Where("blogs.category = ?", category)
		}
		err := query.
			Order("blogs.created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&blogs).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// The uncategorized first page is the blog landing query.
	if category == "" && offset == 0 {
		if err := cache.Aside(ctx, cache.BlogsListKey(limit), &blogs, cache.ListTTL, fetch); err != nil {
			return nil, err
		}
		return blogs, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.withCommentsCount(r.db.WithContext(ctx).Model(&models.Blog{})).
		Where("blogs.user_id = ?", userID).
		Order("blogs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) ListPending(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.withCommentsCount(r.db.WithContext(ctx).Model(&models.Blog{})).
		Preload("User").
		Where("blogs.published = ?", false).
		Order("blogs.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlogsList(ctx)
	return nil
}

func (r *blogRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("id = ?", id).
		Update("published", published)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Blog", id)
	}
	cache.InvalidateBlogsList(ctx)
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Blog{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Blog", id)
	}
	cache.InvalidateBlogsList(ctx)
	return nil
}

func (r *blogRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("published = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
