package server

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"gamehaven/internal/database"
	"gamehaven/internal/events"
	"gamehaven/internal/models"
	"gamehaven/internal/repository"
	"gamehaven/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupModerationServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	reviewRepo := repository.NewReviewRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	userRepo := repository.NewUserRepository(db)
	publisher := events.NewPublisher(nil, nil)

	s := &Server{
		db:                db,
		moderationService: service.NewModerationService(reviewRepo, blogRepo, userRepo, publisher),
	}
	return s, db
}

// newModerationApp wires the moderation routes the way SetupRoutes does,
// injecting the caller's user ID directly instead of a JWT.
func newModerationApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	mod := app.Group("/api/moderation", func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}, s.ModeratorRequired())

	mod.Get("/reviews", s.GetPendingReviews)
	mod.Post("/reviews/:id/approve", s.ApproveReview)
	mod.Post("/reviews/:id/reject", s.RejectReview)
	mod.Get("/blogs", s.GetPendingBlogs)
	mod.Post("/blogs/:id/approve", s.ApproveBlog)
	mod.Post("/blogs/:id/reject", s.RejectBlog)
	mod.Get("/stats", s.GetModerationStats)
	return app
}

func seedModerationFixtures(t *testing.T, db *gorm.DB) (moderator, author models.User, game models.Game) {
	t.Helper()
	moderator = models.User{Username: "mod", Email: "mod@example.com", Password: "x", IsModerator: true, IsVerified: true}
	require.NoError(t, db.Create(&moderator).Error)
	author = models.User{Username: "author", Email: "author@example.com", Password: "x", IsVerified: true}
	require.NoError(t, db.Create(&author).Error)
	game = models.Game{Title: "Hollow Knight", Developer: "Team Cherry"}
	require.NoError(t, db.Create(&game).Error)
	return moderator, author, game
}

func TestApproveReviewHandler_Publishes(t *testing.T) {
	s, db := setupModerationServer(t)
	moderator, author, game := seedModerationFixtures(t, db)

	review := models.Review{GameID: game.ID, UserID: author.ID, Rating: 4, Text: "solid"}
	require.NoError(t, db.Create(&review).Error)

	app := newModerationApp(s, moderator.ID)

	// Pending queue shows the review.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/moderation/reviews", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var pending []models.Review
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pending))
	require.Len(t, pending, 1)

	resp, err = app.Test(httptest.NewRequest("POST", "/api/moderation/reviews/1/approve", nil))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Review
	require.NoError(t, db.First(&got, review.ID).Error)
	assert.True(t, got.Published)
}

func TestRejectReviewHandler_Deletes(t *testing.T) {
	s, db := setupModerationServer(t)
	moderator, author, game := seedModerationFixtures(t, db)

	review := models.Review{GameID: game.ID, UserID: author.ID, Rating: 1, Text: "spam"}
	require.NoError(t, db.Create(&review).Error)

	app := newModerationApp(s, moderator.ID)
	resp, err := app.Test(httptest.NewRequest("POST", "/api/moderation/reviews/1/reject", nil))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Review{}).Count(&count).Error)
	assert.Zero(t, count, "rejection is a hard delete")
}

func TestRejectReviewHandler_PublishedIs400(t *testing.T) {
	s, db := setupModerationServer(t)
	moderator, author, game := seedModerationFixtures(t, db)

	review := models.Review{GameID: game.ID, UserID: author.ID, Rating: 5, Text: "ok", Published: true}
	require.NoError(t, db.Create(&review).Error)

	app := newModerationApp(s, moderator.ID)
	resp, err := app.Test(httptest.NewRequest("POST", "/api/moderation/reviews/1/reject", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestModerationRoutes_NonModeratorForbidden(t *testing.T) {
	s, db := setupModerationServer(t)
	_, author, _ := seedModerationFixtures(t, db)

	app := newModerationApp(s, author.ID)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/moderation/reviews", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestApproveBlogHandler(t *testing.T) {
	s, db := setupModerationServer(t)
	moderator, author, _ := seedModerationFixtures(t, db)

	blog := models.Blog{UserID: author.ID, Title: "My first post", Content: "hello", Category: "news"}
	require.NoError(t, db.Create(&blog).Error)

	app := newModerationApp(s, moderator.ID)
	resp, err := app.Test(httptest.NewRequest("POST", "/api/moderation/blogs/1/approve", nil))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Blog
	require.NoError(t, db.First(&got, blog.ID).Error)
	assert.True(t, got.Published)
}

func TestModerationStatsHandler(t *testing.T) {
	s, db := setupModerationServer(t)
	moderator, author, game := seedModerationFixtures(t, db)

	require.NoError(t, db.Create(&models.Review{GameID: game.ID, UserID: author.ID, Rating: 3, Text: "a"}).Error)
	require.NoError(t, db.Create(&models.Blog{UserID: author.ID, Title: "pending post", Content: "b", Category: "news"}).Error)
	require.NoError(t, db.Create(&models.Blog{UserID: author.ID, Title: "live post", Content: "c", Category: "news", Published: true}).Error)

	app := newModerationApp(s, moderator.ID)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/moderation/stats", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats service.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, int64(1), stats.PendingReviews)
	assert.Equal(t, int64(1), stats.PendingBlogs)
}
