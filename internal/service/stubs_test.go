package service

import (
	"context"
	"errors"
	"testing"

	"gamehaven/internal/events"
	"gamehaven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopPublisher returns a Publisher with no Redis client; publishes are no-ops.
func noopPublisher() *events.Publisher {
	return events.NewPublisher(nil, nil)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

// assertExpiredError asserts that err is an AppError with code EXPIRED.
func assertExpiredError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, "EXPIRED", appErr.Code)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsVerified: true}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// verificationRepoStub is a stub for repository.VerificationRepository.
type verificationRepoStub struct {
	createFn                func(context.Context, *models.VerificationCode) error
	latestByUserFn          func(context.Context, uint) (*models.VerificationCode, error)
	incrementAttemptsFn     func(context.Context, uint) error
	markVerifiedFn          func(context.Context, uint) error
	invalidateOutstandingFn func(context.Context, uint) error
}

func (s *verificationRepoStub) Create(ctx context.Context, code *models.VerificationCode) error {
	return s.createFn(ctx, code)
}
func (s *verificationRepoStub) LatestByUser(ctx context.Context, userID uint) (*models.VerificationCode, error) {
	return s.latestByUserFn(ctx, userID)
}
func (s *verificationRepoStub) IncrementAttempts(ctx context.Context, id uint) error {
	return s.incrementAttemptsFn(ctx, id)
}
func (s *verificationRepoStub) MarkVerified(ctx context.Context, id uint) error {
	return s.markVerifiedFn(ctx, id)
}
func (s *verificationRepoStub) InvalidateOutstanding(ctx context.Context, userID uint) error {
	return s.invalidateOutstandingFn(ctx, userID)
}

func noopVerificationRepo() *verificationRepoStub {
	return &verificationRepoStub{
		createFn:                func(_ context.Context, _ *models.VerificationCode) error { return nil },
		latestByUserFn:          func(_ context.Context, _ uint) (*models.VerificationCode, error) { return nil, nil },
		incrementAttemptsFn:     func(_ context.Context, _ uint) error { return nil },
		markVerifiedFn:          func(_ context.Context, _ uint) error { return nil },
		invalidateOutstandingFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// mailerStub records sent verification codes.
type mailerStub struct {
	sent []string
	err  error
}

func (m *mailerStub) SendVerificationCode(_ context.Context, _, _, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, code)
	return nil
}

// gameRepoStub is a stub for repository.GameRepository.
type gameRepoStub struct {
	createFn       func(context.Context, *models.Game) error
	getByIDFn      func(context.Context, uint, uint) (*models.Game, error)
	getForUpdateFn func(context.Context, uint) (*models.Game, error)
	listFn         func(context.Context, int, int, uint) ([]*models.Game, error)
	searchFn       func(context.Context, string, int, int, uint) ([]*models.Game, error)
	updateFn       func(context.Context, *models.Game) error
	deleteFn       func(context.Context, uint) error
}

func (s *gameRepoStub) Create(ctx context.Context, game *models.Game) error {
	return s.createFn(ctx, game)
}
func (s *gameRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Game, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *gameRepoStub) GetForUpdate(ctx context.Context, id uint) (*models.Game, error) {
	return s.getForUpdateFn(ctx, id)
}
func (s *gameRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Game, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *gameRepoStub) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Game, error) {
	return s.searchFn(ctx, query, limit, offset, currentUserID)
}
func (s *gameRepoStub) Update(ctx context.Context, game *models.Game) error {
	return s.updateFn(ctx, game)
}
func (s *gameRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopGameRepo() *gameRepoStub {
	return &gameRepoStub{
		createFn: func(_ context.Context, _ *models.Game) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Game, error) {
			return &models.Game{ID: id, Title: "Some Game"}, nil
		},
		getForUpdateFn: func(_ context.Context, id uint) (*models.Game, error) {
			return &models.Game{ID: id, Title: "Some Game"}, nil
		},
		listFn:   func(_ context.Context, _, _ int, _ uint) ([]*models.Game, error) { return nil, nil },
		searchFn: func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Game, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Game) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// reviewRepoStub is a stub for repository.ReviewRepository.
type reviewRepoStub struct {
	createFn              func(context.Context, *models.Review) error
	getByIDFn             func(context.Context, uint) (*models.Review, error)
	getByGameAndUserFn    func(context.Context, uint, uint) (*models.Review, error)
	listPublishedByGameFn func(context.Context, uint, int, int) ([]*models.Review, error)
	listByUserFn          func(context.Context, uint, int, int) ([]*models.Review, error)
	listPendingFn         func(context.Context, int, int) ([]*models.Review, error)
	updateFn              func(context.Context, *models.Review) error
	setPublishedFn        func(context.Context, uint, bool) error
	deleteFn              func(context.Context, uint) error
	countPendingFn        func(context.Context) (int64, error)
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) GetByGameAndUser(ctx context.Context, gameID, userID uint) (*models.Review, error) {
	return s.getByGameAndUserFn(ctx, gameID, userID)
}
func (s *reviewRepoStub) ListPublishedByGame(ctx context.Context, gameID uint, limit, offset int) ([]*models.Review, error) {
	return s.listPublishedByGameFn(ctx, gameID, limit, offset)
}
func (s *reviewRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *reviewRepoStub) ListPending(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	return s.listPendingFn(ctx, limit, offset)
}
func (s *reviewRepoStub) Update(ctx context.Context, review *models.Review) error {
	return s.updateFn(ctx, review)
}
func (s *reviewRepoStub) SetPublished(ctx context.Context, id uint, published bool) error {
	return s.setPublishedFn(ctx, id, published)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *reviewRepoStub) CountPending(ctx context.Context) (int64, error) {
	return s.countPendingFn(ctx)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn:           func(_ context.Context, _ *models.Review) error { return nil },
		getByIDFn:          func(_ context.Context, id uint) (*models.Review, error) { return &models.Review{ID: id}, nil },
		getByGameAndUserFn: func(_ context.Context, _, _ uint) (*models.Review, error) { return nil, nil },
		listPublishedByGameFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Review, error) {
			return nil, nil
		},
		listByUserFn:   func(_ context.Context, _ uint, _, _ int) ([]*models.Review, error) { return nil, nil },
		listPendingFn:  func(_ context.Context, _, _ int) ([]*models.Review, error) { return nil, nil },
		updateFn:       func(_ context.Context, _ *models.Review) error { return nil },
		setPublishedFn: func(_ context.Context, _ uint, _ bool) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		countPendingFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// blogRepoStub is a stub for repository.BlogRepository.
type blogRepoStub struct {
	createFn        func(context.Context, *models.Blog) error
	getByIDFn       func(context.Context, uint) (*models.Blog, error)
	listPublishedFn func(context.Context, string, int, int) ([]*models.Blog, error)
	listByUserFn    func(context.Context, uint, int, int) ([]*models.Blog, error)
	listPendingFn   func(context.Context, int, int) ([]*models.Blog, error)
	updateFn        func(context.Context, *models.Blog) error
	setPublishedFn  func(context.Context, uint, bool) error
	deleteFn        func(context.Context, uint) error
	countPendingFn  func(context.Context) (int64, error)
}

func (s *blogRepoStub) Create(ctx context.Context, blog *models.Blog) error {
	return s.createFn(ctx, blog)
}
func (s *blogRepoStub) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *blogRepoStub) ListPublished(ctx context.Context, category string, limit, offset int) ([]*models.Blog, error) {
	return s.listPublishedFn(ctx, category, limit, offset)
}
func (s *blogRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Blog, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *blogRepoStub) ListPending(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	return s.listPendingFn(ctx, limit, offset)
}
func (s *blogRepoStub) Update(ctx context.Context, blog *models.Blog) error {
	return s.updateFn(ctx, blog)
}
func (s *blogRepoStub) SetPublished(ctx context.Context, id uint, published bool) error {
	return s.setPublishedFn(ctx, id, published)
}
func (s *blogRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *blogRepoStub) CountPending(ctx context.Context) (int64, error) {
	return s.countPendingFn(ctx)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		createFn:        func(_ context.Context, _ *models.Blog) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Blog, error) { return &models.Blog{ID: id}, nil },
		listPublishedFn: func(_ context.Context, _ string, _, _ int) ([]*models.Blog, error) { return nil, nil },
		listByUserFn:    func(_ context.Context, _ uint, _, _ int) ([]*models.Blog, error) { return nil, nil },
		listPendingFn:   func(_ context.Context, _, _ int) ([]*models.Blog, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Blog) error { return nil },
		setPublishedFn:  func(_ context.Context, _ uint, _ bool) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		countPendingFn:  func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByBlogFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByBlog(ctx context.Context, blogID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByBlogFn(ctx, blogID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByBlogFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// favoriteRepoStub is a stub for repository.FavoriteRepository.
type favoriteRepoStub struct {
	isFavoritedFn func(context.Context, uint, uint) (bool, error)
	favoriteFn    func(context.Context, uint, uint) error
	unfavoriteFn  func(context.Context, uint, uint) error
	listByUserFn  func(context.Context, uint, int, int) ([]models.Favorite, error)
}

func (s *favoriteRepoStub) IsFavorited(ctx context.Context, userID, gameID uint) (bool, error) {
	return s.isFavoritedFn(ctx, userID, gameID)
}
func (s *favoriteRepoStub) Favorite(ctx context.Context, userID, gameID uint) error {
	return s.favoriteFn(ctx, userID, gameID)
}
func (s *favoriteRepoStub) Unfavorite(ctx context.Context, userID, gameID uint) error {
	return s.unfavoriteFn(ctx, userID, gameID)
}
func (s *favoriteRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Favorite, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}

func noopFavoriteRepo() *favoriteRepoStub {
	return &favoriteRepoStub{
		isFavoritedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		favoriteFn:    func(_ context.Context, _, _ uint) error { return nil },
		unfavoriteFn:  func(_ context.Context, _, _ uint) error { return nil },
		listByUserFn:  func(_ context.Context, _ uint, _, _ int) ([]models.Favorite, error) { return nil, nil },
	}
}

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	createFn        func(context.Context, *models.Group) error
	getByIDFn       func(context.Context, uint) (*models.Group, error)
	getBySlugFn     func(context.Context, string) (*models.Group, error)
	listFn          func(context.Context, int, int) ([]*models.Group, error)
	updateFn        func(context.Context, *models.Group) error
	deleteFn        func(context.Context, uint) error
	joinFn          func(context.Context, uint, uint, models.GroupRole) error
	leaveFn         func(context.Context, uint, uint) error
	getMembershipFn func(context.Context, uint, uint) (*models.GroupMembership, error)
	listMembersFn   func(context.Context, uint, int, int) ([]models.GroupMembership, error)
	listByUserFn    func(context.Context, uint) ([]models.GroupMembership, error)
}

func (s *groupRepoStub) Create(ctx context.Context, group *models.Group) error {
	return s.createFn(ctx, group)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *groupRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Group, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *groupRepoStub) Update(ctx context.Context, group *models.Group) error {
	return s.updateFn(ctx, group)
}
func (s *groupRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *groupRepoStub) Join(ctx context.Context, groupID, userID uint, role models.GroupRole) error {
	return s.joinFn(ctx, groupID, userID, role)
}
func (s *groupRepoStub) Leave(ctx context.Context, groupID, userID uint) error {
	return s.leaveFn(ctx, groupID, userID)
}
func (s *groupRepoStub) GetMembership(ctx context.Context, groupID, userID uint) (*models.GroupMembership, error) {
	return s.getMembershipFn(ctx, groupID, userID)
}
func (s *groupRepoStub) ListMembers(ctx context.Context, groupID uint, limit, offset int) ([]models.GroupMembership, error) {
	return s.listMembersFn(ctx, groupID, limit, offset)
}
func (s *groupRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.GroupMembership, error) {
	return s.listByUserFn(ctx, userID)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createFn: func(_ context.Context, _ *models.Group) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Group, error) {
			return &models.Group{ID: id, OwnerID: 1}, nil
		},
		getBySlugFn:     func(_ context.Context, _ string) (*models.Group, error) { return nil, nil },
		listFn:          func(_ context.Context, _, _ int) ([]*models.Group, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Group) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		joinFn:          func(_ context.Context, _, _ uint, _ models.GroupRole) error { return nil },
		leaveFn:         func(_ context.Context, _, _ uint) error { return nil },
		getMembershipFn: func(_ context.Context, _, _ uint) (*models.GroupMembership, error) { return nil, nil },
		listMembersFn:   func(_ context.Context, _ uint, _, _ int) ([]models.GroupMembership, error) { return nil, nil },
		listByUserFn:    func(_ context.Context, _ uint) ([]models.GroupMembership, error) { return nil, nil },
	}
}
