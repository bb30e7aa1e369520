package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/queue"
	"inkpress/internal/repository"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// The services depend on the repository INTERFACES, not on the sqlx
// implementations, so tests swap in mocks with per-test behavior. Each method
// delegates to an optional function field; unset fields return a not-found
// style default so tests only wire what they care about.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id uuid.UUID) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*model.User, error)
	existsByIDFn       func(ctx context.Context, id uuid.UUID) (bool, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
	getIDByNumberFn    func(ctx context.Context, number int64) (uuid.UUID, error)
	getIDByUsernameFn  func(ctx context.Context, username string) (uuid.UUID, error)
	updateProfileFn    func(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error)
	updatePasswordFn   func(ctx context.Context, id uuid.UUID, passwordHashed string) error
	getStatsFn         func(ctx context.Context, id uuid.UUID) (*model.UserStats, error)

	// Track calls for assertions
	createCalls []*model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsByIDFn != nil {
		return m.existsByIDFn(ctx, id)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) GetIDByNumber(ctx context.Context, number int64) (uuid.UUID, error) {
	if m.getIDByNumberFn != nil {
		return m.getIDByNumberFn(ctx, number)
	}
	return uuid.Nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetIDByUsername(ctx context.Context, username string) (uuid.UUID, error) {
	if m.getIDByUsernameFn != nil {
		return m.getIDByUsernameFn(ctx, username)
	}
	return uuid.Nil, model.ErrUserNotFound
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, id, req)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHashed string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, passwordHashed)
	}
	return nil
}

func (m *mockUserRepository) GetStats(ctx context.Context, id uuid.UUID) (*model.UserStats, error) {
	if m.getStatsFn != nil {
		return m.getStatsFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

type mockPostRepository struct {
	createFn               func(ctx context.Context, post *model.Post) error
	getByIDFn              func(ctx context.Context, id uuid.UUID) (*model.Post, error)
	getPublishedByNumberFn func(ctx context.Context, number int64) (*model.Post, error)
	getIDByNumberFn        func(ctx context.Context, number int64) (uuid.UUID, error)
	existsByIDFn           func(ctx context.Context, id uuid.UUID) (bool, error)
	listPublishedFn        func(ctx context.Context, opts repository.ListPostsOptions) ([]model.Post, error)
	listByAuthorsFn        func(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]model.Post, error)
	listByTopicsFn         func(ctx context.Context, topicIDs []uuid.UUID, limit, offset int) ([]model.Post, error)
	listDraftsByUserFn     func(ctx context.Context, userID uuid.UUID) ([]model.Post, error)
	listPublishedByUserFn  func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Post, error)
	updateFn               func(ctx context.Context, id, userID uuid.UUID, req model.UpdatePostRequest, readingTime *int, publishedAt *time.Time) (*model.Post, error)
	publishFn              func(ctx context.Context, id, userID uuid.UUID, publishedAt time.Time) (*model.Post, error)
	deleteFn               func(ctx context.Context, id, userID uuid.UUID) error
	incrementViewsFn       func(ctx context.Context, id uuid.UUID) error
	updateClapsFn          func(ctx context.Context, id uuid.UUID, claps int) (*model.Post, error)
	setCommentsCountFn     func(ctx context.Context, id uuid.UUID, count int) error
	replaceTopicsFn        func(ctx context.Context, postID uuid.UUID, topicIDs []uuid.UUID) error

	setCommentsCountCalls []int
	updateClapsCalls      []int
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetPublishedByNumber(ctx context.Context, number int64) (*model.Post, error) {
	if m.getPublishedByNumberFn != nil {
		return m.getPublishedByNumberFn(ctx, number)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetIDByNumber(ctx context.Context, number int64) (uuid.UUID, error) {
	if m.getIDByNumberFn != nil {
		return m.getIDByNumberFn(ctx, number)
	}
	return uuid.Nil, model.ErrPostNotFound
}

func (m *mockPostRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsByIDFn != nil {
		return m.existsByIDFn(ctx, id)
	}
	return false, nil
}

func (m *mockPostRepository) ListPublished(ctx context.Context, opts repository.ListPostsOptions) ([]model.Post, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx, opts)
	}
	return nil, nil
}

func (m *mockPostRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]model.Post, error) {
	if m.listByAuthorsFn != nil {
		return m.listByAuthorsFn(ctx, authorIDs, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) ListByTopics(ctx context.Context, topicIDs []uuid.UUID, limit, offset int) ([]model.Post, error) {
	if m.listByTopicsFn != nil {
		return m.listByTopicsFn(ctx, topicIDs, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) ListDraftsByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	if m.listDraftsByUserFn != nil {
		return m.listDraftsByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPostRepository) ListPublishedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Post, error) {
	if m.listPublishedByUserFn != nil {
		return m.listPublishedByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) Update(ctx context.Context, id, userID uuid.UUID, req model.UpdatePostRequest, readingTime *int, publishedAt *time.Time) (*model.Post, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, userID, req, readingTime, publishedAt)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Publish(ctx context.Context, id, userID uuid.UUID, publishedAt time.Time) (*model.Post, error) {
	if m.publishFn != nil {
		return m.publishFn(ctx, id, userID, publishedAt)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return model.ErrPostNotFound
}

func (m *mockPostRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, id)
	}
	return nil
}

func (m *mockPostRepository) UpdateClaps(ctx context.Context, id uuid.UUID, claps int) (*model.Post, error) {
	m.updateClapsCalls = append(m.updateClapsCalls, claps)
	if m.updateClapsFn != nil {
		return m.updateClapsFn(ctx, id, claps)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) SetCommentsCount(ctx context.Context, id uuid.UUID, count int) error {
	m.setCommentsCountCalls = append(m.setCommentsCountCalls, count)
	if m.setCommentsCountFn != nil {
		return m.setCommentsCountFn(ctx, id, count)
	}
	return nil
}

func (m *mockPostRepository) ReplaceTopics(ctx context.Context, postID uuid.UUID, topicIDs []uuid.UUID) error {
	if m.replaceTopicsFn != nil {
		return m.replaceTopicsFn(ctx, postID, topicIDs)
	}
	return nil
}

type mockCommentRepository struct {
	createFn          func(ctx context.Context, comment *model.Comment) error
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	getIDByNumberFn   func(ctx context.Context, number int64) (uuid.UUID, error)
	existsByIDFn      func(ctx context.Context, id uuid.UUID) (bool, error)
	listTopLevelFn    func(ctx context.Context, postID uuid.UUID, limit, offset int) ([]model.Comment, error)
	listRepliesFn     func(ctx context.Context, parentID uuid.UUID) ([]model.Comment, error)
	listRepliesPageFn func(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]model.Comment, error)
	updateFn          func(ctx context.Context, id, userID uuid.UUID, content string) (*model.Comment, error)
	deleteFn          func(ctx context.Context, id, userID uuid.UUID) (uuid.UUID, error)
	countByPostFn     func(ctx context.Context, postID uuid.UUID) (int, error)
	countRepliesFn    func(ctx context.Context, parentID uuid.UUID) (int, error)
	updateClapsFn     func(ctx context.Context, id uuid.UUID, claps int) (*model.Comment, error)

	updateClapsCalls []int
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) GetIDByNumber(ctx context.Context, number int64) (uuid.UUID, error) {
	if m.getIDByNumberFn != nil {
		return m.getIDByNumberFn(ctx, number)
	}
	return uuid.Nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsByIDFn != nil {
		return m.existsByIDFn(ctx, id)
	}
	return false, nil
}

func (m *mockCommentRepository) ListTopLevel(ctx context.Context, postID uuid.UUID, limit, offset int) ([]model.Comment, error) {
	if m.listTopLevelFn != nil {
		return m.listTopLevelFn(ctx, postID, limit, offset)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListReplies(ctx context.Context, parentID uuid.UUID) ([]model.Comment, error) {
	if m.listRepliesFn != nil {
		return m.listRepliesFn(ctx, parentID)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListRepliesPage(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]model.Comment, error) {
	if m.listRepliesPageFn != nil {
		return m.listRepliesPageFn(ctx, parentID, limit, offset)
	}
	return nil, nil
}

func (m *mockCommentRepository) Update(ctx context.Context, id, userID uuid.UUID, content string) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, userID, content)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Delete(ctx context.Context, id, userID uuid.UUID) (uuid.UUID, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return uuid.Nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	if m.countByPostFn != nil {
		return m.countByPostFn(ctx, postID)
	}
	return 0, nil
}

func (m *mockCommentRepository) CountReplies(ctx context.Context, parentID uuid.UUID) (int, error) {
	if m.countRepliesFn != nil {
		return m.countRepliesFn(ctx, parentID)
	}
	return 0, nil
}

func (m *mockCommentRepository) UpdateClaps(ctx context.Context, id uuid.UUID, claps int) (*model.Comment, error) {
	m.updateClapsCalls = append(m.updateClapsCalls, claps)
	if m.updateClapsFn != nil {
		return m.updateClapsFn(ctx, id, claps)
	}
	return nil, model.ErrCommentNotFound
}

type mockTopicRepository struct {
	createFn              func(ctx context.Context, topic *model.Topic) error
	listFn                func(ctx context.Context) ([]model.Topic, error)
	getByIDFn             func(ctx context.Context, id uuid.UUID) (*model.Topic, error)
	getIDBySlugFn         func(ctx context.Context, slug string) (uuid.UUID, error)
	existsByIDFn          func(ctx context.Context, id uuid.UUID) (bool, error)
	listByPostFn          func(ctx context.Context, postID uuid.UUID) ([]model.Topic, error)
	followFn              func(ctx context.Context, topicID, userID uuid.UUID) error
	unfollowFn            func(ctx context.Context, topicID, userID uuid.UUID) error
	getFollowedTopicIDsFn func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockTopicRepository) Create(ctx context.Context, topic *model.Topic) error {
	if m.createFn != nil {
		return m.createFn(ctx, topic)
	}
	return nil
}

func (m *mockTopicRepository) List(ctx context.Context) ([]model.Topic, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockTopicRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Topic, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrTopicNotFound
}

func (m *mockTopicRepository) GetIDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	if m.getIDBySlugFn != nil {
		return m.getIDBySlugFn(ctx, slug)
	}
	return uuid.Nil, model.ErrTopicNotFound
}

func (m *mockTopicRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsByIDFn != nil {
		return m.existsByIDFn(ctx, id)
	}
	return false, nil
}

func (m *mockTopicRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Topic, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockTopicRepository) Follow(ctx context.Context, topicID, userID uuid.UUID) error {
	if m.followFn != nil {
		return m.followFn(ctx, topicID, userID)
	}
	return nil
}

func (m *mockTopicRepository) Unfollow(ctx context.Context, topicID, userID uuid.UUID) error {
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, topicID, userID)
	}
	return nil
}

func (m *mockTopicRepository) GetFollowedTopicIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.getFollowedTopicIDsFn != nil {
		return m.getFollowedTopicIDsFn(ctx, userID)
	}
	return nil, nil
}

type mockFollowRepository struct {
	createFn          func(ctx context.Context, followerID, followingID uuid.UUID) error
	deleteFn          func(ctx context.Context, followerID, followingID uuid.UUID) error
	existsFn          func(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	getFollowersFn    func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.UserSummary, error)
	getFollowingFn    func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.UserSummary, error)
	getFollowingIDsFn func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followingID uuid.UUID) error {
	if m.createFn != nil {
		return m.createFn(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followingID)
	}
	return false, nil
}

func (m *mockFollowRepository) GetFollowers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.UserSummary, error) {
	if m.getFollowersFn != nil {
		return m.getFollowersFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepository) GetFollowing(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.UserSummary, error) {
	if m.getFollowingFn != nil {
		return m.getFollowingFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepository) GetFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.getFollowingIDsFn != nil {
		return m.getFollowingIDsFn(ctx, userID)
	}
	return nil, nil
}

type mockHistoryRepository struct {
	upsertFn     func(ctx context.Context, userID, postID uuid.UUID) error
	listByUserFn func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.HistoryEntry, error)

	upsertCalls int
}

func (m *mockHistoryRepository) Upsert(ctx context.Context, userID, postID uuid.UUID) error {
	m.upsertCalls++
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockHistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.HistoryEntry, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

// mockPublisher records every published event so tests can assert on fan-out.
type mockPublisher struct {
	publishFn func(ctx context.Context, stream string, event queue.NotificationEvent) (string, error)

	published []queue.NotificationEvent
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.NotificationEvent) (string, error) {
	m.published = append(m.published, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, stream, event)
	}
	return "1-0", nil
}
