package service

import (
	"context"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/repository"
)

// uuidRe matches the canonical hyphenated form only. uuid.Parse also accepts
// hyphenless and urn-prefixed forms, which must not be treated as UUIDs here
// or they would shadow the number and name paths.
var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

var numberRe = regexp.MustCompile(`^[0-9]+$`)

// ResolverService turns route identifiers into canonical UUIDs. Every entity
// accepts its UUID; users and posts and comments also accept their display
// number, users additionally their username and topics their slug.
type ResolverService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	topicRepo   repository.TopicRepository
}

func NewResolverService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	topicRepo repository.TopicRepository,
) *ResolverService {
	return &ResolverService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		topicRepo:   topicRepo,
	}
}

// classify splits an identifier into one of three shapes. The UUID check runs
// first: an all-digit string can never be a UUID, and a UUID can never be all
// digits, so the order only matters against the free-form name fallback.
func classify(identifier string) (isUUID, isNumber bool) {
	if uuidRe.MatchString(identifier) {
		return true, false
	}
	if numberRe.MatchString(identifier) {
		return false, true
	}
	return false, false
}

// IsDisplayNumber reports whether the identifier is the display-number shape.
// Callers that treat number lookups differently (the published-only post read
// path) branch on this.
func IsDisplayNumber(identifier string) bool {
	_, isNumber := classify(identifier)
	return isNumber
}

// ParseDisplayNumber converts a display-number identifier.
func ParseDisplayNumber(identifier string) int64 {
	return mustParseNumber(identifier)
}

// mustParseNumber is only called on digit-only strings. An overflowing value
// parses to MaxInt64 and simply misses the lookup.
func mustParseNumber(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

// ResolveUser accepts a UUID, a display number, or a username.
func (s *ResolverService) ResolveUser(ctx context.Context, identifier string) (uuid.UUID, error) {
	isUUID, isNumber := classify(identifier)
	switch {
	case isUUID:
		return uuid.Parse(identifier)
	case isNumber:
		return s.userRepo.GetIDByNumber(ctx, mustParseNumber(identifier))
	default:
		return s.userRepo.GetIDByUsername(ctx, identifier)
	}
}

// ResolvePost accepts a UUID or a display number. Anything else is an
// invalid-format error, not a lookup miss.
func (s *ResolverService) ResolvePost(ctx context.Context, identifier string) (uuid.UUID, error) {
	isUUID, isNumber := classify(identifier)
	switch {
	case isUUID:
		return uuid.Parse(identifier)
	case isNumber:
		return s.postRepo.GetIDByNumber(ctx, mustParseNumber(identifier))
	default:
		return uuid.Nil, model.ErrInvalidPostID
	}
}

// ResolveComment accepts a UUID or a display number.
func (s *ResolverService) ResolveComment(ctx context.Context, identifier string) (uuid.UUID, error) {
	isUUID, isNumber := classify(identifier)
	switch {
	case isUUID:
		return uuid.Parse(identifier)
	case isNumber:
		return s.commentRepo.GetIDByNumber(ctx, mustParseNumber(identifier))
	default:
		return uuid.Nil, model.ErrInvalidCommentID
	}
}

// ResolveTopic accepts a UUID or a slug.
func (s *ResolverService) ResolveTopic(ctx context.Context, identifier string) (uuid.UUID, error) {
	if uuidRe.MatchString(identifier) {
		return uuid.Parse(identifier)
	}
	return s.topicRepo.GetIDBySlug(ctx, identifier)
}
