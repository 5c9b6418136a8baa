package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"camargue/config"
	"camargue/infras/otel"
	"camargue/internal/domains/forum/model"
	"camargue/internal/domains/forum/model/dto"
	"camargue/internal/domains/forum/repository"
	userModel "camargue/internal/domains/user/model"
	userRepo "camargue/internal/domains/user/repository"
	"camargue/shared"
	"camargue/shared/cache"
	"camargue/shared/constant"
	"camargue/shared/failure"
)

const (
	cacheGetForum = "forum:gets"
)

type Forum interface {
	GetAll(ctx context.Context) dto.GetForumResponse
	CreatePost(ctx context.Context, req dto.CreatePostRequest) (dto.PostResponse, error)
	CreateReply(ctx context.Context, postID string, req dto.CreateReplyRequest) (dto.ReplyResponse, error)
}

type serviceImpl struct {
	postRepo  repository.Post
	replyRepo repository.Reply
	userRepo  userRepo.User
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	postRepo repository.Post,
	replyRepo repository.Reply,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Forum {
	return &serviceImpl{
		postRepo:  postRepo,
		replyRepo: replyRepo,
		userRepo:  userRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// GetAll lists every post newest first with its replies oldest first.
// Storage failures degrade to an empty listing so the forum page renders.
func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetForumResponse) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()

	err := s.cache.Get(ctx, cacheGetForum, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetForum).Msg("cache hit for forum posts")

		return res
	}

	res.Posts = []dto.PostResponse{}

	posts, err := s.postRepo.ListNewestFirst(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list forum posts, returning empty listing")
		scope.TraceError(err)

		return res
	}

	postIDs := make([]string, len(posts))
	for i, post := range posts {
		postIDs[i] = post.ID
	}

	replies, err := s.replyRepo.ListForPosts(ctx, postIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to list forum replies, returning empty listing")
		scope.TraceError(err)

		return res
	}

	repliesByPost := make(map[string][]dto.ReplyResponse, len(posts))

	for _, reply := range replies {
		var replyRes dto.ReplyResponse
		replyRes.FromModel(reply)

		repliesByPost[reply.PostID] = append(repliesByPost[reply.PostID], replyRes)
	}

	res.Posts = make([]dto.PostResponse, len(posts))
	for i, post := range posts {
		postReplies := repliesByPost[post.ID]
		if postReplies == nil {
			postReplies = []dto.ReplyResponse{}
		}

		res.Posts[i].FromModel(post, postReplies)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetForum, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save forum posts to cache")
		}
	}()

	return res
}

func (s *serviceImpl) CreatePost(ctx context.Context, req dto.CreatePostRequest) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePost")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, err := s.requireUser(ctx)
	if err != nil {
		return res, err
	}

	post := req.ToModel(userID)

	if err = s.postRepo.Insert(ctx, post); err != nil {
		log.Error().Err(err).Msg("failed to create forum post")

		return res, fmt.Errorf("failed to create forum post: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetForum)
	}()

	res.FromModel(post, []dto.ReplyResponse{})

	return res, nil
}

func (s *serviceImpl) CreateReply(ctx context.Context, postID string, req dto.CreateReplyRequest) (res dto.ReplyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateReply")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, err := s.requireUser(ctx)
	if err != nil {
		return res, err
	}

	postExists, err := s.postRepo.Exist(ctx, shared.FilterByID(postID, model.FieldID, model.PostTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if forum post exists")

		return res, fmt.Errorf("failed to check if forum post exists: %w", err)
	}

	if !postExists {
		return res, failure.NotFound("forum post not found") //nolint:wrapcheck
	}

	reply := req.ToModel(postID, userID)

	if err = s.replyRepo.Insert(ctx, reply); err != nil {
		log.Error().Err(err).Msg("failed to create forum reply")

		return res, fmt.Errorf("failed to create forum reply: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetForum)
	}()

	res.FromModel(reply)

	return res, nil
}

func (s *serviceImpl) requireUser(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return "", failure.Unauthorized("authentication required") //nolint:wrapcheck
	}

	exists, err := s.userRepo.Exist(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return "", fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exists {
		return "", failure.NotFound("user not found") //nolint:wrapcheck
	}

	return userID, nil
}
