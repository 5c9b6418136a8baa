package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"camargue/infras/otel"
	"camargue/infras/postgres"
	"camargue/internal/domains/forum/model"
	"camargue/shared/constant"
	gDto "camargue/shared/dto"
	gRepo "camargue/shared/repository"
)

type Post interface {
	Insert(ctx context.Context, model model.Post) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Post, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ListNewestFirst(ctx context.Context) ([]model.Post, error)
}

type postRepositoryImpl struct {
	gRepo.Repository[model.Post]
	db   *postgres.Connection
	otel otel.Otel
}

func NewPost(db *postgres.Connection, otel otel.Otel) Post {
	return &postRepositoryImpl{
		Repository: gRepo.NewRepository[model.Post](model.PostEntityName, model.PostTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *postRepositoryImpl) ListNewestFirst(ctx context.Context) ([]model.Post, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".forum_post.ListNewestFirst")
	defer scope.End()

	params := gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	return repo.GetAll(ctx, params, gDto.FilterGroup{}) //nolint:wrapcheck
}

type Reply interface {
	Insert(ctx context.Context, model model.Reply) error
	ListForPosts(ctx context.Context, postIDs []string) ([]model.Reply, error)
}

type replyRepositoryImpl struct {
	gRepo.Repository[model.Reply]
	db   *postgres.Connection
	otel otel.Otel
}

func NewReply(db *postgres.Connection, otel otel.Otel) Reply {
	return &replyRepositoryImpl{
		Repository: gRepo.NewRepository[model.Reply](model.ReplyEntityName, model.ReplyTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ListForPosts returns replies for the given posts, oldest first.
func (repo *replyRepositoryImpl) ListForPosts(ctx context.Context, postIDs []string) ([]model.Reply, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".forum_reply.ListForPosts")
	defer scope.End()

	if len(postIDs) == 0 {
		return []model.Reply{}, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPostID,
				Operator: gDto.FilterOperatorIn,
				Value:    postIDs,
				Table:    model.ReplyTableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	return repo.GetAll(ctx, params, filter) //nolint:wrapcheck
}
