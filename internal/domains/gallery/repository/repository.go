package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"camargue/infras/otel"
	"camargue/infras/postgres"
	"camargue/internal/domains/gallery/model"
	"camargue/shared/constant"
	gDto "camargue/shared/dto"
	gRepo "camargue/shared/repository"
)

type Photo interface {
	Insert(ctx context.Context, model model.Photo) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Photo, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ListOrdered(ctx context.Context) ([]model.Photo, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Photo]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Photo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Photo](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ListOrdered returns every photo sorted by its configured position.
func (repo *repositoryImpl) ListOrdered(ctx context.Context) ([]model.Photo, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".photo.ListOrdered")
	defer scope.End()

	params := gDto.QueryParams{
		SortBy:  model.FieldSortOrder,
		SortDir: gDto.SortDirAsc,
	}

	return repo.GetAll(ctx, params, gDto.FilterGroup{}) //nolint:wrapcheck
}
