package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"camargue/infras/otel"
	"camargue/infras/postgres"
	"camargue/internal/domains/auth/model"
	gDto "camargue/shared/dto"
	gRepo "camargue/shared/repository"
)

type VerificationToken interface {
	Insert(ctx context.Context, model model.VerificationToken) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.VerificationToken, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.VerificationToken]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) VerificationToken {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.VerificationToken](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
