package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"camargue/infras/otel"
	"camargue/infras/postgres"
	"camargue/internal/domains/booking/model"
	"camargue/shared/constant"
	gDto "camargue/shared/dto"
	"camargue/shared/failure"
	"camargue/shared/logger"
	gRepo "camargue/shared/repository"
)

// boatLockID serializes concurrent reservation attempts. There is a single
// boat, so one advisory lock covers every create.
const boatLockID = int64(7420)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	CountOverlapping(ctx context.Context, start, end time.Time) (int, error)
	CreateConfirmed(ctx context.Context, booking model.Booking) error
	ListYear(ctx context.Context, yearStart, yearEnd time.Time) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// OverlapFilter matches confirmed reservations intersecting [start, end).
func OverlapFilter(start, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(model.StatusConfirmed),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorLess,
				Value:    end,
				ArgName:  "range_end",
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorGreater,
				Value:    start,
				ArgName:  "range_start",
				Table:    model.TableName,
			},
		},
	}
}

func (repo *repositoryImpl) CountOverlapping(ctx context.Context, start, end time.Time) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CountOverlapping")
	defer scope.End()

	return repo.Count(ctx, OverlapFilter(start, end)) //nolint:wrapcheck
}

// CreateConfirmed inserts a confirmed reservation inside a single write
// transaction. The advisory lock serializes concurrent creates, the in-tx
// re-check catches ranges taken since the caller's availability check, and
// the exclusion constraint on the table is the storage-level backstop.
func (repo *repositoryImpl) CreateConfirmed(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CreateConfirmed")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin reservation transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to roll back reservation transaction")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", boatLockID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to acquire reservation lock: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT COUNT(%s) FROM %s WHERE %s = $1 AND %s < $2 AND %s > $3",
		model.FieldID, model.TableName, model.FieldStatus, model.FieldStartDate, model.FieldEndDate,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var overlapping int
	if err = tx.GetContext(ctx, &overlapping, query, string(model.StatusConfirmed), booking.EndDate, booking.StartDate); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to re-check availability: %w", err)
	}

	if overlapping > 0 {
		err = failure.Conflict("requested dates are no longer available")

		return err
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			err = failure.Conflict("requested dates are no longer available")

			return err
		}

		return err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reservation transaction: %w", err)
	}

	return nil
}

// ListYear returns every reservation, any status, intersecting the year
// window, ordered by start date ascending.
func (repo *repositoryImpl) ListYear(ctx context.Context, yearStart, yearEnd time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ListYear")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    yearEnd,
				ArgName:  "year_end",
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    yearStart,
				ArgName:  "year_start",
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldStartDate,
		SortDir: gDto.SortDirAsc,
	}

	return repo.GetAll(ctx, params, filter) //nolint:wrapcheck
}
