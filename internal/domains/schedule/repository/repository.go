package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"sheen/infras/otel"
	"sheen/infras/postgres"
	"sheen/internal/domains/schedule/model"
	"sheen/shared/constant"
	gDto "sheen/shared/dto"
	gRepo "sheen/shared/repository"
	"sheen/shared/timezone"
)

type Schedule interface {
	Insert(ctx context.Context, model model.Schedule) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Schedule, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Schedule, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	MarkGenerated(ctx context.Context, scheduleID, month, actor string) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Schedule]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Schedule](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// MarkGenerated advances the schedule's generation marker to month
// (YYYY-MM) only if the marker is strictly behind it; YYYY-MM compares
// chronologically as text. Reruns of the same month and replays of older
// months both claim zero schedules, so no duplicate bookings get created.
func (repo *repositoryImpl) MarkGenerated(ctx context.Context, scheduleID, month, actor string) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".MarkGenerated")
	defer scope.End()

	mod := map[string]any{
		model.FieldLastGeneratedMonth: month,
		constant.FieldModifiedAt:      timezone.Now(),
		constant.FieldModifiedBy:      actor,
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    scheduleID,
				Table:    model.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						Field:    model.FieldLastGeneratedMonth,
						Operator: gDto.FilterIsNull,
						Table:    model.TableName,
					},
					gDto.Filter{
						ArgName:  "generated_month",
						Field:    model.FieldLastGeneratedMonth,
						Operator: gDto.FilterOperatorLess,
						Value:    month,
						Table:    model.TableName,
					},
				},
			},
		},
	}

	return repo.UpdateCount(ctx, mod, filter) //nolint:wrapcheck
}
