package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"sheen/infras/otel"
	"sheen/infras/postgres"
	"sheen/internal/domains/job/model"
	"sheen/shared/constant"
	gDto "sheen/shared/dto"
	gRepo "sheen/shared/repository"
	"sheen/shared/timezone"
)

type Job interface {
	Insert(ctx context.Context, model model.Job) error
	InsertBulk(ctx context.Context, models []model.Job) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Job, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Job, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Claim(ctx context.Context, jobID, cleanerID string, at time.Time) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Job]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Job {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Job](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Claim transitions one job from unclaimed to claimed by cleanerID. The
// precondition (still pending, no cleaner, not a team job) lives in the
// WHERE clause of a single UPDATE, so under concurrent attempts at most
// one caller sees one affected row. A read-then-write sequence would let
// two readers both observe "unclaimed" before either writes; this method
// must stay the only claim path.
func (repo *repositoryImpl) Claim(ctx context.Context, jobID, cleanerID string, at time.Time) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Claim")
	defer scope.End()

	mod := map[string]any{
		model.FieldCleanerID:     cleanerID,
		model.FieldStatus:        string(model.StatusAccepted),
		model.FieldAcceptedAt:    at,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: cleanerID,
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    jobID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCleanerID,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "expected_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(model.StatusPending),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRequiresTeam,
				Operator: gDto.FilterOperatorEq,
				Value:    false,
				Table:    model.TableName,
			},
		},
	}

	return repo.UpdateCount(ctx, mod, filter) //nolint:wrapcheck
}
