package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"sheen/infras/otel"
	"sheen/infras/postgres"
	"sheen/internal/domains/availability/model"
	"sheen/shared"
	gDto "sheen/shared/dto"
	gRepo "sheen/shared/repository"
)

type Availability interface {
	Insert(ctx context.Context, model model.Preferences) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Preferences, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	GetSlots(ctx context.Context, cleanerID string) ([]model.BlockedSlot, error)
	InsertSlot(ctx context.Context, slot model.BlockedSlot) error
	DeleteSlot(ctx context.Context, slotID, cleanerID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Preferences]
	slots gRepo.Repository[model.BlockedSlot]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Preferences](model.EntityName, model.TableName, model.FieldID, db, otel),
		slots:      gRepo.NewRepository[model.BlockedSlot](model.SlotEntityName, model.SlotTableName, model.SlotFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetSlots(ctx context.Context, cleanerID string) ([]model.BlockedSlot, error) {
	filter := shared.FilterByID(cleanerID, model.SlotFieldCleanerID, model.SlotTableName)

	params := gDto.QueryParams{
		SortBy:  model.SlotFieldSlotDate,
		SortDir: gDto.SortDirAsc,
	}

	return repo.slots.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) InsertSlot(ctx context.Context, slot model.BlockedSlot) error {
	return repo.slots.Insert(ctx, slot) //nolint:wrapcheck
}

func (repo *repositoryImpl) DeleteSlot(ctx context.Context, slotID, cleanerID string) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.SlotFieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    slotID,
				Table:    model.SlotTableName,
			},
			gDto.Filter{
				Field:    model.SlotFieldCleanerID,
				Operator: gDto.FilterOperatorEq,
				Value:    cleanerID,
				Table:    model.SlotTableName,
			},
		},
	}

	return repo.slots.Delete(ctx, filter) //nolint:wrapcheck
}
