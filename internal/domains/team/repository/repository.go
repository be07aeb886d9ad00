package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"sheen/infras/otel"
	"sheen/infras/postgres"
	"sheen/internal/domains/team/model"
	"sheen/shared"
	"sheen/shared/constant"
	gDto "sheen/shared/dto"
	gRepo "sheen/shared/repository"
)

type Team interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Team, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetMembers(ctx context.Context, teamID string) ([]model.Member, error)
	Replace(ctx context.Context, team model.Team, members []model.Member) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Team]
	members gRepo.Repository[model.Member]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Team {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Team](model.EntityName, model.TableName, model.FieldID, db, otel),
		members:    gRepo.NewRepository[model.Member](model.EntityName+"_member", model.MemberTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetMembers(ctx context.Context, teamID string) ([]model.Member, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTeamID,
				Operator: gDto.FilterOperatorEq,
				Value:    teamID,
				Table:    model.MemberTableName,
			},
		},
	}

	return repo.members.GetAll(ctx, gDto.QueryParams{}, filter)
}

// Replace installs team as the booking's crew. Any existing team record
// for the booking and its membership rows are removed first, then the
// new rows are inserted, all inside one transaction. Membership is never
// diffed in place.
func (repo *repositoryImpl) Replace(ctx context.Context, team model.Team, members []model.Member) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Replace")
	defer scope.End()
	defer scope.TraceIfError(err)

	sqltx, err := repo.db.Write.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin team replace transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := sqltx.Rollback(); rollbackErr != nil {
				err = fmt.Errorf("%w (rollback failed: %v)", err, rollbackErr)
			}
		}
	}()

	existing, err := repo.Get(ctx, shared.FilterByID(team.BookingID, model.FieldBookingID, model.TableName), model.FieldID)
	if err != nil {
		return err
	}

	if existing.ID != "" {
		memberFilter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldTeamID,
					Operator: gDto.FilterOperatorEq,
					Value:    existing.ID,
					Table:    model.MemberTableName,
				},
			},
		}

		if err = repo.members.DeleteTx(ctx, sqltx, memberFilter); err != nil {
			return err
		}

		if err = repo.DeleteTx(ctx, sqltx, shared.FilterByID(existing.ID, model.FieldID, model.TableName)); err != nil {
			return err
		}
	}

	if err = repo.InsertTx(ctx, sqltx, team); err != nil {
		return err
	}

	if err = repo.members.InsertBulkTx(ctx, sqltx, members); err != nil {
		return err
	}

	if err = sqltx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team replace transaction: %w", err)
	}

	return nil
}
