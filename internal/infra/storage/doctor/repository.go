package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const tableName = "doctors"

var selectColumns = []string{
	"id",
	"user_id",
	"full_name",
	"specialty",
	"base_price",
	"recommended",
	"accepting_patients",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Repository репозиторий врачей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает врача по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID получает врача по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

// List возвращает врачей по фильтру, рекомендованные первыми
func (r *Repository) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		OrderBy("recommended DESC", "full_name ASC", "id ASC")

	if q := strings.TrimSpace(filter.Query); q != "" {
		builder = builder.Where(squirrel.ILike{"full_name": "%" + likeEscaper.Replace(q) + "%"})
	}
	if specialty := strings.TrimSpace(filter.Specialty); specialty != "" {
		builder = builder.Where(squirrel.Expr("LOWER(specialty) = LOWER(?)", specialty))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	doctors := make([]domain.Doctor, 0)
	for rows.Next() {
		var d domain.Doctor
		if err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.FullName,
			&d.Specialty,
			&d.BasePrice,
			&d.Recommended,
			&d.AcceptingPatients,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan doctor: %v", ErrScanRow, err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return doctors, nil
}

// SetRecommended отмечает врача как рекомендованного
// Повторная отметка не считается ошибкой
func (r *Repository) SetRecommended(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("recommended", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetRecommended - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetRecommended - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetRecommended - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDoctorNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var d domain.Doctor
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&d.ID,
		&d.UserID,
		&d.FullName,
		&d.Specialty,
		&d.BasePrice,
		&d.Recommended,
		&d.AcceptingPatients,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan doctor: %v", ErrScanRow, op, err)
	}

	return &d, nil
}
