package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	// uniqueViolation код ошибки PostgreSQL при нарушении уникального ограничения
	uniqueViolation = "23505"
)

var selectColumns = []string{
	"id",
	"patient_id",
	"doctor_id",
	"appointment_date",
	"appointment_time",
	"status",
	"requester_name",
	"doctor_name",
	"visit_reason",
	"consultation_notes",
	"insurer",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись на приём
// Уникальность (doctor_id, patient_id, appointment_date, appointment_time) гарантируется
// ограничением в БД, при нарушении возвращается ErrAlreadyExists
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"patient_id",
			"doctor_id",
			"appointment_date",
			"appointment_time",
			"status",
			"requester_name",
			"doctor_name",
			"visit_reason",
			"consultation_notes",
			"insurer",
			"price",
		).
		Values(
			a.PatientID,
			a.DoctorID,
			a.AppointmentDate,
			a.AppointmentTime,
			a.Status,
			a.RequesterName,
			a.DoctorName,
			a.VisitReason,
			a.ConsultationNotes,
			a.Insurer,
			a.Price,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись на приём по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := r.queryOne(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return a, nil
}

// GetBySlot ищет запись с тем же врачом, пациентом, датой и временем
// Пациент nil соответствует записи без пациента (walk-in)
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetBySlot(ctx context.Context, slot domain.AppointmentSlot) (*domain.Appointment, error) {
	where := squirrel.Eq{
		"doctor_id":        slot.DoctorID,
		"appointment_date": slot.Date,
		"appointment_time": slot.Time,
	}
	if slot.PatientID == nil {
		where["patient_id"] = nil
	} else {
		where["patient_id"] = *slot.PatientID
	}

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - build select query: %v", ErrBuildQuery, err)
	}

	a, err := r.queryOne(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("GetBySlot: %w", err)
	}
	return a, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) queryOne(ctx context.Context, query string, args ...interface{}) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&a.Status,
		&a.RequesterName,
		&a.DoctorName,
		&a.VisitReason,
		&a.ConsultationNotes,
		&a.Insurer,
		&a.Price,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan appointment: %w", ErrScanRow, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
