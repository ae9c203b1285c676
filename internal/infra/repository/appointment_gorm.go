package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/models"
)

// advisoryNamespace occupies the high 32 bits of every booking lock key so
// they cannot collide with advisory locks taken by other code.
const advisoryNamespace int64 = 0x4C415348

const defaultTxTimeout = 5 * time.Second

type AppointmentGormRepository struct {
	db        *gorm.DB
	txTimeout time.Duration
}

func NewAppointmentGormRepository(db *gorm.DB, txTimeout time.Duration) *AppointmentGormRepository {
	if txTimeout <= 0 {
		txTimeout = defaultTxTimeout
	}
	return &AppointmentGormRepository{db: db, txTimeout: txTimeout}
}

// --------------------------------------------------
// Service offerings
// --------------------------------------------------

func (r *AppointmentGormRepository) FindActiveOffering(
	ctx context.Context,
	id uuid.UUID,
) (*models.ServiceOffering, error) {

	var offering models.ServiceOffering
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&offering).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, translateError(err)
	}
	return &offering, nil
}

func (r *AppointmentGormRepository) ListActiveOfferings(
	ctx context.Context,
) ([]models.ServiceOffering, error) {

	var offerings []models.ServiceOffering
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&offerings).Error; err != nil {
		return nil, translateError(err)
	}
	return offerings, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) QueryAppointments(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"status <> ? AND start_utc < ? AND end_utc > ?",
			models.StatusCancelled,
			to.UTC(),
			from.UTC(),
		).
		Order("start_utc ASC").
		Find(&apps).Error; err != nil {
		return nil, translateError(err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("ServiceOffering").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, translateError(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("ServiceOffering").
		Model(&models.Appointment{})

	if filter.From != nil {
		q = q.Where("start_utc >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("start_utc < ?", filter.To.UTC())
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var apps []models.Appointment
	if err := q.Order("start_utc ASC").Find(&apps).Error; err != nil {
		return nil, translateError(err)
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) InsertAppointmentIfNoConflict(
	ctx context.Context,
	ap *models.Appointment,
) error {

	ap.StartUTC = ap.StartUTC.UTC()
	ap.EndUTC = ap.EndUTC.UTC()
	proposed := domain.IntervalOf(*ap)

	ctx, cancel := context.WithTimeout(ctx, r.txTimeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Exec(
			fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.txTimeout.Milliseconds()),
		).Error; err != nil {
			return err
		}

		// Serialize writers per UTC day. Keys come back sorted so two
		// transactions spanning midnight cannot deadlock.
		for _, key := range DayLockKeys(proposed) {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", key).Error; err != nil {
				return err
			}
		}

		var existing []models.Appointment
		if err := tx.
			Where(
				"status <> ? AND start_utc < ? AND end_utc > ?",
				models.StatusCancelled,
				proposed.End,
				proposed.Start,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		if domain.HasConflict(proposed, existing) {
			return domain.ErrTimeConflict
		}

		return tx.Create(ap).Error
	})

	return translateError(err)
}

// DayLockKeys returns one advisory lock key per UTC day touched by iv, in
// ascending order.
func DayLockKeys(iv domain.Interval) []int64 {
	first := utcDay(iv.Start)
	// End is exclusive.
	last := utcDay(iv.End.Add(-time.Nanosecond))

	keys := make([]int64, 0, last-first+1)
	for d := first; d <= last; d++ {
		keys = append(keys, advisoryNamespace<<32|d)
	}
	return keys
}

func utcDay(t time.Time) int64 {
	return t.UTC().Unix() / 86400
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, from).
		Updates(map[string]any{
			"status":       ap.Status,
			"confirmed_at": ap.ConfirmedAt,
			"cancelled_at": ap.CancelledAt,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return r.missingOrStale(ctx, ap.ID)
	}
	return nil
}

const flipDepositSQL = `
UPDATE appointments
SET deposit_paid = NOT deposit_paid, updated_at = ?
WHERE id = ?
RETURNING deposit_paid`

func (r *AppointmentGormRepository) FlipDepositFlag(
	ctx context.Context,
	id uuid.UUID,
) (bool, error) {

	var row struct {
		DepositPaid bool
	}
	res := r.db.WithContext(ctx).
		Raw(flipDepositSQL, time.Now().UTC(), id).
		Scan(&row)
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, domain.ErrAppointmentNotFound
	}
	return row.DepositPaid, nil
}

func (r *AppointmentGormRepository) missingOrStale(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return domain.ErrAppointmentNotFound
	}
	return domain.ErrStatusChanged
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
