package trackerbun

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/Children-Of-Regions/pdf-service/report"
)

// Tracker stores report history in a Bun-backed database.
type Tracker struct {
	DB  *bun.DB
	Now func() time.Time
}

// NewTracker creates a Bun-backed report tracker.
func NewTracker(db *bun.DB) *Tracker {
	return &Tracker{DB: db, Now: time.Now}
}

// EnsureSchema creates the history table if it does not exist.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*recordModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Save inserts a generated-report record.
func (t *Tracker) Save(ctx context.Context, rec report.Record) error {
	if t == nil || t.DB == nil {
		return report.NewError(report.KindInternal, "tracker database not configured", nil)
	}
	if rec.ID == "" {
		return report.NewError(report.KindValidation, "record ID is required", nil)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = t.now()
	}

	model := modelFromRecord(rec)
	_, err := t.DB.NewInsert().Model(&model).Exec(ctx)
	return err
}

// List returns recorded reports, newest first.
func (t *Tracker) List(ctx context.Context) ([]report.Record, error) {
	if t == nil || t.DB == nil {
		return nil, report.NewError(report.KindInternal, "tracker database not configured", nil)
	}

	models := make([]recordModel, 0)
	if err := t.DB.NewSelect().Model(&models).Order("created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}

	records := make([]report.Record, 0, len(models))
	for _, model := range models {
		records = append(records, model.toRecord())
	}
	return records, nil
}

func (t *Tracker) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

type recordModel struct {
	bun.BaseModel `bun:"table:report_records,alias:report_records"`

	ID          string    `bun:",pk"`
	FileName    string    `bun:"file_name,notnull"`
	Destination string    `bun:",notnull"`
	FileID      string    `bun:"file_id"`
	LocalPath   string    `bun:"local_path"`
	Bytes       int64     `bun:"bytes"`
	CreatedAt   time.Time `bun:"created_at"`
}

func modelFromRecord(rec report.Record) recordModel {
	return recordModel{
		ID:          rec.ID,
		FileName:    rec.FileName,
		Destination: rec.Destination,
		FileID:      rec.FileID,
		LocalPath:   rec.LocalPath,
		Bytes:       rec.Bytes,
		CreatedAt:   rec.CreatedAt,
	}
}

func (m recordModel) toRecord() report.Record {
	return report.Record{
		ID:          m.ID,
		FileName:    m.FileName,
		Destination: m.Destination,
		FileID:      m.FileID,
		LocalPath:   m.LocalPath,
		Bytes:       m.Bytes,
		CreatedAt:   m.CreatedAt,
	}
}
