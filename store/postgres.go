package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordRow is the single table backing all collections: one JSONB document
// per record, addressed by (kind, id).
type recordRow struct {
	Kind string `gorm:"primaryKey;column:kind"`
	ID   string `gorm:"primaryKey;column:id"`
	Doc  string `gorm:"column:doc;type:jsonb"`
}

func (recordRow) TableName() string { return "records" }

// Postgres persists records in a postgres JSONB table. It is the remote
// mirror: writes are last-writer-wins, reads only happen at load time.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres migrates the records table and returns the backend.
func NewPostgres(gdb *gorm.DB) (*Postgres, error) {
	if err := gdb.AutoMigrate(&recordRow{}); err != nil {
		return nil, fmt.Errorf("migrate records table: %w", err)
	}
	return &Postgres{db: gdb}, nil
}

func (p *Postgres) Insert(ctx context.Context, kind Kind, rec Record) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", kind, err)
	}

	row := recordRow{Kind: string(kind), ID: rec.ID(), Doc: string(doc)}

	// Upsert: a re-sent insert for the same id overwrites, matching the
	// last-writer-wins contract.
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (p *Postgres) Update(ctx context.Context, kind Kind, id string, fields Fields) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s patch: %w", kind, err)
	}

	return p.db.WithContext(ctx).
		Model(&recordRow{}).
		Where("kind = ? AND id = ?", string(kind), id).
		Update("doc", gorm.Expr("doc || ?::jsonb", string(patch))).Error
}

func (p *Postgres) Delete(ctx context.Context, kind Kind, id string) error {
	return p.db.WithContext(ctx).
		Where("kind = ? AND id = ?", string(kind), id).
		Delete(&recordRow{}).Error
}

func (p *Postgres) BulkUpdate(ctx context.Context, kind Kind, matchField, matchValue string, fields Fields) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s patch: %w", kind, err)
	}

	return p.db.WithContext(ctx).
		Model(&recordRow{}).
		Where("kind = ? AND doc->>? = ?", string(kind), matchField, matchValue).
		Update("doc", gorm.Expr("doc || ?::jsonb", string(patch))).Error
}

func (p *Postgres) BulkDelete(ctx context.Context, kind Kind, matchField, matchValue string) error {
	return p.db.WithContext(ctx).
		Where("kind = ? AND doc->>? = ?", string(kind), matchField, matchValue).
		Delete(&recordRow{}).Error
}

func (p *Postgres) ListAll(ctx context.Context, kind Kind) ([]Record, error) {
	var rows []recordRow
	if err := p.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := Record{}
		if err := json.Unmarshal([]byte(row.Doc), &rec); err != nil {
			return nil, fmt.Errorf("decode %s record %s: %w", kind, row.ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
