package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/guidequality-backend/internal/logger"
	pkgerrors "github.com/yungbote/guidequality-backend/internal/pkg/errors"
	"github.com/yungbote/guidequality-backend/internal/types"
)

type QualityRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.QualityRecord) ([]*types.QualityRecord, error)
	Latest(ctx context.Context, tx *gorm.DB, locationName, language string) (*types.QualityRecord, error)
	Recent(ctx context.Context, tx *gorm.DB, locationName, language string, limit int) ([]*types.QualityRecord, error)
}

type qualityRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQualityRecordRepo(db *gorm.DB, baseLog *logger.Logger) QualityRecordRepo {
	repoLog := baseLog.With("repo", "QualityRecordRepo")
	return &qualityRecordRepo{db: db, log: repoLog}
}

func (qr *qualityRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.QualityRecord) ([]*types.QualityRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(records) == 0 {
		return []*types.QualityRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (qr *qualityRecordRepo) Latest(ctx context.Context, tx *gorm.DB, locationName, language string) (*types.QualityRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var record types.QualityRecord
	err := transaction.WithContext(ctx).
		Where("location_name = ? AND language = ?", locationName, language).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (qr *qualityRecordRepo) Recent(ctx context.Context, tx *gorm.DB, locationName, language string, limit int) ([]*types.QualityRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if limit <= 0 {
		limit = 3
	}

	var records []*types.QualityRecord
	err := transaction.WithContext(ctx).
		Where("location_name = ? AND language = ?", locationName, language).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
