package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/guidequality-backend/internal/logger"
	"github.com/yungbote/guidequality-backend/internal/normalization"
	pkgerrors "github.com/yungbote/guidequality-backend/internal/pkg/errors"
	"github.com/yungbote/guidequality-backend/internal/quality"
	"github.com/yungbote/guidequality-backend/internal/repos"
	"github.com/yungbote/guidequality-backend/internal/types"
)

// VerifyGuideInput is one verification request after HTTP decoding.
type VerifyGuideInput struct {
	GuideContent     any
	LocationName     string
	Language         string
	ExpectedElements []string
}

// LocationReport is the latest persisted verification plus its history
// signals.
type LocationReport struct {
	Record *types.QualityRecord `json:"record"`
	Trend  string               `json:"trend"`
	Risk   string               `json:"riskLevel"`
}

type VerificationService interface {
	VerifyGuide(ctx context.Context, input VerifyGuideInput) (types.QualityReport, error)
	AnalyzeScript(ctx context.Context, script, language string) (types.ScriptReport, error)
	LocationReport(ctx context.Context, locationName, language string) (*LocationReport, error)
}

type verificationService struct {
	db         *gorm.DB
	log        *logger.Logger
	engine     *quality.Engine
	recordRepo repos.QualityRecordRepo
	cache      ReportCache
	verifyWith string
}

// NewVerificationService wires the engine to its persistence and caching
// sides. Both recordRepo and cache may be nil: verification still works,
// it just loses history and caching.
func NewVerificationService(db *gorm.DB, log *logger.Logger, engine *quality.Engine, recordRepo repos.QualityRecordRepo, cache ReportCache, verifyWith string) VerificationService {
	serviceLog := log.With("service", "VerificationService")
	if verifyWith == "" {
		verifyWith = "semantic+structural"
	}
	return &verificationService{
		db:         db,
		log:        serviceLog,
		engine:     engine,
		recordRepo: recordRepo,
		cache:      cache,
		verifyWith: verifyWith,
	}
}

func (vs *verificationService) VerifyGuide(ctx context.Context, input VerifyGuideInput) (types.QualityReport, error) {
	var cacheKey string
	if vs.cache != nil {
		if serialized, err := json.Marshal(input.GuideContent); err == nil {
			cacheKey = CacheKey(input.LocationName, input.Language, string(serialized))
			if cached, ok := vs.cache.Get(ctx, cacheKey); ok {
				vs.log.Debug("returning cached report", "location", input.LocationName)
				return *cached, nil
			}
		}
	}

	report, err := vs.engine.VerifyGuide(ctx, input.GuideContent, input.LocationName, input.Language, input.ExpectedElements)
	if err != nil {
		return types.QualityReport{}, err
	}

	if vs.cache != nil && cacheKey != "" {
		vs.cache.Set(ctx, cacheKey, report)
	}
	vs.persist(ctx, input, report)

	return report, nil
}

// persist stores the verification for trend history. Best effort: a
// storage failure is logged and the report is still returned.
func (vs *verificationService) persist(ctx context.Context, input VerifyGuideInput, report types.QualityReport) {
	if vs.recordRepo == nil {
		return
	}

	issues, err := json.Marshal(report.Issues)
	if err != nil {
		issues = []byte("[]")
	}
	recs, err := json.Marshal(report.Recommendations)
	if err != nil {
		recs = []byte("[]")
	}

	// Canonical location/language so lookups are case and whitespace
	// insensitive.
	record := &types.QualityRecord{
		ID:                  uuid.New(),
		LocationName:        normalization.ParseInputString(input.LocationName),
		Language:            normalization.ParseInputString(input.Language),
		FactualAccuracy:     report.FactualAccuracy,
		ContentCompleteness: report.ContentCompleteness,
		CoherenceScore:      report.CoherenceScore,
		CulturalSensitivity: report.CulturalSensitivity,
		OverallQuality:      report.OverallQuality,
		ConfidenceLevel:     report.ConfidenceLevel,
		QualityTier:         report.QualityTier,
		Issues:              datatypes.JSON(issues),
		Recommendations:     datatypes.JSON(recs),
		VerificationMethod:  vs.verifyWith,
		ProcessingTimeMs:    report.ProcessingTimeMs,
		CreatedAt:           time.Now().UTC(),
	}
	if _, err := vs.recordRepo.Create(ctx, nil, []*types.QualityRecord{record}); err != nil {
		vs.log.Warn("failed to persist quality record", "location", input.LocationName, "error", err)
	}
}

func (vs *verificationService) AnalyzeScript(ctx context.Context, script, language string) (types.ScriptReport, error) {
	if strings.TrimSpace(script) == "" {
		return types.ScriptReport{}, fmt.Errorf("%w: script is empty", pkgerrors.ErrInvalidArgument)
	}
	return vs.engine.AnalyzeScript(ctx, script, language)
}

func (vs *verificationService) LocationReport(ctx context.Context, locationName, language string) (*LocationReport, error) {
	if vs.recordRepo == nil {
		return nil, pkgerrors.ErrNotFound
	}

	locationName = normalization.ParseInputString(locationName)
	language = normalization.ParseInputString(language)

	latest, err := vs.recordRepo.Latest(ctx, nil, locationName, language)
	if err != nil {
		return nil, err
	}
	recent, err := vs.recordRepo.Recent(ctx, nil, locationName, language, 3)
	if err != nil {
		vs.log.Warn("failed to load history for trend", "location", locationName, "error", err)
		recent = []*types.QualityRecord{latest}
	}

	trend := ClassifyTrend(recent)
	return &LocationReport{
		Record: latest,
		Trend:  trend,
		Risk:   RiskLevel(latest, trend),
	}, nil
}
