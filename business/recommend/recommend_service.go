package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"materialAdvisor/domain"
	"materialAdvisor/pkg/logger"

	"github.com/google/uuid"
)

// ---- Repository interfaces ----

type CatalogRepository interface {
	FindAll(ctx context.Context) ([]domain.MaterialRecord, error)
	FindByID(ctx context.Context, id string) (domain.MaterialRecord, error)
}

// FeedbackRepository is append-only.
type FeedbackRepository interface {
	Append(ctx context.Context, event domain.FeedbackEvent) error
	// ReadAll returns every event ordered by timestamp, then id.
	ReadAll(ctx context.Context) ([]domain.FeedbackEvent, error)
}

// ModelRepository returns domain.ErrModelNotFound when nothing was saved yet.
type ModelRepository interface {
	LoadModel(ctx context.Context) (domain.Model, error)
	SaveModel(ctx context.Context, model domain.Model) error
}

type RecommendResult struct {
	Items        []domain.ScoredMaterial `json:"items"`
	ModelVersion int                     `json:"model_version"`
	Confidence   float64                 `json:"confidence"`
}

// ---- Service ----

type RecommendService struct {
	catalog  CatalogRepository
	feedback FeedbackRepository
	models   ModelRepository
	trainer  *Trainer
	cfg      Config

	// current model and scorer are swapped as a whole after a retrain
	model  atomic.Pointer[domain.Model]
	scorer atomic.Pointer[Scorer]
	perf   atomic.Pointer[domain.PerformanceSnapshot]

	retrainMu    sync.Mutex
	sinceRetrain atomic.Int64
	now          func() time.Time
}

func NewRecommendService(
	catalog CatalogRepository,
	feedback FeedbackRepository,
	models ModelRepository,
	cfg Config,
) *RecommendService {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = defaultMax
	}

	s := &RecommendService{
		catalog:  catalog,
		feedback: feedback,
		models:   models,
		trainer:  NewTrainer(cfg.Trainer),
		cfg:      cfg,
		now:      time.Now,
	}

	neutral := NeutralModel()
	s.model.Store(&neutral)
	s.scorer.Store(&Scorer{})
	s.perf.Store(&domain.PerformanceSnapshot{})
	return s
}

// Init loads the persisted model and the comment corpus. A missing or
// unreadable model is replaced by NeutralModel.
func (s *RecommendService) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	model, err := s.models.LoadModel(ctx)
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		logger.Warn("no stored model, serving neutral weights")
		model = NeutralModel()
	case err != nil:
		logger.Error("failed to load model, serving neutral weights", "error", err)
		model = NeutralModel()
	}
	s.publish(model)

	history, err := s.feedback.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read feedback: %w", err)
	}
	s.scorer.Store(NewScorer(history))

	logger.Info("recommend engine ready",
		"model_version", model.Version,
		"confidence", model.Confidence,
		"feedback_events", len(history),
	)
	return nil
}

//  Recommendation / serving

func (s *RecommendService) Recommend(ctx context.Context, spec domain.RequirementSpec, limit int) (RecommendResult, error) {
	if err := ctx.Err(); err != nil {
		return RecommendResult{}, fmt.Errorf("context error: %w", err)
	}
	if err := ValidateRequirements(spec); err != nil {
		return RecommendResult{}, err
	}
	limit = s.normalizeLimit(limit)

	catalog, err := s.catalog.FindAll(ctx)
	if err != nil {
		return RecommendResult{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	model := s.CurrentModel()
	ranked := s.scorer.Load().Rank(catalog, spec, model)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	tid := TraceIDFromContext(ctx)
	for _, item := range ranked {
		for _, w := range item.Warnings {
			logger.Warn("sub-score fallback",
				"trace_id", tid,
				"material_id", item.Material.ID,
				"detail", w,
			)
		}
	}
	logger.Debug("material_recommend",
		"trace_id", tid,
		"catalog_size", len(catalog),
		"returned", len(ranked),
		"model_version", model.Version,
	)

	return RecommendResult{
		Items:        ranked,
		ModelVersion: model.Version,
		Confidence:   model.Confidence,
	}, nil
}

func (s *RecommendService) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}

//  Feedback / learning

// SubmitFeedback validates and appends one event. It fills in the id and the
// timestamp when the caller left them empty.
func (s *RecommendService) SubmitFeedback(ctx context.Context, event domain.FeedbackEvent) (domain.FeedbackEvent, error) {
	if err := ctx.Err(); err != nil {
		return domain.FeedbackEvent{}, fmt.Errorf("context error: %w", err)
	}
	if err := ValidateFeedback(event); err != nil {
		return domain.FeedbackEvent{}, err
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now().UTC()
	}

	tid := TraceIDFromContext(ctx)
	if _, err := s.catalog.FindByID(ctx, event.MaterialID); err != nil {
		if !errors.Is(err, domain.ErrMaterialNotFound) {
			return domain.FeedbackEvent{}, fmt.Errorf("failed to look up material: %w", err)
		}
		logger.Warn("feedback references unknown material",
			"trace_id", tid,
			"material_id", event.MaterialID,
			"event_id", event.ID,
		)
	}

	if err := s.feedback.Append(ctx, event); err != nil {
		return domain.FeedbackEvent{}, fmt.Errorf("failed to append feedback: %w", err)
	}

	FeedbackEventsTotal.WithLabelValues(event.FeedbackType).Inc()
	logger.Debug("material_feedback",
		"trace_id", tid,
		"event_id", event.ID,
		"material_id", event.MaterialID,
		"feedback_type", event.FeedbackType,
	)

	if n := s.sinceRetrain.Add(1); s.cfg.RetrainEvery > 0 && n >= int64(s.cfg.RetrainEvery) {
		if _, err := s.Retrain(ctx); err != nil {
			logger.Error("event-count retrain failed", "trace_id", tid, "error", err)
		}
	}

	return event, nil
}

// Retrain fits a new model on the full feedback history, persists it and
// makes it current. Concurrent calls are serialized.
func (s *RecommendService) Retrain(ctx context.Context) (domain.Model, error) {
	s.retrainMu.Lock()
	defer s.retrainMu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.Model{}, fmt.Errorf("context error: %w", err)
	}

	counted := s.sinceRetrain.Load()
	history, err := s.feedback.ReadAll(ctx)
	if err != nil {
		RetrainsTotal.WithLabelValues("error").Inc()
		return domain.Model{}, fmt.Errorf("failed to read feedback: %w", err)
	}
	catalog, err := s.catalog.FindAll(ctx)
	if err != nil {
		RetrainsTotal.WithLabelValues("error").Inc()
		return domain.Model{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	// fitted from neutral weights on every run; only the version carries over
	current := s.CurrentModel()
	base := NeutralModel()
	base.Version = current.Version
	res := s.trainer.Train(history, base, catalog)
	s.sinceRetrain.Add(-counted)

	for _, id := range res.Orphans {
		logger.Warn("feedback for material missing from catalog skipped", "material_id", id)
	}

	if res.Used == 0 {
		RetrainsTotal.WithLabelValues("cold_start").Inc()
		logger.Info("retrain skipped, no usable feedback", "events", len(history))
		return current, nil
	}

	if err := s.models.SaveModel(ctx, res.Model); err != nil {
		RetrainsTotal.WithLabelValues("error").Inc()
		return domain.Model{}, fmt.Errorf("failed to save model: %w", err)
	}

	s.publish(res.Model)
	s.scorer.Store(NewScorer(history))
	perf := res.Performance
	s.perf.Store(&perf)
	RetrainsTotal.WithLabelValues("trained").Inc()

	logger.Info("model retrained",
		"version", res.Model.Version,
		"training_size", res.Used,
		"skipped", res.Skipped,
		"confidence", res.Model.Confidence,
		"accuracy", perf.Accuracy,
	)
	return res.Model.Clone(), nil
}

// RunRetrainLoop retrains on every tick until ctx is cancelled.
func (s *RecommendService) RunRetrainLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Retrain(ctx); err != nil && ctx.Err() == nil {
				logger.Error("scheduled retrain failed", "error", err)
			}
		}
	}
}

func (s *RecommendService) publish(model domain.Model) {
	m := model.Clone()
	s.model.Store(&m)
	ModelConfidence.Set(m.Confidence)
	ModelVersion.Set(float64(m.Version))
}

// CurrentModel returns a copy of the model in use.
func (s *RecommendService) CurrentModel() domain.Model {
	return s.model.Load().Clone()
}

// Performance returns the snapshot computed at the last successful retrain.
func (s *RecommendService) Performance() domain.PerformanceSnapshot {
	snap := *s.perf.Load()
	if snap.ModelVersion == 0 {
		m := s.model.Load()
		snap.ModelVersion = m.Version
		snap.TrainingSize = m.TrainingSize
		snap.LastTrainingDate = m.TrainedAt
	}
	return snap
}

func (s *RecommendService) ListFeedback(ctx context.Context) ([]domain.FeedbackEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	events, err := s.feedback.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback: %w", err)
	}
	return events, nil
}
