//go:build !integration

package recommend_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"materialAdvisor/business/recommend"
	"materialAdvisor/domain"
	"materialAdvisor/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *recommend.RecommendService
	feedback *memory.FeedbackRepository
	models   *memory.ModelRepository
}

func testCatalog() []domain.MaterialRecord {
	return []domain.MaterialRecord{
		{
			ID:   "steel",
			Name: "Steel",
			Properties: map[string]float64{
				domain.PropTensileStrength:  500,
				domain.PropOperatingTempMin: -20,
				domain.PropOperatingTempMax: 400,
			},
			Cost:         domain.MaterialCost{PricePerKg: domain.Float(3)},
			Applications: []string{"automotive frames"},
		},
		{
			ID:   "plastic",
			Name: "Plastic",
			Properties: map[string]float64{
				domain.PropTensileStrength:  40,
				domain.PropOperatingTempMin: -20,
				domain.PropOperatingTempMax: 80,
			},
			Cost:         domain.MaterialCost{PricePerKg: domain.Float(2)},
			Applications: []string{"toys"},
		},
	}
}

func newFixture(t *testing.T, cfg recommend.Config) fixture {
	t.Helper()

	catalog := testCatalog()
	fx := fixture{
		feedback: memory.NewFeedbackRepository(),
		models:   memory.NewModelRepository(),
	}
	fx.svc = recommend.NewRecommendService(memory.NewCatalogRepository(catalog), fx.feedback, fx.models, cfg)
	require.NoError(t, fx.svc.Init(context.Background()))
	return fx
}

func fiveStar(material, ctx string) domain.FeedbackEvent {
	r := 5
	return domain.FeedbackEvent{
		MaterialID:         material,
		FeedbackType:       domain.FeedbackRating,
		Rating:             &r,
		ApplicationContext: ctx,
	}
}

func TestInitFallsBackToNeutralModel(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())

	assert.Equal(t, recommend.NeutralModel().Weights, fx.svc.CurrentModel().Weights)
	assert.Zero(t, fx.svc.CurrentModel().Confidence)
}

func TestInitLoadsStoredModel(t *testing.T) {
	models := memory.NewModelRepository()
	stored := domain.Model{Version: 4, Weights: map[string]float64{domain.DimCost: 1}, Confidence: 0.3}
	require.NoError(t, models.SaveModel(context.Background(), stored))

	svc := recommend.NewRecommendService(memory.NewCatalogRepository(nil), memory.NewFeedbackRepository(), models, recommend.DefaultConfig())
	require.NoError(t, svc.Init(context.Background()))

	assert.Equal(t, 4, svc.CurrentModel().Version)
	assert.Equal(t, 4, svc.Performance().ModelVersion)
}

func TestRecommendEndToEnd(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())

	res, err := fx.svc.Recommend(context.Background(), domain.RequirementSpec{
		TensileStrength: &domain.Range{Min: domain.Float(200)},
		Budget:          &domain.Range{Max: domain.Float(10)},
	}, 0)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "steel", res.Items[0].Material.ID)
	assert.Greater(t, res.Items[0].OverallScore, 0.0)
	assert.Equal(t, 0, res.ModelVersion)
}

func TestRecommendLimitAndValidation(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())

	res, err := fx.svc.Recommend(context.Background(), domain.RequirementSpec{}, 1)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)

	_, err = fx.svc.Recommend(context.Background(), domain.RequirementSpec{
		Density: &domain.Range{Min: domain.Float(3), Max: domain.Float(1)},
	}, 5)
	var verr *recommend.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSubmitFeedbackRejectsMalformedRating(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())
	seven := 7

	_, err := fx.svc.SubmitFeedback(context.Background(), domain.FeedbackEvent{
		MaterialID:   "steel",
		FeedbackType: domain.FeedbackRating,
		Rating:       &seven,
	})

	var verr *recommend.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "rating", verr.Field)

	stored, err := fx.feedback.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSubmitFeedbackFillsIdentity(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())

	saved, err := fx.svc.SubmitFeedback(context.Background(), fiveStar("steel", "automotive"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.Timestamp.IsZero())

	stored, err := fx.feedback.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, saved.ID, stored[0].ID)
}

func TestSubmitFeedbackToleratesUnknownMaterial(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())

	_, err := fx.svc.SubmitFeedback(context.Background(), fiveStar("unobtainium", ""))
	require.NoError(t, err)

	model, err := fx.svc.Retrain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, model.Version)
}

func TestRetrainPublishesAndPersists(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := fx.svc.SubmitFeedback(ctx, fiveStar("steel", "automotive"))
		require.NoError(t, err)
	}

	model, err := fx.svc.Retrain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, model.Version)
	assert.Greater(t, model.Weights[domain.DimApplicationSimilarity], recommend.NeutralModel().Weights[domain.DimApplicationSimilarity])

	stored, err := fx.models.LoadModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, model, stored)

	assert.Equal(t, 1, fx.svc.CurrentModel().Version)
	assert.Equal(t, 5, fx.svc.Performance().TrainingSize)

	res, err := fx.svc.Recommend(ctx, domain.RequirementSpec{ApplicationContext: "automotive"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ModelVersion)
	assert.Equal(t, "steel", res.Items[0].Material.ID)
}

func TestRetrainWithoutFeedbackKeepsPrior(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())
	ctx := context.Background()

	model, err := fx.svc.Retrain(ctx)
	require.NoError(t, err)
	assert.Equal(t, recommend.NeutralModel().Weights, model.Weights)

	_, err = fx.models.LoadModel(ctx)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestRetrainIsStableOnUnchangedLog(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := fx.svc.SubmitFeedback(ctx, fiveStar("steel", "automotive"))
		require.NoError(t, err)
	}

	first, err := fx.svc.Retrain(ctx)
	require.NoError(t, err)
	second, err := fx.svc.Retrain(ctx)
	require.NoError(t, err)
	third, err := fx.svc.Retrain(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, []int{first.Version, second.Version, third.Version})
	assert.Equal(t, first.Weights, second.Weights)
	assert.Equal(t, first.Weights, third.Weights)
	assert.Equal(t, first.Bias, second.Bias)
	assert.Equal(t, first.Bias, third.Bias)
	assert.Equal(t, first.Confidence, third.Confidence)
}

// feedbackDuringRead appends through the service while a retrain is
// reading the log.
type feedbackDuringRead struct {
	*memory.FeedbackRepository
	once   sync.Once
	onRead func()
}

func (r *feedbackDuringRead) ReadAll(ctx context.Context) ([]domain.FeedbackEvent, error) {
	if r.onRead != nil {
		r.once.Do(r.onRead)
	}
	return r.FeedbackRepository.ReadAll(ctx)
}

func TestRetrainKeepsCountOfConcurrentFeedback(t *testing.T) {
	ctx := context.Background()
	cfg := recommend.DefaultConfig()
	cfg.RetrainEvery = 3

	repo := &feedbackDuringRead{FeedbackRepository: memory.NewFeedbackRepository()}
	svc := recommend.NewRecommendService(memory.NewCatalogRepository(testCatalog()), repo, memory.NewModelRepository(), cfg)
	require.NoError(t, svc.Init(ctx))

	_, err := svc.SubmitFeedback(ctx, fiveStar("steel", "automotive"))
	require.NoError(t, err)

	repo.onRead = func() {
		_, err := svc.SubmitFeedback(ctx, fiveStar("steel", "automotive"))
		require.NoError(t, err)
	}
	model, err := svc.Retrain(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, model.Version)

	// the event appended during the read still counts toward the next retrain
	_, err = svc.SubmitFeedback(ctx, fiveStar("steel", "automotive"))
	require.NoError(t, err)
	assert.Equal(t, 1, svc.CurrentModel().Version)

	_, err = svc.SubmitFeedback(ctx, fiveStar("steel", "automotive"))
	require.NoError(t, err)
	assert.Equal(t, 2, svc.CurrentModel().Version)
}

func TestRetrainEveryNEvents(t *testing.T) {
	cfg := recommend.DefaultConfig()
	cfg.RetrainEvery = 2
	fx := newFixture(t, cfg)
	ctx := context.Background()

	_, err := fx.svc.SubmitFeedback(ctx, fiveStar("steel", "automotive"))
	require.NoError(t, err)
	assert.Equal(t, 0, fx.svc.CurrentModel().Version)

	_, err = fx.svc.SubmitFeedback(ctx, fiveStar("steel", "automotive"))
	require.NoError(t, err)
	assert.Equal(t, 1, fx.svc.CurrentModel().Version)
}

func TestRunRetrainLoopStopsOnCancel(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())
	_, err := fx.svc.SubmitFeedback(context.Background(), fiveStar("steel", "automotive"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		fx.svc.RunRetrainLoop(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return fx.svc.CurrentModel().Version >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("retrain loop did not stop")
	}
}

func TestDebugRecommendExplainsExclusions(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())

	out, err := fx.svc.DebugRecommend(context.Background(), domain.RequirementSpec{
		TensileStrength: &domain.Range{Min: domain.Float(200)},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "steel", out[0].MaterialID)
	assert.True(t, out[0].Retained)
	assert.Len(t, out[0].SubScores, len(domain.AllDimensions))
	assert.Greater(t, out[0].OverallScore, 0.0)

	assert.Equal(t, "plastic", out[1].MaterialID)
	assert.False(t, out[1].Retained)
	assert.Equal(t, []string{recommend.CheckTensileStrength}, out[1].FailedChecks)
}

func TestConcurrentReadsDuringRetrain(t *testing.T) {
	fx := newFixture(t, recommend.DefaultConfig())
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, err := fx.svc.SubmitFeedback(ctx, fiveStar("steel", "automotive"))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := fx.svc.Recommend(ctx, domain.RequirementSpec{}, 0)
				assert.NoError(t, err)
			}
		}()
	}
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.svc.Retrain(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, fx.svc.CurrentModel().Version)
}
