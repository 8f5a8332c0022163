package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/config"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/outreach"
	"github.com/amirphl/Yatagarasu/repository"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/redis/go-redis/v9"
)

// learnedSlotsLookback bounds how far back call history feeds the learned slots
const learnedSlotsLookback = 90 * 24 * time.Hour

// TimingFlow provides the use case for timing recommendations on a lead
type TimingFlow interface {
	GetRecommendation(ctx context.Context, repID uint, leadUUID string) (*dto.TimingRecommendationResponse, error)
}

// TimingFlowImpl implements the timing business flow
type TimingFlowImpl struct {
	leadRepo     repository.LeadRepository
	activityRepo repository.ActivityRepository
	timing       *outreach.TimingModel
	cacheConfig  *config.CacheConfig
	rc           *redis.Client
}

// NewTimingFlow creates a new timing flow instance
func NewTimingFlow(
	leadRepo repository.LeadRepository,
	activityRepo repository.ActivityRepository,
	timing *outreach.TimingModel,
	cacheConfig *config.CacheConfig,
	rc *redis.Client,
) TimingFlow {
	return &TimingFlowImpl{
		leadRepo:     leadRepo,
		activityRepo: activityRepo,
		timing:       timing,
		cacheConfig:  cacheConfig,
		rc:           rc,
	}
}

// GetRecommendation scores the current instant for the lead's business type and
// returns the next best window, the static window summary, and the rep's
// learned best-call slots.
func (f *TimingFlowImpl) GetRecommendation(ctx context.Context, repID uint, leadUUID string) (*dto.TimingRecommendationResponse, error) {
	lead, err := f.leadRepo.ByUUID(ctx, leadUUID)
	if err != nil {
		return nil, NewBusinessError("TIMING_FAILED", "Timing recommendation failed", err)
	}
	if lead == nil {
		return nil, NewBusinessError("TIMING_FAILED", "Timing recommendation failed", ErrLeadNotFound)
	}
	if lead.AssignedTo == nil || *lead.AssignedTo != repID {
		return nil, NewBusinessError("TIMING_FAILED", "Timing recommendation failed", ErrLeadAccessDenied)
	}

	bt := outreach.ClassifyBusiness(lead.Category)
	now := utils.UTCNow()

	current := f.timing.ScoreInstant(bt, now)
	nextTime, nextWindow := f.timing.NextBestWindow(bt, now)

	resp := &dto.TimingRecommendationResponse{
		LeadUUID:     lead.UUID.String(),
		BusinessType: bt.String(),
		CurrentScore: dto.TimingScoreDTO{
			Score: current.Score,
			Label: current.Label,
		},
		NextBestTime:    nextTime,
		NextWindowLabel: nextWindow.Label,
	}
	if current.Window != nil {
		resp.CurrentScore.WindowLabel = &current.Window.Label
	}

	for _, g := range f.timing.WindowSummary(bt) {
		resp.BestWindows = append(resp.BestWindows, dto.WindowGroupDTO{
			DayLabel:  g.DayLabel,
			TimeRange: g.TimeRange,
			Quality:   g.Quality,
		})
	}

	slots, err := f.learnedSlots(ctx, repID, now)
	if err != nil {
		// Learned slots are advisory; a cache or query hiccup must not sink
		// the whole recommendation.
		slots = nil
	}
	for _, s := range slots {
		resp.LearnedSlots = append(resp.LearnedSlots, dto.LearnedSlotDTO{
			TimeLabel:   s.TimeLabel(),
			ConnectRate: s.ConnectRate,
			Calls:       s.Total,
		})
	}

	return resp, nil
}

// learnedSlots returns the rep's ranked call slots, cached per rep
func (f *TimingFlowImpl) learnedSlots(ctx context.Context, repID uint, now time.Time) ([]outreach.CallSlot, error) {
	cacheKey := redisKey(*f.cacheConfig, fmt.Sprintf("learned_slots:%d", repID))

	if f.rc != nil {
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached []outreach.CallSlot
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	activities, err := f.activityRepo.ListCallsByRep(ctx, repID, now.Add(-learnedSlotsLookback))
	if err != nil {
		return nil, err
	}

	history := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		history = append(history, *a)
	}

	slots := outreach.LearnFromHistory(history)

	if f.rc != nil && slots != nil {
		if bs, err := json.Marshal(slots); err == nil {
			_ = f.rc.Set(ctx, cacheKey, bs, utils.LearnedSlotsCacheTTL).Err()
		}
	}

	return slots, nil
}

// redisKey prefixes a cache key with the configured namespace
func redisKey(cfg config.CacheConfig, key string) string {
	return cfg.RedisPrefix + key
}
