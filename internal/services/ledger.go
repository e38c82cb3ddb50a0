package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	interf "github.com/glkeru/civicpoints/internal/interfaces"
	model "github.com/glkeru/civicpoints/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Базовые начисления за активность
const (
	PointsReportCreated  = 10
	PointsReportUpvoted  = 2
	PointsReportResolved = 25
)

// кол-во повторов атомарного применения при конфликте
const commitRetries = 3

type GamificationService struct {
	logger *zap.Logger
	db     interf.LedgerStorage
	cache  interf.CacheStorage
}

func NewGamificationService(logger *zap.Logger, db interf.LedgerStorage, cache interf.CacheStorage) (service *GamificationService) {
	return &GamificationService{logger, db, cache}
}

// Регистрация счета: 0 баллов, без достижений
func (s *GamificationService) Register(ctx context.Context, user string) (model.Account, error) {
	return s.db.AccountCreate(ctx, user)
}

// ApplyActivity применяет событие активности: базовые баллы и достижения
// одним атомарным изменением счета. Половинчатое состояние (баллы без
// бонуса) не наблюдаемо.
func (s *GamificationService) ApplyActivity(ctx context.Context, ev model.ActivityEvent) (model.Account, error) {
	var base int
	switch ev.Kind {
	case model.ReportCreated:
		base = PointsReportCreated
	case model.ReportUpvoted:
		base = PointsReportUpvoted
	case model.ReportResolved:
		// +25 за каждый перевод в Resolved, независимо от достижений
		base = PointsReportResolved
	default:
		return model.Account{}, fmt.Errorf("unknown activity kind: %d", ev.Kind)
	}

	account, err := s.db.AccountGet(ctx, ev.User)
	if err != nil {
		return model.Account{}, err
	}

	// поддержка жалобы голосом не открывает достижений
	var grants []model.AchievementGrant
	if ev.Kind != model.ReportUpvoted {
		grants = EvaluateAchievements(account, ev)
	}

	account, err = s.applyDelta(ctx, ev.User, base, grants)
	if err != nil {
		return model.Account{}, err
	}
	s.invalidate(ctx, ev.User)
	return account, nil
}

// применение дельты с повтором при конфликте
func (s *GamificationService) applyDelta(ctx context.Context, user string, points int, grants []model.AchievementGrant) (account model.Account, err error) {
	for i := 0; i < commitRetries; i++ {
		account, err = s.db.ApplyDelta(ctx, user, points, grants)
		if !errors.Is(err, model.ErrConflict) {
			return account, err
		}
	}
	return model.Account{}, fmt.Errorf("apply delta: %w", err)
}

// Сводка по счету
func (s *GamificationService) GetSummary(ctx context.Context, user string) (summary model.AccountSummary, err error) {
	// cache
	if s.cache != nil {
		summary, err = s.cache.GetSummary(ctx, user)
		if err == nil {
			return summary, nil
		}
	}
	account, err := s.db.AccountGet(ctx, user)
	if err != nil {
		return model.AccountSummary{}, err
	}
	summary = model.AccountSummary{Points: account.Points, Achievements: account.Achievements}
	if s.cache != nil {
		_ = s.cache.SetSummary(ctx, user, summary)
	}
	return summary, nil
}

// инвалидировать кэш сводки
func (s *GamificationService) invalidate(ctx context.Context, user string) {
	if s.cache == nil {
		return
	}
	err := s.cache.InvalidateSummary(ctx, user)
	if err != nil {
		s.logger.Error("Cache invalidate",
			zap.String("user", user),
			zap.Error(err),
		)
	}
}

// Каталог вознаграждений

func (s *GamificationService) RewardSave(ctx context.Context, reward model.Reward) (uuid.UUID, error) {
	return s.db.RewardSave(ctx, reward)
}

func (s *GamificationService) RewardGet(ctx context.Context, rewardId uuid.UUID) (model.Reward, error) {
	return s.db.RewardGet(ctx, rewardId)
}

func (s *GamificationService) RewardList(ctx context.Context, category string, onlyActive bool) ([]model.Reward, error) {
	return s.db.RewardList(ctx, category, onlyActive)
}

// Обмены пользователя
func (s *GamificationService) RedemptionList(ctx context.Context, user string) ([]model.Redemption, error) {
	return s.db.RedemptionList(ctx, user)
}

// Сообщение о событии активности из очереди
type ActivityMessage struct {
	Kind        string `json:"kind"`
	UserId      string `json:"userId"`
	ReportCount int    `json:"reportCount"`
}

var activityKinds = map[string]model.ActivityKind{
	"report_created":  model.ReportCreated,
	"report_upvoted":  model.ReportUpvoted,
	"report_resolved": model.ReportResolved,
}

// Применение разобранного сообщения о событии
func (s *GamificationService) ActivityApply(ctx context.Context, msg ActivityMessage) (model.Account, error) {
	if msg.UserId == "" {
		return model.Account{}, fmt.Errorf("invalid activity: userId field is required")
	}
	kind, ok := activityKinds[msg.Kind]
	if !ok {
		return model.Account{}, fmt.Errorf("invalid activity: unknown kind %q", msg.Kind)
	}
	return s.ApplyActivity(ctx, model.ActivityEvent{
		Kind:        kind,
		User:        msg.UserId,
		ReportCount: msg.ReportCount,
	})
}

// Обработка события активности из очереди
func (s *GamificationService) ActivityProcess(ctx context.Context, activityJson string) error {
	msg := &ActivityMessage{}
	err := json.Unmarshal([]byte(activityJson), msg)
	if err != nil {
		return err
	}
	_, err = s.ActivityApply(ctx, *msg)
	return err
}

func (s *GamificationService) Log(err error) {
	s.logger.Error(err.Error())
}
