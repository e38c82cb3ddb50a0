package gamification

import (
	"context"

	model "github.com/glkeru/civicpoints/internal/models"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=./../services/mock_storage_test.go -package=gamification . LedgerStorage,CacheStorage

type LedgerStorage interface {
	AccountCreate(ctx context.Context, user string) (model.Account, error)
	AccountGet(ctx context.Context, user string) (model.Account, error)
	// ApplyDelta - единственный путь изменения счета: атомарно применяет
	// дельту баллов и новые достижения. Бонус достижения начисляется только
	// если достижение еще не открыто. ErrInsufficientBalance, если баланс
	// ушел бы в минус.
	ApplyDelta(ctx context.Context, user string, points int, grants []model.AchievementGrant) (model.Account, error)
	RewardSave(ctx context.Context, reward model.Reward) (uuid.UUID, error)
	RewardGet(ctx context.Context, rewardId uuid.UUID) (model.Reward, error)
	RewardList(ctx context.Context, category string, onlyActive bool) ([]model.Reward, error)
	// RedemptionCommit атомарно добавляет обмен и списывает стоимость,
	// перепроверяя остаток вознаграждения и баланс по актуальному состоянию.
	RedemptionCommit(ctx context.Context, tnx model.Redemption, cost int) (model.Account, error)
	RedemptionCount(ctx context.Context, user string) (count int, err error)
	RedemptionList(ctx context.Context, user string) ([]model.Redemption, error)
}

type CacheStorage interface {
	GetSummary(ctx context.Context, user string) (summary model.AccountSummary, err error)
	SetSummary(ctx context.Context, user string, summary model.AccountSummary) (err error)
	InvalidateSummary(ctx context.Context, user string) error
}
