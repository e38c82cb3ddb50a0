package gamification

import (
	"context"
	"testing"
	"time"

	db "github.com/glkeru/civicpoints/internal/db"
	model "github.com/glkeru/civicpoints/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*GamificationService, *db.MemoryDB) {
	t.Helper()
	storage := db.NewMemoryDB()
	return NewGamificationService(zap.NewNop(), storage, nil), storage
}

// счет с заданным балансом
func seedAccount(t *testing.T, storage *db.MemoryDB, user string, points int) {
	t.Helper()
	ctx := context.Background()
	_, err := storage.AccountCreate(ctx, user)
	require.NoError(t, err)
	if points > 0 {
		_, err = storage.ApplyDelta(ctx, user, points, nil)
		require.NoError(t, err)
	}
}

func seedReward(t *testing.T, storage *db.MemoryDB, reward model.Reward) uuid.UUID {
	t.Helper()
	id, err := storage.RewardSave(context.Background(), reward)
	require.NoError(t, err)
	return id
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()
	serv, storage := newTestService(t)
	seedAccount(t, storage, "u1", 200)
	rewardId := seedReward(t, storage, model.Reward{
		Name:         "Проездной",
		Category:     "transport",
		PointsCost:   150,
		Availability: 10,
		IsActive:     true,
	})

	result, err := serv.Redeem(ctx, "u1", rewardId)
	require.NoError(t, err)
	require.Len(t, result.Code, 16)
	require.Equal(t, 50, result.RemainingPoints)

	account, err := storage.AccountGet(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 50, account.Points)

	reward, err := storage.RewardGet(ctx, rewardId)
	require.NoError(t, err)
	require.Equal(t, 1, reward.Redeemed)

	tnxs, err := serv.RedemptionList(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tnxs, 1)
	require.Equal(t, result.Code, tnxs[0].Code)
}

// любая ошибка проверки - баланс не меняется
func TestRedeemValidation(t *testing.T) {
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		Name   string
		Reward model.Reward
		User   string
		Points int
		Err    error
	}{
		{
			Name:   "Вознаграждение отключено",
			Reward: model.Reward{Name: "r", PointsCost: 10, Availability: -1, IsActive: false},
			User:   "u1", Points: 100,
			Err: model.ErrRewardInactive,
		},
		{
			Name:   "Срок истек",
			Reward: model.Reward{Name: "r", PointsCost: 10, Availability: -1, IsActive: true, ExpiryDate: &past},
			User:   "u1", Points: 100,
			Err: model.ErrRewardExpired,
		},
		{
			Name:   "Срок истек даже при достатке баллов",
			Reward: model.Reward{Name: "r", PointsCost: 10, Availability: -1, IsActive: true, ExpiryDate: &past},
			User:   "u1", Points: 10000,
			Err: model.ErrRewardExpired,
		},
		{
			Name:   "Остаток исчерпан",
			Reward: model.Reward{Name: "r", PointsCost: 10, Availability: 0, IsActive: true},
			User:   "u1", Points: 100,
			Err: model.ErrRewardExhausted,
		},
		{
			Name:   "Не хватает баллов",
			Reward: model.Reward{Name: "r", PointsCost: 500, Availability: -1, IsActive: true, ExpiryDate: &future},
			User:   "u1", Points: 100,
			Err: model.ErrInsufficientBalance,
		},
	}
	for _, ts := range tests {
		ts := ts
		t.Run(ts.Name, func(t *testing.T) {
			serv, storage := newTestService(t)
			seedAccount(t, storage, ts.User, ts.Points)
			rewardId := seedReward(t, storage, ts.Reward)

			_, err := serv.Redeem(ctx, ts.User, rewardId)
			require.ErrorIs(t, err, ts.Err)

			account, err := storage.AccountGet(ctx, ts.User)
			require.NoError(t, err)
			require.Equal(t, ts.Points, account.Points)

			reward, err := storage.RewardGet(ctx, rewardId)
			require.NoError(t, err)
			require.Equal(t, 0, reward.Redeemed)
		})
	}
}

func TestRedeemRewardNotFound(t *testing.T) {
	serv, storage := newTestService(t)
	seedAccount(t, storage, "u1", 100)

	_, err := serv.Redeem(context.Background(), "u1", uuid.New())
	require.ErrorIs(t, err, model.ErrRewardNotFound)
}

func TestRedeemAccountNotFound(t *testing.T) {
	serv, storage := newTestService(t)
	rewardId := seedReward(t, storage, model.Reward{Name: "r", PointsCost: 10, Availability: -1, IsActive: true})

	_, err := serv.Redeem(context.Background(), "ghost", rewardId)
	require.ErrorIs(t, err, model.ErrAccountNotFound)
}

// пятый обмен открывает Community Guardian: +75 после списания
func TestRedeemMilestone(t *testing.T) {
	ctx := context.Background()
	serv, storage := newTestService(t)
	seedAccount(t, storage, "u1", 1000)
	rewardId := seedReward(t, storage, model.Reward{
		Name: "r", PointsCost: 100, Availability: -1, IsActive: true,
	})

	for i := 0; i < 4; i++ {
		result, err := serv.Redeem(ctx, "u1", rewardId)
		require.NoError(t, err)
		require.Empty(t, result.Achievements)
	}
	account, err := storage.AccountGet(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 600, account.Points)

	result, err := serv.Redeem(ctx, "u1", rewardId)
	require.NoError(t, err)
	require.Contains(t, result.Achievements, model.AchievementCommunityGuardian)
	// 600 - 100 + 75
	require.Equal(t, 575, result.RemainingPoints)

	// шестой обмен: бонус не повторяется
	result, err = serv.Redeem(ctx, "u1", rewardId)
	require.NoError(t, err)
	require.Equal(t, 475, result.RemainingPoints)
}

// полный сценарий: жалобы, решение, обмен
func TestActivityRedeemFlow(t *testing.T) {
	ctx := context.Background()
	serv, storage := newTestService(t)
	_, err := serv.Register(ctx, "u1")
	require.NoError(t, err)

	for count := 1; count <= 5; count++ {
		_, err = serv.ApplyActivity(ctx, model.ActivityEvent{
			Kind:        model.ReportCreated,
			User:        "u1",
			ReportCount: count,
		})
		require.NoError(t, err)
	}
	// 5 * 10 + бонус Five Reports
	account, err := storage.AccountGet(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 100, account.Points)
	require.ElementsMatch(t,
		[]string{model.AchievementFirstReport, model.AchievementFiveReports},
		account.Achievements)

	// решение: +25 и +50 за Problem Solver
	_, err = serv.ApplyActivity(ctx, model.ActivityEvent{Kind: model.ReportResolved, User: "u1"})
	require.NoError(t, err)
	account, err = storage.AccountGet(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 175, account.Points)

	rewardId := seedReward(t, storage, model.Reward{
		Name: "Билет в музей", Category: "culture", PointsCost: 150, Availability: 1, IsActive: true,
	})
	result, err := serv.Redeem(ctx, "u1", rewardId)
	require.NoError(t, err)
	require.Equal(t, 25, result.RemainingPoints)

	// остаток исчерпан
	_, err = serv.Redeem(ctx, "u1", rewardId)
	require.ErrorIs(t, err, model.ErrRewardExhausted)
}

func TestRedeemProcess(t *testing.T) {
	ctx := context.Background()
	serv, storage := newTestService(t)
	seedAccount(t, storage, "u1", 100)
	rewardId := seedReward(t, storage, model.Reward{Name: "r", PointsCost: 50, Availability: -1, IsActive: true})

	redeemId, result, err := serv.RedeemProcess(ctx,
		`{"userId":"u1","rewardId":"`+rewardId.String()+`","redeemId":"req-1"}`)
	require.NoError(t, err)
	require.Equal(t, "req-1", redeemId)
	require.Equal(t, 50, result.RemainingPoints)

	// ошибка проверки возвращается вместе с ID запроса
	redeemId, _, err = serv.RedeemProcess(ctx,
		`{"userId":"ghost","rewardId":"`+rewardId.String()+`","redeemId":"req-2"}`)
	require.ErrorIs(t, err, model.ErrAccountNotFound)
	require.Equal(t, "req-2", redeemId)

	_, _, err = serv.RedeemProcess(ctx, `{"rewardId":"`+rewardId.String()+`"}`)
	require.Error(t, err)

	_, _, err = serv.RedeemProcess(ctx, `{"userId":"u1","rewardId":"not-a-uuid"}`)
	require.Error(t, err)
}
