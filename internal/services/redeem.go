package gamification

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	model "github.com/glkeru/civicpoints/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// кол-во попыток выпуска уникального кода
const codeAttempts = 5

// Redeem обменивает баллы пользователя на вознаграждение.
// Порядок проверок: вознаграждение существует -> активно -> не истекло ->
// есть остаток -> счет существует -> хватает баллов. Любая ошибка проверки
// возвращается без изменений состояния. Остаток и баланс перепроверяются
// хранилищем в момент фиксации, параллельные обмены не проходят по
// устаревшим данным.
func (s *GamificationService) Redeem(ctx context.Context, user string, rewardId uuid.UUID) (model.RedeemResult, error) {
	reward, err := s.db.RewardGet(ctx, rewardId)
	if err != nil {
		return model.RedeemResult{}, err
	}
	if !reward.IsActive {
		return model.RedeemResult{}, model.ErrRewardInactive
	}
	if reward.ExpiryDate != nil && reward.ExpiryDate.Before(time.Now()) {
		return model.RedeemResult{}, model.ErrRewardExpired
	}
	if reward.Availability != -1 && reward.Redeemed >= reward.Availability {
		return model.RedeemResult{}, model.ErrRewardExhausted
	}
	account, err := s.db.AccountGet(ctx, user)
	if err != nil {
		return model.RedeemResult{}, err
	}
	if account.Points < reward.PointsCost {
		return model.RedeemResult{}, model.ErrInsufficientBalance
	}

	// фиксация: код обмена + списание одним атомарным изменением
	var tnx model.Redemption
	for attempt := 0; ; attempt++ {
		if attempt == codeAttempts {
			return model.RedeemResult{}, model.ErrCodeExhausted
		}
		code, err := redemptionCode()
		if err != nil {
			return model.RedeemResult{}, err
		}
		tnx = model.Redemption{
			UUID:       uuid.New(),
			Reward:     reward.UUID,
			User:       user,
			Code:       code,
			RedeemedAt: time.Now(),
		}
		account, err = s.redemptionCommit(ctx, tnx, reward.PointsCost)
		if errors.Is(err, model.ErrCodeTaken) {
			// коллизия кода, выпускаем новый
			continue
		}
		if err != nil {
			return model.RedeemResult{}, err
		}
		break
	}
	s.invalidate(ctx, user)

	// веха по кол-ву обменов: строго добавляющий шаг,
	// списание при его ошибке не откатывается
	account = s.redemptionMilestone(ctx, user, account)

	return model.RedeemResult{
		Code:            tnx.Code,
		RemainingPoints: account.Points,
		Achievements:    account.Achievements,
	}, nil
}

// фиксация обмена с повтором при конфликте
func (s *GamificationService) redemptionCommit(ctx context.Context, tnx model.Redemption, cost int) (account model.Account, err error) {
	for i := 0; i < commitRetries; i++ {
		account, err = s.db.RedemptionCommit(ctx, tnx, cost)
		if !errors.Is(err, model.ErrConflict) {
			return account, err
		}
	}
	return model.Account{}, fmt.Errorf("redemption commit: %w", err)
}

// проверка вехи Community Guardian
func (s *GamificationService) redemptionMilestone(ctx context.Context, user string, account model.Account) model.Account {
	count, err := s.db.RedemptionCount(ctx, user)
	if err != nil {
		s.logger.Error("Redemption count",
			zap.String("user", user),
			zap.Error(err),
		)
		return account
	}
	grants := EvaluateAchievements(account, model.ActivityEvent{
		Kind:            model.RewardRedeemed,
		User:            user,
		RedemptionCount: count,
	})
	if len(grants) == 0 {
		return account
	}
	updated, err := s.applyDelta(ctx, user, 0, grants)
	if err != nil {
		s.logger.Error("Milestone bonus",
			zap.String("user", user),
			zap.Error(err),
		)
		return account
	}
	s.invalidate(ctx, user)
	return updated
}

// случайный код обмена
func redemptionCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Сообщение на списание из очереди
type RedeemMessage struct {
	UserId   string `json:"userId"`
	RewardId string `json:"rewardId"`
	RedeemId string `json:"redeemId"` // ID запроса для подтверждения
}

// Обработка запроса на обмен
func (s *GamificationService) RedeemProcess(ctx context.Context, redeemJson string) (redeemId string, result model.RedeemResult, err error) {
	msg := &RedeemMessage{}
	err = json.Unmarshal([]byte(redeemJson), msg)
	if err != nil {
		return "", model.RedeemResult{}, err
	}
	if msg.UserId == "" {
		return msg.RedeemId, model.RedeemResult{}, fmt.Errorf("invalid redeem: userId field is required")
	}
	rewardId, err := uuid.Parse(msg.RewardId)
	if err != nil {
		return msg.RedeemId, model.RedeemResult{}, fmt.Errorf("invalid redeem: rewardId: %w", err)
	}
	result, err = s.Redeem(ctx, msg.UserId, rewardId)
	return msg.RedeemId, result, err
}
