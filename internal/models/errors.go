package gamification

import "errors"

// Ошибки доменной модели
var (
	ErrNotFound            = errors.New("not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrRewardNotFound      = errors.New("reward not found")
	ErrRewardInactive      = errors.New("reward is not available for redemption")
	ErrRewardExpired       = errors.New("reward has expired")
	ErrRewardExhausted     = errors.New("no more of this reward is available")
	ErrInsufficientBalance = errors.New("not enough points")
	ErrConflict            = errors.New("concurrent update conflict")
	ErrCodeTaken           = errors.New("redemption code already issued")
	ErrCodeExhausted       = errors.New("redemption code generation exhausted")
)
