package gamification

import (
	"time"

	"github.com/google/uuid"
)

// Счет баллов пользователя
type Account struct {
	UUID         uuid.UUID
	User         string   // ID пользователя
	Points       int      // баланс, не бывает отрицательным
	Achievements []string // открытые достижения, только добавляются
}

// Сводка по счету
type AccountSummary struct {
	Points       int      `json:"points"`
	Achievements []string `json:"achievements"`
}

// Идентификаторы достижений
const (
	AchievementFirstReport       = "First Report"
	AchievementFiveReports       = "Five Reports"
	AchievementTenReports        = "Ten Reports"
	AchievementProblemSolver     = "Problem Solver"
	AchievementCommunityGuardian = "Community Guardian"
)

// Начисление достижения: бонус применяется только если достижение новое
type AchievementGrant struct {
	ID    string
	Bonus int
}

// Виды активности
type ActivityKind int

const (
	ReportCreated ActivityKind = iota
	ReportUpvoted
	ReportResolved
	RewardRedeemed
)

// Событие активности
type ActivityEvent struct {
	Kind            ActivityKind
	User            string // счет для начисления
	ReportCount     int    // кол-во жалоб пользователя на момент события
	RedemptionCount int    // кол-во обменов пользователя на момент события
}

// Вознаграждение
type Reward struct {
	UUID         uuid.UUID
	Name         string
	Description  string
	Category     string
	PointsCost   int
	Availability int // -1 = без ограничений
	IsActive     bool
	ExpiryDate   *time.Time
	Redeemed     int // кол-во выданных обменов
}

// Обмен баллов на вознаграждение
type Redemption struct {
	UUID       uuid.UUID
	Reward     uuid.UUID
	User       string
	Code       string // уникальный код обмена
	RedeemedAt time.Time
}

// Результат обмена
type RedeemResult struct {
	Code            string
	RemainingPoints int
	Achievements    []string
}
