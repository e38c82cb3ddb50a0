package gamification

import (
	model "github.com/glkeru/civicpoints/internal/models"
)

// Правило достижения: срабатывает не более одного раза на счет
type achievementRule struct {
	ID    string
	Bonus int
	Match func(ev model.ActivityEvent) bool
}

// Таблица правил вместо цепочки if/else: несколько порогов в одном событии
// срабатывают одновременно
var achievementRules = []achievementRule{
	{model.AchievementFirstReport, 0, func(ev model.ActivityEvent) bool {
		return ev.Kind == model.ReportCreated && ev.ReportCount == 1
	}},
	{model.AchievementFiveReports, 50, func(ev model.ActivityEvent) bool {
		return ev.Kind == model.ReportCreated && ev.ReportCount == 5
	}},
	{model.AchievementTenReports, 100, func(ev model.ActivityEvent) bool {
		return ev.Kind == model.ReportCreated && ev.ReportCount == 10
	}},
	{model.AchievementProblemSolver, 50, func(ev model.ActivityEvent) bool {
		return ev.Kind == model.ReportResolved
	}},
	{model.AchievementCommunityGuardian, 75, func(ev model.ActivityEvent) bool {
		return ev.Kind == model.RewardRedeemed && ev.RedemptionCount >= 5
	}},
}

// Оценка достижений: возвращает достижения, впервые выполненные событием.
// Счетчики берутся из контекста события, состояние не меняется.
// Повторная проверка "еще не открыто" выполняется хранилищем внутри
// атомарного применения, поэтому бонус не может быть начислен дважды.
func EvaluateAchievements(account model.Account, ev model.ActivityEvent) (grants []model.AchievementGrant) {
	for _, rule := range achievementRules {
		if unlocked(account, rule.ID) {
			continue
		}
		if rule.Match(ev) {
			grants = append(grants, model.AchievementGrant{ID: rule.ID, Bonus: rule.Bonus})
		}
	}
	return grants
}

func unlocked(account model.Account, id string) bool {
	for _, a := range account.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
