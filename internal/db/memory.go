package gamification

import (
	"context"
	"fmt"
	"sort"
	"sync"

	model "github.com/glkeru/civicpoints/internal/models"
	"github.com/google/uuid"
)

// Хранилище в памяти для тестов и локального запуска.
// Сериализация на уровне сущности: свой мьютекс у каждого счета и
// вознаграждения, глобальной блокировки нет - операции по разным
// сущностям не мешают друг другу.
type MemoryDB struct {
	mu       sync.Mutex // защищает карты, не содержимое сущностей
	accounts map[string]*memAccount
	rewards  map[uuid.UUID]*memReward

	codesMu sync.Mutex
	codes   map[string]struct{} // все выданные коды обменов
}

type memAccount struct {
	mu      sync.Mutex
	account model.Account
}

type memReward struct {
	mu          sync.Mutex
	reward      model.Reward
	redemptions []model.Redemption
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		accounts: make(map[string]*memAccount),
		rewards:  make(map[uuid.UUID]*memReward),
		codes:    make(map[string]struct{}),
	}
}

func (m *MemoryDB) account(user string) *memAccount {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[user]
}

func (m *MemoryDB) reward(id uuid.UUID) *memReward {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rewards[id]
}

func cloneAccount(account model.Account) model.Account {
	clone := account
	clone.Achievements = append([]string{}, account.Achievements...)
	return clone
}

func (m *MemoryDB) AccountCreate(ctx context.Context, user string) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[user]; ok {
		return model.Account{}, fmt.Errorf("account %s already exists", user)
	}
	account := model.Account{UUID: uuid.New(), User: user, Points: 0, Achievements: []string{}}
	m.accounts[user] = &memAccount{account: account}
	return cloneAccount(account), nil
}

func (m *MemoryDB) AccountGet(ctx context.Context, user string) (model.Account, error) {
	ma := m.account(user)
	if ma == nil {
		return model.Account{}, fmt.Errorf("%s: %w", user, model.ErrAccountNotFound)
	}
	ma.mu.Lock()
	defer ma.mu.Unlock()
	return cloneAccount(ma.account), nil
}

func (m *MemoryDB) ApplyDelta(ctx context.Context, user string, points int, grants []model.AchievementGrant) (model.Account, error) {
	ma := m.account(user)
	if ma == nil {
		return model.Account{}, fmt.Errorf("%s: %w", user, model.ErrAccountNotFound)
	}
	ma.mu.Lock()
	defer ma.mu.Unlock()

	// сначала полный расчет, потом единая фиксация:
	// при ошибке счет не меняется
	delta := points
	added := []string{}
	for _, grant := range grants {
		if contains(ma.account.Achievements, grant.ID) || contains(added, grant.ID) {
			continue
		}
		added = append(added, grant.ID)
		delta += grant.Bonus
	}
	if ma.account.Points+delta < 0 {
		return model.Account{}, model.ErrInsufficientBalance
	}
	ma.account.Points += delta
	ma.account.Achievements = append(ma.account.Achievements, added...)
	return cloneAccount(ma.account), nil
}

func (m *MemoryDB) RewardSave(ctx context.Context, reward model.Reward) (uuid.UUID, error) {
	if reward.UUID == uuid.Nil {
		reward.UUID = uuid.New()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if mr, ok := m.rewards[reward.UUID]; ok {
		mr.mu.Lock()
		reward.Redeemed = len(mr.redemptions)
		mr.reward = reward
		mr.mu.Unlock()
		return reward.UUID, nil
	}
	m.rewards[reward.UUID] = &memReward{reward: reward}
	return reward.UUID, nil
}

func (m *MemoryDB) RewardGet(ctx context.Context, rewardId uuid.UUID) (model.Reward, error) {
	mr := m.reward(rewardId)
	if mr == nil {
		return model.Reward{}, fmt.Errorf("%s: %w", rewardId, model.ErrRewardNotFound)
	}
	mr.mu.Lock()
	defer mr.mu.Unlock()
	reward := mr.reward
	reward.Redeemed = len(mr.redemptions)
	return reward, nil
}

func (m *MemoryDB) RewardList(ctx context.Context, category string, onlyActive bool) (rewards []model.Reward, err error) {
	m.mu.Lock()
	entries := make([]*memReward, 0, len(m.rewards))
	for _, mr := range m.rewards {
		entries = append(entries, mr)
	}
	m.mu.Unlock()

	for _, mr := range entries {
		mr.mu.Lock()
		reward := mr.reward
		reward.Redeemed = len(mr.redemptions)
		mr.mu.Unlock()
		if category != "" && reward.Category != category {
			continue
		}
		if onlyActive && !reward.IsActive {
			continue
		}
		rewards = append(rewards, reward)
	}
	sort.Slice(rewards, func(i, j int) bool { return rewards[i].PointsCost < rewards[j].PointsCost })
	return rewards, nil
}

// Фиксация обмена: порядок блокировок всегда вознаграждение -> счет,
// остаток и баланс перепроверяются под блокировками
func (m *MemoryDB) RedemptionCommit(ctx context.Context, tnx model.Redemption, cost int) (model.Account, error) {
	mr := m.reward(tnx.Reward)
	if mr == nil {
		return model.Account{}, fmt.Errorf("%s: %w", tnx.Reward, model.ErrRewardNotFound)
	}
	ma := m.account(tnx.User)
	if ma == nil {
		return model.Account{}, fmt.Errorf("%s: %w", tnx.User, model.ErrAccountNotFound)
	}

	mr.mu.Lock()
	defer mr.mu.Unlock()
	if mr.reward.Availability != -1 && len(mr.redemptions) >= mr.reward.Availability {
		return model.Account{}, model.ErrRewardExhausted
	}

	ma.mu.Lock()
	defer ma.mu.Unlock()
	if ma.account.Points < cost {
		return model.Account{}, model.ErrInsufficientBalance
	}

	// уникальность кода среди всех выданных
	m.codesMu.Lock()
	if _, ok := m.codes[tnx.Code]; ok {
		m.codesMu.Unlock()
		return model.Account{}, fmt.Errorf("%s: %w", tnx.Code, model.ErrCodeTaken)
	}
	m.codes[tnx.Code] = struct{}{}
	m.codesMu.Unlock()

	mr.redemptions = append(mr.redemptions, tnx)
	ma.account.Points -= cost
	return cloneAccount(ma.account), nil
}

func (m *MemoryDB) RedemptionCount(ctx context.Context, user string) (count int, err error) {
	m.mu.Lock()
	entries := make([]*memReward, 0, len(m.rewards))
	for _, mr := range m.rewards {
		entries = append(entries, mr)
	}
	m.mu.Unlock()

	for _, mr := range entries {
		mr.mu.Lock()
		for _, tnx := range mr.redemptions {
			if tnx.User == user {
				count++
			}
		}
		mr.mu.Unlock()
	}
	return count, nil
}

func (m *MemoryDB) RedemptionList(ctx context.Context, user string) (tnxs []model.Redemption, err error) {
	m.mu.Lock()
	entries := make([]*memReward, 0, len(m.rewards))
	for _, mr := range m.rewards {
		entries = append(entries, mr)
	}
	m.mu.Unlock()

	for _, mr := range entries {
		mr.mu.Lock()
		for _, tnx := range mr.redemptions {
			if tnx.User == user {
				tnxs = append(tnxs, tnx)
			}
		}
		mr.mu.Unlock()
	}
	sort.Slice(tnxs, func(i, j int) bool { return tnxs[i].RedeemedAt.After(tnxs[j].RedeemedAt) })
	return tnxs, nil
}
