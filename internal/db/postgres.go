package gamification

import (
	"context"
	"errors"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	model "github.com/glkeru/civicpoints/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type GamificationDB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewGamificationDB(logger *zap.Logger) (db *GamificationDB, err error) {
	// config
	purl := os.Getenv("CIVIC_DB")
	if purl == "" {
		return nil, fmt.Errorf("env CIVIC_DB is not set")
	}
	port := os.Getenv("CIVIC_DB_PORT")
	if port == "" {
		return nil, fmt.Errorf("env CIVIC_DB_PORT is not set")
	}
	user := os.Getenv("CIVIC_DB_USER")
	if user == "" {
		return nil, fmt.Errorf("env CIVIC_DB_USER is not set")
	}
	password := os.Getenv("CIVIC_DB_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("env CIVIC_DB_PASSWORD is not set")
	}
	database := os.Getenv("CIVIC_DB_BASE")
	if database == "" {
		return nil, fmt.Errorf("env CIVIC_DB_BASE is not set")
	}
	dsn := "postgres://" + user + ":" + password + "@" + purl + ":" + port + "/" + database

	pool, err := pgxpool.New(context.Background(), dsn)
	return &GamificationDB{pool, logger}, err
}

// перевод ошибок Postgres в доменные: конфликты сериализации и дедлоки
// повторяются вызывающим, нарушение уникальности кода - перевыпуск кода
func pgError(err error) error {
	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return err
	}
	switch pgerr.Code {
	case "40001", "40P01":
		return fmt.Errorf("%s: %w", pgerr.Code, model.ErrConflict)
	case "23505":
		if pgerr.ConstraintName == "redemptions_code_key" {
			return fmt.Errorf("%s: %w", pgerr.ConstraintName, model.ErrCodeTaken)
		}
	}
	return err
}

// Создание счета
func (p *GamificationDB) AccountCreate(ctx context.Context, user string) (model.Account, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return model.Account{}, err
	}
	defer conn.Release()

	account := model.Account{UUID: uuid.New(), User: user, Points: 0, Achievements: []string{}}

	sql, args, err := sq.Insert("accounts").
		Columns("uuid", "userid", "points", "achievements").
		Values(account.UUID, user, 0, account.Achievements).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		p.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return model.Account{}, err
	}

	_, err = conn.Exec(ctx, sql, args...)
	if err != nil {
		p.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return model.Account{}, err
	}
	return account, nil
}

// Получить счет
func (p *GamificationDB) AccountGet(ctx context.Context, user string) (model.Account, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return model.Account{}, err
	}
	defer conn.Release()

	account := model.Account{User: user}
	var pguuid pgtype.UUID
	row := conn.QueryRow(ctx, "SELECT uuid, points, achievements FROM accounts WHERE userid = $1", user)
	err = row.Scan(&pguuid, &account.Points, &account.Achievements)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, fmt.Errorf("%s: %w", user, model.ErrAccountNotFound)
		}
		return model.Account{}, err
	}
	account.UUID, _ = uuid.FromBytes(pguuid.Bytes[:])
	return account, nil
}

// Атомарное изменение счета: дельта баллов + новые достижения.
// Бонус начисляется только за достижение, которого еще нет на счете.
func (p *GamificationDB) ApplyDelta(ctx context.Context, user string, points int, grants []model.AchievementGrant) (account model.Account, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return model.Account{}, err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Account{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	// блокируем строку счета
	account.User = user
	var pguuid pgtype.UUID
	row := tx.QueryRow(ctx, "SELECT uuid, points, achievements from ACCOUNTS where userid = $1 FOR UPDATE", user)
	err = row.Scan(&pguuid, &account.Points, &account.Achievements)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("%s: %w", user, model.ErrAccountNotFound)
			return model.Account{}, err
		}
		err = pgError(err)
		return model.Account{}, err
	}
	account.UUID, _ = uuid.FromBytes(pguuid.Bytes[:])

	delta := points
	for _, grant := range grants {
		if contains(account.Achievements, grant.ID) {
			continue
		}
		account.Achievements = append(account.Achievements, grant.ID)
		delta += grant.Bonus
	}
	if account.Points+delta < 0 {
		err = model.ErrInsufficientBalance
		return model.Account{}, err
	}
	account.Points += delta

	sql, args, err := sq.Update("accounts").
		Set("points", account.Points).
		Set("achievements", account.Achievements).
		Where(sq.Eq{"userid": user}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Account{}, err
	}
	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		err = pgError(err)
		return model.Account{}, err
	}
	err = tx.Commit(ctx)
	if err != nil {
		err = pgError(err)
		return model.Account{}, err
	}
	return account, nil
}

// Создание/обновление вознаграждения
func (p *GamificationDB) RewardSave(ctx context.Context, reward model.Reward) (uuid.UUID, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer conn.Release()

	// если UUID пустой, значит новое вознаграждение
	var sql string
	var args []interface{}
	if reward.UUID == uuid.Nil {
		reward.UUID = uuid.New()
		sql, args, err = sq.Insert("rewards").
			Columns("id", "name", "description", "category", "cost", "availability", "active", "expiry").
			Values(reward.UUID, reward.Name, reward.Description, reward.Category, reward.PointsCost, reward.Availability, reward.IsActive, reward.ExpiryDate).
			PlaceholderFormat(sq.Dollar).
			ToSql()
	} else {
		sql, args, err = sq.Update("rewards").
			Set("name", reward.Name).
			Set("description", reward.Description).
			Set("category", reward.Category).
			Set("cost", reward.PointsCost).
			Set("availability", reward.Availability).
			Set("active", reward.IsActive).
			Set("expiry", reward.ExpiryDate).
			Where(sq.Eq{"id": reward.UUID}).
			PlaceholderFormat(sq.Dollar).
			ToSql()
	}
	if err != nil {
		p.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return uuid.Nil, err
	}

	_, err = conn.Exec(ctx, sql, args...)
	if err != nil {
		p.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return uuid.Nil, err
	}
	return reward.UUID, nil
}

// Получить вознаграждение с кол-вом выданных обменов
func (p *GamificationDB) RewardGet(ctx context.Context, rewardId uuid.UUID) (model.Reward, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return model.Reward{}, err
	}
	defer conn.Release()

	reward := model.Reward{UUID: rewardId}
	var expiry pgtype.Timestamptz
	row := conn.QueryRow(ctx,
		`SELECT r.name, r.description, r.category, r.cost, r.availability, r.active, r.expiry,
		        (SELECT count(*) FROM redemptions WHERE reward = r.id) AS redeemed
		 FROM rewards r WHERE r.id = $1`, rewardId)
	err = row.Scan(&reward.Name, &reward.Description, &reward.Category, &reward.PointsCost,
		&reward.Availability, &reward.IsActive, &expiry, &reward.Redeemed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Reward{}, fmt.Errorf("%s: %w", rewardId, model.ErrRewardNotFound)
		}
		return model.Reward{}, err
	}
	if expiry.Status == pgtype.Present {
		t := expiry.Time
		reward.ExpiryDate = &t
	}
	return reward, nil
}

// Список вознаграждений по категории
func (p *GamificationDB) RewardList(ctx context.Context, category string, onlyActive bool) (rewards []model.Reward, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	q := sq.Select("r.id", "r.name", "r.description", "r.category", "r.cost", "r.availability", "r.active", "r.expiry",
		"(SELECT count(*) FROM redemptions WHERE reward = r.id) AS redeemed").
		From("rewards r").
		OrderBy("r.cost ASC").
		PlaceholderFormat(sq.Dollar)
	if category != "" {
		q = q.Where(sq.Eq{"r.category": category})
	}
	if onlyActive {
		q = q.Where(sq.Eq{"r.active": true})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var reward model.Reward
		var pguuid pgtype.UUID
		var expiry pgtype.Timestamptz
		err = rows.Scan(&pguuid, &reward.Name, &reward.Description, &reward.Category, &reward.PointsCost,
			&reward.Availability, &reward.IsActive, &expiry, &reward.Redeemed)
		if err != nil {
			return nil, err
		}
		reward.UUID, _ = uuid.FromBytes(pguuid.Bytes[:])
		if expiry.Status == pgtype.Present {
			t := expiry.Time
			reward.ExpiryDate = &t
		}
		rewards = append(rewards, reward)
	}
	return rewards, nil
}

// Фиксация обмена: добавление обмена и списание одной транзакцией.
// Порядок блокировок всегда вознаграждение -> счет, остаток и баланс
// перепроверяются по заблокированным строкам.
func (p *GamificationDB) RedemptionCommit(ctx context.Context, tnx model.Redemption, cost int) (account model.Account, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return model.Account{}, err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Account{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	// блокируем вознаграждение
	var availability int
	row := tx.QueryRow(ctx, "SELECT availability from REWARDS where id = $1 FOR UPDATE", tnx.Reward)
	err = row.Scan(&availability)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("%s: %w", tnx.Reward, model.ErrRewardNotFound)
			return model.Account{}, err
		}
		err = pgError(err)
		return model.Account{}, err
	}

	// перепроверка остатка
	var redeemed int
	row = tx.QueryRow(ctx, "SELECT count(*) from REDEMPTIONS where reward = $1", tnx.Reward)
	err = row.Scan(&redeemed)
	if err != nil {
		err = pgError(err)
		return model.Account{}, err
	}
	if availability != -1 && redeemed >= availability {
		err = model.ErrRewardExhausted
		return model.Account{}, err
	}

	// блокируем счет, перепроверка баланса
	account.User = tnx.User
	var pguuid pgtype.UUID
	row = tx.QueryRow(ctx, "SELECT uuid, points, achievements from ACCOUNTS where userid = $1 FOR UPDATE", tnx.User)
	err = row.Scan(&pguuid, &account.Points, &account.Achievements)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("%s: %w", tnx.User, model.ErrAccountNotFound)
			return model.Account{}, err
		}
		err = pgError(err)
		return model.Account{}, err
	}
	account.UUID, _ = uuid.FromBytes(pguuid.Bytes[:])
	if account.Points < cost {
		err = model.ErrInsufficientBalance
		return model.Account{}, err
	}
	account.Points -= cost

	sql, args, err := sq.Update("accounts").
		Set("points", account.Points).
		Where(sq.Eq{"userid": tnx.User}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Account{}, err
	}
	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		err = pgError(err)
		return model.Account{}, err
	}

	sql, args, err = sq.Insert("redemptions").
		Columns("id", "reward", "account", "code", "redeemedat").
		Values(tnx.UUID, tnx.Reward, tnx.User, tnx.Code, tnx.RedeemedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Account{}, err
	}
	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		err = pgError(err)
		return model.Account{}, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		err = pgError(err)
		return model.Account{}, err
	}
	return account, nil
}

// Кол-во обменов пользователя за все время
func (p *GamificationDB) RedemptionCount(ctx context.Context, user string) (count int, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, "SELECT count(*) FROM redemptions WHERE account = $1", user)
	err = row.Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Обмены пользователя
func (p *GamificationDB) RedemptionList(ctx context.Context, user string) (tnxs []model.Redemption, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("id", "reward", "account", "code", "redeemedat").
		From("redemptions").
		Where(sq.Eq{"account": user}).
		OrderBy("redeemedat DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tnx model.Redemption
		var pgid, pgreward pgtype.UUID
		err = rows.Scan(&pgid, &pgreward, &tnx.User, &tnx.Code, &tnx.RedeemedAt)
		if err != nil {
			return nil, err
		}
		tnx.UUID, _ = uuid.FromBytes(pgid.Bytes[:])
		tnx.Reward, _ = uuid.FromBytes(pgreward.Bytes[:])
		tnxs = append(tnxs, tnx)
	}
	return tnxs, nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
