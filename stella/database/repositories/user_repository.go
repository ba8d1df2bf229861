package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/uptrace/bun"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByDiscordID(ctx context.Context, discordID string) (*models.User, error)
	GetUsers(ctx context.Context) ([]*models.User, error)
	GetUserCount(ctx context.Context) (int, error)

	// Tx variants participate in a caller-owned transaction; the ledger uses
	// these so that balance and inventory changes commit together.
	GetOrCreateTx(ctx context.Context, tx bun.Tx, discordID string, startingBalance int64) (*models.User, error)
	UpdateBalanceTx(ctx context.Context, tx bun.Tx, discordID string, balance int64) error
	UpdateLastDailyTx(ctx context.Context, tx bun.Tx, discordID string, claimedAt time.Time) error
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		Order("discord_id ASC").
		Scan(ctx)
	return users, err
}

func (r *userRepository) GetUserCount(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*models.User)(nil)).Count(ctx)
}

func (r *userRepository) GetOrCreateTx(ctx context.Context, tx bun.Tx, discordID string, startingBalance int64) (*models.User, error) {
	user := new(models.User)
	err := tx.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		Scan(ctx)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// First interaction: create lazily with the starting balance.
	user = &models.User{
		DiscordID: discordID,
		Balance:   startingBalance,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("Created new user",
		slog.String("type", "db"),
		slog.String("discord_id", discordID),
		slog.Int64("starting_balance", startingBalance))

	return user, nil
}

func (r *userRepository) UpdateBalanceTx(ctx context.Context, tx bun.Tx, discordID string, balance int64) error {
	result, err := tx.NewUpdate().
		Model((*models.User)(nil)).
		Set("balance = ?", balance).
		Set("updated_at = ?", time.Now()).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateLastDailyTx(ctx context.Context, tx bun.Tx, discordID string, claimedAt time.Time) error {
	_, err := tx.NewUpdate().
		Model((*models.User)(nil)).
		Set("last_daily = ?", claimedAt).
		Set("updated_at = ?", time.Now()).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update last daily: %w", err)
	}
	return nil
}
