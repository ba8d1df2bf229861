package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/uptrace/bun"
)

var ErrUserCardNotFound = errors.New("user card not found")

// UserCardCount is one row of the ranking aggregate.
type UserCardCount struct {
	UserID   string `bun:"user_id"`
	Distinct int    `bun:"distinct_cards"`
	Total    int    `bun:"total_cards"`
}

type UserCardRepository interface {
	GetByID(ctx context.Context, id int64) (*models.UserCard, error)
	GetAllByUserID(ctx context.Context, userID string) ([]*models.UserCard, error)
	CountsByUser(ctx context.Context) ([]UserCardCount, error)

	CreateTx(ctx context.Context, tx bun.Tx, userCard *models.UserCard) error
	GetByIDTx(ctx context.Context, tx bun.Tx, id int64) (*models.UserCard, error)
	DeleteTx(ctx context.Context, tx bun.Tx, id int64) error
}

type userCardRepository struct {
	db *bun.DB
}

func NewUserCardRepository(db *bun.DB) UserCardRepository {
	return &userCardRepository{db: db}
}

func (r *userCardRepository) GetByID(ctx context.Context, id int64) (*models.UserCard, error) {
	userCard := new(models.UserCard)
	err := r.db.NewSelect().
		Model(userCard).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user card: %w", err)
	}
	return userCard, nil
}

func (r *userCardRepository) GetAllByUserID(ctx context.Context, userID string) ([]*models.UserCard, error) {
	var userCards []*models.UserCard
	err := r.db.NewSelect().
		Model(&userCards).
		Where("user_id = ?", userID).
		Order("obtained ASC").
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user cards: %w", err)
	}
	return userCards, nil
}

func (r *userCardRepository) CountsByUser(ctx context.Context) ([]UserCardCount, error) {
	var counts []UserCardCount
	err := r.db.NewSelect().
		Model((*models.UserCard)(nil)).
		ColumnExpr("user_id").
		ColumnExpr("COUNT(DISTINCT card_id) AS distinct_cards").
		ColumnExpr("COUNT(*) AS total_cards").
		Group("user_id").
		Scan(ctx, &counts)
	if err != nil {
		return nil, fmt.Errorf("failed to count user cards: %w", err)
	}
	return counts, nil
}

func (r *userCardRepository) CreateTx(ctx context.Context, tx bun.Tx, userCard *models.UserCard) error {
	now := time.Now()
	if userCard.Obtained.IsZero() {
		userCard.Obtained = now
	}
	userCard.CreatedAt = now
	userCard.UpdatedAt = now
	if _, err := tx.NewInsert().Model(userCard).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create user card: %w", err)
	}
	return nil
}

func (r *userCardRepository) GetByIDTx(ctx context.Context, tx bun.Tx, id int64) (*models.UserCard, error) {
	userCard := new(models.UserCard)
	err := tx.NewSelect().
		Model(userCard).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user card: %w", err)
	}
	return userCard, nil
}

func (r *userCardRepository) DeleteTx(ctx context.Context, tx bun.Tx, id int64) error {
	result, err := tx.NewDelete().
		Model((*models.UserCard)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user card: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrUserCardNotFound
	}
	return nil
}
