// Package ledger owns every balance and inventory mutation. All operations
// for a single user are serialized behind a per-user lock and applied inside
// one database transaction, so a request either fully applies or leaves no
// trace.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/stellabot/stella-gacha/stella/config"
	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/database/repositories"
	"github.com/uptrace/bun"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyClaimed    = errors.New("daily reward already claimed")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrCardNotOwned      = errors.New("card not owned by user")
)

type Config struct {
	DailyReward     int64
	StartingBalance int64
	TxTimeout       time.Duration
}

func DefaultConfig() Config {
	return Config{
		DailyReward:     config.DefaultDailyReward,
		StartingBalance: config.DefaultStartingBalance,
		TxTimeout:       config.DefaultTxTimeout,
	}
}

// TxRunner is the slice of bun.DB the ledger needs: run a function inside
// one transaction, committing on nil and rolling back on error. Tests swap
// in a runner backed by in-memory stores.
type TxRunner interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

type Ledger struct {
	db        TxRunner
	users     repositories.UserRepository
	userCards repositories.UserCardRepository
	locks     *xsync.MapOf[string, *sync.Mutex]
	cfg       Config
	now       func() time.Time
}

func New(db TxRunner, users repositories.UserRepository, userCards repositories.UserCardRepository, cfg Config) *Ledger {
	if cfg.TxTimeout <= 0 {
		cfg.TxTimeout = DefaultConfig().TxTimeout
	}
	return &Ledger{
		db:        db,
		users:     users,
		userCards: userCards,
		locks:     xsync.NewMapOf[string, *sync.Mutex](),
		cfg:       cfg,
		now:       time.Now,
	}
}

// withUserTx serializes ledger mutations per user and wraps them in a single
// transaction. Two concurrent pulls from one user can never pass the balance
// check against the same snapshot.
func (l *Ledger) withUserTx(ctx context.Context, userID string, fn func(ctx context.Context, tx bun.Tx, user *models.User) error) error {
	mu, _ := l.locks.LoadOrCompute(userID, func() *sync.Mutex { return &sync.Mutex{} })
	mu.Lock()
	defer mu.Unlock()

	txCtx, cancel := context.WithTimeout(ctx, l.cfg.TxTimeout)
	defer cancel()

	opts := &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	return l.db.RunInTx(txCtx, opts, func(ctx context.Context, tx bun.Tx) error {
		user, err := l.users.GetOrCreateTx(ctx, tx, userID, l.cfg.StartingBalance)
		if err != nil {
			return err
		}
		return fn(ctx, tx, user)
	})
}

// applyDebit is the single balance-check rule; kept pure so the invariant is
// testable without a database.
func applyDebit(balance, amount int64) (int64, error) {
	if amount <= 0 {
		return balance, ErrInvalidAmount
	}
	if balance < amount {
		return balance, ErrInsufficientFunds
	}
	return balance - amount, nil
}

// claimedOnSameDay implements the daily boundary: one claim per UTC calendar
// day. A zero lastDaily means the user has never claimed.
func claimedOnSameDay(lastDaily, now time.Time) bool {
	if lastDaily.IsZero() {
		return false
	}
	y1, m1, d1 := lastDaily.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Debit removes amount from the user's balance, failing with
// ErrInsufficientFunds before any mutation when the balance cannot cover it.
func (l *Ledger) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	var newBalance int64
	err := l.withUserTx(ctx, userID, func(ctx context.Context, tx bun.Tx, user *models.User) error {
		balance, err := applyDebit(user.Balance, amount)
		if err != nil {
			return err
		}
		newBalance = balance
		return l.users.UpdateBalanceTx(ctx, tx, userID, balance)
	})
	return newBalance, err
}

// Credit adds amount to the user's balance.
func (l *Ledger) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var newBalance int64
	err := l.withUserTx(ctx, userID, func(ctx context.Context, tx bun.Tx, user *models.User) error {
		newBalance = user.Balance + amount
		return l.users.UpdateBalanceTx(ctx, tx, userID, newBalance)
	})
	return newBalance, err
}

// DailyClaim grants the configured reward at most once per UTC calendar day.
func (l *Ledger) DailyClaim(ctx context.Context, userID string) (granted int64, newBalance int64, err error) {
	err = l.withUserTx(ctx, userID, func(ctx context.Context, tx bun.Tx, user *models.User) error {
		now := l.now()
		if claimedOnSameDay(user.LastDaily, now) {
			return ErrAlreadyClaimed
		}

		granted = l.cfg.DailyReward
		newBalance = user.Balance + granted
		if err := l.users.UpdateBalanceTx(ctx, tx, userID, newBalance); err != nil {
			return err
		}
		return l.users.UpdateLastDailyTx(ctx, tx, userID, now)
	})
	if err != nil {
		return 0, 0, err
	}

	slog.Info("Daily reward claimed",
		slog.String("type", "db"),
		slog.String("discord_id", userID),
		slog.Int64("granted", granted))
	return granted, newBalance, nil
}

// AddCards appends owned instances without touching the balance (reward and
// admin grants).
func (l *Ledger) AddCards(ctx context.Context, userID string, cardIDs []int64, source string) ([]*models.UserCard, error) {
	var owned []*models.UserCard
	err := l.withUserTx(ctx, userID, func(ctx context.Context, tx bun.Tx, user *models.User) error {
		var err error
		owned, err = l.insertCards(ctx, tx, userID, cardIDs, source)
		return err
	})
	if err != nil {
		return nil, err
	}
	return owned, nil
}

// PurchaseCards is the atomic pull commit: debit the cost, then append every
// drawn card as an owned instance. Insufficient balance fails the whole call
// with no partial draws applied.
func (l *Ledger) PurchaseCards(ctx context.Context, userID string, cost int64, cardIDs []int64) (int64, []*models.UserCard, error) {
	var (
		newBalance int64
		owned      []*models.UserCard
	)
	err := l.withUserTx(ctx, userID, func(ctx context.Context, tx bun.Tx, user *models.User) error {
		balance, err := applyDebit(user.Balance, cost)
		if err != nil {
			return err
		}
		if err := l.users.UpdateBalanceTx(ctx, tx, userID, balance); err != nil {
			return err
		}
		owned, err = l.insertCards(ctx, tx, userID, cardIDs, models.SourcePull)
		if err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return newBalance, owned, nil
}

// RemoveCardAndCredit sells one owned instance: ownership is re-verified
// inside the transaction, the row is removed, and value is credited.
func (l *Ledger) RemoveCardAndCredit(ctx context.Context, userID string, ownedID int64, value int64) (int64, error) {
	if value <= 0 {
		return 0, ErrInvalidAmount
	}
	var newBalance int64
	err := l.withUserTx(ctx, userID, func(ctx context.Context, tx bun.Tx, user *models.User) error {
		owned, err := l.userCards.GetByIDTx(ctx, tx, ownedID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserCardNotFound) {
				return ErrCardNotOwned
			}
			return err
		}
		if owned.UserID != userID {
			return ErrCardNotOwned
		}

		if err := l.userCards.DeleteTx(ctx, tx, ownedID); err != nil {
			return err
		}
		newBalance = user.Balance + value
		return l.users.UpdateBalanceTx(ctx, tx, userID, newBalance)
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (l *Ledger) insertCards(ctx context.Context, tx bun.Tx, userID string, cardIDs []int64, source string) ([]*models.UserCard, error) {
	owned := make([]*models.UserCard, 0, len(cardIDs))
	obtained := l.now()
	for _, cardID := range cardIDs {
		uc := &models.UserCard{
			UserID:   userID,
			CardID:   cardID,
			Source:   source,
			Obtained: obtained,
		}
		if err := l.userCards.CreateTx(ctx, tx, uc); err != nil {
			return nil, err
		}
		owned = append(owned, uc)
	}
	return owned, nil
}
