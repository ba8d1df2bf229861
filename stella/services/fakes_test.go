package services

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/database/repositories"
)

// In-memory repository fakes. Tx variants are never reached from the service
// layer and panic if a test wanders into them.

type fakeCardRepo struct {
	cards map[int64]*models.Card
	order []int64
	err   error
}

func newFakeCardRepo(cards ...*models.Card) *fakeCardRepo {
	r := &fakeCardRepo{cards: make(map[int64]*models.Card)}
	for _, c := range cards {
		r.cards[c.ID] = c
		r.order = append(r.order, c.ID)
	}
	return r
}

func (r *fakeCardRepo) Create(ctx context.Context, card *models.Card) error {
	r.cards[card.ID] = card
	r.order = append(r.order, card.ID)
	return nil
}

func (r *fakeCardRepo) BulkCreate(ctx context.Context, cards []*models.Card) (int, error) {
	for _, c := range cards {
		r.cards[c.ID] = c
		r.order = append(r.order, c.ID)
	}
	return len(cards), nil
}

func (r *fakeCardRepo) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	if r.err != nil {
		return nil, r.err
	}
	card, ok := r.cards[id]
	if !ok {
		return nil, repositories.ErrCardNotFound
	}
	return card, nil
}

func (r *fakeCardRepo) GetByIDs(ctx context.Context, ids []int64) ([]*models.Card, error) {
	out := make([]*models.Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := r.cards[id]; ok {
			out = append(out, card)
		}
	}
	return out, nil
}

func (r *fakeCardRepo) GetAll(ctx context.Context) ([]*models.Card, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*models.Card, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.cards[id])
	}
	return out, nil
}

func (r *fakeCardRepo) GetByRarity(ctx context.Context, rarity models.Rarity) ([]*models.Card, error) {
	var out []*models.Card
	for _, id := range r.order {
		if r.cards[id].Rarity == rarity {
			out = append(out, r.cards[id])
		}
	}
	return out, nil
}

func (r *fakeCardRepo) GetCardCount(ctx context.Context) (int, error) {
	return len(r.cards), nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.DiscordID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.users[user.DiscordID] = user
	return nil
}

func (r *fakeUserRepo) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	u, ok := r.users[discordID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUsers(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetUserCount(ctx context.Context) (int, error) {
	return len(r.users), nil
}

func (r *fakeUserRepo) GetOrCreateTx(ctx context.Context, tx bun.Tx, discordID string, startingBalance int64) (*models.User, error) {
	panic("not used in service tests")
}

func (r *fakeUserRepo) UpdateBalanceTx(ctx context.Context, tx bun.Tx, discordID string, balance int64) error {
	panic("not used in service tests")
}

func (r *fakeUserRepo) UpdateLastDailyTx(ctx context.Context, tx bun.Tx, discordID string, claimedAt time.Time) error {
	panic("not used in service tests")
}

type fakeUserCardRepo struct {
	owned  map[int64]*models.UserCard
	counts []repositories.UserCardCount
}

func newFakeUserCardRepo(owned ...*models.UserCard) *fakeUserCardRepo {
	r := &fakeUserCardRepo{owned: make(map[int64]*models.UserCard)}
	for _, uc := range owned {
		r.owned[uc.ID] = uc
	}
	return r
}

func (r *fakeUserCardRepo) GetByID(ctx context.Context, id int64) (*models.UserCard, error) {
	uc, ok := r.owned[id]
	if !ok {
		return nil, repositories.ErrUserCardNotFound
	}
	return uc, nil
}

func (r *fakeUserCardRepo) GetAllByUserID(ctx context.Context, userID string) ([]*models.UserCard, error) {
	var out []*models.UserCard
	for _, uc := range r.owned {
		if uc.UserID == userID {
			out = append(out, uc)
		}
	}
	return out, nil
}

func (r *fakeUserCardRepo) CountsByUser(ctx context.Context) ([]repositories.UserCardCount, error) {
	return r.counts, nil
}

func (r *fakeUserCardRepo) CreateTx(ctx context.Context, tx bun.Tx, userCard *models.UserCard) error {
	panic("not used in service tests")
}

func (r *fakeUserCardRepo) GetByIDTx(ctx context.Context, tx bun.Tx, id int64) (*models.UserCard, error) {
	panic("not used in service tests")
}

func (r *fakeUserCardRepo) DeleteTx(ctx context.Context, tx bun.Tx, id int64) error {
	panic("not used in service tests")
}

// fakeLedger records calls and plays back configured results.
type fakeLedger struct {
	balance int64
	granted int64
	err     error

	lastUserID  string
	lastCost    int64
	lastCardIDs []int64
	lastOwnedID int64
	lastValue   int64
}

func (l *fakeLedger) DailyClaim(ctx context.Context, userID string) (int64, int64, error) {
	l.lastUserID = userID
	if l.err != nil {
		return 0, l.balance, l.err
	}
	return l.granted, l.balance, nil
}

func (l *fakeLedger) PurchaseCards(ctx context.Context, userID string, cost int64, cardIDs []int64) (int64, []*models.UserCard, error) {
	l.lastUserID = userID
	l.lastCost = cost
	l.lastCardIDs = cardIDs
	if l.err != nil {
		return 0, nil, l.err
	}
	owned := make([]*models.UserCard, len(cardIDs))
	for i, id := range cardIDs {
		owned[i] = &models.UserCard{ID: int64(i + 1), UserID: userID, CardID: id, Source: models.SourcePull}
	}
	return l.balance, owned, nil
}

func (l *fakeLedger) RemoveCardAndCredit(ctx context.Context, userID string, ownedID int64, value int64) (int64, error) {
	l.lastUserID = userID
	l.lastOwnedID = ownedID
	l.lastValue = value
	if l.err != nil {
		return 0, l.err
	}
	return l.balance + value, nil
}

func (l *fakeLedger) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	l.lastUserID = userID
	if l.err != nil {
		return 0, l.err
	}
	return l.balance + amount, nil
}
