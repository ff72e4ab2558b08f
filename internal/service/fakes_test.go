package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

// memStore is an in-memory stand-in for the wallets, users and transactions tables.
// A fakeTx snapshots it on Begin and restores the snapshot unless committed.
type memStore struct {
	users      map[int64]domain.User
	wallets    map[int64]domain.Wallet
	records    []domain.TransactionRecord
	nextID     int64
	failCreate bool // makes the next record insert fail
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[int64]domain.User{},
		wallets: map[int64]domain.Wallet{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(username, email, first, last string) domain.User {
	u := domain.User{ID: m.id(), Username: username, Email: email, FirstName: first, LastName: last}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addWallet(userID int64, first, last, balance string) domain.Wallet {
	w := domain.Wallet{ID: m.id(), UserID: userID, FirstName: first, LastName: last, Balance: decimal.RequireFromString(balance)}
	m.wallets[w.ID] = w
	return w
}

func (m *memStore) balance(walletID int64) decimal.Decimal {
	return m.wallets[walletID].Balance
}

func (m *memStore) recordsOf(walletID int64) []domain.TransactionRecord {
	var out []domain.TransactionRecord
	for _, r := range m.records {
		if r.WalletID == walletID {
			out = append(out, r)
		}
	}
	return out
}

type memSnapshot struct {
	users   map[int64]domain.User
	wallets map[int64]domain.Wallet
	records []domain.TransactionRecord
}

func (m *memStore) snapshot() memSnapshot {
	s := memSnapshot{
		users:   make(map[int64]domain.User, len(m.users)),
		wallets: make(map[int64]domain.Wallet, len(m.wallets)),
		records: append([]domain.TransactionRecord(nil), m.records...),
	}
	for k, v := range m.users {
		s.users[k] = v
	}
	for k, v := range m.wallets {
		s.wallets[k] = v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.users, m.wallets, m.records = s.users, s.wallets, s.records
}

// --- transactor ---

type fakeTx struct {
	pgx.Tx
	store     *memStore
	snap      memSnapshot
	committed bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.store.restore(t.snap)
	}
	return nil
}

type fakeTransactor struct{ store *memStore }

func (f fakeTransactor) Begin(context.Context) (pgx.Tx, error) {
	return &fakeTx{store: f.store, snap: f.store.snapshot()}, nil
}

// --- users ---

type fakeUserRepo struct{ store *memStore }

func (f fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range f.store.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicateUsername
		}
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = f.store.id()
	f.store.users[u.ID] = *u
	return nil
}

func (f fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.store.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.store.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (f fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.store.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (f fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	f.store.users[u.ID] = *u
	return nil
}

// --- wallets ---

type fakeWalletRepo struct{ store *memStore }

func (f fakeWalletRepo) Create(_ context.Context, w *domain.Wallet) error {
	for _, existing := range f.store.wallets {
		if existing.UserID == w.UserID {
			return domain.ErrDuplicateWallet
		}
	}
	w.ID = f.store.id()
	f.store.wallets[w.ID] = *w
	return nil
}

func (f fakeWalletRepo) GetByID(_ context.Context, id int64) (*domain.Wallet, error) {
	w, ok := f.store.wallets[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (f fakeWalletRepo) GetByUserID(_ context.Context, userID int64) (*domain.Wallet, error) {
	for _, w := range f.store.wallets {
		if w.UserID == userID {
			return &w, nil
		}
	}
	return nil, nil
}

func (f fakeWalletRepo) GetByIDForUpdate(ctx context.Context, _ pgx.Tx, id int64) (*domain.Wallet, error) {
	return f.GetByID(ctx, id)
}

func (f fakeWalletRepo) GetByUserIDForUpdate(ctx context.Context, _ pgx.Tx, userID int64) (*domain.Wallet, error) {
	return f.GetByUserID(ctx, userID)
}

func (f fakeWalletRepo) LockPair(ctx context.Context, _ pgx.Tx, firstID, secondID int64) (*domain.Wallet, *domain.Wallet, error) {
	a, _ := f.GetByID(ctx, firstID)
	b, _ := f.GetByID(ctx, secondID)
	return a, b, nil
}

func (f fakeWalletRepo) FindByName(_ context.Context, first, last string) ([]domain.Wallet, error) {
	var out []domain.Wallet
	for _, w := range f.store.wallets {
		if strings.EqualFold(w.FirstName, first) && strings.EqualFold(w.LastName, last) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeWalletRepo) AdjustBalance(_ context.Context, _ pgx.Tx, walletID int64, delta decimal.Decimal) (*domain.Wallet, error) {
	w, ok := f.store.wallets[walletID]
	if !ok {
		return nil, fmt.Errorf("wallet not found: %d", walletID)
	}
	w.Balance = w.Balance.Add(delta)
	if w.Balance.IsNegative() {
		return nil, fmt.Errorf("balance check violated")
	}
	f.store.wallets[walletID] = w
	return &w, nil
}

// --- transaction records ---

type fakeTxRepo struct{ store *memStore }

func (f fakeTxRepo) Create(_ context.Context, _ pgx.Tx, r *domain.TransactionRecord) error {
	if f.store.failCreate {
		f.store.failCreate = false
		return fmt.Errorf("insert failed")
	}
	r.ID = f.store.id()
	f.store.records = append(f.store.records, *r)
	return nil
}

func (f fakeTxRepo) LatestCreatedAt(_ context.Context, _ pgx.Tx, walletID int64) (*time.Time, error) {
	var latest *time.Time
	for _, r := range f.store.recordsOf(walletID) {
		if latest == nil || r.CreatedAt.After(*latest) {
			t := r.CreatedAt
			latest = &t
		}
	}
	return latest, nil
}

func (f fakeTxRepo) List(_ context.Context, p ports.TransactionListParams) ([]domain.TransactionRecord, int64, error) {
	all := f.newestFirst(p.WalletID)
	return all, int64(len(all)), nil
}

func (f fakeTxRepo) Recent(_ context.Context, walletID int64, limit int) ([]domain.TransactionRecord, error) {
	all := f.newestFirst(walletID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f fakeTxRepo) GetStats(context.Context, int64, *int64) (*ports.TransactionStats, error) {
	return &ports.TransactionStats{}, nil
}

func (f fakeTxRepo) newestFirst(walletID int64) []domain.TransactionRecord {
	out := f.store.recordsOf(walletID)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

var (
	_ ports.UserRepository        = fakeUserRepo{}
	_ ports.WalletRepository      = fakeWalletRepo{}
	_ ports.TransactionRepository = fakeTxRepo{}
	_ ports.DBTransactor          = fakeTransactor{}
)
