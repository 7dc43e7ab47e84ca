package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/koprogo/ledger/internal/domain/ledger"
	"github.com/koprogo/ledger/internal/domain/shared"
)

// MockAccountRepository is a testify mock of ledger.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) CreateBatch(ctx context.Context, accounts []*ledger.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, organizationID uuid.UUID, code string) (*ledger.Account, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]ledger.Account, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByType(ctx context.Context, organizationID uuid.UUID, accountType ledger.AccountType) ([]ledger.Account, error) {
	args := m.Called(ctx, organizationID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByParentCode(ctx context.Context, organizationID uuid.UUID, parentCode string) ([]ledger.Account, error) {
	args := m.Called(ctx, organizationID, parentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindDirectUse(ctx context.Context, organizationID uuid.UUID) ([]ledger.Account, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) SearchByCodePattern(ctx context.Context, organizationID uuid.UUID, pattern string) ([]ledger.Account, error) {
	args := m.Called(ctx, organizationID, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) CountByOrganization(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) ExistsByCode(ctx context.Context, organizationID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, organizationID, code)
	return args.Bool(0), args.Error(1)
}

// MockJournalEntryRepository is a testify mock of ledger.JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) Create(ctx context.Context, entry *ledger.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) CreateManual(ctx context.Context, entry *ledger.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindByID(ctx context.Context, organizationID, id uuid.UUID) (*ledger.JournalEntry, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID, filter ledger.EntryFilter) ([]ledger.JournalEntry, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindByExpense(ctx context.Context, expenseID uuid.UUID) ([]ledger.JournalEntry, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindByDateRange(ctx context.Context, organizationID uuid.UUID, start, end time.Time) ([]ledger.JournalEntry, error) {
	args := m.Called(ctx, organizationID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) List(ctx context.Context, organizationID uuid.UUID, filter ledger.EntryFilter) (shared.Paginated[ledger.JournalEntry], error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).(shared.Paginated[ledger.JournalEntry]), args.Error(1)
}

func (m *MockJournalEntryRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindLinesByAccount(ctx context.Context, organizationID uuid.UUID, accountCode string) ([]ledger.JournalEntryLine, error) {
	args := m.Called(ctx, organizationID, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.JournalEntryLine), args.Error(1)
}

func (m *MockJournalEntryRepository) FindLinesByEntry(ctx context.Context, entryID uuid.UUID) ([]ledger.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.JournalEntryLine), args.Error(1)
}

func (m *MockJournalEntryRepository) CountLinesByAccount(ctx context.Context, organizationID uuid.UUID, accountCode string) (int64, error) {
	args := m.Called(ctx, organizationID, accountCode)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalEntryRepository) SumLinesByEntry(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockJournalEntryRepository) AccountTotals(ctx context.Context, organizationID uuid.UUID) ([]ledger.AccountTotals, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountTotals), args.Error(1)
}

func (m *MockJournalEntryRepository) AccountTotalsForPeriod(ctx context.Context, organizationID uuid.UUID, start, end time.Time) ([]ledger.AccountTotals, error) {
	args := m.Called(ctx, organizationID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountTotals), args.Error(1)
}

func (m *MockJournalEntryRepository) AccountTotalsForBuilding(ctx context.Context, organizationID, buildingID uuid.UUID) ([]ledger.AccountTotals, error) {
	args := m.Called(ctx, organizationID, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountTotals), args.Error(1)
}
