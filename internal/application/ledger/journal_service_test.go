package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/koprogo/ledger/internal/domain/ledger"
	"github.com/koprogo/ledger/internal/domain/shared"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestJournalEntryService_CreateEntry(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("records a balanced entry", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		accountRepo.On("ExistsByCode", ctx, orgID, "604001").Return(true, nil)
		accountRepo.On("ExistsByCode", ctx, orgID, "411").Return(true, nil)
		accountRepo.On("ExistsByCode", ctx, orgID, "440").Return(true, nil)
		entryRepo.On("Create", ctx, mock.AnythingOfType("*ledger.JournalEntry")).Return(nil)

		journalType := ledger.JournalTypePurchases
		entry, err := service.CreateEntry(ctx, CreateEntryInput{
			OrganizationID: orgID,
			EntryDate:      entryDate,
			Description:    "Facture ascenseur",
			JournalType:    &journalType,
			Lines: []LineInput{
				{AccountCode: "604001", Debit: dec("1000.00")},
				{AccountCode: "411", Debit: dec("210.00")},
				{AccountCode: "440", Credit: dec("1210.00")},
			},
		})

		require.NoError(t, err)
		require.Len(t, entry.Lines, 3)
		assert.True(t, entry.IsBalanced())
		assert.Equal(t, entry.GetID(), entry.Lines[0].JournalEntryID)
		entryRepo.AssertExpectations(t)
	})

	t.Run("rejects lines against unknown accounts", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		accountRepo.On("ExistsByCode", ctx, orgID, "999999").Return(false, nil)

		_, err := service.CreateEntry(ctx, CreateEntryInput{
			OrganizationID: orgID,
			EntryDate:      entryDate,
			Lines: []LineInput{
				{AccountCode: "999999", Debit: dec("100.00")},
				{AccountCode: "440", Credit: dec("100.00")},
			},
		})

		assertDomainErrorCode(t, err, "ACCOUNT_NOT_FOUND")
		entryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unbalanced entries", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		accountRepo.On("ExistsByCode", ctx, orgID, mock.AnythingOfType("string")).Return(true, nil)

		_, err := service.CreateEntry(ctx, CreateEntryInput{
			OrganizationID: orgID,
			EntryDate:      entryDate,
			Lines: []LineInput{
				{AccountCode: "604001", Debit: dec("120.00")},
				{AccountCode: "440", Credit: dec("100.00")},
			},
		})

		assertDomainErrorCode(t, err, "UNBALANCED_ENTRY")
		entryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a line with both sides set", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		accountRepo.On("ExistsByCode", ctx, orgID, mock.AnythingOfType("string")).Return(true, nil)

		_, err := service.CreateEntry(ctx, CreateEntryInput{
			OrganizationID: orgID,
			EntryDate:      entryDate,
			Lines: []LineInput{
				{AccountCode: "604001", Debit: dec("100.00"), Credit: dec("100.00")},
				{AccountCode: "440", Credit: dec("100.00")},
			},
		})

		assertDomainErrorCode(t, err, "INVALID_LINE_AMOUNT")
	})

	t.Run("rejects single-line entries", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		accountRepo.On("ExistsByCode", ctx, orgID, "604001").Return(true, nil)

		_, err := service.CreateEntry(ctx, CreateEntryInput{
			OrganizationID: orgID,
			EntryDate:      entryDate,
			Lines: []LineInput{
				{AccountCode: "604001", Debit: dec("100.00")},
			},
		})

		assertDomainErrorCode(t, err, "TOO_FEW_LINES")
	})
}

func TestJournalEntryService_CreateManualEntry(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("defaults to the miscellaneous journal", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		accountRepo.On("ExistsByCode", ctx, orgID, mock.AnythingOfType("string")).Return(true, nil)
		entryRepo.On("CreateManual", ctx, mock.AnythingOfType("*ledger.JournalEntry")).Return(nil)

		entry, err := service.CreateManualEntry(ctx, CreateEntryInput{
			OrganizationID: orgID,
			EntryDate:      time.Now().UTC(),
			Lines: []LineInput{
				{AccountCode: "550", Debit: dec("42.00")},
				{AccountCode: "700", Credit: dec("42.00")},
			},
		})

		require.NoError(t, err)
		require.NotNil(t, entry.JournalType)
		assert.Equal(t, ledger.JournalTypeMiscellaneous, *entry.JournalType)
		entryRepo.AssertExpectations(t)
		entryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("refuses expense linkage", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		expenseID := uuid.New()
		_, err := service.CreateManualEntry(ctx, CreateEntryInput{
			OrganizationID: orgID,
			EntryDate:      time.Now().UTC(),
			ExpenseID:      &expenseID,
			Lines: []LineInput{
				{AccountCode: "550", Debit: dec("42.00")},
				{AccountCode: "700", Credit: dec("42.00")},
			},
		})

		assertDomainErrorCode(t, err, "INVALID_MANUAL_ENTRY")
	})
}

func TestJournalEntryService_ValidateBalance(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	entryID := uuid.New()

	t.Run("reports stored totals", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		entryRepo.On("FindByID", ctx, orgID, entryID).Return(&ledger.JournalEntry{}, nil)
		entryRepo.On("SumLinesByEntry", ctx, entryID).Return(dec("1210.00"), dec("1210.00"), nil)

		check, err := service.ValidateBalance(ctx, orgID, entryID)
		require.NoError(t, err)
		assert.True(t, check.Balanced)
		assert.True(t, check.TotalDebits.Equal(dec("1210.00")))
	})

	t.Run("flags drifted entries", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		entryRepo.On("FindByID", ctx, orgID, entryID).Return(&ledger.JournalEntry{}, nil)
		entryRepo.On("SumLinesByEntry", ctx, entryID).Return(dec("100.00"), dec("98.00"), nil)

		check, err := service.ValidateBalance(ctx, orgID, entryID)
		require.NoError(t, err)
		assert.False(t, check.Balanced)
	})

	t.Run("tolerates a one-cent difference", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		entryRepo.On("FindByID", ctx, orgID, entryID).Return(&ledger.JournalEntry{}, nil)
		entryRepo.On("SumLinesByEntry", ctx, entryID).Return(dec("100.00"), dec("99.99"), nil)

		check, err := service.ValidateBalance(ctx, orgID, entryID)
		require.NoError(t, err)
		assert.True(t, check.Balanced)
	})

	t.Run("unknown entry bubbles not found", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockJournalEntryRepository)
		service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

		entryRepo.On("FindByID", ctx, orgID, entryID).Return(nil, shared.ErrNotFound)

		_, err := service.ValidateBalance(ctx, orgID, entryID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestJournalEntryService_FindEntriesByDateRange(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	accountRepo := new(MockAccountRepository)
	entryRepo := new(MockJournalEntryRepository)
	service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

	t.Run("rejects inverted range", func(t *testing.T) {
		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

		_, err := service.FindEntriesByDateRange(ctx, orgID, start, end)
		assertDomainErrorCode(t, err, "INVALID_DATE_RANGE")
	})
}

func TestJournalEntryService_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	entryID := uuid.New()

	accountRepo := new(MockAccountRepository)
	entryRepo := new(MockJournalEntryRepository)
	service := NewJournalEntryService(entryRepo, accountRepo, zap.NewNop())

	entryRepo.On("Delete", ctx, orgID, entryID).Return(shared.ErrNotFound)

	err := service.DeleteEntry(ctx, orgID, entryID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
