package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/koprogo/ledger/internal/domain/ledger"
	"github.com/koprogo/ledger/internal/domain/shared"
	"github.com/koprogo/ledger/internal/infrastructure/persistence/models"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.AccountModel{},
		&models.JournalEntryModel{},
		&models.JournalEntryLineModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestAccount(t *testing.T, orgID uuid.UUID, code, label string, parentCode *string, accountType ledger.AccountType) *ledger.Account {
	t.Helper()
	account, err := ledger.NewAccount(orgID, code, label, parentCode, accountType, true)
	require.NoError(t, err)
	return account
}

func strPtr(s string) *string {
	return &s
}

func TestAccountRepository_Create(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("creates and finds by code", func(t *testing.T) {
		account := newTestAccount(t, orgID, "604001", "Entretien ascenseur", strPtr("604"), ledger.AccountTypeExpense)

		err := repo.Create(ctx, account)
		require.NoError(t, err)

		found, err := repo.FindByCode(ctx, orgID, "604001")
		require.NoError(t, err)
		assert.Equal(t, account.GetID(), found.GetID())
		assert.Equal(t, "Entretien ascenseur", found.Label)
		assert.Equal(t, ledger.AccountTypeExpense, found.Type)
		require.NotNil(t, found.ParentCode)
		assert.Equal(t, "604", *found.ParentCode)
	})

	t.Run("rejects duplicate code within organization", func(t *testing.T) {
		first := newTestAccount(t, orgID, "550", "Banque", nil, ledger.AccountTypeAsset)
		require.NoError(t, repo.Create(ctx, first))

		dup := newTestAccount(t, orgID, "550", "Banque bis", nil, ledger.AccountTypeAsset)
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("allows same code in another organization", func(t *testing.T) {
		otherOrg := uuid.New()
		account := newTestAccount(t, otherOrg, "550", "Banque", nil, ledger.AccountTypeAsset)
		assert.NoError(t, repo.Create(ctx, account))
	})

	t.Run("find by unknown code returns not found", func(t *testing.T) {
		_, err := repo.FindByCode(ctx, orgID, "999999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAccountRepository_CreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("commits all rows", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormAccountRepository(db)
		orgID := uuid.New()

		accounts := []*ledger.Account{
			newTestAccount(t, orgID, "6", "Charges", nil, ledger.AccountTypeExpense),
			newTestAccount(t, orgID, "60", "Approvisionnements", strPtr("6"), ledger.AccountTypeExpense),
			newTestAccount(t, orgID, "604", "Entretien et réparations", strPtr("60"), ledger.AccountTypeExpense),
		}

		require.NoError(t, repo.CreateBatch(ctx, accounts))

		count, err := repo.CountByOrganization(ctx, orgID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("rolls back the whole batch on conflict", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormAccountRepository(db)
		orgID := uuid.New()

		existing := newTestAccount(t, orgID, "440", "Fournisseurs", nil, ledger.AccountTypeLiability)
		require.NoError(t, repo.Create(ctx, existing))

		batch := []*ledger.Account{
			newTestAccount(t, orgID, "4", "Créances et dettes", nil, ledger.AccountTypeLiability),
			newTestAccount(t, orgID, "440", "Fournisseurs", nil, ledger.AccountTypeLiability),
		}

		err := repo.CreateBatch(ctx, batch)
		require.Error(t, err)

		count, err := repo.CountByOrganization(ctx, orgID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "no row of the failed batch may remain")
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormAccountRepository(db)
		assert.NoError(t, repo.CreateBatch(ctx, nil))
	})
}

func TestAccountRepository_Queries(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	seed := []*ledger.Account{
		newTestAccount(t, orgID, "6", "Charges", nil, ledger.AccountTypeExpense),
		newTestAccount(t, orgID, "60", "Approvisionnements", strPtr("6"), ledger.AccountTypeExpense),
		newTestAccount(t, orgID, "604", "Entretien et réparations", strPtr("60"), ledger.AccountTypeExpense),
		newTestAccount(t, orgID, "7", "Produits", nil, ledger.AccountTypeRevenue),
		newTestAccount(t, orgID, "550", "Banque", nil, ledger.AccountTypeAsset),
	}
	require.NoError(t, repo.CreateBatch(ctx, seed))

	t.Run("find by organization orders by code", func(t *testing.T) {
		accounts, err := repo.FindByOrganization(ctx, orgID)
		require.NoError(t, err)
		require.Len(t, accounts, 5)
		assert.Equal(t, "550", accounts[0].Code)
		assert.Equal(t, "6", accounts[1].Code)
		assert.Equal(t, "7", accounts[4].Code)
	})

	t.Run("find by type", func(t *testing.T) {
		accounts, err := repo.FindByType(ctx, orgID, ledger.AccountTypeExpense)
		require.NoError(t, err)
		assert.Len(t, accounts, 3)
	})

	t.Run("find by parent code", func(t *testing.T) {
		children, err := repo.FindByParentCode(ctx, orgID, "60")
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, "604", children[0].Code)
	})

	t.Run("search by code pattern", func(t *testing.T) {
		accounts, err := repo.SearchByCodePattern(ctx, orgID, "60%")
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
	})

	t.Run("exists by code", func(t *testing.T) {
		exists, err := repo.ExistsByCode(ctx, orgID, "604")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCode(ctx, orgID, "612")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("other organization sees nothing", func(t *testing.T) {
		accounts, err := repo.FindByOrganization(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, accounts)
	})
}

func TestAccountRepository_Update(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("updates label and type", func(t *testing.T) {
		account := newTestAccount(t, orgID, "700", "Ventes", nil, ledger.AccountTypeRevenue)
		require.NoError(t, repo.Create(ctx, account))

		newLabel := "Appels de fonds"
		require.NoError(t, account.Apply(ledger.AccountPatch{Label: &newLabel}))
		require.NoError(t, repo.Update(ctx, account))

		found, err := repo.FindByID(ctx, account.GetID())
		require.NoError(t, err)
		assert.Equal(t, "Appels de fonds", found.Label)
	})

	t.Run("updating unknown account returns not found", func(t *testing.T) {
		ghost := newTestAccount(t, orgID, "999", "Ghost", nil, ledger.AccountTypeOffBalance)
		err := repo.Update(ctx, ghost)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAccountRepository_Delete(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	account := newTestAccount(t, orgID, "612", "Fournitures", nil, ledger.AccountTypeExpense)
	require.NoError(t, repo.Create(ctx, account))

	require.NoError(t, repo.Delete(ctx, account.GetID()))

	_, err := repo.FindByID(ctx, account.GetID())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, account.GetID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
