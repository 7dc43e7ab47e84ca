package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/koprogo/ledger/internal/domain/ledger"
	"github.com/koprogo/ledger/internal/domain/shared"
	"github.com/koprogo/ledger/internal/infrastructure/persistence/models"
)

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Create persists one account
func (r *GormAccountRepository) Create(ctx context.Context, account *ledger.Account) error {
	model := models.AccountModelFromDomain(account)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return shared.NewPersistenceError("create account", err)
	}
	return nil
}

// CreateBatch persists all accounts in a single transaction
func (r *GormAccountRepository) CreateBatch(ctx context.Context, accounts []*ledger.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	accountModels := make([]*models.AccountModel, len(accounts))
	for i, account := range accounts {
		accountModels[i] = models.AccountModelFromDomain(account)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&accountModels).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return shared.NewPersistenceError("create accounts", err)
	}
	return nil
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError("find account", err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds an account by code within an organization
func (r *GormAccountRepository) FindByCode(ctx context.Context, organizationID uuid.UUID, code string) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND code = ?", organizationID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError("find account", err)
	}
	return model.ToDomain(), nil
}

// FindByOrganization returns all accounts of an organization ordered by code
func (r *GormAccountRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]ledger.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("code ASC").
		Find(&accountModels).Error; err != nil {
		return nil, shared.NewPersistenceError("list accounts", err)
	}
	return toDomainAccounts(accountModels), nil
}

// FindByType returns accounts of a given classification
func (r *GormAccountRepository) FindByType(ctx context.Context, organizationID uuid.UUID, accountType ledger.AccountType) ([]ledger.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND account_type = ?", organizationID, accountType.String()).
		Order("code ASC").
		Find(&accountModels).Error; err != nil {
		return nil, shared.NewPersistenceError("list accounts by type", err)
	}
	return toDomainAccounts(accountModels), nil
}

// FindByParentCode returns the direct children of a parent code
func (r *GormAccountRepository) FindByParentCode(ctx context.Context, organizationID uuid.UUID, parentCode string) ([]ledger.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND parent_code = ?", organizationID, parentCode).
		Order("code ASC").
		Find(&accountModels).Error; err != nil {
		return nil, shared.NewPersistenceError("list child accounts", err)
	}
	return toDomainAccounts(accountModels), nil
}

// FindDirectUse returns accounts that may receive journal lines
func (r *GormAccountRepository) FindDirectUse(ctx context.Context, organizationID uuid.UUID) ([]ledger.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND direct_use = ?", organizationID, true).
		Order("code ASC").
		Find(&accountModels).Error; err != nil {
		return nil, shared.NewPersistenceError("list direct-use accounts", err)
	}
	return toDomainAccounts(accountModels), nil
}

// SearchByCodePattern matches account codes with SQL LIKE semantics
func (r *GormAccountRepository) SearchByCodePattern(ctx context.Context, organizationID uuid.UUID, pattern string) ([]ledger.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND code LIKE ?", organizationID, pattern).
		Order("code ASC").
		Find(&accountModels).Error; err != nil {
		return nil, shared.NewPersistenceError("search accounts", err)
	}
	return toDomainAccounts(accountModels), nil
}

// Update persists changes to an existing account
func (r *GormAccountRepository) Update(ctx context.Context, account *ledger.Account) error {
	model := models.AccountModelFromDomain(account)
	result := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"label":        model.Label,
			"parent_code":  model.ParentCode,
			"account_type": model.AccountType,
			"direct_use":   model.DirectUse,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return shared.NewPersistenceError("update account", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an account
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return shared.NewPersistenceError("delete account", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByOrganization counts the accounts of an organization
func (r *GormAccountRepository) CountByOrganization(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error; err != nil {
		return 0, shared.NewPersistenceError("count accounts", err)
	}
	return count, nil
}

// ExistsByCode reports whether a code is taken within an organization
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, organizationID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("organization_id = ? AND code = ?", organizationID, code).
		Count(&count).Error; err != nil {
		return false, shared.NewPersistenceError("check account code", err)
	}
	return count > 0, nil
}

func toDomainAccounts(accountModels []models.AccountModel) []ledger.Account {
	accounts := make([]ledger.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = *accountModels[i].ToDomain()
	}
	return accounts
}
