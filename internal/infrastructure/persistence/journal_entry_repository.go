package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/koprogo/ledger/internal/domain/ledger"
	"github.com/koprogo/ledger/internal/domain/shared"
	"github.com/koprogo/ledger/internal/infrastructure/persistence/models"
)

// GormJournalEntryRepository implements ledger.JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// Create persists the entry header and all lines atomically
func (r *GormJournalEntryRepository) Create(ctx context.Context, entry *ledger.JournalEntry) error {
	return r.insertEntry(ctx, entry, "create journal entry")
}

// CreateManual persists a caller-assembled entry, keeping its ids and
// timestamps. The balance invariant is re-checked here because the entry
// did not necessarily pass through NewJournalEntry.
func (r *GormJournalEntryRepository) CreateManual(ctx context.Context, entry *ledger.JournalEntry) error {
	return r.insertEntry(ctx, entry, "create manual journal entry")
}

// insertEntry validates the entry and writes header plus lines in one
// transaction. No unbalanced entry may ever reach storage, whichever
// create path the caller took.
func (r *GormJournalEntryRepository) insertEntry(ctx context.Context, entry *ledger.JournalEntry, op string) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	model := models.JournalEntryModelFromDomain(entry)
	lines := model.Lines
	model.Lines = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return shared.NewPersistenceError(op, err)
	}
	return nil
}

// FindByID loads an entry with its lines
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, organizationID, id uuid.UUID) (*ledger.JournalEntry, error) {
	var model models.JournalEntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError("find journal entry", err)
	}
	return model.ToDomain()
}

// FindByOrganization returns entries of an organization, most recent first
func (r *GormJournalEntryRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID, filter ledger.EntryFilter) ([]ledger.JournalEntry, error) {
	var entryModels []models.JournalEntryModel
	query := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("organization_id = ?", organizationID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, shared.NewPersistenceError("list journal entries", err)
	}
	return toDomainEntries(entryModels)
}

// FindByExpense returns entries linked to an originating expense
func (r *GormJournalEntryRepository) FindByExpense(ctx context.Context, expenseID uuid.UUID) ([]ledger.JournalEntry, error) {
	var entryModels []models.JournalEntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("expense_id = ?", expenseID).
		Order("entry_date DESC, created_at DESC").
		Find(&entryModels).Error; err != nil {
		return nil, shared.NewPersistenceError("list entries by expense", err)
	}
	return toDomainEntries(entryModels)
}

// FindByDateRange returns entries whose entry_date falls in [start, end]
func (r *GormJournalEntryRepository) FindByDateRange(ctx context.Context, organizationID uuid.UUID, start, end time.Time) ([]ledger.JournalEntry, error) {
	var entryModels []models.JournalEntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("organization_id = ? AND entry_date >= ? AND entry_date <= ?", organizationID, start, end).
		Order("entry_date DESC, created_at DESC").
		Find(&entryModels).Error; err != nil {
		return nil, shared.NewPersistenceError("list entries by date range", err)
	}
	return toDomainEntries(entryModels)
}

// List returns a paginated page of entries honoring the filter
func (r *GormJournalEntryRepository) List(ctx context.Context, organizationID uuid.UUID, filter ledger.EntryFilter) (shared.Paginated[ledger.JournalEntry], error) {
	filter.Filter = filter.Filter.Normalize()

	var total int64
	countQuery := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("organization_id = ?", organizationID)
	countQuery = r.applyFilterWithoutPagination(countQuery, filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[ledger.JournalEntry]{}, shared.NewPersistenceError("count journal entries", err)
	}

	var entryModels []models.JournalEntryModel
	query := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("organization_id = ?", organizationID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&entryModels).Error; err != nil {
		return shared.Paginated[ledger.JournalEntry]{}, shared.NewPersistenceError("list journal entries", err)
	}

	entries, err := toDomainEntries(entryModels)
	if err != nil {
		return shared.Paginated[ledger.JournalEntry]{}, err
	}
	return shared.NewPaginated(entries, total, filter.Page, filter.PageSize), nil
}

// Delete removes all lines then the header in one transaction
func (r *GormJournalEntryRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.JournalEntryLineModel{}, "journal_entry_id = ?", id).Error; err != nil {
			return shared.NewPersistenceError("delete journal lines", err)
		}
		result := tx.Delete(&models.JournalEntryModel{}, "organization_id = ? AND id = ?", organizationID, id)
		if result.Error != nil {
			return shared.NewPersistenceError("delete journal entry", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindLinesByAccount returns all lines posted against an account code
func (r *GormJournalEntryRepository) FindLinesByAccount(ctx context.Context, organizationID uuid.UUID, accountCode string) ([]ledger.JournalEntryLine, error) {
	var lineModels []models.JournalEntryLineModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND account_code = ?", organizationID, accountCode).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, shared.NewPersistenceError("list lines by account", err)
	}
	return toDomainLines(lineModels)
}

// FindLinesByEntry returns the lines of one entry in insertion order
func (r *GormJournalEntryRepository) FindLinesByEntry(ctx context.Context, entryID uuid.UUID) ([]ledger.JournalEntryLine, error) {
	var lineModels []models.JournalEntryLineModel
	if err := r.db.WithContext(ctx).
		Where("journal_entry_id = ?", entryID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, shared.NewPersistenceError("list lines by entry", err)
	}
	return toDomainLines(lineModels)
}

// CountLinesByAccount counts lines referencing an account code
func (r *GormJournalEntryRepository) CountLinesByAccount(ctx context.Context, organizationID uuid.UUID, accountCode string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.JournalEntryLineModel{}).
		Where("organization_id = ? AND account_code = ?", organizationID, accountCode).
		Count(&count).Error; err != nil {
		return 0, shared.NewPersistenceError("count lines by account", err)
	}
	return count, nil
}

// SumLinesByEntry re-derives the debit and credit totals of a stored entry
func (r *GormJournalEntryRepository) SumLinesByEntry(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var result struct {
		TotalDebit  decimal.Decimal
		TotalCredit decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.JournalEntryLineModel{}).
		Select("COALESCE(SUM(debit), 0) as total_debit, COALESCE(SUM(credit), 0) as total_credit").
		Where("journal_entry_id = ?", entryID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, decimal.Zero, shared.NewPersistenceError("sum entry lines", err)
	}
	return result.TotalDebit, result.TotalCredit, nil
}

// AccountTotals aggregates debit/credit sums per account code over all of
// the organization's lines
func (r *GormJournalEntryRepository) AccountTotals(ctx context.Context, organizationID uuid.UUID) ([]ledger.AccountTotals, error) {
	var rows []accountTotalsRow
	if err := r.db.WithContext(ctx).Model(&models.JournalEntryLineModel{}).
		Select("account_code, COALESCE(SUM(debit), 0) as total_debit, COALESCE(SUM(credit), 0) as total_credit").
		Where("organization_id = ?", organizationID).
		Group("account_code").
		Order("account_code ASC").
		Scan(&rows).Error; err != nil {
		return nil, shared.NewPersistenceError("aggregate account totals", err)
	}
	return toAccountTotals(rows), nil
}

// AccountTotalsForPeriod restricts the aggregation to entries dated in
// [start, end] inclusive
func (r *GormJournalEntryRepository) AccountTotalsForPeriod(ctx context.Context, organizationID uuid.UUID, start, end time.Time) ([]ledger.AccountTotals, error) {
	var rows []accountTotalsRow
	if err := r.db.WithContext(ctx).
		Table("journal_entry_lines").
		Select("journal_entry_lines.account_code, COALESCE(SUM(journal_entry_lines.debit), 0) as total_debit, COALESCE(SUM(journal_entry_lines.credit), 0) as total_credit").
		Joins("JOIN journal_entries ON journal_entries.id = journal_entry_lines.journal_entry_id").
		Where("journal_entry_lines.organization_id = ? AND journal_entries.entry_date >= ? AND journal_entries.entry_date <= ?",
			organizationID, start, end).
		Group("journal_entry_lines.account_code").
		Order("journal_entry_lines.account_code ASC").
		Scan(&rows).Error; err != nil {
		return nil, shared.NewPersistenceError("aggregate account totals for period", err)
	}
	return toAccountTotals(rows), nil
}

// AccountTotalsForBuilding restricts the aggregation to entries linked to
// the building. Entries carrying no building association at all count as
// organization-wide overhead and are included.
func (r *GormJournalEntryRepository) AccountTotalsForBuilding(ctx context.Context, organizationID, buildingID uuid.UUID) ([]ledger.AccountTotals, error) {
	var rows []accountTotalsRow
	if err := r.db.WithContext(ctx).
		Table("journal_entry_lines").
		Select("journal_entry_lines.account_code, COALESCE(SUM(journal_entry_lines.debit), 0) as total_debit, COALESCE(SUM(journal_entry_lines.credit), 0) as total_credit").
		Joins("JOIN journal_entries ON journal_entries.id = journal_entry_lines.journal_entry_id").
		Where("journal_entry_lines.organization_id = ?", organizationID).
		Where("journal_entries.building_id = ? OR journal_entries.building_id IS NULL", buildingID).
		Group("journal_entry_lines.account_code").
		Order("journal_entry_lines.account_code ASC").
		Scan(&rows).Error; err != nil {
		return nil, shared.NewPersistenceError("aggregate account totals for building", err)
	}
	return toAccountTotals(rows), nil
}

type accountTotalsRow struct {
	AccountCode string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func toAccountTotals(rows []accountTotalsRow) []ledger.AccountTotals {
	totals := make([]ledger.AccountTotals, len(rows))
	for i, row := range rows {
		totals[i] = ledger.AccountTotals{
			AccountCode: row.AccountCode,
			TotalDebit:  row.TotalDebit,
			TotalCredit: row.TotalCredit,
		}
	}
	return totals
}

// applyFilter applies filter conditions including sorting and pagination
func (r *GormJournalEntryRepository) applyFilter(query *gorm.DB, filter ledger.EntryFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Sort field is whitelist-validated to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, JournalEntrySortFields, "entry_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	query = query.Limit(filter.Limit())
	if offset := filter.Offset(); offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

// applyFilterWithoutPagination applies filter conditions without pagination
func (r *GormJournalEntryRepository) applyFilterWithoutPagination(query *gorm.DB, filter ledger.EntryFilter) *gorm.DB {
	if filter.BuildingID != nil {
		query = query.Where("building_id = ?", *filter.BuildingID)
	}
	if filter.JournalType != nil {
		query = query.Where("journal_type = ?", filter.JournalType.String())
	}
	if filter.FromDate != nil {
		query = query.Where("entry_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("entry_date <= ?", *filter.ToDate)
	}
	return query
}

func toDomainEntries(entryModels []models.JournalEntryModel) ([]ledger.JournalEntry, error) {
	entries := make([]ledger.JournalEntry, len(entryModels))
	for i := range entryModels {
		entry, err := entryModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		entries[i] = *entry
	}
	return entries, nil
}

func toDomainLines(lineModels []models.JournalEntryLineModel) ([]ledger.JournalEntryLine, error) {
	lines := make([]ledger.JournalEntryLine, len(lineModels))
	for i := range lineModels {
		line, err := lineModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}
