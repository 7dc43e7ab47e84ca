package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/koprogo/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the persistence interface for the chart of accounts
type AccountRepository interface {
	// Create persists one account
	Create(ctx context.Context, account *Account) error

	// CreateBatch persists all accounts in a single transaction; a failure
	// on any row leaves none of them committed
	CreateBatch(ctx context.Context, accounts []*Account) error

	// FindByID finds an account by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByCode finds an account by code within an organization
	FindByCode(ctx context.Context, organizationID uuid.UUID, code string) (*Account, error)

	// FindByOrganization returns all accounts of an organization ordered by code
	FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]Account, error)

	// FindByType returns accounts of a given classification
	FindByType(ctx context.Context, organizationID uuid.UUID, accountType AccountType) ([]Account, error)

	// FindByParentCode returns the direct children of a parent code
	FindByParentCode(ctx context.Context, organizationID uuid.UUID, parentCode string) ([]Account, error)

	// FindDirectUse returns accounts that may receive journal lines
	FindDirectUse(ctx context.Context, organizationID uuid.UUID) ([]Account, error)

	// SearchByCodePattern matches account codes with SQL LIKE semantics,
	// case-sensitive (e.g. "60%" for all class-6 expense sub-accounts)
	SearchByCodePattern(ctx context.Context, organizationID uuid.UUID, pattern string) ([]Account, error)

	// Update persists changes to an existing account
	Update(ctx context.Context, account *Account) error

	// Delete removes an account. Usage preconditions (no children, no
	// journal lines) are the calling layer's responsibility.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByOrganization counts the accounts of an organization
	CountByOrganization(ctx context.Context, organizationID uuid.UUID) (int64, error)

	// ExistsByCode reports whether a code is taken within an organization
	ExistsByCode(ctx context.Context, organizationID uuid.UUID, code string) (bool, error)
}

// EntryFilter defines filtering options for journal entry queries
type EntryFilter struct {
	shared.Filter
	BuildingID  *uuid.UUID
	JournalType *JournalType
	FromDate    *time.Time
	ToDate      *time.Time
}

// AccountTotals is the per-account debit/credit aggregation row returned by
// balance queries. The normal-balance-side rule is applied by the balance
// service using the account's stored type, never here.
type AccountTotals struct {
	AccountCode string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// JournalEntryRepository defines the persistence interface for journal
// entries and their lines. Every mutation spans header and lines in one
// transaction. Stored entries are immutable, so there is no update operation.
type JournalEntryRepository interface {
	// Create persists the entry header and all lines atomically
	Create(ctx context.Context, entry *JournalEntry) error

	// CreateManual persists a caller-assembled entry (ids and timestamps
	// already set) with the same atomicity guarantee
	CreateManual(ctx context.Context, entry *JournalEntry) error

	// FindByID loads an entry with its lines
	FindByID(ctx context.Context, organizationID, id uuid.UUID) (*JournalEntry, error)

	// FindByOrganization returns entries of an organization, most recent first
	FindByOrganization(ctx context.Context, organizationID uuid.UUID, filter EntryFilter) ([]JournalEntry, error)

	// FindByExpense returns entries linked to an originating expense
	FindByExpense(ctx context.Context, expenseID uuid.UUID) ([]JournalEntry, error)

	// FindByDateRange returns entries whose entry_date falls in [start, end]
	FindByDateRange(ctx context.Context, organizationID uuid.UUID, start, end time.Time) ([]JournalEntry, error)

	// List returns a paginated page of entries honoring the filter
	List(ctx context.Context, organizationID uuid.UUID, filter EntryFilter) (shared.Paginated[JournalEntry], error)

	// Delete removes all lines then the header in one transaction. Returns
	// shared.ErrNotFound when no entry was deleted.
	Delete(ctx context.Context, organizationID, id uuid.UUID) error

	// FindLinesByAccount returns all lines posted against an account code
	FindLinesByAccount(ctx context.Context, organizationID uuid.UUID, accountCode string) ([]JournalEntryLine, error)

	// FindLinesByEntry returns the lines of one entry in insertion order
	FindLinesByEntry(ctx context.Context, entryID uuid.UUID) ([]JournalEntryLine, error)

	// CountLinesByAccount counts lines referencing an account code
	CountLinesByAccount(ctx context.Context, organizationID uuid.UUID, accountCode string) (int64, error)

	// SumLinesByEntry re-derives the debit and credit totals of a stored entry
	SumLinesByEntry(ctx context.Context, entryID uuid.UUID) (debits, credits decimal.Decimal, err error)

	// AccountTotals aggregates debit/credit sums per account code over all
	// of the organization's lines
	AccountTotals(ctx context.Context, organizationID uuid.UUID) ([]AccountTotals, error)

	// AccountTotalsForPeriod restricts the aggregation to entries dated in
	// [start, end] inclusive
	AccountTotalsForPeriod(ctx context.Context, organizationID uuid.UUID, start, end time.Time) ([]AccountTotals, error)

	// AccountTotalsForBuilding restricts the aggregation to entries linked
	// to the building, directly or via their originating expense; entries
	// with no building association count as organization-wide overhead
	AccountTotalsForBuilding(ctx context.Context, organizationID, buildingID uuid.UUID) ([]AccountTotals, error)
}
