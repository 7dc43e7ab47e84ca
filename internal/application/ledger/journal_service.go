package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/koprogo/ledger/internal/domain/ledger"
	"github.com/koprogo/ledger/internal/domain/shared"
	"github.com/koprogo/ledger/internal/domain/shared/valueobject"
)

// JournalEntryService handles journal entry recording and lookup. Stored
// entries are immutable; corrections go through new reversing entries.
type JournalEntryService struct {
	entryRepo   ledger.JournalEntryRepository
	accountRepo ledger.AccountRepository
	logger      *zap.Logger
}

// NewJournalEntryService creates a new journal entry service
func NewJournalEntryService(
	entryRepo ledger.JournalEntryRepository,
	accountRepo ledger.AccountRepository,
	logger *zap.Logger,
) *JournalEntryService {
	return &JournalEntryService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// LineInput is one journal line as submitted by a caller. Exactly one of
// Debit and Credit must be positive; the other must be zero.
type LineInput struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// CreateEntryInput contains input for recording a journal entry
type CreateEntryInput struct {
	OrganizationID uuid.UUID
	BuildingID     *uuid.UUID
	EntryDate      time.Time
	Description    string
	DocumentRef    string
	JournalType    *ledger.JournalType
	ExpenseID      *uuid.UUID
	ContributionID *uuid.UUID
	Lines          []LineInput
	CreatedBy      *uuid.UUID
}

// CreateEntry validates and records a balanced journal entry. Every line
// must reference an existing account of the organization.
func (s *JournalEntryService) CreateEntry(ctx context.Context, input CreateEntryInput) (*ledger.JournalEntry, error) {
	entry, err := s.assembleEntry(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("journal entry recorded",
		zap.String("organization_id", input.OrganizationID.String()),
		zap.String("entry_id", entry.GetID().String()),
		zap.Int("lines", len(entry.Lines)),
		zap.String("total", entry.TotalDebits().StringFixed(2)))

	return entry, nil
}

// CreateManualEntry records an operator-entered correction entry. Manual
// entries default to the miscellaneous journal and carry no expense or
// contribution linkage; the assembled entry goes through the manual store
// path, which re-checks the balance invariant before writing.
func (s *JournalEntryService) CreateManualEntry(ctx context.Context, input CreateEntryInput) (*ledger.JournalEntry, error) {
	if input.ExpenseID != nil || input.ContributionID != nil {
		return nil, shared.NewDomainError("INVALID_MANUAL_ENTRY", "Manual entries cannot reference an expense or contribution")
	}
	if input.JournalType == nil {
		misc := ledger.JournalTypeMiscellaneous
		input.JournalType = &misc
	}

	entry, err := s.assembleEntry(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.CreateManual(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("manual journal entry recorded",
		zap.String("organization_id", input.OrganizationID.String()),
		zap.String("entry_id", entry.GetID().String()),
		zap.Int("lines", len(entry.Lines)),
		zap.String("total", entry.TotalDebits().StringFixed(2)))

	return entry, nil
}

// assembleEntry resolves the line inputs against the chart of accounts and
// builds a validated entry
func (s *JournalEntryService) assembleEntry(ctx context.Context, input CreateEntryInput) (*ledger.JournalEntry, error) {
	lines, err := s.buildLines(ctx, input.OrganizationID, input.Lines)
	if err != nil {
		return nil, err
	}

	return ledger.NewJournalEntry(
		input.OrganizationID,
		input.BuildingID,
		input.EntryDate,
		input.Description,
		input.DocumentRef,
		input.JournalType,
		input.ExpenseID,
		input.ContributionID,
		lines,
		input.CreatedBy,
	)
}

// GetEntry loads one entry with its lines
func (s *JournalEntryService) GetEntry(ctx context.Context, organizationID, id uuid.UUID) (*ledger.JournalEntry, error) {
	return s.entryRepo.FindByID(ctx, organizationID, id)
}

// ListEntries returns a paginated page of entries honoring the filter
func (s *JournalEntryService) ListEntries(ctx context.Context, organizationID uuid.UUID, filter ledger.EntryFilter) (shared.Paginated[ledger.JournalEntry], error) {
	return s.entryRepo.List(ctx, organizationID, filter)
}

// FindEntriesByExpense returns the entries linked to an originating expense
func (s *JournalEntryService) FindEntriesByExpense(ctx context.Context, expenseID uuid.UUID) ([]ledger.JournalEntry, error) {
	return s.entryRepo.FindByExpense(ctx, expenseID)
}

// FindEntriesByDateRange returns entries dated within [start, end]
func (s *JournalEntryService) FindEntriesByDateRange(ctx context.Context, organizationID uuid.UUID, start, end time.Time) ([]ledger.JournalEntry, error) {
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot precede start date")
	}
	return s.entryRepo.FindByDateRange(ctx, organizationID, start, end)
}

// DeleteEntry removes an entry and all its lines atomically
func (s *JournalEntryService) DeleteEntry(ctx context.Context, organizationID, id uuid.UUID) error {
	if err := s.entryRepo.Delete(ctx, organizationID, id); err != nil {
		return err
	}
	s.logger.Info("journal entry deleted",
		zap.String("organization_id", organizationID.String()),
		zap.String("entry_id", id.String()))
	return nil
}

// BalanceCheck is the result of re-deriving an entry's totals from storage
type BalanceCheck struct {
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	Balanced     bool            `json:"balanced"`
}

// ValidateBalance re-derives the debit and credit totals of a stored entry
// and checks them against the balance tolerance
func (s *JournalEntryService) ValidateBalance(ctx context.Context, organizationID, id uuid.UUID) (*BalanceCheck, error) {
	if _, err := s.entryRepo.FindByID(ctx, organizationID, id); err != nil {
		return nil, err
	}
	debits, credits, err := s.entryRepo.SumLinesByEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	diff := debits.Sub(credits).Abs()
	return &BalanceCheck{
		TotalDebits:  debits,
		TotalCredits: credits,
		Balanced:     diff.LessThanOrEqual(ledger.BalanceTolerance),
	}, nil
}

func (s *JournalEntryService) buildLines(ctx context.Context, organizationID uuid.UUID, inputs []LineInput) ([]ledger.JournalEntryLine, error) {
	lines := make([]ledger.JournalEntryLine, 0, len(inputs))
	for _, in := range inputs {
		exists, err := s.accountRepo.ExistsByCode(ctx, organizationID, in.AccountCode)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND",
				fmt.Sprintf("Account %q does not exist in this organization", in.AccountCode))
		}

		amount, err := ledger.LineAmountFromTotals(in.Debit, in.Credit)
		if err != nil {
			return nil, err
		}

		var line ledger.JournalEntryLine
		if amount.Side() == ledger.SideDebit {
			line, err = ledger.NewDebitLine(organizationID, in.AccountCode, valueobject.NewMoneyEUR(amount.Amount()), in.Description)
		} else {
			line, err = ledger.NewCreditLine(organizationID, in.AccountCode, valueobject.NewMoneyEUR(amount.Amount()), in.Description)
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
