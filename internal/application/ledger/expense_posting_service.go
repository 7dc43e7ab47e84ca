package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/koprogo/ledger/internal/domain/ledger"
	"github.com/koprogo/ledger/internal/domain/shared"
)

// PCMN accounts used by automatic expense postings
const (
	supplierAccountCode       = "440" // Fournisseurs
	vatRecoverableAccountCode = "411" // TVA récupérable
	defaultBankAccountCode    = "550" // Compte courant bancaire
)

// ExpensePostingService translates expense lifecycle events into journal
// entries: a purchase entry when an expense is recorded and a payment entry
// when it is settled.
type ExpensePostingService struct {
	journal *JournalEntryService
	logger  *zap.Logger
}

// NewExpensePostingService creates a new expense posting service
func NewExpensePostingService(journal *JournalEntryService, logger *zap.Logger) *ExpensePostingService {
	return &ExpensePostingService{
		journal: journal,
		logger:  logger,
	}
}

// PostExpenseInput contains input for posting a recorded expense
type PostExpenseInput struct {
	OrganizationID     uuid.UUID
	BuildingID         *uuid.UUID
	ExpenseID          uuid.UUID
	EntryDate          time.Time
	Description        string
	DocumentRef        string
	ExpenseAccountCode string
	Amount             decimal.Decimal // excluding VAT
	VATAmount          decimal.Decimal
	CreatedBy          *uuid.UUID
}

// PostExpense records the purchase entry for an expense: the expense
// account and recoverable VAT are debited, the supplier account is
// credited with the total.
func (s *ExpensePostingService) PostExpense(ctx context.Context, input PostExpenseInput) (*ledger.JournalEntry, error) {
	if input.ExpenseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXPENSE", "Expense ID cannot be empty")
	}
	if !input.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_LINE_AMOUNT", "Expense amount must be positive")
	}
	if input.VATAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LINE_AMOUNT", "VAT amount cannot be negative")
	}

	lines := []LineInput{
		{AccountCode: input.ExpenseAccountCode, Debit: input.Amount, Description: input.Description},
	}
	if input.VATAmount.IsPositive() {
		lines = append(lines, LineInput{AccountCode: vatRecoverableAccountCode, Debit: input.VATAmount, Description: "TVA récupérable"})
	}
	total := input.Amount.Add(input.VATAmount)
	lines = append(lines, LineInput{AccountCode: supplierAccountCode, Credit: total, Description: input.Description})

	journalType := ledger.JournalTypePurchases
	entry, err := s.journal.CreateEntry(ctx, CreateEntryInput{
		OrganizationID: input.OrganizationID,
		BuildingID:     input.BuildingID,
		EntryDate:      input.EntryDate,
		Description:    input.Description,
		DocumentRef:    input.DocumentRef,
		JournalType:    &journalType,
		ExpenseID:      &input.ExpenseID,
		Lines:          lines,
		CreatedBy:      input.CreatedBy,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("expense posted",
		zap.String("organization_id", input.OrganizationID.String()),
		zap.String("expense_id", input.ExpenseID.String()),
		zap.String("total", total.StringFixed(2)))

	return entry, nil
}

// PostExpensePaymentInput contains input for posting an expense settlement
type PostExpensePaymentInput struct {
	OrganizationID     uuid.UUID
	BuildingID         *uuid.UUID
	ExpenseID          uuid.UUID
	PaymentDate        time.Time
	Description        string
	DocumentRef        string
	Amount             decimal.Decimal
	PaymentAccountCode string // bank or cash account; defaults to the bank current account
	CreatedBy          *uuid.UUID
}

// PostExpensePayment records the settlement entry for an expense: the
// supplier account is debited and the bank or cash account is credited.
func (s *ExpensePostingService) PostExpensePayment(ctx context.Context, input PostExpensePaymentInput) (*ledger.JournalEntry, error) {
	if input.ExpenseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXPENSE", "Expense ID cannot be empty")
	}
	if !input.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_LINE_AMOUNT", "Payment amount must be positive")
	}

	paymentAccount := input.PaymentAccountCode
	if paymentAccount == "" {
		paymentAccount = defaultBankAccountCode
	}

	journalType := ledger.JournalTypeFinancial
	entry, err := s.journal.CreateEntry(ctx, CreateEntryInput{
		OrganizationID: input.OrganizationID,
		BuildingID:     input.BuildingID,
		EntryDate:      input.PaymentDate,
		Description:    input.Description,
		DocumentRef:    input.DocumentRef,
		JournalType:    &journalType,
		ExpenseID:      &input.ExpenseID,
		Lines: []LineInput{
			{AccountCode: supplierAccountCode, Debit: input.Amount, Description: input.Description},
			{AccountCode: paymentAccount, Credit: input.Amount, Description: input.Description},
		},
		CreatedBy: input.CreatedBy,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("expense payment posted",
		zap.String("organization_id", input.OrganizationID.String()),
		zap.String("expense_id", input.ExpenseID.String()),
		zap.String("amount", input.Amount.StringFixed(2)))

	return entry, nil
}
