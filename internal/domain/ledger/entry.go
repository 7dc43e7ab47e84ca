package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/koprogo/ledger/internal/domain/shared"
	"github.com/koprogo/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum accepted difference between total debits
// and total credits of a journal entry, in monetary units.
var BalanceTolerance = decimal.RequireFromString("0.01")

// JournalType tags an entry with its journal category (Noalyss convention)
type JournalType string

const (
	JournalTypePurchases     JournalType = "ACH" // Achats
	JournalTypeSales         JournalType = "VEN" // Ventes
	JournalTypeFinancial     JournalType = "FIN" // Financier
	JournalTypeMiscellaneous JournalType = "ODS" // Opérations diverses
)

// IsValid checks if the journal type is valid
func (j JournalType) IsValid() bool {
	switch j {
	case JournalTypePurchases, JournalTypeSales, JournalTypeFinancial, JournalTypeMiscellaneous:
		return true
	}
	return false
}

// String returns the string representation
func (j JournalType) String() string {
	return string(j)
}

// Side identifies which side of the ledger a line amount sits on
type Side string

const (
	SideDebit  Side = "DEBIT"
	SideCredit Side = "CREDIT"
)

// LineAmount is the amount of a journal line as a tagged debit-or-credit
// variant. A line with both sides set, or neither, cannot be constructed.
type LineAmount struct {
	side   Side
	amount decimal.Decimal
}

// NewDebit creates a debit-side amount. The amount must be positive.
func NewDebit(amount valueobject.Money) (LineAmount, error) {
	if !amount.IsPositive() {
		return LineAmount{}, shared.NewDomainError("INVALID_LINE_AMOUNT", "Debit amount must be positive")
	}
	return LineAmount{side: SideDebit, amount: amount.Amount()}, nil
}

// NewCredit creates a credit-side amount. The amount must be positive.
func NewCredit(amount valueobject.Money) (LineAmount, error) {
	if !amount.IsPositive() {
		return LineAmount{}, shared.NewDomainError("INVALID_LINE_AMOUNT", "Credit amount must be positive")
	}
	return LineAmount{side: SideCredit, amount: amount.Amount()}, nil
}

// LineAmountFromTotals rebuilds a LineAmount from stored debit/credit
// columns. Exactly one of the two must be positive.
func LineAmountFromTotals(debit, credit decimal.Decimal) (LineAmount, error) {
	switch {
	case debit.IsPositive() && credit.IsZero():
		return LineAmount{side: SideDebit, amount: debit}, nil
	case credit.IsPositive() && debit.IsZero():
		return LineAmount{side: SideCredit, amount: credit}, nil
	default:
		return LineAmount{}, shared.NewDomainError("INVALID_LINE_AMOUNT",
			fmt.Sprintf("Line must carry exactly one of debit or credit (debit=%s credit=%s)",
				debit.StringFixed(2), credit.StringFixed(2)))
	}
}

// Side returns which side the amount is on
func (la LineAmount) Side() Side {
	return la.side
}

// Amount returns the positive monetary amount
func (la LineAmount) Amount() decimal.Decimal {
	return la.amount
}

// Debit returns the amount when on the debit side, zero otherwise
func (la LineAmount) Debit() decimal.Decimal {
	if la.side == SideDebit {
		return la.amount
	}
	return decimal.Zero
}

// Credit returns the amount when on the credit side, zero otherwise
func (la LineAmount) Credit() decimal.Decimal {
	if la.side == SideCredit {
		return la.amount
	}
	return decimal.Zero
}

// JournalEntryLine is a single debit or credit against one account
type JournalEntryLine struct {
	ID             uuid.UUID  `json:"id"`
	JournalEntryID uuid.UUID  `json:"journal_entry_id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	AccountCode    string     `json:"account_code"`
	Amount         LineAmount `json:"amount"`
	Description    string     `json:"description,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewDebitLine creates a debit line against the given account
func NewDebitLine(organizationID uuid.UUID, accountCode string, amount valueobject.Money, description string) (JournalEntryLine, error) {
	la, err := NewDebit(amount)
	if err != nil {
		return JournalEntryLine{}, err
	}
	return newLine(organizationID, accountCode, la, description)
}

// NewCreditLine creates a credit line against the given account
func NewCreditLine(organizationID uuid.UUID, accountCode string, amount valueobject.Money, description string) (JournalEntryLine, error) {
	la, err := NewCredit(amount)
	if err != nil {
		return JournalEntryLine{}, err
	}
	return newLine(organizationID, accountCode, la, description)
}

func newLine(organizationID uuid.UUID, accountCode string, amount LineAmount, description string) (JournalEntryLine, error) {
	if accountCode == "" {
		return JournalEntryLine{}, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code is required on a journal line")
	}
	return JournalEntryLine{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		AccountCode:    accountCode,
		Amount:         amount,
		Description:    description,
		CreatedAt:      time.Now(),
	}, nil
}

// JournalEntry is an atomic, balanced accounting transaction. Entries are
// immutable once stored; corrections are recorded as new reversing entries
// referencing the original via DocumentRef. There is deliberately no update
// operation anywhere in this package.
type JournalEntry struct {
	shared.BaseEntity
	OrganizationID uuid.UUID          `json:"organization_id"`
	BuildingID     *uuid.UUID         `json:"building_id,omitempty"`
	EntryDate      time.Time          `json:"entry_date"`
	Description    string             `json:"description,omitempty"`
	DocumentRef    string             `json:"document_ref,omitempty"`
	JournalType    *JournalType       `json:"journal_type,omitempty"`
	ExpenseID      *uuid.UUID         `json:"expense_id,omitempty"`
	ContributionID *uuid.UUID         `json:"contribution_id,omitempty"`
	Lines          []JournalEntryLine `json:"lines"`
	CreatedBy      *uuid.UUID         `json:"created_by,omitempty"`
}

// NewJournalEntry creates a journal entry after validating structure and
// balance. Line order is preserved as given but carries no semantics.
func NewJournalEntry(
	organizationID uuid.UUID,
	buildingID *uuid.UUID,
	entryDate time.Time,
	description string,
	documentRef string,
	journalType *JournalType,
	expenseID *uuid.UUID,
	contributionID *uuid.UUID,
	lines []JournalEntryLine,
	createdBy *uuid.UUID,
) (*JournalEntry, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if journalType != nil && !journalType.IsValid() {
		return nil, shared.NewDomainError("INVALID_JOURNAL_TYPE",
			fmt.Sprintf("Invalid journal type %q: must be one of ACH, VEN, FIN, ODS", *journalType))
	}

	entry := &JournalEntry{
		BaseEntity:     shared.NewBaseEntity(),
		OrganizationID: organizationID,
		BuildingID:     buildingID,
		EntryDate:      entryDate,
		Description:    description,
		DocumentRef:    documentRef,
		JournalType:    journalType,
		ExpenseID:      expenseID,
		ContributionID: contributionID,
		CreatedBy:      createdBy,
	}

	entry.Lines = make([]JournalEntryLine, len(lines))
	for i, line := range lines {
		line.JournalEntryID = entry.ID
		line.OrganizationID = organizationID
		entry.Lines[i] = line
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// TotalDebits sums the debit side of all lines
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Amount.Debit())
	}
	return total
}

// TotalCredits sums the credit side of all lines
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Amount.Credit())
	}
	return total
}

// IsBalanced reports whether debits equal credits within BalanceTolerance
func (e *JournalEntry) IsBalanced() bool {
	diff := e.TotalDebits().Sub(e.TotalCredits()).Abs()
	return diff.LessThanOrEqual(BalanceTolerance)
}

// Validate checks the structural and balance invariants required before an
// entry may be persisted. A zero-line entry trivially balances and a
// single-line one cannot, so at least two lines are required outright.
func (e *JournalEntry) Validate() error {
	if len(e.Lines) < 2 {
		return shared.NewDomainError("TOO_FEW_LINES",
			fmt.Sprintf("Journal entry requires at least 2 lines, got %d", len(e.Lines)))
	}
	if !e.IsBalanced() {
		return NewUnbalancedError(e.TotalDebits(), e.TotalCredits())
	}
	return nil
}

// NewUnbalancedError builds the balance validation error, carrying both
// computed totals for diagnosability.
func NewUnbalancedError(debits, credits decimal.Decimal) *shared.DomainError {
	return shared.NewDomainError("UNBALANCED_ENTRY",
		fmt.Sprintf("unbalanced: debits=%s credits=%s", debits.StringFixed(2), credits.StringFixed(2)))
}
