package ledger

import (
	"github.com/google/uuid"
	"github.com/koprogo/ledger/internal/domain/shared"
)

// AccountType classifies an account following the Belgian PCMN
// (Plan Comptable Minimum Normalisé)
type AccountType string

const (
	AccountTypeAsset      AccountType = "ASSET"       // Classes 2-5: buildings, receivables, bank
	AccountTypeLiability  AccountType = "LIABILITY"   // Class 1: capital, reserves, debts
	AccountTypeExpense    AccountType = "EXPENSE"     // Class 6: purchases, services, salaries
	AccountTypeRevenue    AccountType = "REVENUE"     // Class 7: fees, financial income
	AccountTypeOffBalance AccountType = "OFF_BALANCE" // Class 9: memorandum accounts
)

// IsValid checks if the type is a valid AccountType
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeExpense,
		AccountTypeRevenue, AccountTypeOffBalance:
		return true
	}
	return false
}

// String returns the string representation
func (t AccountType) String() string {
	return string(t)
}

// IsDebitNormal returns true when the account's balance is conventionally
// positive on the debit side (assets and expenses). Liability and revenue
// accounts are credit-normal. This field is the single source of truth for
// balance signs; the code prefix is only a numbering convention.
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// OnBalanceSheet returns true if the type appears on the balance sheet
func (t AccountType) OnBalanceSheet() bool {
	return t == AccountTypeAsset || t == AccountTypeLiability
}

// OnIncomeStatement returns true if the type appears on the income statement
func (t AccountType) OnIncomeStatement() bool {
	return t == AccountTypeExpense || t == AccountTypeRevenue
}

// AccountTypeFromCode infers the account type from the leading digit of a
// PCMN code. It is a convenience for callers creating accounts without an
// explicit classification and is never consulted by balance calculations.
func AccountTypeFromCode(code string) AccountType {
	if code == "" {
		return AccountTypeOffBalance
	}
	switch code[0] {
	case '1':
		return AccountTypeLiability
	case '2', '3', '4', '5':
		return AccountTypeAsset
	case '6', '8':
		return AccountTypeExpense
	case '7':
		return AccountTypeRevenue
	default:
		return AccountTypeOffBalance
	}
}

// Account is a node in an organization's hierarchical chart of accounts.
// Codes follow the Belgian PCMN numbering convention: "604001" is a child
// of "604", itself a child of "60". The code is unique per organization.
type Account struct {
	shared.BaseEntity
	Code           string      `json:"code"`
	Label          string      `json:"label"`
	ParentCode     *string     `json:"parent_code,omitempty"`
	Type           AccountType `json:"account_type"`
	DirectUse      bool        `json:"direct_use"` // false = summary/grouping node
	OrganizationID uuid.UUID   `json:"organization_id"`
}

const (
	maxAccountCodeLength  = 40
	maxAccountLabelLength = 255
)

// NewAccount creates a new account with validation
func NewAccount(
	organizationID uuid.UUID,
	code string,
	label string,
	parentCode *string,
	accountType AccountType,
	directUse bool,
) (*Account, error) {
	if err := validateAccountCode(code); err != nil {
		return nil, err
	}
	if err := validateAccountLabel(label); err != nil {
		return nil, err
	}
	if parentCode != nil && *parentCode == code {
		return nil, shared.NewDomainError("INVALID_PARENT_CODE", "Account cannot be its own parent")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}

	return &Account{
		BaseEntity:     shared.NewBaseEntity(),
		Code:           code,
		Label:          label,
		ParentCode:     parentCode,
		Type:           accountType,
		DirectUse:      directUse,
		OrganizationID: organizationID,
	}, nil
}

// AccountPatch describes a partial account update. Nil fields keep the
// current value; ClearParent detaches the account from its parent.
type AccountPatch struct {
	Label       *string
	ParentCode  *string
	ClearParent bool
	Type        *AccountType
	DirectUse   *bool
}

// Apply updates the account in place after validating the patch
func (a *Account) Apply(patch AccountPatch) error {
	if patch.Label != nil {
		if err := validateAccountLabel(*patch.Label); err != nil {
			return err
		}
	}
	if patch.ParentCode != nil && *patch.ParentCode == a.Code {
		return shared.NewDomainError("INVALID_PARENT_CODE", "Account cannot be its own parent")
	}
	if patch.Type != nil && !patch.Type.IsValid() {
		return shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}

	if patch.Label != nil {
		a.Label = *patch.Label
	}
	if patch.ClearParent {
		a.ParentCode = nil
	} else if patch.ParentCode != nil {
		a.ParentCode = patch.ParentCode
	}
	if patch.Type != nil {
		a.Type = *patch.Type
	}
	if patch.DirectUse != nil {
		a.DirectUse = *patch.DirectUse
	}
	a.Touch()
	return nil
}

// Class returns the PCMN class digit of the account code, e.g. "6" for "604001"
func (a *Account) Class() string {
	if a.Code == "" {
		return ""
	}
	return a.Code[0:1]
}

// IsRoot returns true if this is a top-level account (no parent)
func (a *Account) IsRoot() bool {
	return a.ParentCode == nil
}

func validateAccountCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if len(code) > maxAccountCodeLength {
		return shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot exceed 40 characters")
	}
	return nil
}

func validateAccountLabel(label string) error {
	if label == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_LABEL", "Account label cannot be empty")
	}
	if len(label) > maxAccountLabelLength {
		return shared.NewDomainError("INVALID_ACCOUNT_LABEL", "Account label cannot exceed 255 characters")
	}
	return nil
}
