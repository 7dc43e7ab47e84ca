package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/koprogo/ledger/internal/domain/ledger"
	"github.com/koprogo/ledger/internal/domain/shared"
)

// AccountModel is the GORM model for chart of accounts entries
type AccountModel struct {
	BaseModel
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_org_code;index"`
	Code           string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_accounts_org_code"`
	Label          string    `gorm:"type:varchar(255);not null"`
	ParentCode     *string   `gorm:"type:varchar(40);index"`
	AccountType    string    `gorm:"type:varchar(20);not null;index"`
	DirectUse      bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseEntity:     m.BaseModel.ToDomain(),
		OrganizationID: m.OrganizationID,
		Code:           m.Code,
		Label:          m.Label,
		ParentCode:     m.ParentCode,
		Type:           ledger.AccountType(m.AccountType),
		DirectUse:      m.DirectUse,
	}
}

// AccountModelFromDomain converts a domain Account to its persistence model
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{
		OrganizationID: a.OrganizationID,
		Code:           a.Code,
		Label:          a.Label,
		ParentCode:     a.ParentCode,
		AccountType:    a.Type.String(),
		DirectUse:      a.DirectUse,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// JournalEntryModel is the GORM model for journal entry headers
type JournalEntryModel struct {
	BaseModel
	OrganizationID uuid.UUID               `gorm:"type:uuid;not null;index"`
	BuildingID     *uuid.UUID              `gorm:"type:uuid;index"`
	EntryDate      time.Time               `gorm:"not null;index"`
	Description    string                  `gorm:"type:text"`
	DocumentRef    string                  `gorm:"type:varchar(255)"`
	JournalType    *string                 `gorm:"type:varchar(3);index"`
	ExpenseID      *uuid.UUID              `gorm:"type:uuid;index"`
	ContributionID *uuid.UUID              `gorm:"type:uuid;index"`
	CreatedBy      *uuid.UUID              `gorm:"type:uuid"`
	Lines          []JournalEntryLineModel `gorm:"foreignKey:JournalEntryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// ToDomain converts the persistence model to a domain JournalEntry.
// Lines are rebuilt from their debit/credit columns; a row carrying both
// or neither indicates corrupt data and surfaces as an error.
func (m *JournalEntryModel) ToDomain() (*ledger.JournalEntry, error) {
	lines := make([]ledger.JournalEntryLine, 0, len(m.Lines))
	for i := range m.Lines {
		line, err := m.Lines[i].ToDomain()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	var journalType *ledger.JournalType
	if m.JournalType != nil {
		jt := ledger.JournalType(*m.JournalType)
		journalType = &jt
	}

	return &ledger.JournalEntry{
		BaseEntity:     m.BaseModel.ToDomain(),
		OrganizationID: m.OrganizationID,
		BuildingID:     m.BuildingID,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		DocumentRef:    m.DocumentRef,
		JournalType:    journalType,
		ExpenseID:      m.ExpenseID,
		ContributionID: m.ContributionID,
		Lines:          lines,
		CreatedBy:      m.CreatedBy,
	}, nil
}

// JournalEntryModelFromDomain converts a domain JournalEntry to its persistence model
func JournalEntryModelFromDomain(e *ledger.JournalEntry) *JournalEntryModel {
	var journalType *string
	if e.JournalType != nil {
		jt := e.JournalType.String()
		journalType = &jt
	}

	m := &JournalEntryModel{
		OrganizationID: e.OrganizationID,
		BuildingID:     e.BuildingID,
		EntryDate:      e.EntryDate,
		Description:    e.Description,
		DocumentRef:    e.DocumentRef,
		JournalType:    journalType,
		ExpenseID:      e.ExpenseID,
		ContributionID: e.ContributionID,
		CreatedBy:      e.CreatedBy,
	}
	m.FromDomainBaseEntity(e.BaseEntity)

	m.Lines = make([]JournalEntryLineModel, 0, len(e.Lines))
	for i := range e.Lines {
		m.Lines = append(m.Lines, *JournalEntryLineModelFromDomain(&e.Lines[i]))
	}
	return m
}

// JournalEntryLineModel is the GORM model for journal entry lines.
// The single-sided domain amount is stored as a debit and a credit column,
// exactly one of which is positive.
type JournalEntryLineModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountCode    string          `gorm:"type:varchar(40);not null;index"`
	Debit          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Credit         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description    string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JournalEntryLineModel) TableName() string {
	return "journal_entry_lines"
}

// ToDomain converts the persistence model to a domain JournalEntryLine
func (m *JournalEntryLineModel) ToDomain() (ledger.JournalEntryLine, error) {
	amount, err := ledger.LineAmountFromTotals(m.Debit, m.Credit)
	if err != nil {
		return ledger.JournalEntryLine{}, shared.NewPersistenceError("load journal line", err)
	}
	return ledger.JournalEntryLine{
		ID:             m.ID,
		JournalEntryID: m.JournalEntryID,
		OrganizationID: m.OrganizationID,
		AccountCode:    m.AccountCode,
		Amount:         amount,
		Description:    m.Description,
		CreatedAt:      m.CreatedAt,
	}, nil
}

// JournalEntryLineModelFromDomain converts a domain JournalEntryLine to its persistence model
func JournalEntryLineModelFromDomain(l *ledger.JournalEntryLine) *JournalEntryLineModel {
	return &JournalEntryLineModel{
		ID:             l.ID,
		JournalEntryID: l.JournalEntryID,
		OrganizationID: l.OrganizationID,
		AccountCode:    l.AccountCode,
		Debit:          l.Amount.Debit(),
		Credit:         l.Amount.Credit(),
		Description:    l.Description,
		CreatedAt:      l.CreatedAt,
	}
}
