package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/koprogo/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalType_IsValid(t *testing.T) {
	tests := []struct {
		journalType JournalType
		expected    bool
	}{
		{JournalTypePurchases, true},
		{JournalTypeSales, true},
		{JournalTypeFinancial, true},
		{JournalTypeMiscellaneous, true},
		{JournalType("XYZ"), false},
		{JournalType(""), false},
	}

	for _, tc := range tests {
		t.Run(string(tc.journalType), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.journalType.IsValid())
		})
	}
}

func TestLineAmount(t *testing.T) {
	t.Run("debit side", func(t *testing.T) {
		la, err := NewDebit(valueobject.NewMoneyEURFromFloat(100.00))
		require.NoError(t, err)
		assert.Equal(t, SideDebit, la.Side())
		assert.True(t, la.Debit().Equal(decimal.RequireFromString("100")))
		assert.True(t, la.Credit().IsZero())
	})

	t.Run("credit side", func(t *testing.T) {
		la, err := NewCredit(valueobject.NewMoneyEURFromFloat(59.90))
		require.NoError(t, err)
		assert.Equal(t, SideCredit, la.Side())
		assert.True(t, la.Credit().Equal(decimal.RequireFromString("59.9")))
		assert.True(t, la.Debit().IsZero())
	})

	t.Run("rejects zero debit", func(t *testing.T) {
		_, err := NewDebit(valueobject.ZeroEUR())
		assertDomainCode(t, err, "INVALID_LINE_AMOUNT")
	})

	t.Run("rejects negative credit", func(t *testing.T) {
		_, err := NewCredit(valueobject.NewMoneyEURFromFloat(-5))
		assertDomainCode(t, err, "INVALID_LINE_AMOUNT")
	})
}

func TestLineAmountFromTotals(t *testing.T) {
	t.Run("rebuilds debit", func(t *testing.T) {
		la, err := LineAmountFromTotals(decimal.RequireFromString("100"), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, SideDebit, la.Side())
	})

	t.Run("rebuilds credit", func(t *testing.T) {
		la, err := LineAmountFromTotals(decimal.Zero, decimal.RequireFromString("100"))
		require.NoError(t, err)
		assert.Equal(t, SideCredit, la.Side())
	})

	t.Run("rejects both sides set", func(t *testing.T) {
		_, err := LineAmountFromTotals(decimal.RequireFromString("10"), decimal.RequireFromString("10"))
		assertDomainCode(t, err, "INVALID_LINE_AMOUNT")
	})

	t.Run("rejects both sides zero", func(t *testing.T) {
		_, err := LineAmountFromTotals(decimal.Zero, decimal.Zero)
		assertDomainCode(t, err, "INVALID_LINE_AMOUNT")
	})
}

func debitLine(t *testing.T, orgID uuid.UUID, code string, amount float64) JournalEntryLine {
	t.Helper()
	line, err := NewDebitLine(orgID, code, valueobject.NewMoneyEURFromFloat(amount), "")
	require.NoError(t, err)
	return line
}

func creditLine(t *testing.T, orgID uuid.UUID, code string, amount float64) JournalEntryLine {
	t.Helper()
	line, err := NewCreditLine(orgID, code, valueobject.NewMoneyEURFromFloat(amount), "")
	require.NoError(t, err)
	return line
}

func TestNewJournalEntry(t *testing.T) {
	orgID := uuid.New()
	entryDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates balanced entry", func(t *testing.T) {
		jt := JournalTypePurchases
		entry, err := NewJournalEntry(orgID, nil, entryDate, "Facture eau janvier", "INV-2025-001", &jt, nil, nil,
			[]JournalEntryLine{
				debitLine(t, orgID, "604002", 100.00),
				creditLine(t, orgID, "440", 100.00),
			}, nil)
		require.NoError(t, err)

		assert.Len(t, entry.Lines, 2)
		for _, line := range entry.Lines {
			assert.Equal(t, entry.ID, line.JournalEntryID)
			assert.Equal(t, orgID, line.OrganizationID)
		}
		assert.True(t, entry.IsBalanced())
		assert.True(t, entry.TotalDebits().Equal(decimal.RequireFromString("100")))
		assert.True(t, entry.TotalCredits().Equal(decimal.RequireFromString("100")))
	})

	t.Run("accepts multi-line VAT entry", func(t *testing.T) {
		entry, err := NewJournalEntry(orgID, nil, entryDate, "Facture avec TVA", "", nil, nil, nil,
			[]JournalEntryLine{
				debitLine(t, orgID, "604001", 1000.00),
				debitLine(t, orgID, "411", 210.00),
				creditLine(t, orgID, "440", 1210.00),
			}, nil)
		require.NoError(t, err)
		assert.True(t, entry.IsBalanced())
	})

	t.Run("accepts difference within tolerance", func(t *testing.T) {
		_, err := NewJournalEntry(orgID, nil, entryDate, "", "", nil, nil, nil,
			[]JournalEntryLine{
				debitLine(t, orgID, "604001", 100.00),
				creditLine(t, orgID, "440", 99.99),
			}, nil)
		require.NoError(t, err)
	})

	t.Run("rejects unbalanced entry with both totals in message", func(t *testing.T) {
		_, err := NewJournalEntry(orgID, nil, entryDate, "", "", nil, nil, nil,
			[]JournalEntryLine{
				debitLine(t, orgID, "604001", 120.00),
				creditLine(t, orgID, "440", 100.00),
			}, nil)
		assertDomainCode(t, err, "UNBALANCED_ENTRY")
		assert.Contains(t, err.Error(), "debits=120.00")
		assert.Contains(t, err.Error(), "credits=100.00")
	})

	t.Run("rejects zero lines", func(t *testing.T) {
		_, err := NewJournalEntry(orgID, nil, entryDate, "", "", nil, nil, nil, nil, nil)
		assertDomainCode(t, err, "TOO_FEW_LINES")
	})

	t.Run("rejects single line", func(t *testing.T) {
		_, err := NewJournalEntry(orgID, nil, entryDate, "", "", nil, nil, nil,
			[]JournalEntryLine{debitLine(t, orgID, "604001", 100.00)}, nil)
		assertDomainCode(t, err, "TOO_FEW_LINES")
	})

	t.Run("rejects invalid journal type", func(t *testing.T) {
		jt := JournalType("XYZ")
		_, err := NewJournalEntry(orgID, nil, entryDate, "", "", &jt, nil, nil,
			[]JournalEntryLine{
				debitLine(t, orgID, "604001", 100.00),
				creditLine(t, orgID, "440", 100.00),
			}, nil)
		assertDomainCode(t, err, "INVALID_JOURNAL_TYPE")
	})

	t.Run("rejects nil organization", func(t *testing.T) {
		_, err := NewJournalEntry(uuid.Nil, nil, entryDate, "", "", nil, nil, nil,
			[]JournalEntryLine{
				debitLine(t, orgID, "604001", 100.00),
				creditLine(t, orgID, "440", 100.00),
			}, nil)
		assertDomainCode(t, err, "INVALID_ORGANIZATION")
	})
}

func TestNewLine_RequiresAccountCode(t *testing.T) {
	_, err := NewDebitLine(uuid.New(), "", valueobject.NewMoneyEURFromFloat(10), "")
	assertDomainCode(t, err, "INVALID_ACCOUNT_CODE")
}
