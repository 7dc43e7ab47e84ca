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

// AccountBalance is the signed balance of one account. The sign follows the
// account's normal balance side: debit-normal accounts (assets, expenses)
// carry debits minus credits, credit-normal accounts (liabilities, revenue)
// carry credits minus debits. A positive balance therefore always means
// "the expected side".
type AccountBalance struct {
	AccountCode string             `json:"account_code"`
	Label       string             `json:"label"`
	AccountType ledger.AccountType `json:"account_type"`
	TotalDebit  decimal.Decimal    `json:"total_debit"`
	TotalCredit decimal.Decimal    `json:"total_credit"`
	Balance     decimal.Decimal    `json:"balance"`
}

// TrialBalance is the organization-wide debit/credit equality check
type TrialBalance struct {
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	Balanced     bool            `json:"balanced"`
}

// BalanceService computes account balances from stored journal lines
type BalanceService struct {
	accountRepo ledger.AccountRepository
	entryRepo   ledger.JournalEntryRepository
	logger      *zap.Logger
}

// NewBalanceService creates a new balance service
func NewBalanceService(
	accountRepo ledger.AccountRepository,
	entryRepo ledger.JournalEntryRepository,
	logger *zap.Logger,
) *BalanceService {
	return &BalanceService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		logger:      logger,
	}
}

// CalculateAccountBalances returns the balance of every account that has
// at least one journal line, ordered by account code
func (s *BalanceService) CalculateAccountBalances(ctx context.Context, organizationID uuid.UUID) ([]AccountBalance, error) {
	totals, err := s.entryRepo.AccountTotals(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.applyNormalSide(ctx, organizationID, totals)
}

// CalculateAccountBalancesForPeriod restricts the balances to entries dated
// within [start, end] inclusive
func (s *BalanceService) CalculateAccountBalancesForPeriod(ctx context.Context, organizationID uuid.UUID, start, end time.Time) ([]AccountBalance, error) {
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot precede start date")
	}
	totals, err := s.entryRepo.AccountTotalsForPeriod(ctx, organizationID, start, end)
	if err != nil {
		return nil, err
	}
	return s.applyNormalSide(ctx, organizationID, totals)
}

// CalculateAccountBalancesForBuilding restricts the balances to entries
// linked to a building; entries without any building association count as
// organization-wide overhead and are included
func (s *BalanceService) CalculateAccountBalancesForBuilding(ctx context.Context, organizationID, buildingID uuid.UUID) ([]AccountBalance, error) {
	totals, err := s.entryRepo.AccountTotalsForBuilding(ctx, organizationID, buildingID)
	if err != nil {
		return nil, err
	}
	return s.applyNormalSide(ctx, organizationID, totals)
}

// GetAccountBalance returns the balance of a single account by code
func (s *BalanceService) GetAccountBalance(ctx context.Context, organizationID uuid.UUID, accountCode string) (*AccountBalance, error) {
	account, err := s.accountRepo.FindByCode(ctx, organizationID, accountCode)
	if err != nil {
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByAccount(ctx, organizationID, accountCode)
	if err != nil {
		return nil, err
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Amount.Debit())
		totalCredit = totalCredit.Add(line.Amount.Credit())
	}

	balance := accountBalanceFor(account, totalDebit, totalCredit)
	return &balance, nil
}

// VerifyTrialBalance checks that the organization's total debits equal its
// total credits within the balance tolerance
func (s *BalanceService) VerifyTrialBalance(ctx context.Context, organizationID uuid.UUID) (*TrialBalance, error) {
	totals, err := s.entryRepo.AccountTotals(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, row := range totals {
		totalDebits = totalDebits.Add(row.TotalDebit)
		totalCredits = totalCredits.Add(row.TotalCredit)
	}

	diff := totalDebits.Sub(totalCredits).Abs()
	balanced := diff.LessThanOrEqual(ledger.BalanceTolerance)
	if !balanced {
		s.logger.Warn("trial balance mismatch",
			zap.String("organization_id", organizationID.String()),
			zap.String("total_debits", totalDebits.StringFixed(2)),
			zap.String("total_credits", totalCredits.StringFixed(2)))
	}

	return &TrialBalance{
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Balanced:     balanced,
	}, nil
}

// applyNormalSide joins aggregation rows with the chart of accounts and
// signs each balance by the account's stored type. Rows whose code has no
// account, and off-balance accounts, are left out.
func (s *BalanceService) applyNormalSide(ctx context.Context, organizationID uuid.UUID, totals []ledger.AccountTotals) ([]AccountBalance, error) {
	accounts, err := s.accountRepo.FindByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*ledger.Account, len(accounts))
	for i := range accounts {
		byCode[accounts[i].Code] = &accounts[i]
	}

	balances := make([]AccountBalance, 0, len(totals))
	for _, row := range totals {
		account, ok := byCode[row.AccountCode]
		if !ok {
			s.logger.Warn("journal lines reference unknown account",
				zap.String("organization_id", organizationID.String()),
				zap.String("account_code", row.AccountCode))
			continue
		}
		if account.Type == ledger.AccountTypeOffBalance {
			continue
		}
		balances = append(balances, accountBalanceFor(account, row.TotalDebit, row.TotalCredit))
	}
	return balances, nil
}

func accountBalanceFor(account *ledger.Account, totalDebit, totalCredit decimal.Decimal) AccountBalance {
	balance := totalCredit.Sub(totalDebit)
	if account.Type.IsDebitNormal() {
		balance = totalDebit.Sub(totalCredit)
	}
	return AccountBalance{
		AccountCode: account.Code,
		Label:       account.Label,
		AccountType: account.Type,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Balance:     balance,
	}
}
