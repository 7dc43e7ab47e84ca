package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/koprogo/ledger/internal/domain/ledger"
	"github.com/koprogo/ledger/internal/domain/shared"
)

// AccountService handles chart of accounts operations
type AccountService struct {
	accountRepo ledger.AccountRepository
	entryRepo   ledger.JournalEntryRepository
	logger      *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo ledger.AccountRepository,
	entryRepo ledger.JournalEntryRepository,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		logger:      logger,
	}
}

// CreateAccountInput contains input for creating an account.
// When Type is nil the classification is inferred from the code's leading
// digit following the Belgian PCMN class convention.
type CreateAccountInput struct {
	OrganizationID uuid.UUID
	Code           string
	Label          string
	ParentCode     *string
	Type           *ledger.AccountType
	DirectUse      *bool
}

// CreateAccount creates a single account in the organization's chart
func (s *AccountService) CreateAccount(ctx context.Context, input CreateAccountInput) (*ledger.Account, error) {
	exists, err := s.accountRepo.ExistsByCode(ctx, input.OrganizationID, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "An account with this code already exists")
	}

	if input.ParentCode != nil {
		parentExists, err := s.accountRepo.ExistsByCode(ctx, input.OrganizationID, *input.ParentCode)
		if err != nil {
			return nil, err
		}
		if !parentExists {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent account does not exist")
		}
	}

	accountType := ledger.AccountTypeFromCode(input.Code)
	if input.Type != nil {
		accountType = *input.Type
	}
	directUse := true
	if input.DirectUse != nil {
		directUse = *input.DirectUse
	}

	account, err := ledger.NewAccount(input.OrganizationID, input.Code, input.Label, input.ParentCode, accountType, directUse)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("DUPLICATE_CODE", "An account with this code already exists")
		}
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("organization_id", input.OrganizationID.String()),
		zap.String("code", account.Code),
		zap.String("type", account.Type.String()))

	return account, nil
}

// UpdateAccountInput contains input for updating an account
type UpdateAccountInput struct {
	ID          uuid.UUID
	Label       *string
	ParentCode  *string
	ClearParent bool
	Type        *ledger.AccountType
	DirectUse   *bool
}

// UpdateAccount applies a partial update to an existing account
func (s *AccountService) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*ledger.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.ParentCode != nil {
		parentExists, err := s.accountRepo.ExistsByCode(ctx, account.OrganizationID, *input.ParentCode)
		if err != nil {
			return nil, err
		}
		if !parentExists {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent account does not exist")
		}
	}

	if err := account.Apply(ledger.AccountPatch{
		Label:       input.Label,
		ParentCode:  input.ParentCode,
		ClearParent: input.ClearParent,
		Type:        input.Type,
		DirectUse:   input.DirectUse,
	}); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account updated",
		zap.String("organization_id", account.OrganizationID.String()),
		zap.String("code", account.Code))

	return account, nil
}

// DeleteAccount removes an account that has no children and no journal lines
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	children, err := s.accountRepo.FindByParentCode(ctx, account.OrganizationID, account.Code)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("ACCOUNT_HAS_CHILDREN", "Account still has child accounts")
	}

	lineCount, err := s.entryRepo.CountLinesByAccount(ctx, account.OrganizationID, account.Code)
	if err != nil {
		return err
	}
	if lineCount > 0 {
		return shared.NewDomainError("ACCOUNT_IN_USE", "Account is referenced by journal entry lines")
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("account deleted",
		zap.String("organization_id", account.OrganizationID.String()),
		zap.String("code", account.Code))
	return nil
}

// GetAccount retrieves an account by ID
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	return s.accountRepo.FindByID(ctx, id)
}

// GetAccountByCode retrieves an account by code within an organization
func (s *AccountService) GetAccountByCode(ctx context.Context, organizationID uuid.UUID, code string) (*ledger.Account, error) {
	return s.accountRepo.FindByCode(ctx, organizationID, code)
}

// ListAccounts returns all accounts of an organization ordered by code
func (s *AccountService) ListAccounts(ctx context.Context, organizationID uuid.UUID) ([]ledger.Account, error) {
	return s.accountRepo.FindByOrganization(ctx, organizationID)
}

// ListAccountsByType returns accounts of a given classification
func (s *AccountService) ListAccountsByType(ctx context.Context, organizationID uuid.UUID, accountType ledger.AccountType) ([]ledger.Account, error) {
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}
	return s.accountRepo.FindByType(ctx, organizationID, accountType)
}

// ListChildren returns the direct children of an account code
func (s *AccountService) ListChildren(ctx context.Context, organizationID uuid.UUID, parentCode string) ([]ledger.Account, error) {
	return s.accountRepo.FindByParentCode(ctx, organizationID, parentCode)
}

// ListDirectUseAccounts returns the accounts that may receive journal lines
func (s *AccountService) ListDirectUseAccounts(ctx context.Context, organizationID uuid.UUID) ([]ledger.Account, error) {
	return s.accountRepo.FindDirectUse(ctx, organizationID)
}

// SearchAccounts matches account codes against a SQL LIKE pattern
func (s *AccountService) SearchAccounts(ctx context.Context, organizationID uuid.UUID, pattern string) ([]ledger.Account, error) {
	return s.accountRepo.SearchByCodePattern(ctx, organizationID, pattern)
}
