package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/koprogo/ledger/internal/domain/ledger"
	"github.com/koprogo/ledger/internal/domain/shared"
)

// ChartSeederService installs the standard Belgian PCMN chart of accounts
// into an organization. Seeding is all-or-nothing: either every account of
// the chart is committed or none is.
type ChartSeederService struct {
	accountRepo ledger.AccountRepository
	logger      *zap.Logger
}

// NewChartSeederService creates a new chart seeder service
func NewChartSeederService(accountRepo ledger.AccountRepository, logger *zap.Logger) *ChartSeederService {
	return &ChartSeederService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// SeedChart seeds the Belgian PCMN chart for an organization and returns
// the number of accounts created. An organization that already has any
// account is refused; re-running the seeder is not a merge.
func (s *ChartSeederService) SeedChart(ctx context.Context, organizationID uuid.UUID) (int, error) {
	if organizationID == uuid.Nil {
		return 0, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}

	count, err := s.accountRepo.CountByOrganization(ctx, organizationID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, shared.NewDomainError("ALREADY_SEEDED", "Organization already has a chart of accounts")
	}

	seeds := ledger.BelgianPCMN()
	accounts := make([]*ledger.Account, 0, len(seeds))
	for _, seed := range seeds {
		var parentCode *string
		if seed.ParentCode != "" {
			pc := seed.ParentCode
			parentCode = &pc
		}
		account, err := ledger.NewAccount(organizationID, seed.Code, seed.Label, parentCode, seed.Type, seed.DirectUse)
		if err != nil {
			return 0, err
		}
		accounts = append(accounts, account)
	}

	if err := s.accountRepo.CreateBatch(ctx, accounts); err != nil {
		// Unique (organization_id, code) backstop: a concurrent seeding
		// run lost the race.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return 0, shared.NewDomainError("ALREADY_SEEDED", "Organization already has a chart of accounts")
		}
		return 0, err
	}

	s.logger.Info("chart of accounts seeded",
		zap.String("organization_id", organizationID.String()),
		zap.Int("accounts", len(accounts)))

	return len(accounts), nil
}
