package services

import (
	"context"
	"sort"
	"strings"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"go.uber.org/zap"
)

type senderResolver struct {
	profileRepo domainRepos.WalletProfileRepository
	logger      *zap.Logger
}

func NewSenderResolver(profileRepo domainRepos.WalletProfileRepository, logger *zap.Logger) domainRepos.SenderResolver {
	return &senderResolver{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Resolve matches fromAddress against both wallet columns of every profile
// and counts distinct users, not rows. One user holding the same address in
// both columns is still a single owner; two different users sharing it is a
// data-integrity emergency and comes back as Ambiguous.
func (r *senderResolver) Resolve(ctx context.Context, fromAddress string) (*entities.Resolution, error) {
	profiles, err := r.profileRepo.FindByAddress(ctx, strings.ToLower(fromAddress))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	userIDs := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		if profile.UserID == "" || seen[profile.UserID] {
			continue
		}
		seen[profile.UserID] = true
		userIDs = append(userIDs, profile.UserID)
	}

	switch len(userIDs) {
	case 0:
		return &entities.Resolution{Status: entities.ResolutionUnknown}, nil
	case 1:
		return &entities.Resolution{
			Status: entities.ResolutionResolved,
			UserID: userIDs[0],
		}, nil
	default:
		sort.Strings(userIDs)
		r.logger.Error("Wallet address registered to multiple users",
			zap.String("address", fromAddress),
			zap.Strings("user_ids", userIDs),
		)
		return &entities.Resolution{
			Status:       entities.ResolutionAmbiguous,
			CandidateIDs: userIDs,
		}, nil
	}
}
