package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"github.com/rosspathan/ipg-staking-monitor/internal/notification"
	"go.uber.org/zap"
)

type ambiguityNotifier struct {
	notificationRepo domainRepos.AdminNotificationRepository
	logger           *zap.Logger
}

func NewAmbiguityNotifier(notificationRepo domainRepos.AdminNotificationRepository, logger *zap.Logger) domainRepos.AmbiguityNotifier {
	return &ambiguityNotifier{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// NotifyAmbiguousDeposit writes exactly one critical notification carrying
// everything an operator needs to disambiguate by hand: amount, tx hash,
// sending address and the full candidate user list. The telegram ping is
// best effort; the stored notification is the record.
func (n *ambiguityNotifier) NotifyAmbiguousDeposit(ctx context.Context, transfer entities.TokenTransfer, candidateIDs []string) error {
	metadata, err := json.Marshal(map[string]interface{}{
		"amount":       transfer.Amount.String(),
		"tx_hash":      transfer.TxHash,
		"from_address": transfer.From,
		"user_ids":     candidateIDs,
	})
	if err != nil {
		return err
	}

	msg := fmt.Sprintf(
		"Deposit of %s (tx %s) from %s is blocked: address is registered to users %s. Disambiguate and re-run manual recovery.",
		transfer.Amount.String(), transfer.TxHash, transfer.From, strings.Join(candidateIDs, ", "),
	)

	err = n.notificationRepo.Create(ctx, &entities.AdminNotification{
		Title:    "Staking deposit blocked: ambiguous wallet",
		Message:  msg,
		Type:     entities.NotificationTypeDepositBlocked,
		Priority: entities.NotificationPriorityCritical,
		Metadata: string(metadata),
	})
	if err != nil {
		return err
	}

	if telErr := notification.SendTelMsg(msg); telErr != nil {
		n.logger.Warn("Failed to send telegram alert for ambiguous deposit",
			zap.String("tx_hash", transfer.TxHash),
			zap.Error(telErr),
		)
	}

	return nil
}
