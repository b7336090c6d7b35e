package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/pensign/cardroom/coordinator/config"
	"github.com/pensign/cardroom/coordinator/modules/logger"
	"github.com/pensign/cardroom/coordinator/modules/notifier"
	"github.com/pensign/cardroom/coordinator/repositories/collection"
	"github.com/pensign/cardroom/coordinator/types"
)

// AfterAllSignedHook runs once every signer of a collection has signed,
// before notifications and delivery. The platform uses it for an extra
// signing pass (a trusted-party co-signature) over the finished
// documents.
type AfterAllSignedHook func(ctx context.Context, coll *types.DocumentCollection) error

// CompletionService decides, after an individual signer finished,
// whether to notify, advance to the next signer, or finalize and
// distribute the signed document. Shared by all signing transports, not
// only the smart-card flow.
type CompletionService interface {
	SignerFinished(ctx context.Context, collectionID, signerToken string) (string, error)
}

// CompletionFlow is one signing-mode variant of the completion logic.
// Complete returns the download link of the finished document, or an
// empty string while the workflow is still in progress.
type CompletionFlow interface {
	Mode() types.SigningMode
	Complete(ctx context.Context, coll *types.DocumentCollection, signerIndex int) (string, error)
}

var _ CompletionService = (*BaseCompletionService)(nil)

type BaseCompletionService struct {
	repo   collection.CollectionRepo
	logger logger.Logger
	flows  map[types.SigningMode]CompletionFlow
}

// NewCompletionService builds the mode dispatch table. Registering two
// flows for one mode is a programming error and panics.
func NewCompletionService(repo collection.CollectionRepo, log logger.Logger, flows ...CompletionFlow) *BaseCompletionService {
	if len(flows) == 0 {
		panic("cannot initialize completion service with no flows")
	}

	s := &BaseCompletionService{
		repo:   repo,
		logger: log,
		flows:  make(map[types.SigningMode]CompletionFlow),
	}

	for _, flow := range flows {
		if flow == nil {
			panic("flow not initialized, got nil")
		}
		if _, exists := s.flows[flow.Mode()]; exists {
			panic(fmt.Sprintf("duplicate flow for mode \"%s\"", flow.Mode()))
		}
		s.flows[flow.Mode()] = flow
	}

	return s
}

func (s *BaseCompletionService) SignerFinished(ctx context.Context, collectionID, signerToken string) (string, error) {
	coll, err := s.repo.GetCollection(collectionID)
	if err != nil {
		return "", fmt.Errorf("failed to GetCollection %s: %w", collectionID, err)
	}

	signerIndex := coll.FindSignerIndex(signerToken)
	if signerIndex < 0 {
		return "", fmt.Errorf("signer %s is not part of collection %s", signerToken, collectionID)
	}

	flow, exists := s.flows[coll.Mode]
	if !exists {
		s.logger.Log("no completion flow for mode %s, collection %s left as is", coll.Mode, collectionID)
		return "", nil
	}

	coll.Signers[signerIndex].Status = types.SignerStatusSigned
	coll.Signers[signerIndex].SignedAt = time.Now()

	link, err := flow.Complete(ctx, coll, signerIndex)
	if err != nil {
		return "", fmt.Errorf("failed to Complete %s flow: %w", coll.Mode, err)
	}

	if err := s.repo.SaveCollection(coll); err != nil {
		return "", fmt.Errorf("failed to SaveCollection: %w", err)
	}

	return link, nil
}

// completionDeps is what every flow variant needs.
type completionDeps struct {
	notifier       notifier.Notifier
	workflowConfig *config.WorkflowConfig
	afterAllSigned AfterAllSignedHook
	logger         logger.Logger
}

func newCompletionDeps(n notifier.Notifier, cfg *config.WorkflowConfig, hook AfterAllSignedHook, log logger.Logger) completionDeps {
	return completionDeps{
		notifier:       n,
		workflowConfig: cfg,
		afterAllSigned: hook,
		logger:         log,
	}
}

// finalizeAndDeliver runs the all-signed path: hook, notification,
// delivery to every signer. Returns the last computed download link.
func (d *completionDeps) finalizeAndDeliver(ctx context.Context, coll *types.DocumentCollection, signer *types.Signer) (string, error) {
	if d.afterAllSigned != nil {
		if err := d.afterAllSigned(ctx, coll); err != nil {
			return "", fmt.Errorf("failed to run after-all-signed hook: %w", err)
		}
	}

	if err := d.notifier.SendEmailNotification(ctx, notifier.NotificationAllSigned, coll, signer); err != nil {
		return "", fmt.Errorf("failed to send all-signed notification: %w", err)
	}

	var link string
	for i := range coll.Signers {
		signerLink, err := d.notifier.SendSignedDocument(ctx, coll, &coll.Signers[i])
		if err != nil {
			return "", fmt.Errorf("failed to deliver signed document to %s: %w", coll.Signers[i].Token, err)
		}
		link = signerLink
	}

	return link, nil
}

func (d *completionDeps) notifySignerSigned(ctx context.Context, coll *types.DocumentCollection, signer *types.Signer) error {
	if !d.workflowConfig.NotifyWhileSignerSigned {
		return nil
	}

	if err := d.notifier.SendEmailNotification(ctx, notifier.NotificationSignerSigned, coll, signer); err != nil {
		return fmt.Errorf("failed to send signer-signed notification: %w", err)
	}

	return nil
}
