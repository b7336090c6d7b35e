package workflow

import (
	"context"
	"time"

	"github.com/pensign/cardroom/coordinator/config"
	"github.com/pensign/cardroom/coordinator/modules/logger"
	"github.com/pensign/cardroom/coordinator/modules/notifier"
	"github.com/pensign/cardroom/coordinator/types"
)

// OnlineFlow: signers are independent and unordered. Any signer may
// finish at any time; the collection completes once all have signed.
type OnlineFlow struct {
	completionDeps
}

func NewOnlineFlow(n notifier.Notifier, cfg *config.WorkflowConfig, hook AfterAllSignedHook, log logger.Logger) *OnlineFlow {
	return &OnlineFlow{newCompletionDeps(n, cfg, hook, log)}
}

func (f *OnlineFlow) Mode() types.SigningMode {
	return types.SigningModeOnline
}

func (f *OnlineFlow) Complete(ctx context.Context, coll *types.DocumentCollection, signerIndex int) (string, error) {
	signer := &coll.Signers[signerIndex]

	if err := f.notifySignerSigned(ctx, coll, signer); err != nil {
		return "", err
	}

	if !coll.AllSigned() {
		return "", nil
	}

	return f.finalizeAndDeliver(ctx, coll, signer)
}

// GroupSignFlow currently matches OnlineFlow transition for transition.
// It stays a separate variant so mode-specific behavior can diverge
// without touching the online path.
type GroupSignFlow struct {
	completionDeps
}

func NewGroupSignFlow(n notifier.Notifier, cfg *config.WorkflowConfig, hook AfterAllSignedHook, log logger.Logger) *GroupSignFlow {
	return &GroupSignFlow{newCompletionDeps(n, cfg, hook, log)}
}

func (f *GroupSignFlow) Mode() types.SigningMode {
	return types.SigningModeGroupSign
}

func (f *GroupSignFlow) Complete(ctx context.Context, coll *types.DocumentCollection, signerIndex int) (string, error) {
	signer := &coll.Signers[signerIndex]

	if err := f.notifySignerSigned(ctx, coll, signer); err != nil {
		return "", err
	}

	if !coll.AllSigned() {
		return "", nil
	}

	return f.finalizeAndDeliver(ctx, coll, signer)
}

// OrderedGroupSignFlow: signers sign strictly in list order. Finishing
// as a non-last signer hands the collection to the next one; finishing
// as the last signer completes the collection.
type OrderedGroupSignFlow struct {
	completionDeps
}

func NewOrderedGroupSignFlow(n notifier.Notifier, cfg *config.WorkflowConfig, hook AfterAllSignedHook, log logger.Logger) *OrderedGroupSignFlow {
	return &OrderedGroupSignFlow{newCompletionDeps(n, cfg, hook, log)}
}

func (f *OrderedGroupSignFlow) Mode() types.SigningMode {
	return types.SigningModeOrderedGroupSign
}

func (f *OrderedGroupSignFlow) Complete(ctx context.Context, coll *types.DocumentCollection, signerIndex int) (string, error) {
	signer := &coll.Signers[signerIndex]

	if signerIndex == len(coll.Signers)-1 {
		return f.finalizeAndDeliver(ctx, coll, signer)
	}

	next := &coll.Signers[signerIndex+1]

	// ShouldSendForSigning gates the automatic invitation; with it off
	// the sender dispatches the next link manually.
	if f.workflowConfig.ShouldSendForSigning {
		if err := f.notifier.SendSigningLinkToNextSigner(ctx, coll, next); err != nil {
			return "", err
		}
	}

	now := time.Now()
	if next.SentAt.IsZero() {
		next.SentAt = now
	}
	next.LastSentAt = now

	if err := f.notifySignerSigned(ctx, coll, signer); err != nil {
		return "", err
	}

	return "", nil
}
