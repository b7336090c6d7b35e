package workflow

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pensign/cardroom/coordinator/config"
	"github.com/pensign/cardroom/coordinator/modules/logger"
	"github.com/pensign/cardroom/coordinator/modules/notifier"
	"github.com/pensign/cardroom/coordinator/types"
	"github.com/pensign/cardroom/mocks/notifierMocks"
	"github.com/pensign/cardroom/mocks/repoMocks"
	"github.com/stretchr/testify/require"
)

func testCollection(mode types.SigningMode, tokens ...string) *types.DocumentCollection {
	coll := &types.DocumentCollection{
		ID:          "collection_id",
		Mode:        mode,
		DocumentIDs: []string{"document_id"},
	}
	for _, token := range tokens {
		coll.Signers = append(coll.Signers, types.Signer{
			Token:  token,
			Email:  token + "@example.com",
			Status: types.SignerStatusPending,
		})
	}

	return coll
}

func newCompletionTestService(t *testing.T, cfg *config.WorkflowConfig, hook AfterAllSignedHook) (*BaseCompletionService, *repoMocks.MockCollectionRepo, *notifierMocks.MockNotifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := repoMocks.NewMockCollectionRepo(ctrl)
	ntf := notifierMocks.NewMockNotifier(ctrl)
	log := logger.NewLogger("test")

	svc := NewCompletionService(repo, log,
		NewOnlineFlow(ntf, cfg, hook, log),
		NewGroupSignFlow(ntf, cfg, hook, log),
		NewOrderedGroupSignFlow(ntf, cfg, hook, log),
	)

	return svc, repo, ntf
}

func TestNewCompletionService_Panics(t *testing.T) {
	req := require.New(t)

	log := logger.NewLogger("test")
	cfg := &config.WorkflowConfig{}

	req.Panics(func() {
		NewCompletionService(nil, log)
	})

	req.Panics(func() {
		NewCompletionService(nil, log, NewOnlineFlow(nil, cfg, nil, log), nil)
	})

	req.Panics(func() {
		NewCompletionService(nil, log,
			NewOnlineFlow(nil, cfg, nil, log),
			NewOnlineFlow(nil, cfg, nil, log),
		)
	})
}

func TestCompletionService_OnlineMode(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	cfg := &config.WorkflowConfig{NotifyWhileSignerSigned: true}
	svc, repo, ntf := newCompletionTestService(t, cfg, nil)

	coll := testCollection(types.SigningModeOnline, "signer_1", "signer_2")

	t.Run("test_first_signer_only_notifies", func(t *testing.T) {
		repo.EXPECT().GetCollection("collection_id").Times(1).Return(coll, nil)
		ntf.EXPECT().SendEmailNotification(gomock.Any(), notifier.NotificationSignerSigned, coll, &coll.Signers[0]).Times(1).Return(nil)
		repo.EXPECT().SaveCollection(coll).Times(1).Return(nil)

		link, err := svc.SignerFinished(ctx, "collection_id", "signer_1")
		req.NoError(err)
		req.Empty(link)

		req.Equal(types.SignerStatusSigned, coll.Signers[0].Status)
		req.False(coll.Signers[0].SignedAt.IsZero())
		req.Equal(types.SignerStatusPending, coll.Signers[1].Status)
	})

	t.Run("test_last_signer_completes_collection", func(t *testing.T) {
		repo.EXPECT().GetCollection("collection_id").Times(1).Return(coll, nil)
		ntf.EXPECT().SendEmailNotification(gomock.Any(), notifier.NotificationSignerSigned, coll, &coll.Signers[1]).Times(1).Return(nil)
		ntf.EXPECT().SendEmailNotification(gomock.Any(), notifier.NotificationAllSigned, coll, &coll.Signers[1]).Times(1).Return(nil)
		ntf.EXPECT().SendSignedDocument(gomock.Any(), coll, &coll.Signers[0]).Times(1).Return("/download/1", nil)
		ntf.EXPECT().SendSignedDocument(gomock.Any(), coll, &coll.Signers[1]).Times(1).Return("/download/2", nil)
		repo.EXPECT().SaveCollection(coll).Times(1).Return(nil)

		link, err := svc.SignerFinished(ctx, "collection_id", "signer_2")
		req.NoError(err)
		req.Equal("/download/2", link)
		req.True(coll.AllSigned())
	})
}

func TestCompletionService_OrderedMode(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	cfg := &config.WorkflowConfig{
		NotifyWhileSignerSigned: true,
		ShouldSendForSigning:    true,
	}

	var hookCalls int
	hook := func(_ context.Context, _ *types.DocumentCollection) error {
		hookCalls++
		return nil
	}

	svc, repo, ntf := newCompletionTestService(t, cfg, hook)

	coll := testCollection(types.SigningModeOrderedGroupSign, "signer_1", "signer_2", "signer_3")

	t.Run("test_middle_signer_advances_to_next", func(t *testing.T) {
		repo.EXPECT().GetCollection("collection_id").Times(1).Return(coll, nil)
		ntf.EXPECT().SendSigningLinkToNextSigner(gomock.Any(), coll, &coll.Signers[1]).Times(1).Return(nil)
		ntf.EXPECT().SendEmailNotification(gomock.Any(), notifier.NotificationSignerSigned, coll, &coll.Signers[0]).Times(1).Return(nil)
		repo.EXPECT().SaveCollection(coll).Times(1).Return(nil)

		link, err := svc.SignerFinished(ctx, "collection_id", "signer_1")
		req.NoError(err)
		req.Empty(link)

		req.Equal(types.SignerStatusSigned, coll.Signers[0].Status)
		req.False(coll.Signers[1].SentAt.IsZero())
		req.Equal(coll.Signers[1].SentAt, coll.Signers[1].LastSentAt)
		req.Zero(hookCalls)
	})

	t.Run("test_resend_keeps_first_sent_at", func(t *testing.T) {
		firstSentAt := coll.Signers[1].SentAt

		// Signer 1 finishing again (a replayed completion) re-invites
		// signer 2 but only moves LastSentAt.
		repo.EXPECT().GetCollection("collection_id").Times(1).Return(coll, nil)
		ntf.EXPECT().SendSigningLinkToNextSigner(gomock.Any(), coll, &coll.Signers[1]).Times(1).Return(nil)
		ntf.EXPECT().SendEmailNotification(gomock.Any(), notifier.NotificationSignerSigned, coll, &coll.Signers[0]).Times(1).Return(nil)
		repo.EXPECT().SaveCollection(coll).Times(1).Return(nil)

		_, err := svc.SignerFinished(ctx, "collection_id", "signer_1")
		req.NoError(err)
		req.Equal(firstSentAt, coll.Signers[1].SentAt)
		req.True(coll.Signers[1].LastSentAt.After(firstSentAt) || coll.Signers[1].LastSentAt.Equal(firstSentAt))
	})

	t.Run("test_last_signer_finalizes", func(t *testing.T) {
		coll.Signers[1].Status = types.SignerStatusSigned

		repo.EXPECT().GetCollection("collection_id").Times(1).Return(coll, nil)
		ntf.EXPECT().SendEmailNotification(gomock.Any(), notifier.NotificationAllSigned, coll, &coll.Signers[2]).Times(1).Return(nil)
		ntf.EXPECT().SendSignedDocument(gomock.Any(), coll, gomock.Any()).Times(3).Return("/download/collection_id", nil)
		repo.EXPECT().SaveCollection(coll).Times(1).Return(nil)

		link, err := svc.SignerFinished(ctx, "collection_id", "signer_3")
		req.NoError(err)
		req.Equal("/download/collection_id", link)
		req.Equal(1, hookCalls)
	})
}

func TestCompletionService_NotificationGating(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	// Both policy knobs off: no signer-signed mail, no automatic
	// invitation for the next signer.
	cfg := &config.WorkflowConfig{}
	svc, repo, _ := newCompletionTestService(t, cfg, nil)

	coll := testCollection(types.SigningModeOrderedGroupSign, "signer_1", "signer_2")

	repo.EXPECT().GetCollection("collection_id").Times(1).Return(coll, nil)
	repo.EXPECT().SaveCollection(coll).Times(1).Return(nil)

	link, err := svc.SignerFinished(ctx, "collection_id", "signer_1")
	req.NoError(err)
	req.Empty(link)

	// The invitation timestamps move even when the mail is manual.
	req.False(coll.Signers[1].SentAt.IsZero())
}

func TestCompletionService_UnknownSigner(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	svc, repo, _ := newCompletionTestService(t, &config.WorkflowConfig{}, nil)

	coll := testCollection(types.SigningModeOnline, "signer_1")
	repo.EXPECT().GetCollection("collection_id").Times(1).Return(coll, nil)

	_, err := svc.SignerFinished(ctx, "collection_id", "stranger_token")
	req.Error(err)
	req.Equal(types.SignerStatusPending, coll.Signers[0].Status)
}

func TestCompletionService_ModeWithoutFlow(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repoMocks.NewMockCollectionRepo(ctrl)
	ntf := notifierMocks.NewMockNotifier(ctrl)
	log := logger.NewLogger("test")

	// Only the online flow is registered.
	svc := NewCompletionService(repo, log, NewOnlineFlow(ntf, &config.WorkflowConfig{}, nil, log))

	coll := testCollection(types.SigningModeOrderedGroupSign, "signer_1")
	repo.EXPECT().GetCollection("collection_id").Times(1).Return(coll, nil)

	// Unknown mode leaves the collection untouched, no save.
	link, err := svc.SignerFinished(ctx, "collection_id", "signer_1")
	req.NoError(err)
	req.Empty(link)
	req.Equal(types.SignerStatusPending, coll.Signers[0].Status)
}
