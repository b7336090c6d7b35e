package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pensign/cardroom/coordinator/modules/logger"
	"github.com/pensign/cardroom/coordinator/types"
)

// NotificationKind selects the email template on the platform side.
// Template wording lives outside the coordinator.
type NotificationKind string

const (
	NotificationSignerSigned      = NotificationKind("signer_signed")
	NotificationAllSigned         = NotificationKind("all_signed")
	NotificationSessionAbandoned  = NotificationKind("session_abandoned")
	NotificationSigningInvitation = NotificationKind("signing_invitation")
)

// Notifier is the notification dispatch collaborator used by the
// completion workflow.
type Notifier interface {
	SendEmailNotification(ctx context.Context, kind NotificationKind, collection *types.DocumentCollection, signer *types.Signer) error
	SendSignedDocument(ctx context.Context, collection *types.DocumentCollection, signer *types.Signer) (string, error)
	SendSigningLinkToNextSigner(ctx context.Context, collection *types.DocumentCollection, signer *types.Signer) error
}

var _ Notifier = (*HTTPNotifier)(nil)

// HTTPNotifier forwards to the platform's notification endpoint.
type HTTPNotifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPNotifier(baseURL string, timeout time.Duration) *HTTPNotifier {
	return &HTTPNotifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type notificationRequest struct {
	Kind         NotificationKind `json:"kind"`
	CollectionID string           `json:"collection_id"`
	SignerToken  string           `json:"signer_token,omitempty"`
	SignerEmail  string           `json:"signer_email,omitempty"`
}

type signedDocumentResponse struct {
	DownloadLink string `json:"download_link"`
}

func (n *HTTPNotifier) SendEmailNotification(ctx context.Context, kind NotificationKind, collection *types.DocumentCollection, signer *types.Signer) error {
	request := &notificationRequest{
		Kind:         kind,
		CollectionID: collection.ID,
	}
	if signer != nil {
		request.SignerToken = signer.Token
		request.SignerEmail = signer.Email
	}

	if err := n.post(ctx, "/sendEmailNotification", request, nil); err != nil {
		return fmt.Errorf("failed to send %s notification: %w", kind, err)
	}

	return nil
}

func (n *HTTPNotifier) SendSignedDocument(ctx context.Context, collection *types.DocumentCollection, signer *types.Signer) (string, error) {
	var response signedDocumentResponse
	if err := n.post(ctx, "/sendSignedDocument", &notificationRequest{
		CollectionID: collection.ID,
		SignerToken:  signer.Token,
		SignerEmail:  signer.Email,
	}, &response); err != nil {
		return "", fmt.Errorf("failed to send signed document: %w", err)
	}

	return response.DownloadLink, nil
}

func (n *HTTPNotifier) SendSigningLinkToNextSigner(ctx context.Context, collection *types.DocumentCollection, signer *types.Signer) error {
	if err := n.post(ctx, "/sendSigningLink", &notificationRequest{
		Kind:         NotificationSigningInvitation,
		CollectionID: collection.ID,
		SignerToken:  signer.Token,
		SignerEmail:  signer.Email,
	}, nil); err != nil {
		return fmt.Errorf("failed to send signing link: %w", err)
	}

	return nil
}

func (n *HTTPNotifier) post(ctx context.Context, path string, request, response interface{}) error {
	requestBz, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, bytes.NewReader(requestBz))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	responseBz, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notification backend returned status %d: %s", resp.StatusCode, string(responseBz))
	}

	if response != nil {
		if err := json.Unmarshal(responseBz, response); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

var _ Notifier = (*LogNotifier)(nil)

// LogNotifier is the dev/single-binary stand-in: it only logs.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) SendEmailNotification(_ context.Context, kind NotificationKind, collection *types.DocumentCollection, signer *types.Signer) error {
	if signer != nil {
		n.logger.Log("notification %s for collection %s, signer %s", kind, collection.ID, signer.Token)
	} else {
		n.logger.Log("notification %s for collection %s", kind, collection.ID)
	}
	return nil
}

func (n *LogNotifier) SendSignedDocument(_ context.Context, collection *types.DocumentCollection, signer *types.Signer) (string, error) {
	n.logger.Log("signed document delivery for collection %s, signer %s", collection.ID, signer.Token)
	return fmt.Sprintf("/download/%s", collection.ID), nil
}

func (n *LogNotifier) SendSigningLinkToNextSigner(_ context.Context, collection *types.DocumentCollection, signer *types.Signer) error {
	n.logger.Log("signing link for collection %s sent to signer %s", collection.ID, signer.Token)
	return nil
}
