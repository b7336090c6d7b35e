package signing

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/pensign/cardroom/broadcast"
	"github.com/pensign/cardroom/coordinator/modules/docstore"
	"github.com/pensign/cardroom/coordinator/modules/logger"
	"github.com/pensign/cardroom/coordinator/modules/pdfsign"
	"github.com/pensign/cardroom/coordinator/modules/session"
	"github.com/pensign/cardroom/coordinator/services/workflow"
	"github.com/pensign/cardroom/coordinator/types"
)

// SigningService drives the hash-exchange rounds for one signature
// field at a time and embeds the externally produced signature.
//
// The round protocol, per field: the browser submits the hash it
// currently knows; when that differs from the stored one (including the
// first round, where nothing is stored) a fresh digest is prepared and
// broadcast to the room for the smart-card agent to sign. Submitting a
// hash byte-equal to the stored one is a no-op, which makes duplicate
// and retried messages harmless.
type SigningService interface {
	HandleSendHash(ctx context.Context, event broadcast.RoomEvent) error
	Finalize(ctx context.Context, roomToken, fieldName string, signedHash []byte) (string, error)
}

var _ SigningService = (*BaseSigningService)(nil)

type BaseSigningService struct {
	sessionStore session.Store
	docStorage   docstore.Storage
	signService  pdfsign.SignService
	broadcaster  broadcast.Broadcaster
	completion   workflow.CompletionService
	logger       logger.Logger
}

func NewSigningService(
	sessionStore session.Store,
	docStorage docstore.Storage,
	signService pdfsign.SignService,
	broadcaster broadcast.Broadcaster,
	completion workflow.CompletionService,
	log logger.Logger,
) *BaseSigningService {
	return &BaseSigningService{
		sessionStore: sessionStore,
		docStorage:   docStorage,
		signService:  signService,
		broadcaster:  broadcaster,
		completion:   completion,
		logger:       log,
	}
}

// hashAnnouncement is broadcast to the room after every prepare so the
// agent learns the digest to sign and the browser can render the
// in-progress signature.
type hashAnnouncement struct {
	Name string `json:"name"`
	Hash []byte `json:"hash"`
}

func (s *BaseSigningService) HandleSendHash(ctx context.Context, event broadcast.RoomEvent) error {
	sess, ok, err := s.sessionStore.Get(event.RoomToken)
	if err != nil {
		return fmt.Errorf("failed to Get session: %w", err)
	}
	if !ok {
		// Room not ready or already evicted.
		return nil
	}

	var submitted types.SignatureFieldData
	if err := json.Unmarshal(event.Data, &submitted); err != nil {
		return fmt.Errorf("failed to unmarshal submitted field data: %w", err)
	}

	document, field := sess.FindFieldByName(submitted.Name)
	if field == nil {
		// Field not registered yet: an ordering error on the client
		// side, dropped silently.
		return nil
	}

	if len(field.Hash) > 0 && types.HashEqual(submitted.Hash, field.Hash) {
		// Same round resubmitted, nothing to prepare. A field with no
		// stored hash has not been through its first round yet and
		// always prepares.
		return nil
	}

	pdf, err := s.docStorage.Read(docstore.DocumentTypeOriginal, document.DocumentID)
	if err != nil {
		return fmt.Errorf("failed to read document %s: %w", document.DocumentID, err)
	}

	image, err := base64.StdEncoding.DecodeString(field.Image)
	if err != nil {
		return fmt.Errorf("failed to decode field image: %w", err)
	}

	prepared, err := s.signService.Prepare(ctx, []string{field.Name}, image, pdf)
	if err != nil {
		return fmt.Errorf("failed to Prepare field %s: %w", field.Name, err)
	}
	if prepared.Result != pdfsign.ResultSuccess {
		return fmt.Errorf("prepare for field %s returned %s", field.Name, prepared.Result)
	}

	field.Hash = prepared.Hash
	field.PreparedPDFResult = prepared.PDF

	if err := s.sessionStore.Put(event.RoomToken, sess); err != nil {
		return fmt.Errorf("failed to Put session: %w", err)
	}

	announcementBz, err := json.Marshal(&hashAnnouncement{
		Name: field.Name,
		Hash: prepared.Hash,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal hash announcement: %w", err)
	}

	if err := s.broadcaster.SendToGroup(event.RoomToken, broadcast.RoomEvent{
		Function:  broadcast.EventSendHash,
		RoomToken: event.RoomToken,
		Data:      announcementBz,
	}); err != nil {
		return fmt.Errorf("failed to broadcast hash announcement: %w", err)
	}

	return nil
}

// Finalize embeds the externally signed hash bytes into the prepared
// PDF. On success the signed document is persisted, the field is
// retired from the session and, once the last field of a document is
// gone, the completion workflow runs; the returned link is empty until
// the collection completes. On failure the session is left untouched so
// the same round can be retried.
func (s *BaseSigningService) Finalize(ctx context.Context, roomToken, fieldName string, signedHash []byte) (string, error) {
	sess, ok, err := s.sessionStore.Get(roomToken)
	if err != nil {
		return "", fmt.Errorf("failed to Get session: %w", err)
	}
	if !ok {
		return "", nil
	}

	document, field := sess.FindFieldByName(fieldName)
	if field == nil {
		return "", nil
	}

	embedded, err := s.signService.Embed(ctx, field.PreparedPDFResult, signedHash)
	if err != nil {
		return "", fmt.Errorf("failed to Embed field %s: %w", fieldName, err)
	}
	if embedded.Result != pdfsign.ResultSuccess {
		return "", fmt.Errorf("embed for field %s returned %s", fieldName, embedded.Result)
	}

	if err := s.docStorage.Save(docstore.DocumentTypeSigned, document.DocumentID, embedded.PDF); err != nil {
		return "", fmt.Errorf("failed to save signed document %s: %w", document.DocumentID, err)
	}

	document.RemoveField(fieldName)

	documentDone := len(document.Fields) == 0
	if documentDone {
		sess.RemoveDocument(document.DocumentID)
	}

	if err := s.sessionStore.Put(roomToken, sess); err != nil {
		return "", fmt.Errorf("failed to Put session: %w", err)
	}

	if !documentDone {
		return "", nil
	}

	link, err := s.completion.SignerFinished(ctx, sess.CollectionID, sess.SignerToken)
	if err != nil {
		return "", fmt.Errorf("failed to run completion for collection %s: %w", sess.CollectionID, err)
	}

	return link, nil
}
