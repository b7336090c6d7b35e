package types

import (
	"bytes"
	"time"
)

// SigningMode determines how a document collection moves through its
// signer list once an individual signer has finished.
type SigningMode string

const (
	SigningModeOnline           = SigningMode("online")
	SigningModeGroupSign        = SigningMode("group_sign")
	SigningModeOrderedGroupSign = SigningMode("ordered_group_sign")
)

type SignerStatus string

const (
	SignerStatusPending = SignerStatus("pending")
	SignerStatusSigned  = SignerStatus("signed")
)

// SignatureFieldData is the per-field signing state exchanged between
// the browser and the smart-card agent. Hash is the current challenge
// digest awaiting an external signature; PreparedPDFResult is the
// intermediate artifact produced by the prepare step and consumed by
// the embed step. At most one outstanding hash exists per field: a new
// prepare overwrites both values, invalidating any signature computed
// against the previous digest.
type SignatureFieldData struct {
	Name              string `json:"name"`
	Hash              []byte `json:"hash,omitempty"`
	Image             string `json:"image,omitempty"`
	PreparedPDFResult []byte `json:"prepared_pdf_result,omitempty"`
}

type DocumentSigningPayload struct {
	DocumentID string               `json:"document_id"`
	Fields     []SignatureFieldData `json:"fields"`
}

func (d *DocumentSigningPayload) FindField(name string) *SignatureFieldData {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

func (d *DocumentSigningPayload) RemoveField(name string) bool {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			d.Fields = append(d.Fields[:i], d.Fields[i+1:]...)
			return true
		}
	}
	return false
}

// SigningSession is the shared state of one signing room, keyed by the
// room token. The session store exclusively owns instances; handlers
// read-modify-write a borrowed copy per event.
type SigningSession struct {
	RoomToken    string                   `json:"room_token"`
	CollectionID string                   `json:"collection_id"`
	Clients      []string                 `json:"clients"`
	Documents    []DocumentSigningPayload `json:"documents"`
	SignerToken  string                   `json:"signer_token"`
}

func (s *SigningSession) HasClient(connectionID string) bool {
	for _, id := range s.Clients {
		if id == connectionID {
			return true
		}
	}
	return false
}

func (s *SigningSession) FindDocument(documentID string) *DocumentSigningPayload {
	for i := range s.Documents {
		if s.Documents[i].DocumentID == documentID {
			return &s.Documents[i]
		}
	}
	return nil
}

// FindFieldByName walks the session documents in order and returns the
// first field with the given name, together with its owning document.
func (s *SigningSession) FindFieldByName(name string) (*DocumentSigningPayload, *SignatureFieldData) {
	for i := range s.Documents {
		if field := s.Documents[i].FindField(name); field != nil {
			return &s.Documents[i], field
		}
	}
	return nil, nil
}

func (s *SigningSession) RemoveDocument(documentID string) bool {
	for i := range s.Documents {
		if s.Documents[i].DocumentID == documentID {
			s.Documents = append(s.Documents[:i], s.Documents[i+1:]...)
			return true
		}
	}
	return false
}

// HashEqual compares two challenge digests. Digests are opaque byte
// blobs, byte-equality is the only meaningful comparison.
func HashEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}

type Signer struct {
	Token      string       `json:"token"`
	Email      string       `json:"email"`
	Name       string       `json:"name"`
	Status     SignerStatus `json:"status"`
	SentAt     time.Time    `json:"sent_at"`
	LastSentAt time.Time    `json:"last_sent_at"`
	SignedAt   time.Time    `json:"signed_at"`
}

// DocumentCollection mirrors the platform entity the completion
// workflow reads signer order from and writes signed transitions into.
// The coordinator references collections, it does not own them.
type DocumentCollection struct {
	ID          string      `json:"id"`
	Mode        SigningMode `json:"mode"`
	Signers     []Signer    `json:"signers"`
	DocumentIDs []string    `json:"document_ids"`
}

func (c *DocumentCollection) FindSignerIndex(token string) int {
	for i := range c.Signers {
		if c.Signers[i].Token == token {
			return i
		}
	}
	return -1
}

func (c *DocumentCollection) AllSigned() bool {
	for i := range c.Signers {
		if c.Signers[i].Status != SignerStatusSigned {
			return false
		}
	}
	return len(c.Signers) > 0
}
