package dto

import (
	"encoding/json"
)

// This package contains DTO (Data Transfer Object) structures
// for providing validated and sanitized values to the service layer.

type RoomEventDTO struct {
	Function      string
	RoomToken     string
	ConnectionID  string
	Data          json.RawMessage
	IsProcessDone bool
}

type FinalizeSignatureDTO struct {
	RoomToken  string
	FieldName  string
	SignedHash []byte
}

type SignerDoneDTO struct {
	CollectionID string
	SignerToken  string
}

type RoomTokenDTO struct {
	RoomToken string
}

type RenameRoomDTO struct {
	OldToken string
	NewToken string
}
