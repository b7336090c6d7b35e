package requests

import (
	"encoding/json"
)

type RoomEventForm struct {
	Function      string          `json:"function" validate:"attr=function,min=1"`
	RoomToken     string          `json:"roomToken" validate:"attr=roomToken,min=1"`
	ConnectionID  string          `json:"connectionId"`
	Data          json.RawMessage `json:"data"`
	IsProcessDone bool            `json:"isProcessDone"`
}

type FinalizeSignatureForm struct {
	RoomToken  string `json:"roomToken" validate:"attr=roomToken,min=1"`
	FieldName  string `json:"fieldName" validate:"attr=fieldName,min=1"`
	SignedHash []byte `json:"signedHash"`
}

type SignerDoneForm struct {
	CollectionID string `json:"collectionId" validate:"attr=collectionId,min=1"`
	SignerToken  string `json:"signerToken" validate:"attr=signerToken,min=1"`
}

type RoomTokenForm struct {
	RoomToken string `query:"roomToken" json:"roomToken" validate:"attr=roomToken,min=1"`
}

type RenameRoomForm struct {
	OldToken string `json:"oldToken" validate:"attr=oldToken,min=1"`
	NewToken string `json:"newToken" validate:"attr=newToken,min=1"`
}
