package handlers

import (
	"github.com/pensign/cardroom/coordinator/modules/session"
	"github.com/pensign/cardroom/coordinator/services"
	"github.com/pensign/cardroom/coordinator/services/room"
	"github.com/pensign/cardroom/coordinator/services/signing"
	"github.com/pensign/cardroom/coordinator/services/workflow"
)

type HTTPApp struct {
	instanceName string
	rooms        room.RoomService
	signing      signing.SigningService
	completion   workflow.CompletionService
	sessions     session.Store
}

func NewHTTPApp(instanceName string, sp *services.ServiceProvider) *HTTPApp {
	return &HTTPApp{
		instanceName: instanceName,
		rooms:        sp.GetRoomService(),
		signing:      sp.GetSigningService(),
		completion:   sp.GetCompletionService(),
		sessions:     sp.GetSessionStore(),
	}
}
