package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pensign/cardroom/broadcast"
	"github.com/pensign/cardroom/coordinator/api/dto"
	cs "github.com/pensign/cardroom/coordinator/api/http_api/context_service"
	req "github.com/pensign/cardroom/coordinator/api/http_api/requests"
)

// PostEvent ingests one room event from the real-time edge. Room tokens
// are normalized to lower case here, agent clients are not consistent
// about casing.
func (a *HTTPApp) PostEvent(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &dto.RoomEventDTO{}
	if err := stx.BindToDTO(&req.RoomEventForm{}, formDTO); err != nil {
		return err
	}

	event := broadcast.RoomEvent{
		Function:      broadcast.EventFunc(formDTO.Function),
		RoomToken:     strings.ToLower(formDTO.RoomToken),
		ConnectionID:  formDTO.ConnectionID,
		Data:          formDTO.Data,
		IsProcessDone: formDTO.IsProcessDone,
	}

	if err := a.rooms.ProcessEvent(stx.Request().Context(), event); err != nil {
		return stx.JsonError(http.StatusInternalServerError, err)
	}
	return stx.Json(http.StatusOK, "ok")
}

func (a *HTTPApp) GetSession(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &dto.RoomTokenDTO{}
	if err := stx.BindToDTO(&req.RoomTokenForm{}, formDTO); err != nil {
		return err
	}

	sess, ok, err := a.rooms.GetSession(strings.ToLower(formDTO.RoomToken))
	if err != nil {
		return stx.JsonError(http.StatusInternalServerError, err)
	}
	if !ok {
		return stx.Json(http.StatusOK, nil)
	}
	return stx.Json(http.StatusOK, sess)
}

func (a *HTTPApp) CloseRoom(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &dto.RoomTokenDTO{}
	if err := stx.BindToDTO(&req.RoomTokenForm{}, formDTO); err != nil {
		return err
	}

	if err := a.rooms.CloseRoom(stx.Request().Context(), strings.ToLower(formDTO.RoomToken)); err != nil {
		return stx.JsonError(http.StatusInternalServerError, err)
	}
	return stx.Json(http.StatusOK, "ok")
}

// RenameRoom swaps a provisional room token for a durable one.
func (a *HTTPApp) RenameRoom(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &dto.RenameRoomDTO{}
	if err := stx.BindToDTO(&req.RenameRoomForm{}, formDTO); err != nil {
		return err
	}

	if err := a.sessions.Rename(strings.ToLower(formDTO.OldToken), strings.ToLower(formDTO.NewToken)); err != nil {
		return stx.JsonError(http.StatusInternalServerError, err)
	}
	return stx.Json(http.StatusOK, "ok")
}

func (a *HTTPApp) GetInstanceName(c echo.Context) error {
	stx := c.(*cs.ContextService)
	return stx.Json(http.StatusOK, a.instanceName)
}
