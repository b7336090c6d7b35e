package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pensign/cardroom/coordinator/api/dto"
	cs "github.com/pensign/cardroom/coordinator/api/http_api/context_service"
	req "github.com/pensign/cardroom/coordinator/api/http_api/requests"
)

type finalizeSignatureResponse struct {
	DownloadLink string `json:"download_link,omitempty"`
}

// FinalizeSignature accepts the hash bytes signed on the smart card and
// embeds them into the prepared PDF.
func (a *HTTPApp) FinalizeSignature(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &dto.FinalizeSignatureDTO{}
	if err := stx.BindToDTO(&req.FinalizeSignatureForm{}, formDTO); err != nil {
		return err
	}

	link, err := a.signing.Finalize(
		stx.Request().Context(),
		strings.ToLower(formDTO.RoomToken),
		formDTO.FieldName,
		formDTO.SignedHash,
	)
	if err != nil {
		return stx.JsonError(http.StatusInternalServerError, err)
	}
	return stx.Json(http.StatusOK, &finalizeSignatureResponse{DownloadLink: link})
}

// SignerDone runs the completion workflow for transports that do not go
// through the smart-card flow.
func (a *HTTPApp) SignerDone(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &dto.SignerDoneDTO{}
	if err := stx.BindToDTO(&req.SignerDoneForm{}, formDTO); err != nil {
		return err
	}

	link, err := a.completion.SignerFinished(stx.Request().Context(), formDTO.CollectionID, formDTO.SignerToken)
	if err != nil {
		return stx.JsonError(http.StatusInternalServerError, err)
	}
	return stx.Json(http.StatusOK, &finalizeSignatureResponse{DownloadLink: link})
}
