package router

import (
	"github.com/labstack/echo/v4"
	"github.com/pensign/cardroom/coordinator/api/http_api/handlers"
	"github.com/pensign/cardroom/coordinator/services"
)

func SetRouter(e *echo.Echo, instanceName string, sp *services.ServiceProvider) {
	h := handlers.NewHTTPApp(instanceName, sp)

	e.GET("/getInstanceName", h.GetInstanceName)

	e.POST("/postEvent", h.PostEvent)
	e.GET("/getSession", h.GetSession)
	e.POST("/closeRoom", h.CloseRoom)
	e.POST("/renameRoom", h.RenameRoom)

	e.POST("/finalizeSignature", h.FinalizeSignature)
	e.POST("/signerDone", h.SignerDone)
}
