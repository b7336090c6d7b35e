package http_api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	cs "github.com/pensign/cardroom/coordinator/api/http_api/context_service"
)

func contextServiceMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return next(cs.New(ctx))
	}
}

// Custom error handler
func customHTTPErrorHandler(err error, c echo.Context) {
	csError, ok := err.(*cs.CSErrorResp)
	if !ok {
		if he, ok := err.(*echo.HTTPError); ok {
			csError = &cs.CSErrorResp{
				ErrorMessage: fmt.Sprintf("%s", he.Message),
			}
		} else {
			csError = &cs.CSErrorResp{
				ErrorMessage: http.StatusText(http.StatusInternalServerError),
			}
		}
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(http.StatusInternalServerError)
		} else {
			_ = c.JSON(http.StatusInternalServerError, csError)
		}
	}
}
