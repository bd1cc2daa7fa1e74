package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/echotrace/echo-trace/internal/model"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrorSignupFieldsRequired),
		errors.Is(err, model.ErrorLoginFieldsRequired),
		errors.Is(err, model.ErrorContactFieldsRequired):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrorInvalidEmailOrPassword),
		errors.Is(err, model.ErrorNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrorUserNotFound),
		errors.Is(err, model.ErrorContactNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrorEmailRegistered):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// HTTPError translates service errors into the {ok:false, message} shape the
// frontend expects. Internal errors are logged and not leaked.
func HTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := statusFor(err)
	message := err.Error()

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}

	if status == http.StatusInternalServerError {
		c.Logger().Errorf("request failed: %+v", err)
		message = "internal server error"
	}

	if err := c.JSON(status, echo.Map{"ok": false, "message": message}); err != nil {
		c.Logger().Errorf("writing error response: %+v", err)
	}
}
