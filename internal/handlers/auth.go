package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/echotrace/echo-trace/internal/model"
	"github.com/echotrace/echo-trace/internal/session"
)

type AccountService interface {
	Create(params *model.CreateUserParams) (*model.User, error)
	Authenticate(email, password string) (*model.User, error)
	FindByID(id model.UserID) (*model.User, error)
}

type SessionRegistry interface {
	Issue(userID model.UserID) string
	Revoke(token string)
	Resolve(token string) (session.Session, error)
}

const sessionContextKey = "echotrace.session"

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// RequireSession is the auth gate: it resolves the bearer token to a session
// and stashes it in the request context for downstream handlers.
func RequireSession(sessions SessionRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			resolved, err := sessions.Resolve(bearerToken(c))
			if err != nil {
				return err
			}
			c.Set(sessionContextKey, resolved)
			return next(c)
		}
	}
}

func currentSession(c echo.Context) session.Session {
	return c.Get(sessionContextKey).(session.Session)
}

func Signup(accounts AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateUserParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		user, err := accounts.Create(params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "user": user.Sanitized()})
	}
}

func Login(accounts AccountService, sessions SessionRegistry) echo.HandlerFunc {
	return func(c echo.Context) error {
		credentials := &model.Credentials{}
		if err := c.Bind(credentials); err != nil {
			return err
		}
		user, err := accounts.Authenticate(credentials.Email, credentials.Password)
		if err != nil {
			return err
		}
		token := sessions.Issue(user.ID)
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "token": token, "user": user.Sanitized()})
	}
}

func Logout(sessions SessionRegistry) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessions.Revoke(bearerToken(c))
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
}

func Me(accounts AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := accounts.FindByID(currentSession(c).UserID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "user": user.Sanitized()})
	}
}
