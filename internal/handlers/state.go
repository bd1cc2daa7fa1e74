package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/echotrace/echo-trace/internal/model"
)

// StateService covers every operation over the shared aggregate document.
type StateService interface {
	Timeline(userID model.UserID, filter string) ([]model.TimelineEntry, error)
	RecordSOS(userID model.UserID, location *model.Location) (*model.SOSEvent, error)
	Contacts(userID model.UserID) ([]model.Contact, error)
	AddContact(userID model.UserID, params *model.ContactParams) (*model.Contact, error)
	UpdateContact(userID model.UserID, id string, changes *model.ContactUpdate) (*model.Contact, error)
	DeleteContact(userID model.UserID, id string) error
	Privacy(userID model.UserID) (model.PrivacySettings, error)
	UpdatePrivacy(userID model.UserID, changes *model.PrivacyUpdate) (model.PrivacySettings, error)
}

func GetTimeline(state StateService) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := c.QueryParam("filter")
		if filter == "" {
			filter = "24h"
		}
		items, err := state.Timeline(currentSession(c).UserID, filter)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": items})
	}
}

func PostSOS(state StateService) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := &struct {
			Location *model.Location `json:"location"`
		}{}
		if err := c.Bind(body); err != nil {
			return err
		}
		event, err := state.RecordSOS(currentSession(c).UserID, body.Location)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "sos": event})
	}
}

func GetContacts(state StateService) echo.HandlerFunc {
	return func(c echo.Context) error {
		contacts, err := state.Contacts(currentSession(c).UserID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "contacts": contacts})
	}
}

func AddContact(state StateService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.ContactParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		contact, err := state.AddContact(currentSession(c).UserID, params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "contact": contact})
	}
}

func UpdateContact(state StateService) echo.HandlerFunc {
	return func(c echo.Context) error {
		changes := &model.ContactUpdate{}
		if err := c.Bind(changes); err != nil {
			return err
		}
		contact, err := state.UpdateContact(currentSession(c).UserID, c.Param("id"), changes)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "contact": contact})
	}
}

func DeleteContact(state StateService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := state.DeleteContact(currentSession(c).UserID, c.Param("id")); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
}

func GetPrivacy(state StateService) echo.HandlerFunc {
	return func(c echo.Context) error {
		settings, err := state.Privacy(currentSession(c).UserID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "privacy": settings})
	}
}

func UpdatePrivacy(state StateService) echo.HandlerFunc {
	return func(c echo.Context) error {
		changes := &model.PrivacyUpdate{}
		if err := c.Bind(changes); err != nil {
			return err
		}
		settings, err := state.UpdatePrivacy(currentSession(c).UserID, changes)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "privacy": settings})
	}
}
