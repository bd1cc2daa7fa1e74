package activity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/echotrace/echo-trace/internal/model"
	"github.com/echotrace/echo-trace/internal/store"
)

const sosStatusActivated = "Emergency Protocol Activated"

var fallbackLocation = model.Location{
	Lat:   19.0760,
	Lng:   72.8777,
	Label: "Mumbai Central, Maharashtra, India",
}

type service struct {
	store *store.AppStore
}

func New(appStore *store.AppStore) *service {
	return &service{store: appStore}
}

func appendTimeline(app *model.AppState, userID model.UserID, entryType model.EntryType, title, details string) {
	app.Timeline = append(app.Timeline, model.TimelineEntry{
		ID:        model.CreateID(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Type:      entryType,
		Title:     title,
		Details:   details,
	})
}

// Timeline returns the user's entries within the window, newest first.
// Equal timestamps keep insertion order.
func (s *service) Timeline(userID model.UserID, filter string) ([]model.TimelineEntry, error) {
	window := 24 * time.Hour
	if filter == "7d" {
		window = 7 * 24 * time.Hour
	}

	items := []model.TimelineEntry{}
	err := s.store.View(userID, func(app *model.AppState) error {
		now := time.Now()
		for _, entry := range app.Timeline {
			if entry.UserID != userID {
				continue
			}
			if now.Sub(entry.CreatedAt) > window {
				continue
			}
			items = append(items, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// RecordSOS appends an SOS event plus the timeline entry describing it.
// A missing location falls back to the demo default.
func (s *service) RecordSOS(userID model.UserID, location *model.Location) (*model.SOSEvent, error) {
	event := model.SOSEvent{
		ID:        model.CreateID(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Status:    sosStatusActivated,
		Location:  fallbackLocation,
	}
	if location != nil {
		event.Location = *location
	}

	err := s.store.Update(userID, func(app *model.AppState) error {
		app.SOS = append(app.SOS, event)
		appendTimeline(app, userID, model.EntryTypeSOS, "SOS Triggered",
			fmt.Sprintf("Emergency protocol activated. Location: %s", event.Location.Label))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Contacts lists the user's contact bucket, seeding defaults on first touch.
func (s *service) Contacts(userID model.UserID) ([]model.Contact, error) {
	var contacts []model.Contact
	err := s.store.Update(userID, func(app *model.AppState) error {
		contacts = app.Contacts[userID]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *service) AddContact(userID model.UserID, params *model.ContactParams) (*model.Contact, error) {
	name := strings.TrimSpace(params.Name)
	phone := strings.TrimSpace(params.Phone)
	if name == "" || phone == "" {
		return nil, model.ErrorContactFieldsRequired
	}

	contact := model.Contact{
		ID:           model.CreateID(),
		Name:         name,
		Phone:        phone,
		Relationship: strings.TrimSpace(params.Relationship),
	}

	err := s.store.Update(userID, func(app *model.AppState) error {
		app.Contacts[userID] = append(app.Contacts[userID], contact)
		appendTimeline(app, userID, model.EntryTypeContact, "Trusted Contact Added",
			fmt.Sprintf("%s (%s) added.", contact.Name, contact.Phone))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContact applies the supplied fields to one contact; nil fields are
// left as they are.
func (s *service) UpdateContact(userID model.UserID, id string, changes *model.ContactUpdate) (*model.Contact, error) {
	var updated model.Contact
	err := s.store.Update(userID, func(app *model.AppState) error {
		contacts := app.Contacts[userID]
		for i := range contacts {
			if contacts[i].ID != id {
				continue
			}
			if changes.Name != nil {
				contacts[i].Name = strings.TrimSpace(*changes.Name)
			}
			if changes.Phone != nil {
				contacts[i].Phone = strings.TrimSpace(*changes.Phone)
			}
			if changes.Relationship != nil {
				contacts[i].Relationship = strings.TrimSpace(*changes.Relationship)
			}
			updated = contacts[i]
			appendTimeline(app, userID, model.EntryTypeContact, "Trusted Contact Updated",
				fmt.Sprintf("%s updated.", updated.Name))
			return nil
		}
		return model.ErrorContactNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) DeleteContact(userID model.UserID, id string) error {
	return s.store.Update(userID, func(app *model.AppState) error {
		contacts := app.Contacts[userID]
		for i := range contacts {
			if contacts[i].ID != id {
				continue
			}
			appendTimeline(app, userID, model.EntryTypeContact, "Trusted Contact Deleted",
				fmt.Sprintf("%s removed.", contacts[i].Name))
			app.Contacts[userID] = append(contacts[:i], contacts[i+1:]...)
			return nil
		}
		return model.ErrorContactNotFound
	})
}

// Privacy returns the user's toggle record, seeding defaults on first touch.
func (s *service) Privacy(userID model.UserID) (model.PrivacySettings, error) {
	var settings model.PrivacySettings
	err := s.store.Update(userID, func(app *model.AppState) error {
		settings = app.Privacy[userID]
		return nil
	})
	return settings, err
}

// UpdatePrivacy shallow-merges the supplied toggles. The timeline entry is
// generic; individual toggle names are not recorded.
func (s *service) UpdatePrivacy(userID model.UserID, changes *model.PrivacyUpdate) (model.PrivacySettings, error) {
	var settings model.PrivacySettings
	err := s.store.Update(userID, func(app *model.AppState) error {
		settings = app.Privacy[userID]
		settings.Apply(changes)
		app.Privacy[userID] = settings
		appendTimeline(app, userID, model.EntryTypePrivacy, "Privacy Settings Updated",
			"User updated privacy toggles.")
		return nil
	})
	return settings, err
}
