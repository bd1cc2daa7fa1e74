package store

import (
	"path"
	"sync"

	"github.com/echotrace/echo-trace/internal/boot"
	"github.com/echotrace/echo-trace/internal/model"
)

const appFileName = "app.json"

// AppStore owns the shared aggregate document. Every access runs a full
// load-mutate-save cycle under the store mutex, which is the single-writer
// serialization point for the file.
type AppStore struct {
	mu   sync.Mutex
	path string
}

func NewAppStore(config *boot.Config) *AppStore {
	return &AppStore{path: path.Join(config.DataDirectory, appFileName)}
}

func defaultState() model.AppState {
	return model.AppState{
		Timeline: []model.TimelineEntry{},
		SOS:      []model.SOSEvent{},
		Contacts: map[model.UserID][]model.Contact{},
		Privacy:  map[model.UserID]model.PrivacySettings{},
	}
}

func defaultContacts() []model.Contact {
	return []model.Contact{
		{ID: model.CreateID(), Name: "Mom", Phone: "+91 98765 43210", Relationship: "Mother"},
		{ID: model.CreateID(), Name: "Dad", Phone: "+91 98765 43211", Relationship: "Father"},
	}
}

func defaultPrivacy() model.PrivacySettings {
	return model.PrivacySettings{
		HealthSharing:      true,
		LocationSharing:    true,
		Bluetooth:          true,
		LocationServices:   true,
		CallAccess:         true,
		SMSAccess:          true,
		BlockchainSecurity: true,
	}
}

// ensureBuckets seeds the per-user sub-collections on first touch.
// Idempotent: existing buckets are never replaced.
func ensureBuckets(app *model.AppState, userID model.UserID) {
	if app.Contacts == nil {
		app.Contacts = map[model.UserID][]model.Contact{}
	}
	if app.Privacy == nil {
		app.Privacy = map[model.UserID]model.PrivacySettings{}
	}
	if _, ok := app.Contacts[userID]; !ok {
		app.Contacts[userID] = defaultContacts()
	}
	if _, ok := app.Privacy[userID]; !ok {
		app.Privacy[userID] = defaultPrivacy()
	}
}

// Update loads the document, seeds the user's buckets, applies fn and writes
// the document back. If fn returns an error nothing is persisted.
func (s *AppStore) Update(userID model.UserID, fn func(app *model.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := Read(s.path, defaultState())
	if err != nil {
		return err
	}
	ensureBuckets(&app, userID)
	if err := fn(&app); err != nil {
		return err
	}
	return Write(s.path, app)
}

// View is Update without the write-back, for read-only consumers that do not
// need lazily seeded buckets persisted.
func (s *AppStore) View(userID model.UserID, fn func(app *model.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := Read(s.path, defaultState())
	if err != nil {
		return err
	}
	ensureBuckets(&app, userID)
	return fn(&app)
}
