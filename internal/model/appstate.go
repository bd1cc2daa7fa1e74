package model

import "time"

type EntryType string

const (
	EntryTypeSOS     EntryType = "sos"
	EntryTypeContact EntryType = "contact"
	EntryTypePrivacy EntryType = "privacy"
)

type TimelineEntry struct {
	ID        string    `json:"id"`
	UserID    UserID    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	Type      EntryType `json:"type,omitempty"`
	Title     string    `json:"title"`
	Details   string    `json:"details"`
}

type Location struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

type SOSEvent struct {
	ID        string    `json:"id"`
	UserID    UserID    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
	Location  Location  `json:"location"`
}

type Contact struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type ContactParams struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// ContactUpdate carries a partial contact edit; nil fields are left unchanged.
type ContactUpdate struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Relationship *string `json:"relationship"`
}

type PrivacySettings struct {
	HealthSharing      bool `json:"healthSharing"`
	LocationSharing    bool `json:"locationSharing"`
	Bluetooth          bool `json:"bluetooth"`
	LocationServices   bool `json:"locationServices"`
	CallAccess         bool `json:"callAccess"`
	SMSAccess          bool `json:"smsAccess"`
	BlockchainSecurity bool `json:"blockchainSecurity"`
}

// PrivacyUpdate carries a partial toggle edit; nil fields are left unchanged.
type PrivacyUpdate struct {
	HealthSharing      *bool `json:"healthSharing"`
	LocationSharing    *bool `json:"locationSharing"`
	Bluetooth          *bool `json:"bluetooth"`
	LocationServices   *bool `json:"locationServices"`
	CallAccess         *bool `json:"callAccess"`
	SMSAccess          *bool `json:"smsAccess"`
	BlockchainSecurity *bool `json:"blockchainSecurity"`
}

func (p *PrivacySettings) Apply(u *PrivacyUpdate) {
	if u.HealthSharing != nil {
		p.HealthSharing = *u.HealthSharing
	}
	if u.LocationSharing != nil {
		p.LocationSharing = *u.LocationSharing
	}
	if u.Bluetooth != nil {
		p.Bluetooth = *u.Bluetooth
	}
	if u.LocationServices != nil {
		p.LocationServices = *u.LocationServices
	}
	if u.CallAccess != nil {
		p.CallAccess = *u.CallAccess
	}
	if u.SMSAccess != nil {
		p.SMSAccess = *u.SMSAccess
	}
	if u.BlockchainSecurity != nil {
		p.BlockchainSecurity = *u.BlockchainSecurity
	}
}

// AppState is the shared aggregate document. Timeline and SOS are global
// insertion-ordered sequences; contacts and privacy are per-user buckets.
type AppState struct {
	Timeline []TimelineEntry            `json:"timeline"`
	SOS      []SOSEvent                 `json:"sos"`
	Contacts map[UserID][]Contact       `json:"contacts"`
	Privacy  map[UserID]PrivacySettings `json:"privacy"`
}
