package models

// Lead represents a consent-tagged email captured from the landing page
type Lead struct {
	ID               string  `json:"id" db:"id"`
	Email            string  `json:"email" db:"email"`
	Consent          bool    `json:"consent" db:"consent"`
	ConsentTimestamp string  `json:"consentTimestamp" db:"consent_timestamp"`
	UserAgent        string  `json:"userAgent" db:"user_agent"`
	IPHash           *string `json:"ipHash" db:"ip_hash"` // Hashed caller IP, nil until assigned
	CollectedAt      string  `json:"collectedAt" db:"collected_at"`
}
