package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"lead-capture/pkg/models"
)

// TimestampLayout is the layout used for server-assigned timestamps
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const maxUserAgentLength = 512

var validate = validator.New()

// ValidateLead checks a decoded lead payload. It returns either the
// human-readable problems found, or a populated lead with a fresh id,
// no IP hash and collectedAt set to now.
func ValidateLead(payload map[string]interface{}, now time.Time) (*models.Lead, []string) {
	var errs []string

	email := strings.ToLower(strings.TrimSpace(stringField(payload, "email")))
	if email == "" {
		errs = append(errs, "email is required")
	} else if err := validate.Var(email, "email,max=254"); err != nil {
		errs = append(errs, "email is invalid")
	}

	// Only a JSON boolean true counts as consent
	consent, _ := payload["consent"].(bool)
	if !consent {
		errs = append(errs, "consent must be true")
	}

	consentTimestamp := strings.TrimSpace(stringField(payload, "consentTimestamp"))
	if consentTimestamp == "" {
		errs = append(errs, "consentTimestamp is required")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &models.Lead{
		ID:               uuid.NewString(),
		Email:            email,
		Consent:          true,
		ConsentTimestamp: consentTimestamp,
		UserAgent:        NormalizeUserAgent(stringField(payload, "userAgent")),
		IPHash:           nil,
		CollectedAt:      now.UTC().Format(TimestampLayout),
	}, nil
}

// NormalizeUserAgent trims ua and caps its length in bytes without
// splitting a multibyte character
func NormalizeUserAgent(ua string) string {
	ua = strings.TrimSpace(ua)
	if len(ua) <= maxUserAgentLength {
		return ua
	}
	n := maxUserAgentLength
	for n > 0 && !utf8.RuneStart(ua[n]) {
		n--
	}
	return ua[:n]
}

func stringField(payload map[string]interface{}, key string) string {
	s, _ := payload[key].(string)
	return s
}
