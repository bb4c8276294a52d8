package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking protocol defaults
const (
	DefaultMaxClaimAttempts   = 3
	DefaultStepTimeoutSeconds = 5
)

// Validation constants
const (
	MaxAddressNotesLength = 500
	MaxServiceNameLength  = 120
)
