package domain

// Matching constants
const (
	// FuzzyMatchThreshold minimum similarity for a fuzzy service or barber match
	FuzzyMatchThreshold = 0.55
)

// Queue constants
const (
	QueueNumberWidth = 3
	// QueueFallbackModulo fallback queue number = now_ms mod QueueFallbackModulo
	QueueFallbackModulo = 1000
)

// Booking reference
const (
	RefPrefix = "RB-"
	RefLength = 8
)

// Phone constants
const (
	// CountryCode South Africa. Local 10-digit numbers start with 0.
	CountryCode       = "27"
	LocalNumberLength = 10
	MaxNumberLength   = 12
)

// Sources of booking records
const (
	SourceTwilio      = "twilio"
	SourceMeta        = "meta"
	SourceBookingForm = "booking_form"
)

// Business validation constants
const (
	MaxNameLength  = 100
	MaxRawLength   = 4096
	MaxNotesLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// QueueStatuses статусы, учитываемые при подсчёте очереди (плюс записи без статуса)
var QueueStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
