package utils

import "time"

// SessionKeyPrefix is the prefix used for Redis checkout session keys.
const SessionKeyPrefix = "checkout:"

// AppointmentTokenTTL is the lifetime of an appointment access token.
const AppointmentTokenTTL = 72 * time.Hour
