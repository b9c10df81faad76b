package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTokenRoundTrip(t *testing.T) {
	token, err := GenerateAppointmentToken("appt-42", "dana@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := ExtractAppointmentID(token)
	require.NoError(t, err)
	assert.Equal(t, "appt-42", id)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	token, err := GenerateAppointmentToken("appt-42", "dana@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractAppointmentID(token)
	assert.Error(t, err)
}
