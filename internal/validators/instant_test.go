package validators_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

func TestParseInstant(t *testing.T) {
	want := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		"2025-09-01T09:00:00Z",
		"2025-09-01T09:00:00.000Z",
		"2025-09-01T06:00:00-03:00",
		"2025-09-01T09:00:00",
		"2025-09-01T09:00",
		" 2025-09-01 09:00 ",
	} {
		t.Run(raw, func(t *testing.T) {
			got, err := validators.ParseInstant("startsAt", raw)
			require.NoError(t, err)
			assert.True(t, want.Equal(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseInstantErrors(t *testing.T) {
	_, err := validators.ParseInstant("startsAt", "")
	assert.True(t, httperr.IsBusiness(err, "missing_startsAt"))

	_, err = validators.ParseInstant("endsAt", "tomorrow")
	assert.True(t, httperr.IsBusiness(err, "invalid_endsAt"))
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestParseOptionalInstant(t *testing.T) {
	got, err := validators.ParseOptionalInstant("startsAt", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	raw := "2025-09-01T10:00:00Z"
	got, err = validators.ParseOptionalInstant("startsAt", &raw)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Hour())
}
