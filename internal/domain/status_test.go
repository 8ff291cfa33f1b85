package domain_test

import (
	"testing"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusCode(t *testing.T) {
	for _, code := range []int{0, 10, 20, 30, 40, 50} {
		parsed, err := domain.ParseStatusCode(code)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCode(code), parsed)
		assert.True(t, parsed.Valid())
	}

	for _, code := range []int{-1, 5, 60, 256} {
		_, err := domain.ParseStatusCode(code)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidStatusCode), "code %d", code)
	}
}

func TestStatusCode_String(t *testing.T) {
	assert.Equal(t, "ON_TIME", domain.StatusOnTime.String())
	assert.Equal(t, "LATE_OTHER", domain.StatusLateOther.String())
	assert.Equal(t, "INVALID", domain.StatusCode(7).String())
}
