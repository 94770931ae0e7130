package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timedRequest struct {
	Start string `validate:"required,timeofday"`
	End   string `validate:"omitempty,timeofday"`
}

func TestTimeOfDayTag(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&timedRequest{Start: "09:00", End: "17:30"}))
	assert.NoError(t, v.Validate(&timedRequest{Start: "00:00"}))
	assert.NoError(t, v.Validate(&timedRequest{Start: "23:59"}))

	tests := []string{"24:00", "09:60", "9:00", "0900", "noon"}
	for _, bad := range tests {
		assert.Error(t, v.Validate(&timedRequest{Start: bad}), "input %q", bad)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&timedRequest{Start: "", End: "late"})
	require.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Equal(t, "Start is required", formatted["Start"])
	assert.Equal(t, "End must be a time in HH:MM format", formatted["End"])
}
