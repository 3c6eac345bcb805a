package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/arohamusic/encore-server/internal/errors"
	"github.com/arohamusic/encore-server/internal/validation"
)

type testSubmission struct {
	Song    string `json:"song" validate:"required,max=200"`
	Artist  string `json:"artist" validate:"max=200"`
	FanName string `json:"fan_name" validate:"max=100"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := testSubmission{
		Song:    "Dreams",
		Artist:  "Fleetwood Mac",
		FanName: "Sam",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	longString := make([]byte, 300)
	for i := range longString {
		longString[i] = 'x'
	}

	tests := []struct {
		name      string
		req       testSubmission
		wantField string
	}{
		{
			name:      "missing required field",
			req:       testSubmission{Song: ""},
			wantField: "song",
		},
		{
			name:      "field too long",
			req:       testSubmission{Song: "Dreams", Artist: string(longString)},
			wantField: "artist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}
