package backoffice_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldesk/internal/adapters/backoffice"
)

func TestErrorDetail_Shapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain string", `"Not found"`, "Not found"},
		{"structured list", `[{"loc":["body","name"],"msg":"too short","type":"value_error"},{"msg":"required"}]`, "too short, required"},
		{"unknown shape decodes empty", `{"weird":true}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d backoffice.ErrorDetail
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &d))
			assert.Equal(t, tc.want, d.Message())
		})
	}
}

func TestMessage(t *testing.T) {
	withDetail := &backoffice.APIError{Status: 404, Detail: backoffice.ErrorDetail{Text: "Not found"}}
	assert.Equal(t, "Not found", backoffice.Message(withDetail, "fallback"))

	noDetail := &backoffice.APIError{Status: 500}
	assert.Equal(t, "fallback", backoffice.Message(noDetail, "fallback"))

	assert.Equal(t, "fallback", backoffice.Message(errors.New("conn refused"), "fallback"))
	assert.Equal(t, "fallback", backoffice.Message(nil, "fallback"))
}

func TestAPIError_UnwrapsUnauthorized(t *testing.T) {
	err := error(&backoffice.APIError{Status: 401})
	assert.ErrorIs(t, err, backoffice.ErrUnauthorized)

	err = &backoffice.APIError{Status: 403}
	assert.NotErrorIs(t, err, backoffice.ErrUnauthorized)
}
