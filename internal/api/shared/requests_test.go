package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=0,max=10"`
}

type selfValidating struct {
	err error
}

func (s selfValidating) Validate() error { return s.err }

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes a valid body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/",
			strings.NewReader(`{"name": "shalom", "count": 3}`))

		var target decodeTarget
		require.NoError(t, DecodeJSON(req, &target))
		assert.Equal(t, "shalom", target.Name)
		assert.Equal(t, 3, target.Count)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{oops`))

		var target decodeTarget
		assert.Error(t, DecodeJSON(req, &target))
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	t.Run("passes a valid struct", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ValidateRequest(decodeTarget{Name: "shalom", Count: 5}))
	})

	t.Run("fails a missing required field", func(t *testing.T) {
		t.Parallel()
		err := ValidateRequest(decodeTarget{Count: 5})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Name")
	})

	t.Run("fails an out-of-range field", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, ValidateRequest(decodeTarget{Name: "shalom", Count: 11}))
	})

	t.Run("prefers the type's own Validate method", func(t *testing.T) {
		t.Parallel()
		sentinel := errors.New("custom validation failed")
		assert.ErrorIs(t, ValidateRequest(selfValidating{err: sentinel}), sentinel)
		assert.NoError(t, ValidateRequest(selfValidating{}))
	})
}
