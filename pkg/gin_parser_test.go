package pkg

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createKind struct {
	Kind string `json:"kind" validate:"required,oneof=for_each action return"`
	Name string `json:"name" validate:"max=5"`
}

func parse(t *testing.T, body string) (createKind, error) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dto createKind
	err := ParseAndValidate(c, &dto)
	return dto, err
}

func TestParseAndValidate(t *testing.T) {
	dto, err := parse(t, `{"kind":"for_each","name":"rows"}`)
	require.NoError(t, err)
	assert.Equal(t, "for_each", dto.Kind)

	_, err = parse(t, `{"kind":"while","name":"too long"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Kind: oneof=for_each action return")
	assert.Contains(t, err.Error(), "Name: max=5")

	_, err = parse(t, `{"kind":`)
	assert.Error(t, err)
}
