package endpoints

import (
	"net/http"
	"testing"

	"flowstudio/internal/api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeKindHandler_Catalog(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/node-kinds", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entries := decode[[]service.KindEntry](t, w)
	require.Len(t, entries, 3)
	assert.Equal(t, "action", string(entries[0].Kind))
	assert.Equal(t, "for_each", string(entries[1].Kind))
	assert.Equal(t, "return", string(entries[2].Kind))
}

func TestNodeKindHandler_Describe(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/node-kinds/for_each", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entry := decode[service.KindEntry](t, w)
	assert.Equal(t, "Loop", entry.Title)
	require.Len(t, entry.Topology.Outputs, 3)
	assert.Equal(t, "loopBody", entry.Topology.Outputs[1].Socket)
	for _, directive := range []string{"al-if", "al-repeat", "al-control", "al-pick-input", "al-pick-output"} {
		assert.Contains(t, entry.Template, directive)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/node-kinds/while", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNodeKindHandler_Preview(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/node-kinds/for_each/preview", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	built := decode[editorNode](t, w)
	assert.False(t, built.IsStartNode)
	assert.Len(t, built.Inputs, 2)
	assert.Len(t, built.Outputs, 3)
	require.Contains(t, built.Data, "dbNode")
	assert.Nil(t, built.Data["dbNode"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/node-kinds/while/preview", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
