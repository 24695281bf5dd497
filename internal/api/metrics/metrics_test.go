package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "error", Result(errors.New("boom")))
}

func TestHandler_ExposesCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	before := testutil.ToFloat64(NodeBuilds.WithLabelValues("for_each", "ok"))
	NodeBuilds.WithLabelValues("for_each", "ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(NodeBuilds.WithLabelValues("for_each", "ok")))

	r := gin.New()
	r.GET("/metrics", Handler())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flowstudio_node_builds_total")
}
