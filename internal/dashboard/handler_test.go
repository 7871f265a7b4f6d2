package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	httperr "github.com/shopadmin/shopadmin/internal/core/errors"
	"github.com/shopadmin/shopadmin/internal/core/storage"
	"github.com/stretchr/testify/require"
)

func newRouter(repo storage.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(repo)
	r := gin.New()
	svc.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestService_Handlers_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		failing        bool
		expectedStatus int
		expectedField  string
	}{
		{name: "stats", path: "/api/v1/dashboard/stats", expectedStatus: http.StatusOK, expectedField: "stats"},
		{name: "pie", path: "/api/v1/dashboard/pie", expectedStatus: http.StatusOK, expectedField: "charts"},
		{name: "bar", path: "/api/v1/dashboard/bar", expectedStatus: http.StatusOK, expectedField: "charts"},
		{name: "line", path: "/api/v1/dashboard/line", expectedStatus: http.StatusOK, expectedField: "charts"},
		{name: "store error returns 500", path: "/api/v1/dashboard/stats", failing: true, expectedStatus: http.StatusInternalServerError},
		{name: "chart store error returns 500", path: "/api/v1/dashboard/line", failing: true, expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var repo storage.Repository = fixture(t)
			if tt.failing {
				repo = failingRepo{Repository: repo}
			}
			router := newRouter(repo)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.failing {
				var resp httperr.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.Equal(t, httperr.HttpInternalError, resp.ErrorType)
				return
			}

			var body map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.JSONEq(t, "true", string(body["success"]))
			require.Contains(t, body, tt.expectedField)
		})
	}
}

func TestService_HandleStats_WireFormat(t *testing.T) {
	router := newRouter(fixture(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Stats map[string]json.RawMessage `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, field := range []string{"categoryCount", "changePercent", "count", "chart", "userRatio", "latestTransactions"} {
		require.Contains(t, body.Stats, field)
	}
	require.JSONEq(t, `{"male":1,"female":2}`, string(body.Stats["userRatio"]))
}
