package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateful/mealplanner-backend/internal/service"
	"github.com/plateful/mealplanner-backend/internal/testdb"
)

// setupTestRouter wires every handler against an in-memory database and
// session store, mirroring the production route table.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t)
	sessions := service.NewMemorySessionStore()

	router := gin.New()
	NewRecipeHandler(service.NewRecipeService(db)).RegisterRoutes(router)
	NewNutritionHandler(service.NewNutritionService(db)).RegisterRoutes(router)
	NewPlannerHandler(service.NewPlannerService(db)).RegisterRoutes(router)
	NewAuthHandler(service.NewAuthService(db, sessions, "test-secret")).RegisterRoutes(router)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
