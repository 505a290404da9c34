package ginx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/opendatagh/catalog/pkg/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type echoRequest struct {
	Name string `json:"name" uri:"name" form:"name"`
}

func (r *echoRequest) IsValid() error {
	if r.Name == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "name is required", nil)
	}
	return nil
}

type echoResponse struct {
	Name string `json:"name"`
}

func TestAdapt5(t *testing.T) {
	t.Parallel()

	newEngine := func() *gin.Engine {
		engine := gin.New()
		engine.Use(RequestID())
		handler := func(ctx *gin.Context, req *echoRequest) (*echoResponse, error) {
			if req.Name == "boom" {
				return nil, apierror.WrapError(apierror.ErrNotFound, "no such thing", nil)
			}
			return &echoResponse{Name: req.Name}, nil
		}
		engine.POST("/echo", Adapt5(handler))
		engine.GET("/echo/:name", Adapt5(handler))
		return engine
	}

	t.Run("binds JSON body", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"ada"}`))
		req.Header.Set("Content-Type", "application/json")
		newEngine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"ada"`)
	})

	t.Run("binds URI params without body", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/echo/ada", nil)
		newEngine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"ada"`)
	})

	t.Run("IsValid rejects bad input", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":""}`))
		req.Header.Set("Content-Type", "application/json")
		newEngine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "InvalidParameter")
	})

	t.Run("apierror status is honored", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"boom"}`))
		req.Header.Set("Content-Type", "application/json")
		newEngine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NotFound")
	})

	t.Run("error response carries request ID", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"boom"}`))
		req.Header.Set("Content-Type", "application/json")
		newEngine().ServeHTTP(w, req)

		require.NotEmpty(t, w.Header().Get("X-Request-ID"))
		assert.Contains(t, w.Body.String(), w.Header().Get("X-Request-ID"))
	})
}

func TestAdapt3(t *testing.T) {
	t.Parallel()

	engine := gin.New()
	engine.GET("/ok", Adapt3(func(ctx *gin.Context) (gin.H, error) {
		return gin.H{"status": "healthy"}, nil
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
