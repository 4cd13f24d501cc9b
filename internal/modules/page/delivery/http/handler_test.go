package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clabs.com/website/internal/web"
	"github.com/gin-gonic/gin"
)

func newRouter(t *testing.T, h *PageHandler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	templates, err := web.Templates()
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}
	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.GET("/about", h.Static("about.html", "关于我们"))
	r.GET("/admin/ip/edit/:id", h.IPEdit)
	r.GET("/admin/tutorials/edit/:id", h.TutorialEdit)
	r.GET("/admin/login", h.AdminLogin)
	return r
}

func TestInvalidIDRendersErrorPage(t *testing.T) {
	r := newRouter(t, NewPageHandler(Deps{}))

	tests := []struct {
		path string
		back string
	}{
		{"/admin/ip/edit/abc", "/admin/ip/manage"},
		{"/admin/ip/edit/0", "/admin/ip/manage"},
		{"/admin/tutorials/edit/-1", "/admin/tutorials/manage"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), `href="`+tt.back+`"`) {
				t.Errorf("error page lacks link back to %s", tt.back)
			}
		})
	}
}

func TestStaticAndLoginPages(t *testing.T) {
	signedIn := false
	r := newRouter(t, NewPageHandler(Deps{IsAuthenticated: func(*gin.Context) bool { return signedIn }}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/about", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "关于我们") {
		t.Errorf("about: status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/api/admin/login") {
		t.Errorf("login page: status = %d", w.Code)
	}

	signedIn = true
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin" {
		t.Errorf("signed in: status = %d, location = %q", w.Code, w.Header().Get("Location"))
	}
}
