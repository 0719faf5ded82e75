package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adarshh247/ListIT-doIT/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	auth := &Auth{Persistence: store.NewMemory(), Log: zap.NewNop()}

	r := gin.New()
	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
	return r
}

func post(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out.Token
}

func TestRegisterIssuesToken(t *testing.T) {
	r := newAuthRouter()

	w := post(t, r, "/register", gin.H{"username": "dara", "password": "longenough"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}
	if token(t, w) == "" {
		t.Error("register succeeded without a token")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r := newAuthRouter()

	w := post(t, r, "/register", gin.H{"username": "dara", "password": "short"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := newAuthRouter()

	post(t, r, "/register", gin.H{"username": "dara", "password": "longenough"})
	w := post(t, r, "/register", gin.H{"username": "dara", "password": "otherlongpw"})
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	r := newAuthRouter()
	post(t, r, "/register", gin.H{"username": "dara", "password": "longenough"})

	w := post(t, r, "/login", gin.H{"username": "dara", "password": "longenough"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	if token(t, w) == "" {
		t.Error("login succeeded without a token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := newAuthRouter()
	post(t, r, "/register", gin.H{"username": "dara", "password": "longenough"})

	w := post(t, r, "/login", gin.H{"username": "dara", "password": "wrongwrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
