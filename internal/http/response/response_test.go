package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/v1/posts/5", nil)
	return c, w
}

func TestSeeOtherSetsLocationAndStatus(t *testing.T) {
	c, w := newTestContext()
	c.Set("request_id", "req-1")
	SeeOther(c, "/api/v1/posts/5", "moved", gin.H{"post_id": 5})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("HTTP status want 303 got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/api/v1/posts/5" {
		t.Fatalf("unexpected location %q", got)
	}
	var body struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body.StatusCode != CodeSeeOther || body.Data["request_id"] != "req-1" || body.Data["post_id"] != float64(5) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestAttachRequestIDWrapsNonMapData(t *testing.T) {
	c, _ := newTestContext()
	c.Set("request_id", "req-2")
	got, ok := attachRequestID(c, []int{1, 2}).(gin.H)
	if !ok || got["request_id"] != "req-2" {
		t.Fatalf("slice data should be wrapped, got %#v", got)
	}
	if data := attachRequestID(nil, "plain"); data != "plain" {
		t.Fatalf("without context data is returned as is, got %#v", data)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25, 3)
	if p.Page != 2 || p.PageSize != 10 || p.Total != 25 || p.TotalPage != 3 {
		t.Fatalf("unexpected pagination %+v", p)
	}
}
