package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("expected defaults, got %+v", p)
	}
}

func TestFromContext_CapsLimit(t *testing.T) {
	p := paramsFor(t, "limit=5000")
	if p.Limit != MaxLimit {
		t.Errorf("expected capped limit %d, got %d", MaxLimit, p.Limit)
	}
}

func TestPage_WindowsAndTotal(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	page, total := Page(items, Params{Limit: 2, Offset: 2})
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(page) != 2 || page[0] != 3 {
		t.Errorf("unexpected window: %v", page)
	}
}

func TestPage_OffsetBeyondEnd(t *testing.T) {
	page, total := Page([]int{1, 2}, Params{Limit: 10, Offset: 5})
	if len(page) != 0 || total != 2 {
		t.Errorf("expected empty window with total 2, got %v (%d)", page, total)
	}
}
