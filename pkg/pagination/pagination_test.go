package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	return FromContext(c)
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.Limit != DefaultLimit {
		t.Errorf("expected limit %d, got %d", DefaultLimit, p.Limit)
	}
}

func TestFromContext_ClampsLimit(t *testing.T) {
	p := paramsFor(t, "page=3&limit=500")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
}

func TestFromContext_RejectsNonPositive(t *testing.T) {
	p := paramsFor(t, "page=-2&limit=0")
	if p.Page != 1 || p.Limit != DefaultLimit {
		t.Errorf("expected defaults, got page=%d limit=%d", p.Page, p.Limit)
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 4, Limit: 25}
	if got := p.Offset(); got != 75 {
		t.Errorf("expected offset 75, got %d", got)
	}
}

func TestNewMeta(t *testing.T) {
	p := Params{Page: 2, Limit: 10}
	meta := p.NewMeta(35)
	if meta.TotalPages != 4 {
		t.Errorf("expected 4 pages, got %d", meta.TotalPages)
	}
	if meta.Total != 35 {
		t.Errorf("expected total 35, got %d", meta.Total)
	}

	exact := p.NewMeta(30)
	if exact.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", exact.TotalPages)
	}
}
