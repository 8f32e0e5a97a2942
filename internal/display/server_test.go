package display

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"StockPortfolio/internal/model"
)

func TestHandler_Routes(t *testing.T) {
	b := NewBoard(true)
	b.Present(context.Background(), &model.FetchSuccess{RequestID: "r1", Snapshot: testSnapshot()})
	srv := httptest.NewServer(NewHandler(b, newTestFormatter(), PageOptions{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	page, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.Contains(string(page), "<table>") || !strings.Contains(string(page), "Tata Consultancy") {
		t.Errorf("expected rendered table, got:\n%s", page)
	}
	if !strings.Contains(string(page), "max-width: 100%;") {
		t.Errorf("expected default max width, got:\n%s", page)
	}

	resp, err = http.Get(srv.URL + "/api/snapshot")
	if err != nil {
		t.Fatalf("GET /api/snapshot: %v", err)
	}
	var st struct {
		Loaded   bool `json:"loaded"`
		Snapshot struct {
			Summary struct {
				InitialInvestment *string `json:"initialInvestment"`
			} `json:"summary"`
			Stocks []map[string]string `json:"stocks"`
		} `json:"snapshot"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	resp.Body.Close()
	if !st.Loaded || model.Deref(st.Snapshot.Summary.InitialInvestment) != "50000" || len(st.Snapshot.Stocks) != 3 {
		t.Errorf("unexpected snapshot payload %+v", st)
	}

	resp, err = http.Get(srv.URL + "/api/view")
	if err != nil {
		t.Fatalf("GET /api/view: %v", err)
	}
	var v View
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	resp.Body.Close()
	if len(v.Rows) != 3 || v.Rows[0][0].Text != "TCS" {
		t.Errorf("unexpected view %+v", v)
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected healthz 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandler_UnconfiguredPage(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(NewBoard(false), newTestFormatter(), PageOptions{Refresh: 30, MaxWidth: "720px"}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), "Please provide a Google Sheet CSV URL") {
		t.Errorf("expected unconfigured message, got:\n%s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `content="30"`) {
		t.Error("expected refresh interval in page")
	}
	if !strings.Contains(rec.Body.String(), "max-width: 720px;") {
		t.Errorf("expected configured max width in page:\n%s", rec.Body.String())
	}
}

func TestRenderTerminal(t *testing.T) {
	out, err := RenderTerminal(newTestFormatter().Build(testSnapshot(), nil).Markdown(), 120)
	if err != nil {
		t.Fatalf("RenderTerminal failed: %v", err)
	}
	if !strings.Contains(out, "TCS") {
		t.Errorf("expected rendered output to mention TCS:\n%s", out)
	}
}
