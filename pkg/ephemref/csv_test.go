package ephemref

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const exportSample = `body,timestamp,longitude_deg
Sun,2026-01-01T00:00:00Z,280.234
Sun,2026-01-02T00:00:00Z,281.253
Mars,2026-01-01T00:00:00Z,83.915
`

func TestCSVProviderLookup(t *testing.T) {
	p, err := ReadCSV(strings.NewReader(exportSample))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	at := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	lon, err := p.LongitudeDeg(context.Background(), "Sun", at)
	if err != nil {
		t.Fatalf("LongitudeDeg: %v", err)
	}
	if math.Abs(lon-281.253) > 1e-12 {
		t.Errorf("longitude = %v, expected 281.253", lon)
	}

	if _, err := p.LongitudeDeg(context.Background(), "Venus", at); err == nil {
		t.Error("lookup succeeded for body absent from export")
	}
	missing := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := p.LongitudeDeg(context.Background(), "Sun", missing); err == nil {
		t.Error("lookup succeeded for instant absent from export")
	}

	if got := len(p.Bodies()); got != 2 {
		t.Errorf("Bodies() returned %d names, expected 2", got)
	}
}

func TestCSVProviderRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"header only":   "body,timestamp,longitude_deg\n",
		"bad timestamp": "Sun,yesterday,280\n",
		"bad longitude": "Sun,2026-01-01T00:00:00Z,many\n",
		"out of range":  "Sun,2026-01-01T00:00:00Z,400\n",
		"short record":  "Sun,2026-01-01T00:00:00Z\n",
	}
	for name, input := range cases {
		if _, err := ReadCSV(strings.NewReader(input)); err == nil {
			t.Errorf("%s: ReadCSV accepted bad input", name)
		}
	}
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/longitude" {
			http.NotFound(w, r)
			return
		}
		body := r.URL.Query().Get("body")
		if body == "Vulcan" {
			http.Error(w, "unknown body", http.StatusNotFound)
			return
		}
		if _, err := time.Parse(time.RFC3339, r.URL.Query().Get("at")); err != nil {
			http.Error(w, "bad timestamp", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"body":"` + body + `","longitude_deg":123.456}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, 5*time.Second)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	lon, err := p.LongitudeDeg(context.Background(), "Mars", at)
	if err != nil {
		t.Fatalf("LongitudeDeg: %v", err)
	}
	if math.Abs(lon-123.456) > 1e-12 {
		t.Errorf("longitude = %v, expected 123.456", lon)
	}

	if _, err := p.LongitudeDeg(context.Background(), "Vulcan", at); err == nil {
		t.Error("LongitudeDeg succeeded on 404 response")
	}
}

func TestHTTPProviderRejectsOutOfRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"body":"Sun","longitude_deg":360.0}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second)
	if _, err := p.LongitudeDeg(context.Background(), "Sun", time.Now()); err == nil {
		t.Error("LongitudeDeg accepted out-of-range longitude")
	}
}
