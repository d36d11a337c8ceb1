package coeffs

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/smahajan/grahas/pkg/residual"
)

func sampleTable() *TableData {
	return &TableData{
		RunID:       "test-run-1",
		GeneratedAt: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
		Note:        "unit test fixture",
		Bodies: residual.Table{
			"Sun": {
				OffsetDeg: 0.125,
				Terms: []residual.Term{
					{FrequencyRadPerDay: residual.Omega(residual.PeriodSolarYear), CosAmplitudeDeg: 1.5, SinAmplitudeDeg: -0.25},
				},
			},
			"Saturn": {
				OffsetDeg: -2.5,
				Terms: []residual.Term{
					{FrequencyRadPerDay: residual.Omega(residual.PeriodSaturn), CosAmplitudeDeg: 3, SinAmplitudeDeg: 4},
					{FrequencyRadPerDay: 2 * residual.Omega(residual.PeriodSaturn), CosAmplitudeDeg: -1, SinAmplitudeDeg: 0.5},
				},
			},
		},
	}
}

func assertTablesEqual(t *testing.T, got, want *TableData) {
	t.Helper()
	if got.RunID != want.RunID {
		t.Errorf("run ID = %q, expected %q", got.RunID, want.RunID)
	}
	if !got.GeneratedAt.Equal(want.GeneratedAt) {
		t.Errorf("generated at = %v, expected %v", got.GeneratedAt, want.GeneratedAt)
	}
	if got.Note != want.Note {
		t.Errorf("note = %q, expected %q", got.Note, want.Note)
	}
	if len(got.Bodies) != len(want.Bodies) {
		t.Fatalf("got %d bodies, expected %d", len(got.Bodies), len(want.Bodies))
	}
	for body, wm := range want.Bodies {
		gm, ok := got.Bodies[body]
		if !ok {
			t.Errorf("body %s missing", body)
			continue
		}
		if math.Abs(gm.OffsetDeg-wm.OffsetDeg) > 1e-12 {
			t.Errorf("%s offset = %v, expected %v", body, gm.OffsetDeg, wm.OffsetDeg)
		}
		if len(gm.Terms) != len(wm.Terms) {
			t.Errorf("%s has %d terms, expected %d", body, len(gm.Terms), len(wm.Terms))
			continue
		}
		for i, wt := range wm.Terms {
			gt := gm.Terms[i]
			if math.Abs(gt.FrequencyRadPerDay-wt.FrequencyRadPerDay) > 1e-15 ||
				math.Abs(gt.CosAmplitudeDeg-wt.CosAmplitudeDeg) > 1e-12 ||
				math.Abs(gt.SinAmplitudeDeg-wt.SinAmplitudeDeg) > 1e-12 {
				t.Errorf("%s term %d = %+v, expected %+v", body, i, gt, wt)
			}
		}
	}
}

func TestJSONProviderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coefficients.json")
	p := NewJSONProvider(path)

	if _, err := p.Load(); err == nil {
		t.Error("Load succeeded before any table was stored")
	}

	want := sampleTable()
	if err := p.Store(want); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, err := p.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertTablesEqual(t, got, want)
}

func TestSQLiteProviderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coefficients.db")
	p, err := NewSQLiteProvider(path)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer p.Close()

	if _, err := p.Load(); err == nil {
		t.Error("Load succeeded before any run was stored")
	}

	want := sampleTable()
	if err := p.Store(want); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, err := p.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertTablesEqual(t, got, want)
}

func TestSQLiteProviderLoadsLatestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coefficients.db")
	p, err := NewSQLiteProvider(path)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer p.Close()

	old := sampleTable()
	old.RunID = "run-old"
	old.GeneratedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := p.Store(old); err != nil {
		t.Fatalf("Store(old): %v", err)
	}

	latest := sampleTable()
	latest.RunID = "run-new"
	latest.GeneratedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	latest.Bodies = residual.Table{"Moon": {OffsetDeg: 7}}
	if err := p.Store(latest); err != nil {
		t.Fatalf("Store(latest): %v", err)
	}

	got, err := p.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertTablesEqual(t, got, latest)
}

func TestSQLiteProviderAssignsRunMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coefficients.db")
	p, err := NewSQLiteProvider(path)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer p.Close()

	data := &TableData{Bodies: residual.Table{"Sun": {OffsetDeg: 1}}}
	if err := p.Store(data); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if data.RunID == "" {
		t.Error("Store left RunID empty")
	}
	if data.GeneratedAt.IsZero() {
		t.Error("Store left GeneratedAt zero")
	}
}
