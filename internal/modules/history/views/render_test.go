package views

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadTemplates_success(t *testing.T) {
	err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates() = %v; want nil", err)
	}
	if dashboardTmpl == nil {
		t.Fatal("LoadTemplates() left dashboardTmpl nil")
	}
}

func TestLoadTemplates_failure_sub(t *testing.T) {
	// Empty FS has no "templates" directory; fs.Sub fails.
	emptyFS := fstest.MapFS{}
	err := loadTemplatesFromFS(emptyFS, "templates")
	if err == nil {
		t.Fatal("loadTemplatesFromFS(emptyFS, \"templates\") = nil; want error")
	}
}

func TestLoadTemplates_failure_parse(t *testing.T) {
	// FS with invalid template syntax; ParseFS fails.
	badFS := fstest.MapFS{
		"templates/dashboard.html":       {Data: []byte("{{ .")},
		"templates/partials/status.html": {Data: []byte("ok")},
	}
	err := loadTemplatesFromFS(badFS, "templates")
	if err == nil {
		t.Fatal("loadTemplatesFromFS(badFS, \"templates\") = nil; want error")
	}
}

func TestRenderDashboard_notLoaded(t *testing.T) {
	// Ensure templates are not loaded for this test.
	prev := dashboardTmpl
	dashboardTmpl = nil
	t.Cleanup(func() { dashboardTmpl = prev })

	var buf bytes.Buffer
	err := RenderDashboard(&buf, DashboardData{})
	if err == nil {
		t.Fatal("RenderDashboard() = nil; want error when templates not loaded")
	}
	if !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("err = %q; want message containing \"not loaded\"", err.Error())
	}
}

func TestRenderDashboard_emptyData(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	var buf bytes.Buffer
	err := RenderDashboard(&buf, DashboardData{StationID: "bench"})
	if err != nil {
		t.Fatalf("RenderDashboard() = %v; want nil", err)
	}
	out := buf.String()
	if !strings.Contains(out, "bench") {
		t.Errorf("output missing station id")
	}
	if !strings.Contains(out, "No readings yet") {
		t.Errorf("output missing empty-state message")
	}
	if !strings.Contains(out, "no data") {
		t.Errorf("output missing empty table row")
	}
}

func TestRenderDashboard_withReadings(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	data := DashboardData{
		StationID: "greenhouse-1",
		Status: StatusView{
			HasData:     true,
			UptimeS:     120,
			Moisture:    45,
			Temperature: "22°C",
			Humidity:    "60%",
		},
		Recent: []ReadingRow{
			{Timestamp: 120, Moisture: 45, Temperature: 22, Humidity: 60},
			{Timestamp: 90, Moisture: 44, Temperature: 22, Humidity: 59},
		},
	}
	var buf bytes.Buffer
	if err := RenderDashboard(&buf, data); err != nil {
		t.Fatalf("RenderDashboard() = %v; want nil", err)
	}
	out := buf.String()
	for _, want := range []string{"45%", "22°C", "60%", "<td>120</td>", "<td>90</td>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderStatusPartial(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	data := DashboardData{
		Status: StatusView{HasData: true, Moisture: 33, Temperature: "21°C", Humidity: "58%"},
	}
	var buf bytes.Buffer
	if err := RenderStatusPartial(&buf, data); err != nil {
		t.Fatalf("RenderStatusPartial() = %v; want nil", err)
	}
	if !strings.Contains(buf.String(), "33%") {
		t.Errorf("partial missing moisture: %q", buf.String())
	}
}
