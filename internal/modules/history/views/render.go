package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
)

var dashboardTmpl *template.Template

// loadTemplatesFromFS loads dashboard templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	dashboardTmpl, err = template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads embedded dashboard templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// StatusView is the view model for the current-conditions block. Temperature
// and Humidity are pre-formatted so "no data" renders as a marker instead of
// a number.
type StatusView struct {
	HasData     bool
	UptimeS     uint32
	Moisture    int
	Temperature string
	Humidity    string
}

// ReadingRow is the view model for one history table row.
type ReadingRow struct {
	Timestamp   uint32
	Moisture    int
	Temperature int
	Humidity    int
}

// DashboardData is the view model for the dashboard page.
type DashboardData struct {
	StationID string
	Status    StatusView
	Recent    []ReadingRow
}

func RenderDashboard(w io.Writer, data DashboardData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data)
}

// RenderStatusPartial executes only the current-conditions partial into w.
// Use for fragment refresh.
func RenderStatusPartial(w io.Writer, data DashboardData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "partials/status.html", data)
}
