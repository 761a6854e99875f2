package controller

import (
	"strconv"

	"soilpico/internal/modules/history/types"
	"soilpico/internal/modules/history/views"
)

const noDataMarker = "n/a"

// dashboardData projects the current snapshot into the dashboard view
// model, with the recent window newest first.
func (c *historyControllerImpl) dashboardData() views.DashboardData {
	snap := c.service.CurrentSnapshot()
	return views.DashboardData{
		StationID: c.stationID,
		Status:    statusView(snap.Status, c.service.HasStatus()),
		Recent:    recentRows(snap.Recent),
	}
}

// statusView formats the latest status for display. An unavailable climate
// sensor renders as the "no data" marker instead of a number.
func statusView(st types.Status, hasData bool) views.StatusView {
	v := views.StatusView{
		HasData:     hasData,
		UptimeS:     st.Timestamp,
		Moisture:    st.Moisture,
		Temperature: noDataMarker,
		Humidity:    noDataMarker,
	}
	if st.Temperature != nil {
		v.Temperature = strconv.Itoa(*st.Temperature) + "°C"
	}
	if st.Humidity != nil {
		v.Humidity = strconv.Itoa(*st.Humidity) + "%"
	}
	return v
}

// recentRows reverses the chronological window so the table shows the
// newest reading first.
func recentRows(readings []types.Reading) []views.ReadingRow {
	rows := make([]views.ReadingRow, 0, len(readings))
	for i := len(readings) - 1; i >= 0; i-- {
		r := readings[i]
		rows = append(rows, views.ReadingRow{
			Timestamp:   r.Timestamp,
			Moisture:    r.Moisture,
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
		})
	}
	return rows
}
