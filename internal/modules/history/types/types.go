package types

// Reading is one stored sensor sample. Timestamp is seconds since the
// current boot, not wall clock: the device has no battery-backed RTC, so
// timestamps reset to ~0 on every restart and must not be compared across
// boot sessions.
type Reading struct {
	Timestamp   uint32 `json:"ts"`
	Moisture    int    `json:"m"`
	Temperature int    `json:"t"`
	Humidity    int    `json:"h"`
}

// Status is the latest computed state for dashboard polling. Temperature
// and Humidity are nil when the climate sensor had no valid reading at the
// last sample; moisture admission is independent of the climate sensor.
type Status struct {
	Timestamp   uint32 `json:"ts"`
	Moisture    int    `json:"moisture_pct"`
	Temperature *int   `json:"temperature_c,omitempty"`
	Humidity    *int   `json:"humidity_pct,omitempty"`
}

// Snapshot is the dashboard-polling payload: the latest status plus the
// most recent readings in chronological order.
type Snapshot struct {
	Status Status    `json:"status"`
	Recent []Reading `json:"recent"`
}
