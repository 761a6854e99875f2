package sensor

// SoilProbe reads soil moisture as a percentage, already linearly mapped
// from the probe's raw analog range by the driver.
type SoilProbe interface {
	ReadMoisture() (float64, error)
}

// ClimateSensor reads air temperature in Celsius and relative humidity in
// percent. A read error means "no valid reading this tick"; the caller
// records the sample without climate fields rather than skipping it.
type ClimateSensor interface {
	ReadClimate() (temperature float64, humidity float64, err error)
}
