package sensor

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// BME280 reads temperature and humidity from a BME280/BMP280 on the default
// I2C bus.
type BME280 struct {
	bus i2c.BusCloser
	dev *bmxx80.Dev
}

func NewBME280(addr uint16) (*BME280, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open("") // default bus, usually /dev/i2c-1
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.DefaultOpts)
	if err != nil {
		if closeErr := bus.Close(); closeErr != nil {
			return nil, fmt.Errorf("bme280 init: %w (bus close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("bme280 init: %w", err)
	}
	return &BME280{bus: bus, dev: dev}, nil
}

func (b *BME280) ReadClimate() (float64, float64, error) {
	var env physic.Env
	if err := b.dev.Sense(&env); err != nil {
		return 0, 0, fmt.Errorf("sense: %w", err)
	}

	temperature := env.Temperature.Celsius()

	// env.Humidity is an int32 fixed point integer at a precision of
	// 0.00001%rH. Valid values are between 0% and 100%.
	humidity := float64(env.Humidity) / 100000.0

	return temperature, humidity, nil
}

func (b *BME280) Close() error {
	if err := b.dev.Halt(); err != nil {
		return err
	}
	return b.bus.Close()
}
