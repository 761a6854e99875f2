package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"soilpico/internal/config"
	"soilpico/internal/httpapi"
	history "soilpico/internal/modules/history"
	"soilpico/internal/modules/history/persist"
	"soilpico/internal/modules/history/service"
	"soilpico/internal/modules/history/store"
	historyviews "soilpico/internal/modules/history/views"
	"soilpico/internal/mqtt"
	"soilpico/internal/sensor"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"stationId", cfg.StationID,
		"historyPath", cfg.HistoryPath,
		"historyCapacity", cfg.HistoryCapacity,
		"recentWindow", cfg.RecentWindow,
		"saveInterval", cfg.SaveInterval,
		"sampleInterval", cfg.SampleInterval,
		"sensorDriver", cfg.SensorDriver,
		"mqttBroker", cfg.MQTTBroker,
		"mqttPort", cfg.MQTTPort,
	)

	if err := historyviews.LoadTemplates(); err != nil {
		return err
	}

	historyStore := store.New(cfg.HistoryCapacity)
	gateway := persist.NewGateway(cfg.HistoryPath, slog.Default())
	svc := service.New(historyStore, gateway, slog.Default(), service.Options{
		SaveInterval: cfg.SaveInterval,
		RecentWindow: cfg.RecentWindow,
	})
	svc.LoadHistory()

	soil, climate, closeSensors, err := buildSensors(cfg)
	if err != nil {
		return err
	}
	defer closeSensors()

	// MQTT is optional: no broker configured means the monitor serves HTTP
	// only. A broker that is configured but down must not block startup, so
	// the initial connect gets a short timeout and failure degrades to
	// publish-less operation (paho keeps retrying in the background).
	var publisher *mqtt.Publisher
	if cfg.MQTTBroker != "" {
		publisher = mqtt.NewPublisher(cfg, slog.Default())
		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		err := publisher.Connect(connectCtx)
		connectCancel()
		if err != nil {
			slog.Warn("mqtt connection failed (continuing without mqtt)", "error", err)
		}
	}

	mux := httpapi.NewMux(svc)
	history.RegisterFeature(mux, svc, cfg.StationID)

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	go sampleLoop(ctx, cfg, svc, soil, climate, publisher)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if publisher != nil {
		slog.Info("mqtt disconnecting")
		publisher.Disconnect()
	}

	slog.Info("flushing history")
	if err := svc.FlushNow(); err != nil {
		slog.Warn("final history flush failed", "error", err)
	}

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}

// sampleLoop ticks at the configured interval, records one sample per tick,
// and publishes it when a broker is connected. No failure here may halt the
// loop: a climate read error admits the sample without climate fields, and
// publish errors are logged and dropped.
func sampleLoop(ctx context.Context, cfg config.Config, svc *service.Service, soil sensor.SoilProbe, climate sensor.ClimateSensor, publisher *mqtt.Publisher) {
	ticker := time.NewTicker(cfg.SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			moisture, err := soil.ReadMoisture()
			if err != nil {
				slog.Warn("soil probe read failed, skipping sample", "error", err)
				continue
			}

			var temperature, humidity *float64
			t, h, err := climate.ReadClimate()
			if err != nil {
				slog.Warn("climate sensor read failed, recording without climate", "error", err)
			} else {
				temperature, humidity = &t, &h
			}

			svc.Record(moisture, temperature, humidity)

			if publisher == nil || !publisher.IsConnected() {
				continue
			}
			snap := svc.CurrentSnapshot()
			telemetry := mqtt.Telemetry{
				Timestamp:   time.Now(),
				UptimeS:     snap.Status.Timestamp,
				Moisture:    snap.Status.Moisture,
				Temperature: snap.Status.Temperature,
				Humidity:    snap.Status.Humidity,
			}
			if err := publisher.PublishTelemetry(telemetry); err != nil {
				slog.Warn("telemetry publish failed", "error", err)
			}
		}
	}
}

func buildSensors(cfg config.Config) (sensor.SoilProbe, sensor.ClimateSensor, func(), error) {
	sim := sensor.NewSim(time.Now().UnixNano())
	if cfg.SensorDriver != "bme280" {
		return sim, sim, func() {}, nil
	}

	bme, err := sensor.NewBME280(cfg.BME280Addr)
	if err != nil {
		return nil, nil, nil, err
	}
	closeSensors := func() {
		if err := bme.Close(); err != nil {
			slog.Error("bme280 close", "error", err)
		}
	}
	// No ADC on the host board; the soil probe stays simulated.
	return sim, bme, closeSensors, nil
}
