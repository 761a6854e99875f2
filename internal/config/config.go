package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// StationID names this device in MQTT topics and telemetry payloads.
	StationID string

	// HistoryPath is the single durable file holding the serialized history
	// snapshot. Relative paths are resolved against the process working
	// directory.
	HistoryPath     string
	HistoryCapacity int
	RecentWindow    int
	SaveInterval    time.Duration
	SampleInterval  time.Duration

	// SensorDriver selects the climate sensor backend: "sim" (default) or
	// "bme280". The soil probe is always simulated on hosts without an ADC.
	SensorDriver string
	BME280Addr   uint16

	// MQTTBroker empty disables publishing entirely.
	MQTTBroker   string
	MQTTPort     int
	MQTTClientID string
}

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	stationID := strings.TrimSpace(os.Getenv("STATION_ID"))
	if stationID == "" {
		stationID = "soilpico"
	}

	historyPath := strings.TrimSpace(os.Getenv("HISTORY_PATH"))
	if historyPath == "" {
		historyPath = "data/history.json"
	}

	historyCapacityStr := strings.TrimSpace(os.Getenv("HISTORY_CAPACITY"))
	if historyCapacityStr == "" {
		historyCapacityStr = "500"
	}
	historyCapacity, err := strconv.Atoi(historyCapacityStr)
	if err != nil || historyCapacity <= 0 {
		return Config{}, fmt.Errorf("invalid HISTORY_CAPACITY %q (expected positive integer)", historyCapacityStr)
	}

	recentWindowStr := strings.TrimSpace(os.Getenv("RECENT_WINDOW"))
	if recentWindowStr == "" {
		recentWindowStr = "20"
	}
	recentWindow, err := strconv.Atoi(recentWindowStr)
	if err != nil || recentWindow <= 0 {
		return Config{}, fmt.Errorf("invalid RECENT_WINDOW %q (expected positive integer)", recentWindowStr)
	}

	saveIntervalStr := strings.TrimSpace(os.Getenv("SAVE_INTERVAL"))
	if saveIntervalStr == "" {
		saveIntervalStr = "5m"
	}
	saveInterval, err := time.ParseDuration(saveIntervalStr)
	if err != nil || saveInterval <= 0 {
		return Config{}, fmt.Errorf("invalid SAVE_INTERVAL %q (expected positive duration)", saveIntervalStr)
	}

	sampleIntervalStr := strings.TrimSpace(os.Getenv("SAMPLE_INTERVAL"))
	if sampleIntervalStr == "" {
		sampleIntervalStr = "30s"
	}
	sampleInterval, err := time.ParseDuration(sampleIntervalStr)
	if err != nil || sampleInterval <= 0 {
		return Config{}, fmt.Errorf("invalid SAMPLE_INTERVAL %q (expected positive duration)", sampleIntervalStr)
	}

	sensorDriver := strings.TrimSpace(os.Getenv("SENSOR_DRIVER"))
	if sensorDriver == "" {
		sensorDriver = "sim"
	}
	switch sensorDriver {
	case "sim", "bme280":
	default:
		return Config{}, fmt.Errorf("invalid SENSOR_DRIVER %q (allowed: sim, bme280)", sensorDriver)
	}

	bme280AddrStr := strings.TrimSpace(os.Getenv("BME280_ADDR"))
	if bme280AddrStr == "" {
		bme280AddrStr = "0x76"
	}
	bme280Addr, err := strconv.ParseUint(strings.TrimPrefix(bme280AddrStr, "0x"), 16, 16)
	if err != nil {
		return Config{}, fmt.Errorf("invalid BME280_ADDR %q (expected hex I2C address)", bme280AddrStr)
	}

	mqttBroker := strings.TrimSpace(os.Getenv("MQTT_BROKER"))

	mqttPortStr := strings.TrimSpace(os.Getenv("MQTT_PORT"))
	if mqttPortStr == "" {
		mqttPortStr = "1883"
	}
	mqttPort, err := strconv.Atoi(mqttPortStr)
	if err != nil || mqttPort <= 0 || mqttPort > 65535 {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %q (expected 1-65535)", mqttPortStr)
	}

	mqttClientID := strings.TrimSpace(os.Getenv("MQTT_CLIENT_ID"))
	if mqttClientID == "" {
		mqttClientID = "soilpico-" + stationID
	}

	return Config{
		AppEnv:          appEnv,
		LogLevel:        level,
		HTTPAddr:        httpAddr,
		StationID:       stationID,
		HistoryPath:     historyPath,
		HistoryCapacity: historyCapacity,
		RecentWindow:    recentWindow,
		SaveInterval:    saveInterval,
		SampleInterval:  sampleInterval,
		SensorDriver:    sensorDriver,
		BME280Addr:      uint16(bme280Addr),
		MQTTBroker:      mqttBroker,
		MQTTPort:        mqttPort,
		MQTTClientID:    mqttClientID,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
