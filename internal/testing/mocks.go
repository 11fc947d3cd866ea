package testing

import (
	"testing"

	"github.com/virtual-input/ps2d/inputbus"
	"github.com/virtual-input/ps2d/internal/server/api"
)

type mockRegistration struct {
	deviceName string

	configFunc func(name string) inputbus.DeviceConfig
	parseFunc  func(payload string) ([]byte, error)
}

func (m *mockRegistration) Config(name string) inputbus.DeviceConfig {
	return m.configFunc(name)
}

func (m *mockRegistration) ParseInject(payload string) ([]byte, error) {
	return m.parseFunc(payload)
}

func CreateMockRegistration(
	t *testing.T,
	name string,
	cf func(name string) inputbus.DeviceConfig,
	pf func(payload string) ([]byte, error),
) api.DeviceRegistration {
	return &mockRegistration{
		deviceName: name,
		configFunc: cf,
		parseFunc:  pf,
	}
}
