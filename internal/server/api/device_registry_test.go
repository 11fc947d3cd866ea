package api_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtual-input/ps2d/inputbus"
	"github.com/virtual-input/ps2d/internal/server/api"
	th "github.com/virtual-input/ps2d/internal/testing"
	"github.com/virtual-input/ps2d/pipeline"
)

func mockConfig(name string) inputbus.DeviceConfig {
	return inputbus.DeviceConfig{
		Name:       name,
		Type:       "mock",
		BufferSize: 16,
		NewDecoder: func(logger *slog.Logger, counters *pipeline.Counters) pipeline.Decoder {
			return nil
		},
	}
}

func TestDeviceRegistry(t *testing.T) {
	tests := []struct {
		name         string
		registerName string
		lookupName   string
		shouldFind   bool
	}{
		{
			name:         "register and retrieve exact match",
			registerName: "testdevice",
			lookupName:   "testdevice",
			shouldFind:   true,
		},
		{
			name:         "case insensitive lookup",
			registerName: "TestDevice",
			lookupName:   "testdevice",
			shouldFind:   true,
		},
		{
			name:         "case insensitive lookup uppercase",
			registerName: "mydevice",
			lookupName:   "MYDEVICE",
			shouldFind:   true,
		},
		{
			name:         "lookup non-existent device",
			registerName: "device1",
			lookupName:   "device2",
			shouldFind:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testRegName := tt.name + "_" + tt.registerName

			parseCalled := false
			reg := th.CreateMockRegistration(
				t,
				tt.registerName,
				mockConfig,
				func(payload string) ([]byte, error) {
					parseCalled = true
					return []byte{0x01}, nil
				},
			)

			api.RegisterDevice(testRegName, reg)

			testLookupName := tt.name + "_" + tt.lookupName
			retrieved := api.GetRegistration(testLookupName)

			if tt.shouldFind {
				assert.NotNil(t, retrieved, "expected to find registered device")
				if retrieved != nil {
					cfg := retrieved.Config("instance")
					assert.Equal(t, "instance", cfg.Name)

					_, err := retrieved.ParseInject("0x01")
					assert.NoError(t, err)
					assert.True(t, parseCalled, "expected parse func to be called")
				}
			} else {
				assert.Nil(t, retrieved, "expected not to find device")
			}
		})
	}
}

func TestParseInjectBytes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
		expect  []byte
		wantErr bool
	}{
		{
			name:    "single hex byte",
			payload: "0x1E",
			want:    1,
			expect:  []byte{0x1E},
		},
		{
			name:    "decimal byte",
			payload: "30",
			want:    1,
			expect:  []byte{30},
		},
		{
			name:    "octal byte",
			payload: "010",
			want:    1,
			expect:  []byte{8},
		},
		{
			name:    "three byte packet",
			payload: "0x08 0x0A 0x00",
			want:    3,
			expect:  []byte{0x08, 0x0A, 0x00},
		},
		{
			name:    "extra whitespace tolerated",
			payload: "  0x08\t0x0A   0x00 ",
			want:    3,
			expect:  []byte{0x08, 0x0A, 0x00},
		},
		{
			name:    "too few values",
			payload: "0x08 0x0A",
			want:    3,
			wantErr: true,
		},
		{
			name:    "too many values",
			payload: "0x08 0x0A 0x00 0x01",
			want:    3,
			wantErr: true,
		},
		{
			name:    "value out of range",
			payload: "0x100",
			want:    1,
			wantErr: true,
		},
		{
			name:    "not a number",
			payload: "banana",
			want:    1,
			wantErr: true,
		},
		{
			name:    "negative value",
			payload: "-1",
			want:    1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := api.ParseInjectBytes(tt.payload, tt.want)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}
