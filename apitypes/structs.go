// Package apitypes holds the wire types shared by the PS2D API server and
// its clients.
package apitypes

import "fmt"

// ApiError represents an RFC 7807 (problem+json) error response.
type ApiError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e ApiError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

// Device describes one registered simulated device.
type Device struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Phys string `json:"phys"`
}

type DevicesListResponse struct {
	Devices []Device `json:"devices"`
}

type DeviceCreateRequest struct {
	Type *string `json:"type"`
	Name *string `json:"name,omitempty"`
}

type DeviceRemoveResponse struct {
	ID uint32 `json:"id"`
}

// InjectResponse acknowledges how many raw bytes were accepted into the
// device's ingest buffer.
type InjectResponse struct {
	ID       uint32 `json:"id"`
	Injected int    `json:"injected"`
}

// StatsResponse is a snapshot of one device's diagnostic counters.
type StatsResponse struct {
	ID             uint32 `json:"id"`
	BytesIn        uint64 `json:"bytesIn"`
	Overflows      uint64 `json:"overflows"`
	InvalidPackets uint64 `json:"invalidPackets"`
	UnmappedCodes  uint64 `json:"unmappedCodes"`
	Events         uint64 `json:"events"`
	DroppedEvents  uint64 `json:"droppedEvents"`
}

// EventRecord is one line of the device event feed. Type is one of "key",
// "button", "motion" or "sync". Code carries the key, button or axis name;
// Pressed applies to key and button records, Delta to motion records.
type EventRecord struct {
	Device  uint32 `json:"device"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Pressed bool   `json:"pressed,omitempty"`
	Delta   int32  `json:"delta,omitempty"`
}
