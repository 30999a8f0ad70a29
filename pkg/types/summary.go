package types

import (
	"encoding/json"
	"time"
)

// InterfaceEntry is one row of the interface listing
type InterfaceEntry struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Range   string `json:"range,omitempty"`
}

// RunSummary records what a single run did
type RunSummary struct {
	RunID          string           `json:"run_id"`
	Timestamp      string           `json:"timestamp"` // RFC3339 format date-time
	Family         string           `json:"family"`
	PackageManager bool             `json:"package_manager"`
	ScanTool       bool             `json:"scan_tool"`
	SetupSkipped   bool             `json:"setup_skipped,omitempty"`
	Interfaces     []InterfaceEntry `json:"interfaces"`
	PrivateIP      string           `json:"private_ip,omitempty"`
	NetworkRange   string           `json:"network_range,omitempty"`
	Mode           string           `json:"mode,omitempty"`

	// Optional fields
	ScanResult *string `json:"scan_result,omitempty"`
}

// SetTimestamp sets the timestamp from a time.Time value
func (s *RunSummary) SetTimestamp(t time.Time) {
	s.Timestamp = t.Format(time.RFC3339)
}

// SetScanResult sets the scan result field
func (s *RunSummary) SetScanResult(result string) {
	s.ScanResult = &result
}

// Marshal encodes the summary as indented JSON
func (s *RunSummary) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
