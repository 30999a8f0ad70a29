package types

import (
	"errors"
	"fmt"
	"strings"

	sliceutil "github.com/projectdiscovery/utils/slice"
)

// ErrInvalidScanMode is returned when a scan mode token is not in the allow-list
var ErrInvalidScanMode = errors.New("invalid scan mode")

// ScanKind is the kind of scan the collaborator performs
type ScanKind int

const (
	Discovery ScanKind = iota
	Ports
	Vuln
)

func (k ScanKind) String() string {
	switch k {
	case Discovery:
		return "discovery"
	case Ports:
		return "ports"
	case Vuln:
		return "vuln"
	default:
		return "unknown"
	}
}

// ScanMode is a validated scan mode token, passed verbatim to the scan routine
type ScanMode string

// AllowedScanModes lists every accepted token. Matching is case-sensitive.
var AllowedScanModes = []string{
	"discovery", "ports", "vuln",
	"-d", "-p", "-v",
	"d", "p", "v",
}

// ParseScanMode trims the input and validates it against AllowedScanModes
func ParseScanMode(input string) (ScanMode, error) {
	token := strings.TrimSpace(input)
	if !sliceutil.Contains(AllowedScanModes, token) {
		return "", &ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("%q is not a valid scan type (expected one of %s)", token, strings.Join(AllowedScanModes, ", ")),
			Err:     ErrInvalidScanMode,
		}
	}
	return ScanMode(token), nil
}

// Kind returns the scan kind a token selects
func (m ScanMode) Kind() ScanKind {
	switch strings.TrimLeft(string(m), "-") {
	case "discovery", "d":
		return Discovery
	case "ports", "p":
		return Ports
	case "vuln", "v":
		return Vuln
	default:
		return -1
	}
}

func (m ScanMode) String() string {
	return string(m)
}

// ScanRequest is the handoff to the external scan routine
type ScanRequest struct {
	Range string
	Mode  ScanMode
}

// Args returns the collaborator arguments in invocation order
func (r ScanRequest) Args() []string {
	return []string{r.Range, r.Mode.String()}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
