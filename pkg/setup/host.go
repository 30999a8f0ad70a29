package setup

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// Family is a supported host operating system family
type Family string

const (
	FamilyUnknown Family = ""
	FamilyMac     Family = "mac"
	FamilyLinux   Family = "linux"
)

// HostInfo describes the host operating system
type HostInfo struct {
	OS             string // darwin, linux, windows...
	Platform       string // e.g. ubuntu, arch, darwin
	PlatformFamily string // e.g. debian, rhel
}

// HostProbe reports the host operating system
type HostProbe interface {
	Host(ctx context.Context) (HostInfo, error)
}

// SystemProbe reads host information through gopsutil
type SystemProbe struct{}

// Host returns the host information, falling back to runtime.GOOS when gopsutil fails
func (SystemProbe) Host(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil || info.OS == "" {
		return HostInfo{OS: runtime.GOOS}, nil
	}
	return HostInfo{
		OS:             info.OS,
		Platform:       info.Platform,
		PlatformFamily: info.PlatformFamily,
	}, nil
}

// FamilyOf maps an OS name to its family
func FamilyOf(os string) Family {
	switch os {
	case "darwin":
		return FamilyMac
	case "linux":
		return FamilyLinux
	default:
		return FamilyUnknown
	}
}
