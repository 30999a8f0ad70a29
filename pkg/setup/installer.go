package setup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oa-devs/ScanMyLAN/pkg"
	"github.com/projectdiscovery/gcache"
	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
)

const (
	// ScanTool is the binary the scan routine depends on
	ScanTool = "nmap"

	DefaultInstallTimeout = 300 * time.Second
	DefaultProbeTimeout   = 30 * time.Second

	hostCacheKey = "host"
)

// ErrUnsupportedOS is returned for any host that is neither macOS nor Linux
var ErrUnsupportedOS = errors.New("unsupported operating system. This tool only supports Mac and Linux")

// Installer checks for and installs the package manager and the scan tool
type Installer struct {
	commander      pkg.Commander
	probe          HostProbe
	hosts          gcache.Cache[string, HostInfo]
	installTimeout time.Duration
	probeTimeout   time.Duration
}

// Option configures an Installer
type Option func(*Installer)

// WithInstallTimeout bounds every installer invocation
func WithInstallTimeout(timeout time.Duration) Option {
	return func(i *Installer) {
		if timeout > 0 {
			i.installTimeout = timeout
		}
	}
}

// WithProbeTimeout bounds presence checks such as `which`
func WithProbeTimeout(timeout time.Duration) Option {
	return func(i *Installer) {
		if timeout > 0 {
			i.probeTimeout = timeout
		}
	}
}

// NewInstaller creates a new installer using the given process runner and host probe
func NewInstaller(commander pkg.Commander, probe HostProbe, opts ...Option) *Installer {
	i := &Installer{
		commander:      commander,
		probe:          probe,
		hosts:          gcache.New[string, HostInfo](1).LRU().Build(),
		installTimeout: DefaultInstallTimeout,
		probeTimeout:   DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Host returns the probed host information. The probe runs once per installer.
func (i *Installer) Host(ctx context.Context) (HostInfo, error) {
	if info, err := i.hosts.Get(hostCacheKey); err == nil {
		return info, nil
	}
	info, err := i.probe.Host(ctx)
	if err != nil {
		return HostInfo{}, errorutil.NewWithErr(err).Msgf("could not detect host operating system")
	}
	_ = i.hosts.Set(hostCacheKey, info)
	return info, nil
}

// DetectFamily returns the host family or ErrUnsupportedOS
func (i *Installer) DetectFamily(ctx context.Context) (Family, error) {
	info, err := i.Host(ctx)
	if err != nil {
		return FamilyUnknown, err
	}
	family := FamilyOf(info.OS)
	if family == FamilyUnknown {
		return FamilyUnknown, fmt.Errorf("%w (detected %s)", ErrUnsupportedOS, info.OS)
	}
	return family, nil
}

// EnsurePackageManager makes sure the family's package manager is available
func (i *Installer) EnsurePackageManager(ctx context.Context) bool {
	family, err := i.DetectFamily(ctx)
	if err != nil {
		gologger.Error().Msgf("%s", err)
		return false
	}

	switch family {
	case FamilyMac:
		return i.ensureHomebrew(ctx)
	case FamilyLinux:
		return i.ensureLinuxPackageManager(ctx)
	default:
		return false
	}
}

// EnsureScanTool makes sure the scan tool is installed, installing it when missing
func (i *Installer) EnsureScanTool(ctx context.Context) bool {
	family, err := i.DetectFamily(ctx)
	if err != nil {
		gologger.Error().Msgf("%s", err)
		return false
	}

	if i.isInstalled(ctx, ScanTool) {
		gologger.Info().Msgf("%s is installed", displayName(ScanTool))
		return true
	}

	gologger.Info().Msgf("%s is not installed", displayName(ScanTool))
	gologger.Info().Msgf("Installing %s .........", ScanTool)

	var candidates []pkg.Command
	switch family {
	case FamilyMac:
		candidates = homebrewInstallCommands(ScanTool)
	case FamilyLinux:
		candidates = distroInstallCommands(ScanTool)
	}

	for _, candidate := range candidates {
		candidate.Timeout = i.installTimeout
		candidate.Attach = true
		outcome := i.commander.Run(ctx, candidate)
		if outcome.Success() {
			gologger.Info().Msgf("%s installed successfully", displayName(ScanTool))
			return true
		}
		gologger.Warning().Msgf("'%s' failed: %s", candidate, outcome)
	}

	gologger.Error().Msg(i.getInstallationInstructions(family))
	return false
}

// isInstalled performs a which-style lookup for a binary
func (i *Installer) isInstalled(ctx context.Context, binary string) bool {
	outcome := i.commander.Run(ctx, pkg.Command{
		Name:    "which",
		Args:    []string{binary},
		Timeout: i.probeTimeout,
	})
	return outcome.Success()
}

// getInstallationInstructions returns the manual installation hint for a family
func (i *Installer) getInstallationInstructions(family Family) string {
	switch family {
	case FamilyMac:
		return fmt.Sprintf("Failed to install %s. Please install it manually: brew install %s", displayName(ScanTool), ScanTool)
	default:
		return fmt.Sprintf("Failed to install %s. Please install it manually.", displayName(ScanTool))
	}
}

func displayName(binary string) string {
	switch binary {
	case "nmap":
		return "Nmap"
	case "brew":
		return "Homebrew"
	default:
		return binary
	}
}
