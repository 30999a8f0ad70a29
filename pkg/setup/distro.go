package setup

import (
	"context"

	"github.com/oa-devs/ScanMyLAN/pkg"
	"github.com/projectdiscovery/gologger"
)

// ensureLinuxPackageManager is a no-op, packages are installed per distribution
func (i *Installer) ensureLinuxPackageManager(ctx context.Context) bool {
	gologger.Info().Msg("Linux detected - package management will be handled per distribution")
	if info, err := i.Host(ctx); err == nil && info.Platform != "" {
		gologger.Verbose().Msgf("Detected platform: %s (family %s)", info.Platform, info.PlatformFamily)
	}
	return true
}

// distroInstallCommands returns the install attempts in order: apt (Debian/Ubuntu),
// yum (RHEL/CentOS), pacman (Arch)
func distroInstallCommands(tool string) []pkg.Command {
	return []pkg.Command{
		{Name: "sudo", Args: []string{"apt", "install", "-y", tool}},
		{Name: "sudo", Args: []string{"yum", "install", "-y", tool}},
		{Name: "sudo", Args: []string{"pacman", "-S", "--noconfirm", tool}},
	}
}
