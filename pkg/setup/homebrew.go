package setup

import (
	"context"

	"github.com/oa-devs/ScanMyLAN/pkg"
	"github.com/projectdiscovery/gologger"
)

// HomebrewInstallScript is the official Homebrew installer
const HomebrewInstallScript = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

// ensureHomebrew checks for brew and runs the remote install script when it is missing
func (i *Installer) ensureHomebrew(ctx context.Context) bool {
	check := i.commander.Run(ctx, pkg.Command{
		Name:    "brew",
		Args:    []string{"--version"},
		Timeout: i.probeTimeout,
	})
	if check.Success() {
		gologger.Info().Msg("Homebrew is installed")
		return true
	}

	gologger.Info().Msg("Homebrew is not installed")
	gologger.Info().Msg("Installing homebrew .........")

	install := i.commander.Run(ctx, pkg.Command{
		Name:    "/bin/bash",
		Args:    []string{"-c", `$(curl -fsSL ` + HomebrewInstallScript + `)`},
		Timeout: i.installTimeout,
		Attach:  true,
	})
	if install.Success() {
		gologger.Info().Msg("Homebrew installed successfully")
		return true
	}

	gologger.Error().Msgf("Failed to install Homebrew: %s", install)
	return false
}

func homebrewInstallCommands(tool string) []pkg.Command {
	return []pkg.Command{
		{Name: "brew", Args: []string{"install", tool}},
	}
}
