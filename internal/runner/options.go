package runner

import (
	"os"
	"path/filepath"
	"time"

	"github.com/oa-devs/ScanMyLAN/pkg"
	"github.com/oa-devs/ScanMyLAN/pkg/handoff"
	"github.com/oa-devs/ScanMyLAN/pkg/setup"
	"github.com/oa-devs/ScanMyLAN/pkg/version"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"
)

// DefaultConfigLocation is where the optional YAML config is looked up
var DefaultConfigLocation = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "scanmylan", "config.yaml")
	}
	return filepath.Join(home, ".config", "scanmylan", "config.yaml")
}()

// Options contains the configuration options for a run
type Options struct {
	ConfigFile string
	Script     string
	Mode       string
	Output     string

	SkipSetup          bool
	PreferDefaultRoute bool

	InstallTimeout time.Duration
	ProbeTimeout   time.Duration
	ScanTimeout    time.Duration

	Verbose bool
	Silent  bool
	NoColor bool
	Version bool
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`scanmylan prepares the host, finds the local /24 and hands it to the scan routine`)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&options.ConfigFile, "config", DefaultConfigLocation, "cli flag configuration file"),
	)

	flagSet.CreateGroup("setup", "Setup",
		flagSet.BoolVarP(&options.SkipSetup, "skip-setup", "ss", false, "skip package manager and nmap checks"),
		flagSet.DurationVarP(&options.InstallTimeout, "install-timeout", "it", setup.DefaultInstallTimeout, "timeout for each installer invocation"),
		flagSet.DurationVarP(&options.ProbeTimeout, "probe-timeout", "pt", setup.DefaultProbeTimeout, "timeout for brew and nmap presence checks"),
	)

	flagSet.CreateGroup("scan", "Scan",
		flagSet.StringVarP(&options.Script, "script", "s", pkg.DefaultScanScript, "scan routine invoked as <script> <range> <mode>"),
		flagSet.StringVarP(&options.Mode, "mode", "m", "", "scan type (discovery, ports, vuln), prompts when empty"),
		flagSet.BoolVarP(&options.PreferDefaultRoute, "prefer-default-route", "pdr", false, "prefer the interface carrying the default route"),
		flagSet.DurationVarP(&options.ScanTimeout, "scan-timeout", "st", handoff.DefaultScanTimeout, "timeout for the scan routine"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "o", "", "directory to write the json run summary to"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only errors and the prompt"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	if options.ConfigFile != "" && fileutil.FileExists(options.ConfigFile) {
		if err := flagSet.MergeConfigFile(options.ConfigFile); err != nil {
			gologger.Fatal().Msgf("Could not read config: %s\n", err)
		}
	}

	options.configureOutput()

	showBanner()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version.GetVersion())
		os.Exit(0)
	}

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}
