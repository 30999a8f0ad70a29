package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/oa-devs/ScanMyLAN/pkg"
	"github.com/oa-devs/ScanMyLAN/pkg/handoff"
	"github.com/oa-devs/ScanMyLAN/pkg/netif"
	"github.com/oa-devs/ScanMyLAN/pkg/setup"
	"github.com/oa-devs/ScanMyLAN/pkg/types"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
	"github.com/rs/xid"
)

const (
	separator  = "============================================================"
	scanPrompt = "Enter the type of scan (discovery, ports, vuln): "
)

// Runner contains the internal logic of the program
type Runner struct {
	options *Options

	commander pkg.Commander
	hosts     setup.HostProbe
	source    netif.Source
	routes    netif.RouteProbe

	installer *setup.Installer
	launcher  *handoff.Launcher

	in  *bufio.Reader
	out io.Writer
	au  *aurora.Aurora

	summary types.RunSummary
}

// RunnerOption overrides a collaborator of the runner
type RunnerOption func(*Runner)

// WithCommander sets the process runner used for every external call
func WithCommander(commander pkg.Commander) RunnerOption {
	return func(r *Runner) { r.commander = commander }
}

// WithHostProbe sets the OS probe
func WithHostProbe(probe setup.HostProbe) RunnerOption {
	return func(r *Runner) { r.hosts = probe }
}

// WithSource sets the network interface source
func WithSource(source netif.Source) RunnerOption {
	return func(r *Runner) { r.source = source }
}

// WithRouteProbe sets the default-route probe
func WithRouteProbe(probe netif.RouteProbe) RunnerOption {
	return func(r *Runner) { r.routes = probe }
}

// WithIO sets where the prompt reads from and where the report is written to
func WithIO(in io.Reader, out io.Writer) RunnerOption {
	return func(r *Runner) {
		r.in = bufio.NewReader(in)
		r.out = out
	}
}

// NewRunner instance
func NewRunner(options *Options, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		options:   options,
		commander: pkg.NewExecCommander(),
		hosts:     setup.SystemProbe{},
		source:    netif.SystemSource{},
		routes:    netif.GatewayProbe{},
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}

	script := options.Script
	if script == "" {
		script = pkg.DefaultScanScript
	}

	r.installer = setup.NewInstaller(r.commander, r.hosts,
		setup.WithInstallTimeout(options.InstallTimeout),
		setup.WithProbeTimeout(options.ProbeTimeout),
	)
	r.launcher = handoff.NewLauncher(r.commander, script, options.ScanTimeout)
	r.au = aurora.New(aurora.WithColors(!options.NoColor))
	return r, nil
}

// Run the instance. Only an unsupported OS and an invalid scan mode are
// returned as errors; everything else is reported and the run continues.
func (r *Runner) Run(ctx context.Context) error {
	r.summary = types.RunSummary{RunID: xid.New().String()}
	r.summary.SetTimestamp(time.Now())
	defer r.writeSummary()

	family, err := r.installer.DetectFamily(ctx)
	if err != nil {
		return err
	}
	r.summary.Family = string(family)

	if r.options.SkipSetup {
		r.summary.SetupSkipped = true
		gologger.Info().Msg("Skipping package manager and nmap checks")
	} else {
		r.prepare(ctx)
	}

	address, networkRange := r.resolve(ctx)
	if networkRange == "" {
		fmt.Fprintln(r.out, "Could not determine network range. Exiting.")
		return nil
	}

	if err := r.launcher.MakeExecutable(ctx); err != nil {
		gologger.Warning().Msgf("%s", err)
	}

	mode, err := r.scanMode(ctx)
	if err != nil {
		return err
	}
	r.summary.Mode = mode.String()

	req := types.ScanRequest{Range: networkRange, Mode: mode}
	gologger.Info().Msgf("Scanning %s (%s) with %s", networkRange, address, mode.Kind())
	r.report(r.launcher.Launch(ctx, req))
	return nil
}

// prepare runs the environment checks and prints the summary line
func (r *Runner) prepare(ctx context.Context) {
	r.summary.PackageManager = r.installer.EnsurePackageManager(ctx)
	r.summary.ScanTool = r.installer.EnsureScanTool(ctx)

	var failed []string
	if !r.summary.PackageManager {
		failed = append(failed, "package manager")
	}
	if !r.summary.ScanTool {
		failed = append(failed, setup.ScanTool)
	}

	if len(failed) == 0 {
		gologger.Info().Msg("All tools installed successfully")
		return
	}
	gologger.Warning().Msgf("Failed: %s", strings.Join(failed, ", "))
}

// resolve lists the interfaces and picks the private address and range
func (r *Runner) resolve(ctx context.Context) (string, string) {
	fmt.Fprintln(r.out, separator)
	fmt.Fprintln(r.out, "    NETWORK SCANNING CONFIGURATION")
	fmt.Fprintln(r.out, separator)

	fmt.Fprintln(r.out, "\nAll Network Interfaces:")
	interfaces, err := netif.Enumerate(ctx, r.source)
	if err != nil {
		gologger.Error().Msgf("Error getting network interfaces: %s", err)
	}
	if interfaces.Len() == 0 {
		fmt.Fprintln(r.out, "  No interfaces found")
	}
	interfaces.Iterate(func(name, address string) bool {
		entry := types.InterfaceEntry{Name: name, Address: address}
		if networkRange, ok := netif.DeriveRange(address); ok {
			entry.Range = networkRange
			fmt.Fprintf(r.out, "  %s: %s (%s)\n", name, address, networkRange)
		} else {
			fmt.Fprintf(r.out, "  %s: %s\n", name, address)
		}
		r.summary.Interfaces = append(r.summary.Interfaces, entry)
		return true
	})

	fmt.Fprintln(r.out, separator)
	fmt.Fprintln(r.out, "    PRIVATE IP AND NETWORK RANGE")
	fmt.Fprintln(r.out, separator)

	address, networkRange, ok := r.choose(interfaces)
	if !ok {
		return "", ""
	}
	r.summary.PrivateIP = address
	r.summary.NetworkRange = networkRange

	fmt.Fprintf(r.out, "  Private IP: %s\n", r.au.Green(address))
	if size, err := netif.RangeSize(networkRange); err == nil {
		fmt.Fprintf(r.out, "  Network Range: %s (%d addresses)\n", r.au.Green(networkRange), size)
	} else {
		fmt.Fprintf(r.out, "  Network Range: %s\n", r.au.Green(networkRange))
	}
	return address, networkRange
}

func (r *Runner) choose(interfaces *netif.AddressMap) (string, string, bool) {
	if !r.options.PreferDefaultRoute {
		return netif.Resolve(interfaces)
	}
	ip, err := r.routes.DefaultInterfaceIP()
	if err != nil {
		gologger.Warning().Msgf("Could not query default route, using first interface: %s", err)
		return netif.Resolve(interfaces)
	}
	gologger.Verbose().Msgf("Default route interface address: %s", ip)
	return netif.ResolvePreferring(interfaces, ip)
}

type promptLine struct {
	text string
	err  error
}

// scanMode returns the mode from the options or prompts for it. The prompt
// gives up when ctx is cancelled.
func (r *Runner) scanMode(ctx context.Context) (types.ScanMode, error) {
	input := r.options.Mode
	if input == "" {
		fmt.Fprint(r.out, scanPrompt)

		lines := make(chan promptLine, 1)
		go func() {
			text, err := r.in.ReadString('\n')
			lines <- promptLine{text: text, err: err}
		}()

		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return "", ctx.Err()
		case line := <-lines:
			if line.err != nil && line.text == "" {
				fmt.Fprintln(r.out)
				return "", fmt.Errorf("%w: no scan type entered", types.ErrInvalidScanMode)
			}
			input = line.text
		}
	}
	mode, err := types.ParseScanMode(input)
	if err != nil {
		fmt.Fprintf(r.out, "Invalid scan type: %s\n", err)
		return "", err
	}
	return mode, nil
}

// report prints a distinct message for each way the scan routine can end
func (r *Runner) report(result handoff.Result) {
	script := r.launcher.Script()
	switch result.Kind {
	case handoff.ResultOK:
		gologger.Info().Msgf("%s completed %s", script, r.au.Green("successfully"))
	case handoff.ResultNotFound:
		gologger.Error().Msgf("%s not found. Please ensure the script is in the current directory.", script)
	case handoff.ResultNonZeroExit:
		gologger.Error().Msgf("Scanner failed with error: %s returned %s", script, result.Outcome)
	case handoff.ResultTimeout:
		gologger.Error().Msgf("Scanner timed out after %s", r.launcher.ScanTimeout())
	default:
		gologger.Error().Msgf("Scanner could not be run: %s", result.Outcome)
	}
	r.summary.SetScanResult(result.Kind.String())
}

// writeSummary writes the json run summary when an output directory is configured
func (r *Runner) writeSummary() {
	if r.options.Output == "" {
		return
	}
	if !fileutil.FolderExists(r.options.Output) {
		if err := fileutil.CreateFolder(r.options.Output); err != nil {
			gologger.Warning().Msgf("Could not create output folder: %s", err)
			return
		}
	}
	data, err := r.summary.Marshal()
	if err != nil {
		gologger.Warning().Msgf("Could not encode run summary: %s", err)
		return
	}
	file := filepath.Join(r.options.Output, fmt.Sprintf("scanmylan-%s.json", r.summary.RunID))
	if err := os.WriteFile(file, data, 0644); err != nil {
		gologger.Warning().Msgf("Could not write run summary: %s", err)
		return
	}
	gologger.Verbose().Msgf("Run summary written to %s", file)
}
