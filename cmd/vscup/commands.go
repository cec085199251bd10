package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bodil/vscode-use-package/internal/host"
	"github.com/bodil/vscode-use-package/internal/installer"
	"github.com/bodil/vscode-use-package/internal/keymap"
	"github.com/bodil/vscode-use-package/internal/log"
	"github.com/bodil/vscode-use-package/internal/manifest"
	"github.com/bodil/vscode-use-package/internal/progress"
	"github.com/bodil/vscode-use-package/internal/settings"
	"github.com/bodil/vscode-use-package/internal/tui"
	"github.com/bodil/vscode-use-package/internal/usepackage"
)

var rootCmd = &cobra.Command{
	Use:   "vscup",
	Short: "Declarative package management for VS Code",
	Long: "vscup installs VS Code extensions, applies settings and merges keybindings\n" +
		"from a declarative manifest, so one file recreates your editor setup on\n" +
		"any machine.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vscup v%s\n", Version)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the package manifest",
	Long:  "Install, configure and keybind every package declared in the manifest.",
	Run:   runApply,
}

var installCmd = &cobra.Command{
	Use:   "install <extension-id>...",
	Short: "Install extensions ad hoc",
	Args:  cobra.MinimumNArgs(1),
	Run:   runInstall,
}

// buildManager wires the component graph: host CLI, poller, install queue,
// settings applier and keybinding merger.
func buildManager(notifier host.Notifier, sink progress.Sink) (*usepackage.Manager, error) {
	settingsPath, err := host.SettingsPath()
	if err != nil {
		return nil, err
	}
	keybindingsPath, err := host.KeybindingsPath()
	if err != nil {
		return nil, err
	}

	codeCLI := host.NewCodeCLI()
	fs := afero.NewOsFs()
	queue := installer.NewQueue(codeCLI, installer.NewPoller(codeCLI), notifier, sink)

	return usepackage.NewManager(
		queue,
		settings.NewApplier(fs, settingsPath),
		keymap.NewMerger(fs, keybindingsPath),
	), nil
}

func runApply(cmd *cobra.Command, args []string) {
	path, _ := cmd.Flags().GetString("file")
	only, _ := cmd.Flags().GetString("only")
	noTUI, _ := cmd.Flags().GetBool("no-tui")

	if path == "" {
		var err error
		path, err = manifest.DefaultPath()
		if err != nil {
			log.Fatal(err)
		}
	}

	m, err := manifest.Load(afero.NewOsFs(), path)
	if err != nil {
		log.Fatal(err)
	}

	packages := m.Filter(only)
	if len(packages) == 0 {
		log.Warnf("no packages matched in %s", path)
		return
	}

	var failures int
	if noTUI || !isatty.IsTerminal(os.Stdout.Fd()) {
		failures = applyPlain(packages)
	} else {
		failures = applyWithTUI(packages)
	}
	if failures > 0 {
		os.Exit(1)
	}
}

// applyPlain awaits each package in manifest order, so every stage of one
// package completes before the next package starts.
func applyPlain(packages []manifest.Package) int {
	mgr, err := buildManager(host.LogNotifier{}, progress.LogSink{})
	if err != nil {
		log.Fatal(err)
	}
	usepackage.Init(mgr)
	defer usepackage.Teardown()

	return applyAll(context.Background(), mgr, packages)
}

func applyWithTUI(packages []manifest.Package) int {
	sink := tui.NewSink()
	mgr, err := buildManager(sink, sink)
	if err != nil {
		log.Fatal(err)
	}
	usepackage.Init(mgr)
	defer usepackage.Teardown()

	result := make(chan int, 1)
	go func() {
		failures := applyAll(context.Background(), mgr, packages)
		sink.Done(failures)
		result <- failures
	}()

	model := tui.NewModel(fmt.Sprintf("vscup v%s", Version), sink)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		log.Fatalf("error running program: %v", err)
	}

	select {
	case failures := <-result:
		return failures
	default:
		// The user quit before the run finished.
		log.Warn("apply interrupted")
		return 1
	}
}

func applyAll(ctx context.Context, mgr *usepackage.Manager, packages []manifest.Package) int {
	failures := 0
	for _, pkg := range packages {
		if err := mgr.UsePackage(ctx, pkg.Name, pkg.Options()); err != nil {
			log.Errorf("package %s: %v", pkg.Name, err)
			failures++
		}
	}
	return failures
}

// runInstall submits all requested extensions concurrently; the shared
// queue serializes them and reports one aggregate summary at the end.
func runInstall(cmd *cobra.Command, args []string) {
	mgr, err := buildManager(host.LogNotifier{}, progress.LogSink{})
	if err != nil {
		log.Fatal(err)
	}
	usepackage.Init(mgr)
	defer usepackage.Teardown()

	ctx := context.Background()
	var group errgroup.Group
	for _, id := range args {
		id := id
		group.Go(func() error {
			return usepackage.UsePackage(ctx, id, nil)
		})
	}
	if err := group.Wait(); err != nil {
		os.Exit(1)
	}
}
