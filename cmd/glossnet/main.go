package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/glossnet/internal/datasource"
	"github.com/vanderheijden86/glossnet/pkg/access"
	"github.com/vanderheijden86/glossnet/pkg/config"
	"github.com/vanderheijden86/glossnet/pkg/debug"
	"github.com/vanderheijden86/glossnet/pkg/export"
	"github.com/vanderheijden86/glossnet/pkg/network"
	"github.com/vanderheijden86/glossnet/pkg/ui"
	"github.com/vanderheijden86/glossnet/pkg/version"
	"github.com/vanderheijden86/glossnet/pkg/watcher"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Read configuration from this file instead of the XDG location")
	dataPath := flag.String("data", "", "Dataset file (CSV or SQLite) or a directory to search")
	viewFlag := flag.String("view", "", "Start in this view: directory or network")
	seedFlag := flag.Uint64("seed", 0, "Seed for node placement and drift (0 = config or time-based)")
	noWatch := flag.Bool("no-watch", false, "Do not reload when the dataset changes on disk")
	resetAccess := flag.Bool("reset-access", false, "Forget a remembered passkey and exit")
	exportSVG := flag.String("export-svg", "", "Write a network snapshot as SVG and exit")
	exportPNG := flag.String("export-png", "", "Write a network snapshot as PNG and exit")
	exportSQLite := flag.String("export-sqlite", "", "Write terms and links to a SQLite database and exit")
	exportJSON := flag.String("export-json", "", "Write the term graph as JSON and exit")
	flag.Parse()
	defer debug.Close()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: glossnet [options]")
		fmt.Println("\nBrowse a glossary as a directory or as a network of terms linked by shared keywords.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("glossnet %s\n", version.Version)
		os.Exit(0)
	}

	cfg := loadConfig(*configPath)
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *seedFlag != 0 {
		cfg.Network.Seed = *seedFlag
	}
	debug.Section("glossnet " + version.Version)
	debug.Dump("config", cfg)

	view, err := startView(*viewFlag, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	gate, err := openGate(cfg, config.StateDir())
	if err != nil {
		// Non-fatal: the gate stays locked and asks again.
		debug.Log("main: %v", err)
	}

	if *resetAccess {
		if err := gate.Revoke(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Access reset; the passkey will be asked for again.")
		os.Exit(0)
	}

	targets := export.Targets{
		SVG:    *exportSVG,
		PNG:    *exportPNG,
		SQLite: *exportSQLite,
		JSON:   *exportJSON,
	}
	if !targets.Empty() {
		if !gate.Granted() {
			fmt.Fprintln(os.Stderr, "Error: access has not been granted; run glossnet once and enter the passkey.")
			os.Exit(1)
		}
		if err := runExports(context.Background(), cfg, view, targets, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "glossnet needs an interactive terminal; use --export-* for headless output.")
		os.Exit(1)
	}

	var w *watcher.Watcher
	if !*noWatch {
		w = startWatcher(cfg.Data.Path)
		if w != nil {
			defer w.Stop()
		}
	}

	m := ui.NewModel(ui.Options{
		Config:  cfg,
		Gate:    gate,
		Watcher: w,
		View:    view,
		Seed:    cfg.Network.Seed,
	})

	if err := runTUIProgram(m); err != nil {
		fmt.Printf("Error running glossnet: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads path, or the XDG config when path is empty. A broken
// config falls back to the defaults.
func loadConfig(path string) config.Config {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// startView picks the opening view: the flag wins over the config.
func startView(flagValue string, cfg config.Config) (network.View, error) {
	if flagValue != "" {
		return network.ParseView(flagValue)
	}
	v, err := network.ParseView(cfg.UI.DefaultView)
	if err != nil {
		debug.Log("main: config: %v", err)
		return network.ViewDirectory, nil
	}
	return v, nil
}

// openGate builds the passkey gate over the state directory. When the state
// directory is unusable the grant lives in memory for this run only.
func openGate(cfg config.Config, stateDir string) (*access.Gate, error) {
	var store access.Store
	fs, err := access.NewFileStore(stateDir)
	if err != nil {
		debug.Log("main: access state: %v", err)
		store = &access.MemStore{}
	} else {
		store = fs
	}
	return access.NewGate(cfg.Access.Passkey, store)
}

// runExports lays the dataset out headlessly at the configured export size
// and writes every requested target.
func runExports(ctx context.Context, cfg config.Config, view network.View, targets export.Targets, out io.Writer) error {
	entries, src, err := datasource.LoadEntries(cfg.Data.Path)
	if err != nil {
		return err
	}

	w, h := float64(cfg.Export.Width), float64(cfg.Export.Height)
	session := network.NewSession(
		network.SizerFunc(func() (float64, float64) { return w, h }),
		network.WithSeed(cfg.Network.Seed),
		network.WithView(view),
	)
	if err := session.Load(entries); err != nil {
		return err
	}

	results, err := export.All(ctx, session, targets, src.Path)
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		fmt.Fprintf(out, "Wrote %s to %s (%s)\n", r.Kind, r.Path, r.Duration.Round(time.Millisecond))
	}
	return err
}

// startWatcher watches the resolved dataset file. Failures only disable
// live reload.
func startWatcher(path string) *watcher.Watcher {
	src, err := datasource.Resolve(path)
	if err != nil {
		debug.Log("main: watch: %v", err)
		return nil
	}
	w, err := watcher.NewWatcher(src.Path)
	if err != nil {
		debug.Log("main: watch: %v", err)
		return nil
	}
	if err := w.Start(); err != nil {
		debug.Log("main: watch: %v", err)
		return nil
	}
	return w
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set GLOSSNET_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("GLOSSNET_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
