package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/alecthomas/kong"

	"github.com/tubefetch/tubefetch/internal/cli"
	"github.com/tubefetch/tubefetch/internal/config"
	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/logging"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/platform"
	"github.com/tubefetch/tubefetch/internal/potprovider"
	"github.com/tubefetch/tubefetch/internal/terminal"
	"github.com/tubefetch/tubefetch/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.tubefetch.tubefetch"
	AppName = "TubeFetch"
)

// CLI defines the command line surface. Without flags the GUI starts.
type CLI struct {
	Terminal  bool             `help:"Run the interactive terminal interface instead of the GUI."`
	URL       string           `help:"Download a single URL and exit (non-interactive)."`
	AudioOnly bool             `help:"Extract audio as MP3 instead of downloading video." name:"audio-only"`
	Output    string           `help:"Output directory override." type:"path"`
	Force     bool             `help:"Re-download even if the URL is in the download archive."`
	Config    string           `help:"Settings file path override." type:"path"`
	Verbose   bool             `help:"Enable debug logging."`
	Version   kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	var flags CLI
	kong.Parse(&flags,
		kong.Name("tubefetch"),
		kong.Description("YouTube downloader with GUI, terminal and scripting front-ends."),
		kong.Vars{"version": fmt.Sprintf("%s v%s", AppName, version)},
	)

	os.Exit(run(flags))
}

func run(flags CLI) int {
	settings, err := config.Load(flags.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	logCloser, err := logging.Setup(logging.DefaultDir(), flags.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer logCloser.Close()

	slog.Info("starting", "app", AppName, "version", version, "settings", settings.Path())

	runner := ytdlpRunner()
	if !runner.Available() {
		fmt.Fprintln(os.Stderr, "yt-dlp was not found on PATH. Install it and try again.")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The provider is best-effort: when Docker or the container is not
	// usable, downloads proceed without extractor arguments.
	provider, extractorArgs := startPotProvider(ctx, settings)
	defer func() {
		if provider != nil {
			provider.StopIfConfigured(context.Background())
		}
		if settings.AutoClearLogs() {
			if _, err := logging.CleanOldLogs(logging.DefaultDir(), settings.MaxLogsToKeep()); err != nil {
				slog.Warn("log cleanup failed", "err", err)
			}
		}
	}()

	svc := download.NewService(runner, optionsBuilder(settings, extractorArgs))
	defer svc.StopAll()

	switch {
	case flags.URL != "":
		outputDir := flags.Output
		if outputDir == "" {
			outputDir = settings.OutputDirectory()
		}
		if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}

		format := model.FormatVideo
		if flags.AudioOnly {
			format = model.FormatAudio
		}

		return cli.NewApp(svc).Run(ctx, download.Request{
			URL:             flags.URL,
			Format:          format,
			OutputDir:       outputDir,
			ForceRedownload: flags.Force,
		})

	case flags.Terminal:
		if err := terminal.NewApp(settings, svc, runner).Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		return 0

	default:
		runGUI(settings, svc, runner)
		return 0
	}
}

func runGUI(settings *config.Settings, svc download.Downloader, prober ui.PlaylistProber) {
	a := fyneapp.NewWithID(AppID)
	a.Settings().SetTheme(ui.NewAppTheme(settings.Theme()))

	window := a.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	width, height := settings.WindowSize()
	window.Resize(fyne.NewSize(float32(width), float32(height)))

	ui.NewRootUI(window, settings, svc, prober)

	window.SetOnClosed(func() {
		size := window.Canvas().Size()
		settings.SetWindowSize(int(size.Width), int(size.Height))
	})

	window.ShowAndRun()
}

// startPotProvider brings up the Docker-managed token provider when enabled
// and returns the extractor arguments for yt-dlp, plus any env overrides
func startPotProvider(ctx context.Context, settings *config.Settings) (*potprovider.Manager, []string) {
	cfg := settings.PotProvider()
	if !cfg.Enabled {
		slog.Info("PO token provider disabled in settings")
		return nil, envExtractorArgs()
	}

	provider, err := potprovider.New(cfg)
	if err != nil {
		slog.Warn("could not create Docker client, downloading without PO tokens", "err", err)
		return nil, envExtractorArgs()
	}

	args := provider.Enable(ctx)
	return provider, append(args, envExtractorArgs()...)
}
