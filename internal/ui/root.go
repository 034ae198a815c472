package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tubefetch/tubefetch/internal/config"
	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/platform"
	"github.com/tubefetch/tubefetch/internal/ytdlp"
)

// Format radio labels
const (
	formatLabelAudio = "Audio (MP3)"
	formatLabelVideo = "Video (MP4)"
)

// PlaylistProber answers whether a playlist URL holds multiple entries.
// *ytdlp.Runner is the production implementation.
type PlaylistProber interface {
	ProbePlaylist(ctx context.Context, url string) (*ytdlp.PlaylistInfo, error)
}

// RootUI is the main application window content
type RootUI struct {
	window      fyne.Window
	settings    *config.Settings
	downloadSvc download.Downloader
	prober      PlaylistProber

	urlEntry    *widget.Entry
	formatRadio *widget.RadioGroup
	downloadBtn *widget.Button
	statusLabel *widget.Label
	taskList    *widget.List

	tasks []*model.DownloadTask
}

// NewRootUI builds the main window content and wires it to the download
// service
func NewRootUI(window fyne.Window, settings *config.Settings, downloadSvc download.Downloader, prober PlaylistProber) *RootUI {
	ui := &RootUI{
		window:      window,
		settings:    settings,
		downloadSvc: downloadSvc,
		prober:      prober,
	}

	downloadSvc.SetUpdateCallback(ui.onTaskUpdate)
	ui.buildContent()
	return ui
}

func (ui *RootUI) buildContent() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Paste a YouTube URL")
	ui.urlEntry.Validator = validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick() }

	ui.formatRadio = widget.NewRadioGroup([]string{formatLabelAudio, formatLabelVideo}, nil)
	ui.formatRadio.Horizontal = true
	if ui.settings.DefaultDownloadFormat() == model.FormatVideo {
		ui.formatRadio.SetSelected(formatLabelVideo)
	} else {
		ui.formatRadio.SetSelected(formatLabelAudio)
	}

	ui.downloadBtn = widget.NewButton("Download", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton("Settings", ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	urlRow := container.NewBorder(nil, nil, nil, ui.downloadBtn, ui.urlEntry)
	optionsRow := container.NewBorder(nil, nil, ui.formatRadio, settingsBtn)
	top := container.NewVBox(urlRow, optionsRow, ui.statusLabel)

	ui.taskList = widget.NewList(
		func() int { return len(ui.tasks) },
		func() fyne.CanvasObject {
			row := NewTaskRow(&model.DownloadTask{Status: model.TaskStatusPending})
			row.SetCallbacks(ui.onStopTask, ui.onRevealFile, ui.onCopyPath)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(ui.tasks) {
				return
			}
			if row, ok := obj.(*TaskRow); ok {
				row.UpdateTask(ui.tasks[id])
			}
		},
	)

	content := container.NewBorder(top, nil, nil, nil, ui.taskList)
	ui.window.SetContent(content)
}

// validateURL accepts empty input and http(s) URLs
func validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return nil
}

func (ui *RootUI) selectedFormat() model.DownloadFormat {
	if ui.formatRadio.Selected == formatLabelVideo {
		return model.FormatVideo
	}
	return model.FormatAudio
}

func (ui *RootUI) onDownloadClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.setStatus("Enter a URL first")
		return
	}
	if err := validateURL(urlText); err != nil {
		ui.setStatus("Invalid URL: " + err.Error())
		return
	}

	if ytdlp.IsPlaylistURL(urlText) {
		ui.handlePlaylistURL(urlText)
		return
	}

	ui.enqueue(urlText, false)
}

// handlePlaylistURL probes the playlist in the background and asks whether to
// download all entries or only the linked video
func (ui *RootUI) handlePlaylistURL(urlText string) {
	ui.setStatus("Checking playlist…")

	go func() {
		info, err := ui.prober.ProbePlaylist(context.Background(), urlText)
		fyne.Do(func() {
			if err != nil {
				slog.Warn("playlist probe failed, treating as single video", "url", urlText, "err", err)
				ui.enqueue(urlText, false)
				return
			}

			message := fmt.Sprintf("%q contains %d videos.\nDownload the whole playlist?", info.Title, info.Count)
			dialog.ShowConfirm("Playlist detected", message, func(all bool) {
				ui.enqueue(urlText, all)
			}, ui.window)
		})
	}()
}

func (ui *RootUI) enqueue(urlText string, playlist bool) {
	task, err := ui.downloadSvc.Enqueue(download.Request{
		URL:       urlText,
		Format:    ui.selectedFormat(),
		OutputDir: ui.settings.OutputDirectory(),
		Playlist:  playlist,
	})
	if err != nil {
		ui.setStatus(err.Error())
		return
	}

	slog.Info("task queued", "id", task.ID, "url", task.URL, "format", task.Format)
	ui.urlEntry.SetText("")
	ui.setStatus("")
	ui.reloadTasks()
}

func (ui *RootUI) setStatus(text string) {
	ui.statusLabel.SetText(text)
}

func (ui *RootUI) reloadTasks() {
	ui.tasks = ui.downloadSvc.All()
	ui.taskList.Refresh()
}

// onTaskUpdate runs on a service goroutine; all widget access is marshalled
// onto the Fyne thread
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	fyne.Do(func() {
		ui.reloadTasks()

		if task.Status == model.TaskStatusCompleted {
			fyne.CurrentApp().SendNotification(&fyne.Notification{
				Title:   "Download completed",
				Content: task.DisplayTitle(),
			})
		}
	})
}

func (ui *RootUI) onStopTask(taskID string) {
	if err := ui.downloadSvc.Stop(taskID); err != nil {
		slog.Warn("stop failed", "id", taskID, "err", err)
		ui.setStatus(err.Error())
	}
}

func (ui *RootUI) onRevealFile(path string) {
	if err := platform.OpenFileInManager(path); err != nil {
		slog.Warn("could not reveal file", "path", path, "err", err)
		ui.setStatus("Could not open file manager: " + err.Error())
	}
}

func (ui *RootUI) onCopyPath(path string) {
	ui.window.Clipboard().SetContent(path)
	ui.setStatus("Path copied to clipboard")
}

func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings)
}
