package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tubefetch/tubefetch/internal/model"
)

// TaskRow is a compact list row showing one download task with its progress
// and actions
type TaskRow struct {
	widget.BaseWidget

	task *model.DownloadTask

	titleLabel  *widget.Label
	statusLabel *widget.Label
	progressBar *widget.ProgressBar
	detailLabel *widget.Label

	stopBtn   *widget.Button
	revealBtn *widget.Button
	copyBtn   *widget.Button

	onStop   func(taskID string)
	onReveal func(path string)
	onCopy   func(path string)
}

// NewTaskRow creates a row for the given task
func NewTaskRow(task *model.DownloadTask) *TaskRow {
	tr := &TaskRow{task: task}
	tr.ExtendBaseWidget(tr)
	tr.buildWidgets()
	tr.refreshFromTask()
	return tr
}

// SetCallbacks wires the row action buttons
func (tr *TaskRow) SetCallbacks(onStop func(string), onReveal func(string), onCopy func(string)) {
	tr.onStop = onStop
	tr.onReveal = onReveal
	tr.onCopy = onCopy
}

// UpdateTask replaces the displayed task state
func (tr *TaskRow) UpdateTask(task *model.DownloadTask) {
	if task == nil {
		return
	}
	tr.task = task
	tr.refreshFromTask()
	tr.Refresh()
}

func (tr *TaskRow) buildWidgets() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing

	tr.progressBar = widget.NewProgressBar()
	tr.progressBar.TextFormatter = func() string {
		return fmt.Sprintf("%.1f%%", tr.progressBar.Value*100)
	}

	tr.detailLabel = widget.NewLabel("")
	tr.detailLabel.TextStyle = fyne.TextStyle{Monospace: true}
	tr.detailLabel.Truncation = fyne.TextTruncateEllipsis

	tr.stopBtn = widget.NewButtonWithIcon("", theme.MediaStopIcon(), func() {
		if tr.onStop != nil {
			tr.onStop(tr.task.ID)
		}
	})
	tr.stopBtn.Importance = widget.DangerImportance

	tr.revealBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		if tr.onReveal != nil && tr.task.OutputPath != "" {
			tr.onReveal(tr.task.OutputPath)
		}
	})

	tr.copyBtn = widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
		if tr.onCopy != nil && tr.task.OutputPath != "" {
			tr.onCopy(tr.task.OutputPath)
		}
	})
}

func (tr *TaskRow) refreshFromTask() {
	task := tr.task

	title := task.DisplayTitle()
	if task.IsPlaylist {
		title = "▤ " + title
	}
	tr.titleLabel.SetText(title)

	switch task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
	case model.TaskStatusDownloading, model.TaskStatusProcessing:
		tr.statusLabel.Importance = widget.HighImportance
	default:
		tr.statusLabel.Importance = widget.MediumImportance
	}
	tr.statusLabel.SetText(task.Status.String())

	tr.progressBar.SetValue(task.Percent / 100)

	detail := ""
	switch task.Status {
	case model.TaskStatusDownloading:
		if task.Speed != "" {
			detail = fmt.Sprintf("%s · ETA %s", task.Speed, task.ETAString())
		}
	case model.TaskStatusCompleted:
		detail = task.FileSizeString()
	case model.TaskStatusError:
		detail = task.LastError
	}
	tr.detailLabel.SetText(detail)

	if task.Status.IsActive() || task.Status == model.TaskStatusPending {
		tr.stopBtn.Enable()
	} else {
		tr.stopBtn.Disable()
	}

	if task.OutputPath != "" && task.Status == model.TaskStatusCompleted {
		tr.revealBtn.Enable()
		tr.copyBtn.Enable()
	} else {
		tr.revealBtn.Disable()
		tr.copyBtn.Disable()
	}
}

// CreateRenderer builds the row layout
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	actions := container.NewHBox(tr.stopBtn, tr.revealBtn, tr.copyBtn)
	header := container.NewBorder(nil, nil, nil, container.NewHBox(tr.statusLabel, actions), tr.titleLabel)
	body := container.NewBorder(nil, nil, nil, tr.detailLabel, tr.progressBar)

	layout := container.NewVBox(header, body, widget.NewSeparator())
	return widget.NewSimpleRenderer(layout)
}
