package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tubefetch/tubefetch/internal/config"
	"github.com/tubefetch/tubefetch/internal/model"
)

// Settings dialog dimensions
const (
	settingsDialogWidth  = 520
	settingsDialogHeight = 480
)

// ShowSettingsDialog opens the settings dialog. Changes are persisted on Save.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings) {
	outputDirEntry := widget.NewEntry()
	outputDirEntry.SetText(settings.OutputDirectory())

	browseBtn := widget.NewButton("Browse", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			outputDirEntry.SetText(uri.Path())
		}, window)
	})
	outputDirRow := container.NewBorder(nil, nil, nil, browseBtn, outputDirEntry)

	formatSelect := widget.NewSelect([]string{formatLabelAudio, formatLabelVideo}, nil)
	if settings.DefaultDownloadFormat() == model.FormatVideo {
		formatSelect.SetSelected(formatLabelVideo)
	} else {
		formatSelect.SetSelected(formatLabelAudio)
	}

	themeSelect := widget.NewSelect([]string{config.ThemeAuto, config.ThemeDark, config.ThemeLight}, nil)
	themeSelect.SetSelected(settings.Theme())

	cookieFileEntry := widget.NewEntry()
	cookieFileEntry.SetPlaceHolder("Path to a Netscape cookies file (optional)")
	cookieFileEntry.SetText(settings.CookieFile())

	cookieBrowserEntry := widget.NewEntry()
	cookieBrowserEntry.SetPlaceHolder("Browser for cookie extraction, e.g. firefox (optional)")
	cookieBrowserEntry.SetText(settings.CookiesFromBrowser())

	embedMetadataCheck := widget.NewCheck("Embed metadata tags", nil)
	embedMetadataCheck.SetChecked(settings.EmbedMetadata())

	embedThumbnailCheck := widget.NewCheck("Embed thumbnail as cover art (audio)", nil)
	embedThumbnailCheck.SetChecked(settings.EmbedThumbnail())

	potEnabledCheck := widget.NewCheck("Run the PO token provider container (requires Docker)", nil)
	potEnabledCheck.SetChecked(settings.PotProvider().Enabled)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Downloads", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Output directory:"),
		outputDirRow,
		widget.NewLabel("Default format:"),
		formatSelect,

		widget.NewSeparator(),
		widget.NewLabelWithStyle("Authentication", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Cookie file:"),
		cookieFileEntry,
		widget.NewLabel("Cookies from browser:"),
		cookieBrowserEntry,

		widget.NewSeparator(),
		widget.NewLabelWithStyle("Post-processing", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		embedMetadataCheck,
		embedThumbnailCheck,

		widget.NewSeparator(),
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Theme (takes effect after restart):"),
		themeSelect,

		widget.NewSeparator(),
		potEnabledCheck,
	)

	d := dialog.NewCustomConfirm("Settings", "Save", "Cancel", container.NewVScroll(form), func(confirmed bool) {
		if !confirmed {
			return
		}

		if outputDirEntry.Text != "" {
			settings.SetOutputDirectory(outputDirEntry.Text)
		}
		if formatSelect.Selected == formatLabelVideo {
			settings.SetDefaultDownloadFormat(model.FormatVideo)
		} else {
			settings.SetDefaultDownloadFormat(model.FormatAudio)
		}
		settings.SetTheme(themeSelect.Selected)
		settings.SetCookieFile(cookieFileEntry.Text)
		settings.SetCookiesFromBrowser(cookieBrowserEntry.Text)
		settings.SetEmbedMetadata(embedMetadataCheck.Checked)
		settings.SetEmbedThumbnail(embedThumbnailCheck.Checked)
		settings.SetPotProviderEnabled(potEnabledCheck.Checked)
	}, window)

	d.Resize(fyne.NewSize(settingsDialogWidth, settingsDialogHeight))
	d.Show()
}
