// Package display shows a rendered chart in a desktop window.
package display

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// ErrNoApp is returned when Show is called without a fyne application.
var ErrNoApp = errors.New("display: no application")

// NewWindow builds a window holding the PNG image, sized to width x height.
func NewWindow(a fyne.App, title string, image []byte, width, height int) (fyne.Window, error) {
	if a == nil {
		return nil, ErrNoApp
	}
	img, err := png.Decode(bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("display: decode chart: %w", err)
	}

	view := canvas.NewImageFromImage(img)
	view.FillMode = canvas.ImageFillContain
	view.SetMinSize(fyne.NewSize(float32(width)/2, float32(height)/2))

	w := a.NewWindow(title)
	w.SetContent(view)
	w.Resize(fyne.NewSize(float32(width), float32(height)))
	return w, nil
}

// Show opens the chart window and blocks until the user closes it.
func Show(a fyne.App, title string, image []byte, width, height int) error {
	w, err := NewWindow(a, title, image, width, height)
	if err != nil {
		return err
	}
	w.SetMaster()
	w.ShowAndRun()
	return nil
}
