package main

import (
	"fmt"
	"time"

	"folio/internal/logging"
	"folio/internal/render"
)

func exportName(ext string) string {
	return fmt.Sprintf("folio-%s.%s", time.Now().Format("20060102-150405"), ext)
}

func (m *model) exportPNG() {
	m.export("png", func(path string) error {
		return render.PNG(m.getCanvas(), path)
	})
}

// exportText writes the viewport exactly as it appears, without colour.
func (m *model) exportText() {
	m.export("txt", func(path string) error {
		return render.Text(m.getCanvas(), path, m.width, m.bodyHeight())
	})
}

func (m *model) export(ext string, write func(path string) error) {
	m.errorMessage, m.successMessage = "", ""
	if m.getCanvas() == nil {
		m.errorMessage = render.ErrNothingToExport.Error()
		return
	}
	path, err := m.config.ExportPath(exportName(ext))
	if err != nil {
		m.errorMessage = err.Error()
		logging.Warn("export failed", "format", ext, "error", err)
		return
	}
	if err := write(path); err != nil {
		m.errorMessage = err.Error()
		logging.Warn("export failed", "format", ext, "path", path, "error", err)
		return
	}
	m.successMessage = "Exported " + path
	logging.Info("exported canvas", "format", ext, "path", path)
}
