package render

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"folio/internal/workspace"
)

// Text writes the visible viewport as plain text, exactly as it is drawn
// without colour.
func Text(c *workspace.Canvas, path string, width, height int) error {
	if c.Len() == 0 {
		return ErrNothingToExport
	}
	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, row := range Grid(c, GridOptions{Width: width, Height: height}) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(row, " ")); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return w.Flush()
}
