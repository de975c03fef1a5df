package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// printCreatives writes one line per creative in discovery order
func printCreatives(w io.Writer, root string, creatives []model.Creative) {
	for _, c := range creatives {
		mark := dimColor.Sprint("-")
		if c.Converted {
			mark = okColor.Sprint("✓")
		}
		rel, err := filepath.Rel(root, c.Location)
		if err != nil {
			rel = c.Location
		}
		fmt.Fprintf(w, "%s %s  %dx%d  images=%d  %s\n", mark, c.Name, c.Width, c.Height, len(c.Images), dimColor.Sprint(rel))
		if c.CompositionBinding == "" {
			fmt.Fprintf(w, "    %s\n", failColor.Sprint("no composition binding found"))
		}
	}
}

// printReport writes the per-image compression outcomes followed by a summary
func printReport(w io.Writer, name string, report *model.CompressionReport) {
	for _, o := range report.Outcomes {
		if o.Succeeded() {
			fmt.Fprintf(w, "  %s %s  %d -> %d bytes\n", okColor.Sprint("✓"), filepath.Base(o.Path), o.InputSize, o.OutputSize)
			continue
		}
		fmt.Fprintf(w, "  %s %s  [%s] %v\n", failColor.Sprint("✗"), filepath.Base(o.Path), o.Stage, o.Err)
	}
	summary := report.Summary()
	if report.Failed() > 0 {
		summary = failColor.Sprint(summary)
	}
	fmt.Fprintf(w, "  %s: %s\n", name, summary)
}
