package outwriter

import (
	"os"

	"github.com/huangsam/testaudit/internal/contract"
	"golang.org/x/term"
)

// GetMaxTablePathWidth calculates the maximum width for class and file names in table output
// based on terminal width and the fixed numeric columns next to them.
func GetMaxTablePathWidth(cfg *contract.Config, fixedColumns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Each numeric column takes roughly 12 cells with padding
	baseWidth := fixedColumns*12 + 20

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
