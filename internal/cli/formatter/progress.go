package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a countdown bar like [████░░░░]  45%. pct is a
// fraction in [0, 1]. The bar turns from yellow to green once the run is
// past two thirds.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	if pct >= 0.66 {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderBar renders an unbracketed bar of count relative to scale, used by
// the bucket charts.
func RenderBar(count, scale, width int) string {
	if scale <= 0 || width <= 0 {
		return ""
	}
	n := min(count*width/scale, width)
	if count > 0 && n == 0 {
		n = 1
	}
	n = max(n, 0)
	return StyleBlue.Render(strings.Repeat(filledBlock, n)) + StyleDim.Render(strings.Repeat(emptyBlock, width-n))
}
