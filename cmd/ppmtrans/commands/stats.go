package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/ajroetker/go-locality/locality/uarray2b"
)

// renderSummary formats res as a bordered table. Colours are used only
// when w is a terminal.
func renderSummary(w io.Writer, res *result) string {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	label := r.NewStyle().Foreground(lipgloss.Color("75")).Width(10)
	value := r.NewStyle().Foreground(lipgloss.Color("252"))
	box := r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)

	pixels := res.width * res.height
	perPixel := 0.0
	if pixels > 0 {
		perPixel = float64(res.elapsed.Nanoseconds()) / float64(pixels)
	}

	rows := [][2]string{
		{"image", fmt.Sprintf("%dx%d (%d pixels)", res.width, res.height, pixels)},
		{"layout", res.layout},
		{"order", res.order.String()},
		{"block", strconv.Itoa(res.blockSize)},
		{"workers", strconv.Itoa(res.workers)},
		{"cpu time", res.elapsed.String()},
		{"per pixel", fmt.Sprintf("%.1f ns", perPixel)},
	}
	if res.parallel != nil {
		counts := lo.Map(res.parallel.PerWorker, func(ws uarray2b.WorkerStats, _ int) string {
			return strconv.Itoa(ws.Blocks)
		})
		rows = append(rows, [2]string{"blocks", fmt.Sprintf("%d (per worker: %s)", res.parallel.Blocks, strings.Join(counts, " "))})
	}

	lines := []string{title.Render("ppmtrans: " + res.op.String())}
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(row[0]), value.Render(row[1])))
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
