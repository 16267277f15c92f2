package layout

import (
	"io"

	"github.com/penwyp/go-step-monitor/internal/core/model"
)

// Layout styles
const (
	StyleFull = iota
	StyleMinimal
)

// LayoutStrategy defines the interface for different layout rendering strategies
type LayoutStrategy interface {
	Render(w io.Writer, status model.LiveStatus)
	GetName() string
}

// GetLayoutStrategy returns the appropriate layout strategy based on the style
func GetLayoutStrategy(layoutStyle int, sizer *Sizer) LayoutStrategy {
	base := BaseStrategy{sizer: sizer}
	strategies := map[int]LayoutStrategy{
		StyleFull:    &FullLayoutStrategy{BaseStrategy: base},
		StyleMinimal: &MinimalLayoutStrategy{BaseStrategy: base},
	}

	if strategy, exists := strategies[layoutStyle]; exists {
		return strategy
	}

	// Default to full dashboard if invalid style
	return &FullLayoutStrategy{BaseStrategy: base}
}
