package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/presentation/layout"
	"github.com/penwyp/go-step-monitor/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func status() model.LiveStatus {
	return model.LiveStatus{
		Now:        time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
		DailySteps: 321,
		Results:    model.EmptySessionResults(),
	}
}

func TestAlternateScreenIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	td := NewTerminalDisplay(&buf, DisplayConfig{Width: 60})

	td.EnterAlternateScreen()
	td.EnterAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.EnterAlternateScreen))

	td.ExitAlternateScreen()
	td.ExitAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.ExitAlternateScreen))
}

func TestRenderRedrawsFromHome(t *testing.T) {
	var buf bytes.Buffer
	td := NewTerminalDisplay(&buf, DisplayConfig{LayoutStyle: layout.StyleMinimal})

	td.Render(status())
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, util.MoveCursorHome))
	assert.True(t, strings.HasSuffix(out, util.ClearToEnd))
	assert.Contains(t, out, "Steps: 321")
}

func TestHistoryBlock(t *testing.T) {
	var buf bytes.Buffer
	td := NewTerminalDisplay(&buf, DisplayConfig{LayoutStyle: layout.StyleMinimal, Width: 50})
	assert.False(t, td.DismissHistory())

	require.NoError(t, td.ShowHistory([]model.HistoryEntry{
		{Date: "15.03.2024", Steps: 321},
		{Date: "14.03.2024", Steps: 9000},
	}))
	assert.True(t, td.ShowingHistory())

	buf.Reset()
	td.Render(status())
	out := buf.String()
	assert.Contains(t, out, "14.03.2024")
	assert.Less(t, strings.Index(out, "14.03.2024"), strings.Index(out, "Steps: 321"), "history is above the status")

	assert.True(t, td.DismissHistory())
	buf.Reset()
	td.Render(status())
	assert.NotContains(t, buf.String(), "14.03.2024")
}
