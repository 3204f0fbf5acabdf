package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/kasuboski/gapz/pkg/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRecords(t *testing.T) {
	aired := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	records := metadata.NewRecordSet(
		metadata.Record{Season: 1, Episode: 1, AirDate: &aired},
		metadata.Record{Season: 1, Episode: 12},
	)

	lines := strings.Split(renderRecords(records), "\n")
	require.Len(t, lines, 6)

	assert.True(t, strings.HasPrefix(lines[0], "╭"))
	assert.Contains(t, lines[1], "SEASON")
	assert.Contains(t, lines[1], "EPISODE")
	assert.Contains(t, lines[1], "AIRED")

	assert.Contains(t, lines[3], "2024-01-01")
	assert.Contains(t, lines[3], "      1 │", "numbers are right aligned")
	assert.Contains(t, lines[4], "      12 │")
	assert.Contains(t, lines[4], "│ - ", "missing air dates render as a dash")
	assert.True(t, strings.HasPrefix(lines[5], "╰"))
}
