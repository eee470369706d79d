package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/catalog-resolver/internal/model"
	"github.com/sells-group/catalog-resolver/internal/resolve"
)

func TestRenderSummary(t *testing.T) {
	s := resolve.Summary{
		RunID:     "run-1",
		Total:     1500,
		Processed: 1200,
		Counts: map[model.Status]int{
			model.StatusEnriched:  1100,
			model.StatusUnmatched: 90,
			model.StatusErrored:   10,
		},
		Duration: 2 * time.Second,
	}

	out := renderSummary(s)

	assert.Contains(t, out, "run run-1 (2s)")
	assert.Contains(t, out, "1,100")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "300")
	for _, status := range model.AllStatuses() {
		assert.Contains(t, out, string(status))
	}
}
