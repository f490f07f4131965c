package root

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"questforge/internal/coach"
	"questforge/internal/engine"
	"questforge/internal/ui"
)

func TestQuestInputs(t *testing.T) {
	res := &coach.Result{
		Suggestions: []coach.Suggestion{{Name: "Stretch", Category: "fitness", Priority: "h", XP: -3}},
		Subtasks:    []coach.Subtask{{Name: "Outline"}},
	}
	parent := &engine.CreateQuestInput{Category: "study", Priority: engine.PriorityLow}

	got := questInputs(res, parent)
	assert.Equal(t, []engine.CreateQuestInput{
		{Name: "Stretch", Category: "fitness", Priority: engine.PriorityHigh},
		{Name: "Outline", Category: "study", Priority: engine.PriorityLow},
	}, got)
}

func TestRenderErrorSeparatesRejections(t *testing.T) {
	rejection := renderError(fmt.Errorf("upgrade: %w", engine.GoldError{Need: 200, Have: 10}))
	failure := renderError(fmt.Errorf("disk on fire"))
	assert.Contains(t, rejection, "not enough gold")
	assert.Contains(t, failure, "disk on fire")
	assert.Contains(t, rejection, ui.IconWarn)
	assert.Contains(t, failure, ui.IconError)
}

func TestIDArgs(t *testing.T) {
	check := idArgs(1, 1)
	assert.NoError(t, check(nil, []string{"3"}))
	assert.Error(t, check(nil, nil))
	assert.Error(t, check(nil, []string{"3", "4"}))
	assert.Error(t, check(nil, []string{"abc"}))
	assert.Error(t, check(nil, []string{"-1"}))
}
