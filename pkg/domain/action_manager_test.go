package domain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionInput(items string) IntegrationInput {
	return IntegrationInput{
		PayloadByInputID: map[string]Payload{
			"input_1": Payload(items),
		},
	}
}

func TestRun_PerItemMapsEachItem(t *testing.T) {
	manager := NewIntegrationActionManager().
		AddPerItem("double", func(ctx context.Context, params IntegrationInput, item Item) (Item, error) {
			object := item.(map[string]any)
			return map[string]any{"value": object["value"].(float64) * 2}, nil
		})

	output, err := manager.Run(context.Background(), "double", actionInput(`[{"value":1},{"value":3}]`))
	require.NoError(t, err)

	var results []map[string]float64
	require.NoError(t, json.Unmarshal(output.ResultJSONByOutputID[0], &results))
	assert.Equal(t, []map[string]float64{{"value": 2}, {"value": 6}}, results)
}

func TestRun_PerItemMultiFlattens(t *testing.T) {
	manager := NewIntegrationActionManager().
		AddPerItemMulti("expand", func(ctx context.Context, params IntegrationInput, item Item) ([]Item, error) {
			return []Item{map[string]any{"n": 1}, map[string]any{"n": 2}}, nil
		})

	output, err := manager.Run(context.Background(), "expand", actionInput(`[{},{}]`))
	require.NoError(t, err)

	var results []map[string]int
	require.NoError(t, json.Unmarshal(output.ResultJSONByOutputID[0], &results))
	assert.Len(t, results, 4)
}

func TestRun_UnknownActionFails(t *testing.T) {
	manager := NewIntegrationActionManager()

	_, err := manager.Run(context.Background(), "missing", actionInput(`[{}]`))
	require.Error(t, err)
}

func TestRun_FailureAbortsByDefault(t *testing.T) {
	boom := errors.New("boom")

	manager := NewIntegrationActionManager().
		AddPerItem("fail", func(ctx context.Context, params IntegrationInput, item Item) (Item, error) {
			return nil, boom
		})

	_, err := manager.Run(context.Background(), "fail", actionInput(`[{}]`))
	require.ErrorIs(t, err, boom)
}

func TestRun_ContinueOnFailEmitsErrorItems(t *testing.T) {
	manager := NewIntegrationActionManager().
		AddPerItem("flaky", func(ctx context.Context, params IntegrationInput, item Item) (Item, error) {
			object := item.(map[string]any)
			if object["ok"] != true {
				return nil, errors.New("item rejected")
			}

			return object, nil
		})

	input := actionInput(`[{"ok":true},{"ok":false},{"ok":true}]`)
	input.ContinueOnFail = true

	output, err := manager.Run(context.Background(), "flaky", input)
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal(output.ResultJSONByOutputID[0], &results))
	require.Len(t, results, 3)
	assert.Equal(t, "item rejected", results[1]["error"])
}

func TestRun_EmptyItemsAreDropped(t *testing.T) {
	manager := NewIntegrationActionManager().
		AddPerItem("filter", func(ctx context.Context, params IntegrationInput, item Item) (Item, error) {
			object := item.(map[string]any)
			if object["keep"] != true {
				return map[string]any{}, nil
			}

			return object, nil
		})

	output, err := manager.Run(context.Background(), "filter", actionInput(`[{"keep":true},{"keep":false}]`))
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal(output.ResultJSONByOutputID[0], &results))
	assert.Len(t, results, 1)
}
