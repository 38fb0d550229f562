package collector

import (
	"encoding/json"
	"strings"

	Logger "github.com/moodfeed/tslamood/utils/log"
)

// Browser agent runs hand back their harvest in whichever shape the model
// felt like that day: a structured-output slot on a history step, a final
// object wrapping the array under a container key, the bare array itself, or
// the array JSON-encoded inside a string. The locator tries each shape in
// that order and returns the first batch it can decode. No shape matching is
// a warning and an empty batch, never an error; an empty page is a legitimate
// outcome of a run.

// RunStep is one step of an agent run's history.
type RunStep struct {
	StructuredOutput json.RawMessage `json:"structured_output,omitempty"`
}

// RunResult is the opaque outcome of a browser agent run.
type RunResult struct {
	Steps       []RunStep       `json:"steps,omitempty"`
	FinalResult json.RawMessage `json:"final_result,omitempty"`
}

// LocateRecords extracts the record batch from a run result. containerKeys
// are the object keys the batch may be nested under ("tweets", "posts").
func LocateRecords(result RunResult, containerKeys ...string) []map[string]interface{} {
	// Latest structured output wins; earlier steps hold partial harvests.
	for i := len(result.Steps) - 1; i >= 0; i-- {
		if records, ok := decodeBatch(result.Steps[i].StructuredOutput, containerKeys); ok {
			return records
		}
	}

	if records, ok := decodeBatch(result.FinalResult, containerKeys); ok {
		return records
	}

	// Double-encoded payload: the final result is a JSON string whose
	// content is itself JSON.
	var encoded string
	if err := json.Unmarshal(result.FinalResult, &encoded); err == nil {
		if records, ok := decodeBatch(json.RawMessage(strings.TrimSpace(encoded)), containerKeys); ok {
			return records
		}
	}

	Logger.Log.Warn("agent run result contained no decodable record batch")
	return []map[string]interface{}{}
}

func decodeBatch(raw json.RawMessage, containerKeys []string) ([]map[string]interface{}, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var direct []map[string]interface{}
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, true
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		for _, key := range containerKeys {
			var nested []map[string]interface{}
			if inner, ok := wrapped[key]; ok && json.Unmarshal(inner, &nested) == nil {
				return nested, true
			}
		}
	}
	return nil, false
}
