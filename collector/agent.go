package collector

import "context"

// AgentTask tells a browser agent what to harvest.
type AgentTask struct {
	// Platform selects which cached session to restore ("twitter", "reddit").
	Platform string
	// StartURL is the page the run opens on.
	StartURL string
	// Objective is the natural language extraction instruction handed to the
	// model alongside the rendered page.
	Objective string
	// MaxScrolls caps how many times the run scrolls for more content.
	MaxScrolls int
}

// AgentRunner executes a browser run and returns its opaque result. Feed the
// result to LocateRecords to get the record batch out.
type AgentRunner interface {
	Run(ctx context.Context, task AgentTask) (*RunResult, error)
}
