package sink

import (
	"encoding/json"
	"fmt"
	"os"
)

// StdErrSink write the message into standard error, mainly used for testing
// and dry runs instead of writing to the database.
type StdErrSink struct{}

func NewStdErrSink() *StdErrSink {
	return &StdErrSink{}
}

func (s *StdErrSink) Push(msg *CollectedMessage) error {
	raw, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, string(raw))
	return nil
}
