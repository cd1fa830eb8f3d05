package llm

import (
	"log"
	"strings"

	"google.golang.org/api/iterator"
)

// StreamErrorText is the terminal full_response when the upstream fails
// before producing any text.
const StreamErrorText = "Sorry, I ran into a problem generating a response. Please try again."

// Frame is one unit of a streaming completion: an increment, or the terminal
// frame carrying the concatenation of all prior increments.
type Frame struct {
	Chunk        string `json:"chunk"`
	Done         bool   `json:"done"`
	FullResponse string `json:"full_response,omitempty"`
}

// relay pumps increments from next to onFrame in arrival order, accumulating
// the full text, and always ends the sequence with a terminal frame. next
// signals a clean end with iterator.Done. Any other error from next is folded
// into the terminal frame: the partial text accumulated so far, or
// StreamErrorText when nothing was produced. The sequence is single-pass;
// there is no retry. A non-nil error from onFrame stops the relay immediately,
// since it means the consumer is gone.
func relay(next func() (string, error), onFrame func(Frame) error) error {
	var full strings.Builder

	for {
		chunk, err := next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Completion stream interrupted: %v", err)
			text := full.String()
			if text == "" {
				text = StreamErrorText
			}
			return onFrame(Frame{Done: true, FullResponse: text})
		}
		if chunk == "" {
			continue
		}

		full.WriteString(chunk)
		if err := onFrame(Frame{Chunk: chunk}); err != nil {
			return err
		}
	}

	return onFrame(Frame{Done: true, FullResponse: full.String()})
}
