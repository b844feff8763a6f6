package chapters

import (
	"fmt"

	"github.com/sqclip/sqclip/internal/types"
)

// The template is constant aside from the embedded fragment. The wording is
// load-bearing: ExtractSpan matches the "Start time:"/"End time:" labels this
// template asks the model to emit, so changes here must keep that shape.
const promptTemplate = `I am going to give you a transcript formatted as a VTT file, and it will be your job to pull out a clip that is between 45 seconds and 59 seconds. Based on the text content below, please tell me the start time and end time of a clip that will make for an engaging short. This clip must be at least 45 seconds long: if we subtract the start time from the end time, we must get a value of at least 45. Also, please do not give me a clip that starts or ends mid sentence. The clip must feel like a complete thought.

Transcript:
%s
End transcript.

Output format:
Clip Start time:
Clip End time:
`

// BuildPrompt renders the fixed clip-selection instruction around the
// chapter's caption fragment.
func BuildPrompt(ch types.Chapter) string {
	return fmt.Sprintf(promptTemplate, ch.Transcript)
}
