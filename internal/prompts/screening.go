// Package prompts builds the fixed instruction prompts sent to the
// completion service.
package prompts

import (
	"fmt"
	"strings"
)

// Questions asks for exactly three interview questions per technology in the
// stack, returned as a JSON object keyed by technology name. The wizard
// relies on that shape when it flattens the response.
func Questions(techStack string) string {
	var b strings.Builder
	b.WriteString("You are a technical interviewer. For each technology in the tech stack below, generate 3 relevant technical interview questions.\n\n")
	fmt.Fprintf(&b, "Tech Stack: %s\n\n", techStack)
	b.WriteString("Format response in JSON like:\n")
	b.WriteString("{\n")
	b.WriteString("  \"Python\": [\"Question1\", \"Question2\", \"Question3\"],\n")
	b.WriteString("  \"React\": [\"Question1\", \"Question2\", \"Question3\"]\n")
	b.WriteString("}\n")
	return b.String()
}

// Feedback asks for a short critique of one answer. The two-line limit is
// enforced only by the instruction, not validated.
func Feedback(answer, tech string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a technical interviewer. Based on the answer below for the %s question, generate a short and minimal constructive feedback.\n\n", tech)
	fmt.Fprintf(&b, "Answer: %s\n\n", answer)
	b.WriteString("Provide feedback in a concise manner, no more than two lines.")
	return b.String()
}
