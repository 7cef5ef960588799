package wizard

import (
	"fmt"

	"github.com/talentscout/screening/internal/model"
	"github.com/talentscout/screening/internal/util"
	"github.com/tidwall/gjson"
)

// ParseQuestions flattens the completion response into an ordered list of
// (tech, question) pairs. The response is expected to be a JSON object
// mapping each technology to an array of question strings, possibly wrapped
// in markdown code fences. Key order of the object is preserved; questions
// are never re-sorted.
func ParseQuestions(raw string) ([]model.Question, error) {
	clean := util.StripCodeFence(raw)
	if !gjson.Valid(clean) {
		return nil, fmt.Errorf("completion is not valid JSON")
	}

	parsed := gjson.Parse(clean)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("completion is not a JSON object")
	}

	var questions []model.Question
	var parseErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			parseErr = fmt.Errorf("questions for %q are not an array", key.String())
			return false
		}
		for _, q := range value.Array() {
			if q.Type != gjson.String {
				parseErr = fmt.Errorf("question for %q is not a string", key.String())
				return false
			}
			questions = append(questions, model.Question{
				Tech:     key.String(),
				Question: q.String(),
			})
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("completion contains no questions")
	}
	return questions, nil
}
