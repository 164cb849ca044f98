// api/llm/parse.go
package llm

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	logger "github.com/sagelms/sage/api/logging"
	"github.com/sagelms/sage/api/model"
)

// Parsers for structured provider output. Malformed output degrades to an
// empty result rather than an error; the caller sees "no questions" instead
// of a failed request.

type quizEnvelope struct {
	Questions []model.QuizQuestion `json:"questions"`
}

type conceptsEnvelope struct {
	Concepts []string `json:"concepts"`
}

// ParseQuizQuestions decodes the quiz JSON envelope. Anything unparseable
// yields an empty slice.
func ParseQuizQuestions(raw string) []model.QuizQuestion {
	var envelope quizEnvelope
	if err := json.Unmarshal([]byte(stripFences(raw)), &envelope); err != nil {
		logger.Warn("Malformed quiz output from provider", zap.Error(err))
		return []model.QuizQuestion{}
	}
	if envelope.Questions == nil {
		return []model.QuizQuestion{}
	}
	return envelope.Questions
}

// ParseConcepts decodes the concept-list JSON envelope. Anything unparseable
// yields an empty slice.
func ParseConcepts(raw string) []string {
	var envelope conceptsEnvelope
	if err := json.Unmarshal([]byte(stripFences(raw)), &envelope); err != nil {
		logger.Warn("Malformed concepts output from provider", zap.Error(err))
		return []string{}
	}
	if envelope.Concepts == nil {
		return []string{}
	}
	return envelope.Concepts
}

// stripFences removes a surrounding markdown code fence, which providers
// emit even when asked for bare JSON.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
