// api/llm/prompts.go
package llm

import (
	"fmt"
	"strings"
)

// Instruction templates for each assistant operation. The templates are
// fixed; only user text and context snippets vary per request.

const chatSystemBase = `You are an educational assistant for an e-learning platform.
Your goal is to help students understand course materials and answer their questions accurately and clearly.
Keep responses concise but informative. If you don't know the answer, admit it rather than making something up.`

const conceptsSystem = `Extract the 5-7 most important concepts or terms from the following educational content. Return them as a JSON object with a "concepts" key holding an array of strings.`

const feedbackSystem = `You are an educational assistant helping teachers provide feedback on student assignments.
You will be given an assignment description and a student's submission.
Provide constructive, helpful feedback that identifies strengths and areas for improvement.
Be specific, supportive, and offer actionable suggestions for improvement.`

// ChatPrompt builds the chat instruction, grounding the answer in the given
// context snippets when present.
func ChatPrompt(contextSnippets []string) string {
	if len(contextSnippets) == 0 {
		return chatSystemBase
	}
	var b strings.Builder
	b.WriteString(chatSystemBase)
	b.WriteString("\nUse the following course material context to inform your answers when relevant:\n")
	b.WriteString(strings.Join(contextSnippets, "\n\n"))
	return b.String()
}

// QuizPrompt builds the quiz generation instruction with the declared JSON
// schema.
func QuizPrompt(numQuestions int) string {
	return fmt.Sprintf(`Generate %d multiple-choice quiz questions based on the following educational content.
Each question should have 4 options with only one correct answer.
Return the result as a JSON object with a "questions" key holding an array where each item has the format:
{
  "question": "Question text",
  "options": ["Option A", "Option B", "Option C", "Option D"],
  "correctAnswerIndex": 0,
  "explanation": "Explanation of why this answer is correct"
}`, numQuestions)
}

func ConceptsPrompt() string {
	return conceptsSystem
}

func FeedbackPrompt() string {
	return feedbackSystem
}

// FeedbackUserText pairs the assignment brief with the student's work.
func FeedbackUserText(assignmentDescription, submission string) string {
	return fmt.Sprintf("Assignment: %s\n\nStudent Submission: %s", assignmentDescription, submission)
}
