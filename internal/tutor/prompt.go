package tutor

import (
	"fmt"
	"strings"
)

const moduleSystemPrompt = `You are an elite programming tutor. A learner pastes a code snippet and you turn it into a complete learning module.

Rules:
- Identify the programming language of the snippet.
- explanation: explain what the code does and how, at a high level first and then line by line where it matters.
- tutorial: teach the key concepts the snippet relies on, step by step, so the learner could write similar code.
- example: show a more advanced, production-quality example that applies the same concepts, with a short walkthrough.
- Use Markdown inside every text field: ## and ### headings, * bullet items, **bold**, and fenced code blocks tagged with the language.
- quiz: questions that check understanding of this snippet, in the order they should be asked.
- choice questions have exactly 4 options with exactly one correct; distractors should reflect common misconceptions.
- code questions ask for a small piece of code in the same language; give a clear task, starter code the learner can build on, and a reference solution.`

const evaluationSystemPrompt = `You are an expert programming instructor grading a learner's code.

Rules:
- Judge whether the submitted code correctly accomplishes the task in the given language.
- Minor style issues do not make an answer incorrect; wrong behavior does.
- Give constructive, specific feedback: what works, what does not, and how to fix it.
- Score the answer from 0 to 100 for correctness and quality.
- Use Markdown in the feedback.`

// buildModuleMessage constructs the user message for module generation.
func buildModuleMessage(source string, cfg Config) string {
	var b strings.Builder

	choice, code := quizMix(cfg.QuizSize)
	fmt.Fprintf(&b, "Quiz: %d questions, %d of type choice and %d of type code, code questions last.\n\n", choice+code, choice, code)

	b.WriteString("Code snippet:\n")
	b.WriteString(fence(source, ""))

	return b.String()
}

// quizMix splits the quiz size into choice and code questions, keeping at
// least one of each when the size allows.
func quizMix(size int) (choice, code int) {
	if size < 2 {
		return 1, 1
	}
	code = size / 3
	if code < 1 {
		code = 1
	}
	return size - code, code
}

// buildEvaluationMessage constructs the user message for code grading.
func buildEvaluationMessage(in EvaluationInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Language: %s\n\n", in.Language)
	fmt.Fprintf(&b, "Task:\n%s\n\n", in.Task)

	if strings.TrimSpace(in.ContextCode) != "" {
		b.WriteString("Original code the lesson was about:\n")
		b.WriteString(fence(in.ContextCode, in.Language))
		b.WriteString("\n")
	}

	b.WriteString("Submitted code:\n")
	b.WriteString(fence(in.UserCode, in.Language))

	return b.String()
}

// fence wraps code in a Markdown fence long enough not to collide with
// any backtick run inside it.
func fence(code, lang string) string {
	ticks := "```"
	for strings.Contains(code, ticks) {
		ticks += "`"
	}
	return fmt.Sprintf("%s%s\n%s\n%s\n", ticks, strings.ToLower(lang), strings.TrimRight(code, "\n"), ticks)
}
