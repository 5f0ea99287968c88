package tutor

import "github.com/abhisek/codemaster/internal/llm"

// ModuleSchema defines the JSON schema for learning module generation.
// The model is asked for every quiz field so strict structured output
// works, with fields that do not apply to a question's type sent empty.
// Replies only need the fields common to every question; the per-type
// fields are checked when the module is parsed.
var ModuleSchema = &llm.Schema{
	Name:        "learning-module",
	Description: "A learning module explaining a code snippet, with a tutorial, an advanced example, and a quiz",
	Definition:  moduleDefinition(questionDefinition(questionFields, true)),
	Reply:       moduleDefinition(questionDefinition(questionCommonFields, false)),
}

var (
	questionCommonFields = []any{"type", "question", "explanation"}
	questionFields       = append(append([]any{}, questionCommonFields...),
		"options", "correctAnswerIndex", "task", "starterCode", "solution")
)

func moduleDefinition(question map[string]any) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"language": map[string]any{
				"type":        "string",
				"description": "The detected programming language of the snippet, e.g. Python",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A clear, high-level explanation of what the code does and how it works, in Markdown",
			},
			"tutorial": map[string]any{
				"type":        "string",
				"description": "A step-by-step tutorial on the key concepts used in the code, in Markdown",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "An advanced, production-quality example applying the same concepts, in Markdown with fenced code blocks",
			},
			"quiz": map[string]any{
				"type":  "array",
				"items": question,
			},
		},
		"required":             []any{"language", "explanation", "tutorial", "example", "quiz"},
		"additionalProperties": false,
	}
}

// questionDefinition describes one quiz entry. A closed definition rejects
// properties it does not list.
func questionDefinition(required []any, closed bool) map[string]any {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type": map[string]any{
				"type":        "string",
				"enum":        []any{string(KindChoice), string(KindCode)},
				"description": "choice: pick one of 4 options. code: write code that is graded",
			},
			"question": map[string]any{
				"type":        "string",
				"description": "The question shown to the learner",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the answer is correct, shown after answering",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 options for choice questions. Empty array for code questions.",
			},
			"correctAnswerIndex": map[string]any{
				"type":        "integer",
				"description": "0-based index of the correct option for choice questions. -1 for code questions.",
			},
			"task": map[string]any{
				"type":        "string",
				"description": "What the learner must implement, for code questions. Empty for choice questions.",
			},
			"starterCode": map[string]any{
				"type":        "string",
				"description": "Code the editor starts with, for code questions. May be empty.",
			},
			"solution": map[string]any{
				"type":        "string",
				"description": "A reference solution for code questions. Empty if none.",
			},
		},
		"required": required,
	}
	if closed {
		def["additionalProperties"] = false
	}
	return def
}

// EvaluationSchema defines the JSON schema for grading a code answer.
var EvaluationSchema = &llm.Schema{
	Name:        "code-evaluation",
	Description: "A verdict on a learner's code answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isCorrect": map[string]any{
				"type":        "boolean",
				"description": "Whether the code correctly accomplishes the task",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Constructive feedback for the learner, in Markdown",
			},
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Quality score from 0 to 100",
			},
		},
		"required":             []any{"isCorrect", "feedback", "score"},
		"additionalProperties": false,
	},
}
