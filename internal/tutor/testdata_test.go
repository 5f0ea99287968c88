package tutor

const validModuleJSON = `{
  "language": "Python",
  "explanation": "## Overview\nThis defines **add**.",
  "tutorial": "### Functions\n* def declares a function",
  "example": "` + "```python\\ndef add(*xs):\\n    return sum(xs)\\n```" + `",
  "quiz": [
    {
      "type": "choice",
      "question": "What does add(2, 3) return?",
      "explanation": "It sums both arguments.",
      "options": ["23", "5", "None", "6"],
      "correctAnswerIndex": 1,
      "task": "",
      "starterCode": "",
      "solution": ""
    },
    {
      "type": "code",
      "question": "Write a subtract function.",
      "explanation": "Mirror add with the minus operator.",
      "options": [],
      "correctAnswerIndex": -1,
      "task": "Implement sub(a, b) returning a - b.",
      "starterCode": "def sub(a, b):\n    pass",
      "solution": "def sub(a, b):\n    return a - b"
    }
  ]
}`
