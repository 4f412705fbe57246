package grading

import "github.com/abhisek/mathcheck/internal/mathcheck"

// QuestionKind selects how a question's answer is compared.
type QuestionKind string

const (
	// KindExpression uses the full equivalence check (fractions, powers,
	// arithmetic). It is the default when Kind is empty.
	KindExpression QuestionKind = "expression"

	// KindNumber accepts only plain numbers within tolerance.
	KindNumber QuestionKind = "number"
)

// ExerciseType describes how an exercise collects answers.
type ExerciseType string

const (
	TypeSingleInput ExerciseType = "single_input" // one answer field
	TypeGridInput   ExerciseType = "grid_input"   // several labelled fields
	TypeTextarea    ExerciseType = "textarea"     // free-text explanation
)

// TextareaKey is the answers map key holding a textarea exercise's text.
const TextareaKey = "text"

// DefaultMinLength is the shortest accepted textarea explanation.
const DefaultMinLength = 20

// Question is one answer field of an exercise.
type Question struct {
	ID     string       `json:"id"`
	Label  string       `json:"label,omitempty"`
	Answer string       `json:"answer"`
	Kind   QuestionKind `json:"kind,omitempty"`
}

// Exercise is the part of an exercise definition needed to grade it.
type Exercise struct {
	ID        string       `json:"id"`
	Type      ExerciseType `json:"type"`
	Questions []Question   `json:"questions,omitempty"`

	// MinLength applies to textarea exercises. Zero means DefaultMinLength.
	MinLength int `json:"min_length,omitempty"`
}

// QuestionResult is the verdict for one answer field.
type QuestionResult struct {
	ID       string             `json:"id"`
	Given    string             `json:"given"`
	Correct  bool               `json:"correct"`
	Strategy mathcheck.Strategy `json:"strategy"`
}

// Result is the outcome of grading one exercise.
type Result struct {
	ExerciseID   string           `json:"exercise_id"`
	Correct      bool             `json:"correct"`
	CorrectCount int              `json:"correct_count"`
	Total        int              `json:"total"`
	Feedback     string           `json:"feedback"`
	Questions    []QuestionResult `json:"questions,omitempty"`
}
