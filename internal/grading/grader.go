// Package grading turns answer comparisons into exercise verdicts and
// runs batch regression files of answer pairs.
package grading

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/mathcheck/internal/mathcheck"
)

var (
	ErrUnknownExerciseType = errors.New("grading: unknown exercise type")
	ErrNoQuestions         = errors.New("grading: exercise has no questions")
)

// Feedback messages shown to the learner.
const (
	FeedbackCorrect   = "Correct !"
	FeedbackIncorrect = "Incorrect."
	FeedbackTextOK    = "Explication fournie ! Consultez la solution pour comparer."
)

// Grader grades exercises with a mathcheck.Checker.
type Grader struct {
	checker *mathcheck.Checker
}

// NewGrader returns a Grader backed by checker.
func NewGrader(checker *mathcheck.Checker) *Grader {
	return &Grader{checker: checker}
}

// CheckQuestion compares a single answer against q.
func (g *Grader) CheckQuestion(q Question, given string) QuestionResult {
	res := QuestionResult{ID: q.ID, Given: given, Strategy: mathcheck.StrategyNone}

	switch q.Kind {
	case KindNumber:
		if g.checker.CompareNumbers(given, q.Answer) {
			res.Correct = true
			res.Strategy = mathcheck.StrategyNumeric
		}
	default:
		res.Strategy = g.checker.Match(given, q.Answer)
		res.Correct = res.Strategy != mathcheck.StrategyNone
	}
	return res
}

// Grade grades ex against answers, keyed by question ID (or TextareaKey
// for textarea exercises). Missing answers count as wrong.
func (g *Grader) Grade(ex Exercise, answers map[string]string) (Result, error) {
	switch ex.Type {
	case TypeSingleInput, TypeGridInput:
		return g.gradeInputs(ex, answers)
	case TypeTextarea:
		return gradeTextarea(ex, answers[TextareaKey]), nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownExerciseType, ex.Type)
	}
}

func (g *Grader) gradeInputs(ex Exercise, answers map[string]string) (Result, error) {
	if len(ex.Questions) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoQuestions, ex.ID)
	}

	res := Result{
		ExerciseID: ex.ID,
		Total:      len(ex.Questions),
		Questions:  make([]QuestionResult, 0, len(ex.Questions)),
	}
	for _, q := range ex.Questions {
		qr := g.CheckQuestion(q, strings.TrimSpace(answers[q.ID]))
		if qr.Correct {
			res.CorrectCount++
		}
		res.Questions = append(res.Questions, qr)
	}

	res.Correct = res.CorrectCount == res.Total
	if res.Total == 1 {
		if res.Correct {
			res.Feedback = FeedbackCorrect
		} else {
			res.Feedback = FeedbackIncorrect
		}
	} else {
		res.Feedback = fmt.Sprintf("%d/%d réponses correctes", res.CorrectCount, res.Total)
	}
	return res, nil
}

func gradeTextarea(ex Exercise, text string) Result {
	minLength := ex.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	res := Result{ExerciseID: ex.ID, Total: 1}
	if utf8.RuneCountInString(strings.TrimSpace(text)) >= minLength {
		res.Correct = true
		res.CorrectCount = 1
		res.Feedback = FeedbackTextOK
	} else {
		res.Feedback = fmt.Sprintf("Veuillez fournir une explication plus détaillée (minimum %d caractères).", minLength)
	}
	return res
}
