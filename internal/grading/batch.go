package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathcheck/internal/mathcheck"
)

// ErrInvalidBatch matches every error returned by LoadBatch for content
// problems (bad JSON or schema violations).
var ErrInvalidBatch = errors.New("grading: invalid batch file")

// BatchError reports why a batch file was rejected.
type BatchError struct {
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("invalid batch file: %v", e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

func (e *BatchError) Is(target error) bool { return target == ErrInvalidBatch }

// Case is one answer pair in a batch regression file.
type Case struct {
	Name    string       `json:"name,omitempty"`
	User    string       `json:"user"`
	Correct string       `json:"correct"`
	Kind    QuestionKind `json:"kind,omitempty"`
	Expect  *bool        `json:"expect,omitempty"`
}

// Batch is a parsed batch regression file.
type Batch struct {
	Cases []Case `json:"cases"`
}

// CaseResult is the verdict for one Case.
type CaseResult struct {
	Index      int                `json:"index"`
	Case       Case               `json:"case"`
	Equivalent bool               `json:"equivalent"`
	Strategy   mathcheck.Strategy `json:"strategy"`

	// Mismatch is set when the case has an Expect that disagrees.
	Mismatch bool `json:"mismatch"`
}

// Report summarizes a batch run. Results keep the file order.
type Report struct {
	Results    []CaseResult `json:"results"`
	Total      int          `json:"total"`
	Accepted   int          `json:"accepted"`
	Mismatches int          `json:"mismatches"`
}

var (
	compiledBatchSchema *jsonschema.Schema
	compileBatchOnce    sync.Once
	compileBatchErr     error
)

func getBatchSchema() (*jsonschema.Schema, error) {
	compileBatchOnce.Do(func() {
		// The compiler wants a plain decoded JSON value.
		raw, err := json.Marshal(batchSchema)
		if err != nil {
			compileBatchErr = fmt.Errorf("marshal batch schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileBatchErr = fmt.Errorf("parse batch schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://mathcheck-batch.json"
		if err := c.AddResource(url, doc); err != nil {
			compileBatchErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledBatchSchema, compileBatchErr = c.Compile(url)
	})
	return compiledBatchSchema, compileBatchErr
}

// LoadBatch reads and validates a batch regression file.
func LoadBatch(r io.Reader) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &BatchError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := getBatchSchema()
	if err != nil {
		return nil, fmt.Errorf("compile batch schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &BatchError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &BatchError{Err: err}
	}
	return &b, nil
}

// RunBatch checks every case, at most GOMAXPROCS at a time. It stops early
// only when ctx is cancelled.
func (g *Grader) RunBatch(ctx context.Context, cases []Case) (Report, error) {
	results := make([]CaseResult, len(cases))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, c := range cases {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			q := Question{ID: c.Name, Answer: c.Correct, Kind: c.Kind}
			qr := g.CheckQuestion(q, c.User)
			results[i] = CaseResult{
				Index:      i,
				Case:       c,
				Equivalent: qr.Correct,
				Strategy:   qr.Strategy,
				Mismatch:   c.Expect != nil && *c.Expect != qr.Correct,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Report{}, fmt.Errorf("run batch: %w", err)
	}

	rep := Report{Results: results, Total: len(results)}
	for _, r := range results {
		if r.Equivalent {
			rep.Accepted++
		}
		if r.Mismatch {
			rep.Mismatches++
		}
	}
	return rep, nil
}
