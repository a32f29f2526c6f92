package commit

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// Report collects the outcomes of one invocation in dispatch order.
type Report struct {
	Outcomes []Outcome
}

// Add appends an outcome.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// OK folds all outcomes with logical AND. An empty report is successful.
func (r *Report) OK() bool {
	return lo.Reduce(r.Outcomes, func(acc bool, o Outcome, _ int) bool {
		return acc && o.OK()
	}, true)
}

// Err combines the failure details of every failed outcome.
func (r *Report) Err() error {
	var err error
	for _, o := range r.Outcomes {
		if !o.OK() {
			err = multierr.Append(err, fmt.Errorf("%w: %s: %s", ErrCommitFailed, o.Location.URL, o.Detail))
		}
	}

	return err
}
