package rules

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// conditionSet compiles and caches the CEL condition programs of the
// existence overlay. Conditions see a single variable, "record", holding
// the JSON shape of the white paper record.
type conditionSet struct {
	env  *cel.Env
	mu   sync.RWMutex
	prgs map[string]cel.Program
}

func newConditionSet() (*conditionSet, error) {
	env, err := cel.NewEnv(
		cel.Variable("record", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create condition environment: %w", err)
	}
	return &conditionSet{env: env, prgs: make(map[string]cel.Program)}, nil
}

// compile builds and caches the program for expr. Called for every overlay
// condition at engine construction so a bad expression fails fast instead
// of during validation.
func (c *conditionSet) compile(expr string) error {
	c.mu.RLock()
	_, hit := c.prgs[expr]
	c.mu.RUnlock()
	if hit {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, hit := c.prgs[expr]; hit {
		return nil
	}

	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("compile condition %q: %w", expr, issues.Err())
	}
	prg, err := c.env.Program(ast,
		cel.InterruptCheckFrequency(100),
		cel.CostLimit(10000),
	)
	if err != nil {
		return fmt.Errorf("program condition %q: %w", expr, err)
	}
	c.prgs[expr] = prg
	return nil
}

// met evaluates a compiled condition against the record activation. A
// runtime evaluation failure or a non-boolean result counts as unmet: the
// gated assertion is skipped, never escalated to an error.
func (c *conditionSet) met(expr string, input map[string]any) bool {
	c.mu.RLock()
	prg, hit := c.prgs[expr]
	c.mu.RUnlock()
	if !hit {
		if err := c.compile(expr); err != nil {
			return false
		}
		c.mu.RLock()
		prg = c.prgs[expr]
		c.mu.RUnlock()
	}

	out, _, err := prg.Eval(input)
	if err != nil {
		return false
	}
	val, ok := out.Value().(bool)
	return ok && val
}
