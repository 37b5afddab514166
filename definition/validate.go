package definition

import (
	"fmt"
	"math"
	"net/http"
	"regexp"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/validation"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validate checks def against its struct rules and against reg.
//
// Every number in def must be finite; YAML's .nan and .inf are rejected.
// It returns an *errors.AppError: UNKNOWN_FUNCTION when a step names a
// function reg does not hold (or holds under the other kind),
// LIMIT_EXCEEDED when an infinite source has no take or take_while step,
// and INVALID_DEFINITION for everything else.
func Validate(def *Definition, reg *Registry) error {
	if def == nil {
		return errors.InvalidDefinition("", "definition is nil")
	}
	if err := validation.ValidateAs(errors.ErrCodeInvalidDefinition, def); err != nil {
		if appErr, ok := errors.AsAppError(err); ok && def.Name != "" {
			appErr.WithDetail("pipeline", def.Name)
		}
		return err
	}

	v := validation.New().WithCode(errors.ErrCodeInvalidDefinition)
	v.Pattern("name", def.Name, namePattern)
	checkFinite(v, def.Source)

	for i, step := range def.Steps {
		field := fmt.Sprintf("steps[%d]", i)
		if !step.Op.usesFunc() {
			v.Custom(step.Func == "", field+".func", "is not used by "+string(step.Op))
			continue
		}
		v.Required(field+".func", step.Func)
		if step.Func == "" {
			continue
		}
		if step.Arg != nil && !finite(*step.Arg) {
			v.AddError(field+".arg", "must be a finite number")
			continue
		}

		takesArg, checkArg, err := lookup(reg, step)
		if err != nil {
			return err.WithDetail("pipeline", def.Name).WithDetail("step", i)
		}
		switch {
		case takesArg && step.Arg == nil:
			v.AddError(field+".arg", fmt.Sprintf("is required by %s", step.Func))
		case !takesArg && step.Arg != nil:
			v.AddError(field+".arg", fmt.Sprintf("is not accepted by %s", step.Func))
		case takesArg && checkArg != nil:
			if err := checkArg(*step.Arg); err != nil {
				v.AddError(field+".arg", err.Error())
			}
		}
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr.WithDetail("pipeline", def.Name)
	}

	if !def.Bounded() {
		return errors.New(errors.ErrCodeLimitExceeded,
			fmt.Sprintf("source %q is infinite; add a take or take_while step", def.Source.Kind),
			http.StatusUnprocessableEntity,
		).WithDetail("pipeline", def.Name)
	}
	return nil
}

// checkFinite reports the source numbers that are NaN or infinite.
func checkFinite(v *validation.Validator, src Source) {
	for i, x := range src.Values {
		v.Custom(finite(x), fmt.Sprintf("source.values[%d]", i), "must be a finite number")
	}
	v.Custom(finite(src.Start), "source.start", "must be a finite number")
	v.Custom(finite(src.Step), "source.step", "must be a finite number")
	v.Custom(finite(src.Value), "source.value", "must be a finite number")
	if src.End != nil {
		v.Custom(finite(*src.End), "source.end", "must be a finite number")
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// lookup resolves the function a step names, reporting whether it takes an
// argument and how to check that argument.
func lookup(reg *Registry, step Step) (bool, func(float64) error, *errors.AppError) {
	if step.Op == OpMap {
		m, ok := reg.Mapper(step.Func)
		if !ok {
			return false, nil, errors.UnknownFunction(string(KindMapper), step.Func)
		}
		return m.TakesArg, m.CheckArg, nil
	}
	p, ok := reg.Predicate(step.Func)
	if !ok {
		return false, nil, errors.UnknownFunction(string(KindPredicate), step.Func)
	}
	return p.TakesArg, p.CheckArg, nil
}
