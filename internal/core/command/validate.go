package command

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gabbot/internal/core/domain"
)

// TypeError reports the first argument that failed its parameter's type
// check. Its message is shown to the user verbatim.
type TypeError struct {
	Param    string
	Value    domain.Value
	Expected []ParamType
}

func (e *TypeError) Error() string {
	names := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		names[i] = string(t)
	}

	return fmt.Sprintf("argument %q does not match type %s required for parameter %q",
		e.Value.String(), strings.Join(names, " or "), e.Param)
}

// ValidateArgs walks the declared parameters zipped with the supplied
// arguments and stops at the first mismatch. A parameter accepts a value
// satisfying at least one of its declared types. Arguments beyond the
// supplied prefix are covered by defaults and not checked.
func ValidateArgs(params []Param, args []domain.Value) *TypeError {
	n := min(len(params), len(args))

	for i := 0; i < n; i++ {
		if !matchesAny(params[i].Types, args[i]) {
			return &TypeError{
				Param:    params[i].Name,
				Value:    args[i],
				Expected: params[i].Types,
			}
		}
	}

	return nil
}

func matchesAny(types []ParamType, v domain.Value) bool {
	for _, t := range types {
		if matches(t, v) {
			return true
		}
	}

	return false
}

func matches(t ParamType, v domain.Value) bool {
	switch t {
	case TypeString, TypeAny:
		return true
	case TypeChar:
		return utf8.RuneCountInString(v.String()) == 1
	case TypeInt:
		_, ok := v.Int()
		return ok
	case TypeNumber:
		return v.Numeric()
	default:
		return false
	}
}
