package tools

import (
	"fmt"
	"math"
	"strconv"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
)

// Args holds an operation's arguments after normalization. Values are
// one of string, bool, int or map[string]string.
type Args map[string]any

// String returns the named string argument, or "" when absent.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Bool returns the named boolean argument, or false when absent.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// Int returns the named integer argument and whether it was present.
func (a Args) Int(name string) (int, bool) {
	v, ok := a[name].(int)
	return v, ok
}

// StringMap returns the named mapping argument, or nil when absent.
func (a Args) StringMap(name string) map[string]string {
	v, _ := a[name].(map[string]string)
	return v
}

// Normalize validates raw arguments against the descriptor's parameter
// schema and coerces them to their semantic types. It is a pure
// function and idempotent: normalizing its own output yields the same
// arguments.
func Normalize(desc Descriptor, raw map[string]any) (Args, error) {
	declared := make(map[string]Param, len(desc.Params))
	for _, p := range desc.Params {
		declared[p.Name] = p
	}
	for name := range raw {
		if _, ok := declared[name]; !ok {
			return nil, apperrors.Newf(apperrors.CodeUnknownArgument,
				"operation %s does not take argument %q", desc.Name, name)
		}
	}

	args := make(Args, len(desc.Params))
	for _, p := range desc.Params {
		v, present := raw[p.Name]
		if !present || v == nil {
			if p.Required {
				return nil, apperrors.Newf(apperrors.CodeMissingArgument,
					"operation %s requires argument %q", desc.Name, p.Name)
			}
			if p.Default != nil {
				args[p.Name] = p.Default
			}
			continue
		}
		coerced, err := coerce(p.Type, v)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidArgument,
				fmt.Sprintf("argument %q of operation %s", p.Name, desc.Name), err)
		}
		args[p.Name] = coerced
	}
	return args, nil
}

func coerce(t ParamType, v any) (any, error) {
	switch t {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	case TypeBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return nil, fmt.Errorf("expected boolean, got %q", b)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("expected boolean, got %T", v)
	case TypeInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case int64:
			return int(n), nil
		case float64:
			// JSON numbers arrive as float64; reject fractions.
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("expected integer, got %v", n)
			}
			return int(n), nil
		case string:
			parsed, err := strconv.Atoi(n)
			if err != nil {
				return nil, fmt.Errorf("expected integer, got %q", n)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("expected integer, got %T", v)
	case TypeStringMap:
		switch m := v.(type) {
		case map[string]string:
			return m, nil
		case map[string]any:
			out := make(map[string]string, len(m))
			for k, mv := range m {
				s, err := stringify(mv)
				if err != nil {
					return nil, fmt.Errorf("key %q: %w", k, err)
				}
				out[k] = s
			}
			return out, nil
		}
		return nil, fmt.Errorf("expected string mapping, got %T", v)
	}
	return nil, fmt.Errorf("unsupported parameter type %q", t)
}

func stringify(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case float64:
		if s != math.Trunc(s) {
			return "", fmt.Errorf("expected string value, got %v", s)
		}
		return strconv.FormatInt(int64(s), 10), nil
	case int:
		return strconv.Itoa(s), nil
	}
	return "", fmt.Errorf("expected string value, got %T", v)
}
