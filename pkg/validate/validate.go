// Package validate checks and sanitizes decoded request bodies with per-field
// rule chains, in the style of express-validator.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Violation is one failed rule.
type Violation struct {
	Field   string
	Message string
}

func (v *Violation) Error() string {
	return v.Message
}

// step either checks a value (returning false on failure) or rewrites it.
type step struct {
	message string
	apply   func(value interface{}, present bool) (interface{}, bool)
}

type Chain struct {
	field    string
	message  string
	optional bool
	steps    []step
}

// Field starts a rule chain for a body field.
func Field(name string) *Chain {
	return &Chain{field: name}
}

// WithMessage replaces the message of every failing rule in the chain.
func (c *Chain) WithMessage(msg string) *Chain {
	c.message = msg
	return c
}

// Optional skips the chain when the field is absent or null.
func (c *Chain) Optional() *Chain {
	c.optional = true
	return c
}

func (c *Chain) Required() *Chain {
	return c.check(fmt.Sprintf("%s is required.", c.field), func(v interface{}, present bool) bool {
		return present && v != nil
	})
}

func (c *Chain) Trim() *Chain {
	return c.sanitize(func(v interface{}) interface{} {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		return v
	})
}

func (c *Chain) NotEmpty() *Chain {
	return c.check(fmt.Sprintf("%s must not be empty.", c.field), func(v interface{}, present bool) bool {
		return present && toString(v) != ""
	})
}

func (c *Chain) Numeric() *Chain {
	return c.check(fmt.Sprintf("%s must be numeric.", c.field), func(v interface{}, present bool) bool {
		if !present {
			return false
		}
		switch n := v.(type) {
		case json.Number:
			return true
		case float64, int, int64:
			return true
		case string:
			_, err := strconv.ParseFloat(n, 64)
			return err == nil
		}
		return false
	})
}

func (c *Chain) Email() *Chain {
	return c.check(fmt.Sprintf("%s must be a valid email.", c.field), func(v interface{}, present bool) bool {
		s, ok := v.(string)
		if !present || !ok {
			return false
		}
		addr, err := mail.ParseAddress(strings.TrimSpace(s))
		return err == nil && addr.Name == "" && addr.Address == strings.TrimSpace(s)
	})
}

func (c *Chain) MinLength(n int) *Chain {
	return c.check(fmt.Sprintf("%s must be at least %d characters.", c.field, n), func(v interface{}, present bool) bool {
		return present && v != nil && utf8.RuneCountInString(toString(v)) >= n
	})
}

// Object requires the field to be a JSON object.
func (c *Chain) Object() *Chain {
	return c.check(fmt.Sprintf("%s must be an object.", c.field), func(v interface{}, present bool) bool {
		_, ok := v.(map[string]interface{})
		return present && ok
	})
}

// NormalizeEmail trims and lower-cases an email address.
func (c *Chain) NormalizeEmail() *Chain {
	return c.sanitize(func(v interface{}) interface{} {
		if s, ok := v.(string); ok {
			return strings.ToLower(strings.TrimSpace(s))
		}
		return v
	})
}

func (c *Chain) check(msg string, ok func(interface{}, bool) bool) *Chain {
	c.steps = append(c.steps, step{
		message: msg,
		apply: func(v interface{}, present bool) (interface{}, bool) {
			return v, ok(v, present)
		},
	})
	return c
}

func (c *Chain) sanitize(fn func(interface{}) interface{}) *Chain {
	c.steps = append(c.steps, step{
		apply: func(v interface{}, present bool) (interface{}, bool) {
			if !present {
				return v, true
			}
			return fn(v), true
		},
	})
	return c
}

// run evaluates the chain against body, writing sanitized values back. It
// stops at the first failing rule of the chain.
func (c *Chain) run(body map[string]interface{}) *Violation {
	value, present := body[c.field]
	if c.optional && (!present || value == nil) {
		return nil
	}

	for _, s := range c.steps {
		next, ok := s.apply(value, present)
		if !ok {
			msg := s.message
			if c.message != "" {
				msg = c.message
			}
			return &Violation{Field: c.field, Message: msg}
		}
		value = next
	}

	if present {
		body[c.field] = value
	}
	return nil
}

// Check runs every chain against body and returns all violations, or nil.
// Sanitizers mutate body in place.
func Check(body map[string]interface{}, chains ...*Chain) utilerrors.Aggregate {
	var errs []error
	for _, c := range chains {
		if v := c.run(body); v != nil {
			errs = append(errs, v)
		}
	}
	return utilerrors.NewAggregate(errs)
}

// First returns the first violation carried by err, if any.
func First(err error) (*Violation, bool) {
	var agg utilerrors.Aggregate
	if errors.As(err, &agg) {
		for _, e := range agg.Errors() {
			var v *Violation
			if errors.As(e, &v) {
				return v, true
			}
		}
		return nil, false
	}
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case map[string]interface{}, []interface{}:
		return "[object]"
	default:
		return fmt.Sprint(s)
	}
}
