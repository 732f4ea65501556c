package validation

import (
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/MongoPete/airbnb-clone/internal/domain"
)

// Result is the verdict for one document.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

func compiled(pattern string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patternCache[pattern]; ok {
		return re
	}
	re := regexp.MustCompile(pattern)
	patternCache[pattern] = re
	return re
}

// Evaluate runs every rule of set against doc and collects one message per
// failing rule, in declaration order.
func Evaluate(set *RuleSet, doc domain.Document) Result {
	errs := []string{}
	for i := range set.Rules {
		if !set.Rules[i].holds(doc) {
			errs = append(errs, set.Rules[i].Message)
		}
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

func parentPath(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		return field[:i]
	}
	return ""
}

func siblingPath(field, sibling string) string {
	if parent := parentPath(field); parent != "" {
		return parent + "." + sibling
	}
	return sibling
}

func (r *Rule) holds(doc domain.Document) bool {
	if parent := parentPath(r.Field); parent != "" {
		pv, ok := doc.Lookup(parent)
		if !ok {
			return true
		}
		if _, isObj := domain.AsObject(pv); !isObj {
			return true
		}
	}

	value, present := doc.Lookup(r.Field)
	if !present {
		return !r.Required
	}
	if value == nil {
		return r.Nullable
	}
	if r.After != "" {
		return r.laterThanSibling(doc, value)
	}
	return r.check(value)
}

// laterThanSibling only compares well-formed dates; a malformed value is
// reported by the field's own type rule.
func (r *Rule) laterThanSibling(doc domain.Document, value any) bool {
	after, ok := domain.ParseInstant(value)
	if !ok {
		return true
	}
	other, ok := doc.Lookup(siblingPath(r.Field, r.After))
	if !ok {
		return true
	}
	before, ok := domain.ParseInstant(other)
	if !ok {
		return true
	}
	return after.After(before)
}

// check applies the type and value constraints to a present, non-nil value.
func (r *Rule) check(value any) bool {
	switch r.Type {
	case TypeString:
		s, ok := value.(string)
		return ok && r.checkString(s)
	case TypeDecimalString:
		s, ok := domain.AsDecimalString(value)
		return ok && r.checkString(s)
	case TypeInt:
		n, ok := domain.AsInt(value)
		return ok && r.checkNumber(float64(n))
	case TypeNumber:
		n, ok := domain.AsNumber(value)
		return ok && r.checkNumber(n)
	case TypeDate:
		_, ok := domain.ParseInstant(value)
		return ok
	case TypeBool:
		_, ok := value.(bool)
		return ok
	case TypeObject:
		_, ok := domain.AsObject(value)
		return ok
	case TypeArray:
		items, ok := domain.AsSlice(value)
		return ok && r.checkArray(items)
	}
	return true
}

func (r *Rule) checkString(s string) bool {
	length := utf8.RuneCountInString(s)
	if r.MinLength != nil && length < *r.MinLength {
		return false
	}
	if r.MaxLength != nil && length > *r.MaxLength {
		return false
	}
	if len(r.Enum) > 0 && !slices.Contains(r.Enum, s) {
		return false
	}
	if r.Pattern != "" && !compiled(r.Pattern).MatchString(s) {
		return false
	}
	return true
}

func (r *Rule) checkNumber(n float64) bool {
	if r.Minimum != nil {
		if r.ExclusiveMinimum && n <= *r.Minimum {
			return false
		}
		if n < *r.Minimum {
			return false
		}
	}
	if r.Maximum != nil && n > *r.Maximum {
		return false
	}
	return true
}

func (r *Rule) checkArray(items []any) bool {
	if r.MinItems != nil && len(items) < *r.MinItems {
		return false
	}
	if r.MaxItems != nil && len(items) > *r.MaxItems {
		return false
	}
	if r.Items == nil {
		return true
	}
	for _, item := range items {
		if item == nil || !r.Items.check(item) {
			return false
		}
	}
	return true
}
