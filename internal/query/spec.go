package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Validation error codes, keyed per request field.
const (
	CodeColumn = "[validation.column]"
	CodeOrder  = "[validation.order]"
	CodeLimit  = "[validation.limit]"
	CodePage   = "[validation.page]"
	CodeExists = "[validation.exists]"
)

const (
	MinLimit     = 20
	MaxLimit     = 100
	DefaultLimit = 20
)

const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// Param is one raw query parameter. Params are kept as an ordered slice
// because the order of sort keys determines ORDER BY precedence.
type Param struct {
	Key   string
	Value string
}

type SortKey struct {
	Column    string
	Direction string
}

// ListSpec is the validated pagination and ordering for one list request.
type ListSpec struct {
	Limit int
	Page  int
	Sort  []SortKey
}

// Offset converts the 1-based page into a row offset.
func (s *ListSpec) Offset() int {
	return (s.Page - 1) * s.Limit
}

// OrderClause renders the ORDER BY body. Columns and directions have
// already been validated against the table registry, so interpolation
// here is safe.
func (s *ListSpec) OrderClause() string {
	parts := make([]string, 0, len(s.Sort))
	for _, k := range s.Sort {
		parts = append(parts, k.Column+" "+strings.ToUpper(k.Direction))
	}
	return strings.Join(parts, ", ")
}

// FieldErrors accumulates validation codes per request field. All
// violations are collected before reporting, never just the first.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, code string) {
	e[field] = append(e[field], code)
}

func (e FieldErrors) Merge(other FieldErrors) {
	for field, codes := range other {
		e[field] = append(e[field], codes...)
	}
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f, strings.Join(e[f], ", "))
	}
	return b.String()
}

// Definition parameterizes the builder for one entity's list endpoint:
// which table the sort keys are checked against, which keys are reserved
// for pagination and scoping, and the sort applied when none is given.
type Definition struct {
	Table       string
	Reserved    []string
	DefaultSort SortKey
}

// Build partitions params into pagination, reserved scoping keys and sort
// candidates, validates each and returns the spec. Scoping values are not
// interpreted here; callers resolve and existence-check them. On any
// violation the full FieldErrors set is returned and the spec is nil.
func (d Definition) Build(params []Param) (*ListSpec, FieldErrors) {
	spec := &ListSpec{Limit: DefaultLimit, Page: 1}
	errs := FieldErrors{}

	reserved := make(map[string]struct{}, len(d.Reserved))
	for _, k := range d.Reserved {
		reserved[k] = struct{}{}
	}

	for _, p := range params {
		switch {
		case p.Key == "limit":
			n, err := strconv.Atoi(p.Value)
			if err != nil || n < MinLimit || n > MaxLimit {
				errs.Add("limit", CodeLimit)
				continue
			}
			spec.Limit = n
		case p.Key == "page":
			n, err := strconv.Atoi(p.Value)
			if err != nil || n < 1 {
				errs.Add("page", CodePage)
				continue
			}
			spec.Page = n
		default:
			if _, ok := reserved[p.Key]; ok {
				continue
			}
			ok := Tables.HasColumn(d.Table, p.Key)
			if !ok {
				errs.Add(p.Key, CodeColumn)
			}
			if p.Value != DirectionAsc && p.Value != DirectionDesc {
				errs.Add(p.Key, CodeOrder)
			}
			if ok && (p.Value == DirectionAsc || p.Value == DirectionDesc) {
				spec.Sort = append(spec.Sort, SortKey{Column: p.Key, Direction: p.Value})
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	if len(spec.Sort) == 0 {
		spec.Sort = []SortKey{d.DefaultSort}
	}
	return spec, nil
}
