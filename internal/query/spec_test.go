package query

import (
	"reflect"
	"testing"
)

var testDef = Definition{
	Table:       "buildings",
	Reserved:    []string{"business"},
	DefaultSort: SortKey{Column: "name", Direction: DirectionDesc},
}

func TestBuildDefaults(t *testing.T) {
	spec, errs := testDef.Build(nil)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if spec.Limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", spec.Limit, DefaultLimit)
	}
	if spec.Page != 1 {
		t.Errorf("page = %d, want 1", spec.Page)
	}
	if got := spec.OrderClause(); got != "name DESC" {
		t.Errorf("order clause = %q, want %q", got, "name DESC")
	}
	if spec.Offset() != 0 {
		t.Errorf("offset = %d, want 0", spec.Offset())
	}
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name   string
		params []Param
		want   FieldErrors
	}{
		{
			name:   "unknown column",
			params: []Param{{Key: "foo", Value: "asc"}},
			want:   FieldErrors{"foo": {CodeColumn}},
		},
		{
			name:   "bad direction",
			params: []Param{{Key: "created_at", Value: "upward"}},
			want:   FieldErrors{"created_at": {CodeOrder}},
		},
		{
			name:   "unknown column and bad direction",
			params: []Param{{Key: "foo", Value: "up"}},
			want:   FieldErrors{"foo": {CodeColumn, CodeOrder}},
		},
		{
			name:   "limit too large",
			params: []Param{{Key: "limit", Value: "10000"}},
			want:   FieldErrors{"limit": {CodeLimit}},
		},
		{
			name:   "limit below minimum",
			params: []Param{{Key: "limit", Value: "5"}},
			want:   FieldErrors{"limit": {CodeLimit}},
		},
		{
			name:   "limit not a number",
			params: []Param{{Key: "limit", Value: "abc"}},
			want:   FieldErrors{"limit": {CodeLimit}},
		},
		{
			name:   "page zero",
			params: []Param{{Key: "page", Value: "0"}},
			want:   FieldErrors{"page": {CodePage}},
		},
		{
			name: "all violations collected",
			params: []Param{
				{Key: "limit", Value: "10000"},
				{Key: "foo", Value: "asc"},
				{Key: "created_at", Value: "sideways"},
			},
			want: FieldErrors{
				"limit":      {CodeLimit},
				"foo":        {CodeColumn},
				"created_at": {CodeOrder},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, errs := testDef.Build(tt.params)
			if spec != nil {
				t.Errorf("spec = %+v, want nil", spec)
			}
			if !reflect.DeepEqual(errs, tt.want) {
				t.Errorf("errs = %v, want %v", errs, tt.want)
			}
		})
	}
}

func TestBuildSortOrderPreserved(t *testing.T) {
	spec, errs := testDef.Build([]Param{
		{Key: "status", Value: "asc"},
		{Key: "name", Value: "desc"},
		{Key: "created_at", Value: "asc"},
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := "status ASC, name DESC, created_at ASC"
	if got := spec.OrderClause(); got != want {
		t.Errorf("order clause = %q, want %q", got, want)
	}
}

func TestBuildReservedKeysSkipped(t *testing.T) {
	spec, errs := testDef.Build([]Param{
		{Key: "business", Value: "not-a-direction"},
		{Key: "name", Value: "asc"},
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := spec.OrderClause(); got != "name ASC" {
		t.Errorf("order clause = %q, want %q", got, "name ASC")
	}
}

func TestBuildPagination(t *testing.T) {
	spec, errs := testDef.Build([]Param{
		{Key: "limit", Value: "50"},
		{Key: "page", Value: "3"},
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if spec.Limit != 50 || spec.Page != 3 {
		t.Errorf("limit, page = %d, %d, want 50, 3", spec.Limit, spec.Page)
	}
	if spec.Offset() != 100 {
		t.Errorf("offset = %d, want 100", spec.Offset())
	}
}

func TestSchemaHasColumn(t *testing.T) {
	if !Tables.HasColumn("businesses", "name") {
		t.Error("businesses.name should be sortable")
	}
	if Tables.HasColumn("businesses", "password") {
		t.Error("businesses.password should not be sortable")
	}
	if Tables.HasColumn("no_such_table", "name") {
		t.Error("unknown table should have no columns")
	}
}
