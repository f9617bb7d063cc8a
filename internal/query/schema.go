package query

// Schema is a static registry of the columns each table accepts as sort
// keys. A fixed allow-list instead of live information_schema reflection:
// no runtime schema dependency, no injection surface.
type Schema struct {
	tables map[string]map[string]struct{}
}

func NewSchema(tables map[string][]string) *Schema {
	s := &Schema{tables: make(map[string]map[string]struct{}, len(tables))}
	for table, cols := range tables {
		set := make(map[string]struct{}, len(cols))
		for _, c := range cols {
			set[c] = struct{}{}
		}
		s.tables[table] = set
	}
	return s
}

func (s *Schema) HasColumn(table, column string) bool {
	cols, ok := s.tables[table]
	if !ok {
		return false
	}
	_, ok = cols[column]
	return ok
}

// Tables lists the sortable columns of every listed entity.
var Tables = NewSchema(map[string][]string{
	"businesses":   {"name", "status", "created_at", "updated_at"},
	"buildings":    {"name", "address", "floors", "status", "created_at", "updated_at"},
	"maintenances": {"title", "status", "scheduled_at", "created_at", "updated_at"},
	"questions":    {"created_at"},
	"audit_logs":   {"method", "action", "created_at"},
	"roles":        {"name", "status", "created_at"},
	"users":        {"email", "status", "created_at"},
})
