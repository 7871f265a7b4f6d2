package postgres

import (
	"fmt"
	"strings"

	"github.com/shopadmin/shopadmin/internal/core/storage"
)

// whereBuilder accumulates AND-ed predicates with positional arguments.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

// add appends a predicate. format must contain exactly one %d for the placeholder.
func (w *whereBuilder) add(format string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) addRaw(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *whereBuilder) addRange(column string, r storage.TimeRange) {
	if !r.From.IsZero() {
		w.add(column+" >= $%d", r.From)
	}
	if !r.To.IsZero() {
		w.add(column+" <= $%d", r.To)
	}
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func productWhere(f storage.ProductFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addRange("created_at", f.Created)
	if f.Category != "" {
		w.add("category = $%d", f.Category)
	}
	if f.OutOfStock {
		w.addRaw("stock = 0")
	}
	return w
}

func userWhere(f storage.UserFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addRange("created_at", f.Created)
	if f.Gender != "" {
		w.add("gender = $%d", f.Gender)
	}
	if f.Role != "" {
		w.add("role = $%d", f.Role)
	}
	return w
}

func orderWhere(f storage.OrderFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addRange("created_at", f.Created)
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.UserID != "" {
		w.add("user_id = $%d", f.UserID)
	}
	return w
}

func searchWhere(s storage.ProductSearch) *whereBuilder {
	w := &whereBuilder{}
	if s.Name != "" {
		w.add("name ILIKE $%d", "%"+escapeLike(s.Name)+"%")
	}
	if s.Category != "" {
		w.add("category = $%d", s.Category)
	}
	if s.MaxPrice != nil {
		w.add("price <= $%d", *s.MaxPrice)
	}
	return w
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
