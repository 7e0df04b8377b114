package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder helps construct SQL queries dynamically. Placeholders are
// written as "?" and numbered to "$1", "$2", ... on Build, the common form
// accepted by both the sqlite3 and postgres drivers.
type SQLBuilder struct {
	table      string
	columns    []string
	values     []interface{}
	where      []string
	whereArgs  []interface{}
	groupBy    []string
	having     []string
	havingArgs []interface{}
	orderBy    []string
	limit      int
	conflict   string
	updateCols []string
	updateArgs []interface{}
	isInsert   bool
	isUpdate   bool
	isDelete   bool
	isSelect   bool
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// Values specifies the values for insertion.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = vals
	return b
}

// OnConflictDoNothing makes the insert a no-op when the given key columns
// collide with an existing row.
func (b *SQLBuilder) OnConflictDoNothing(cols ...string) *SQLBuilder {
	b.conflict = fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", strings.Join(cols, ", "))
	return b
}

// Update specifies the table to update.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.isUpdate = true
	b.table = table
	return b
}

// Set specifies a column and value for update. Set calls must precede Where
// calls so placeholder numbering matches argument order.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.updateCols = append(b.updateCols, col)
	b.updateArgs = append(b.updateArgs, val)
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.isDelete = true
	b.table = table
	return b
}

// Where adds a condition; multiple conditions are combined with AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.whereArgs = append(b.whereArgs, args...)
	return b
}

// GroupBy adds a GROUP BY clause.
func (b *SQLBuilder) GroupBy(cols ...string) *SQLBuilder {
	b.groupBy = append(b.groupBy, cols...)
	return b
}

// Having adds a HAVING condition; multiple conditions are combined with AND.
func (b *SQLBuilder) Having(condition string, args ...interface{}) *SQLBuilder {
	b.having = append(b.having, condition)
	b.havingArgs = append(b.havingArgs, args...)
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit adds a LIMIT clause.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// Build constructs the final SQL string and its arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}
	argIndex := 1

	switch {
	case b.isSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
	case b.isInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		placeholders := make([]string, len(b.values))
		for i := range b.values {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			argIndex++
		}
		sb.WriteString(strings.Join(placeholders, ", "))
		sb.WriteString(")")
		args = append(args, b.values...)
		if b.conflict != "" {
			sb.WriteString(" ")
			sb.WriteString(b.conflict)
		}
		return sb.String(), args
	case b.isUpdate:
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		setClauses := make([]string, len(b.updateCols))
		for i, col := range b.updateCols {
			setClauses[i] = fmt.Sprintf("%s = $%d", col, argIndex)
			argIndex++
		}
		sb.WriteString(strings.Join(setClauses, ", "))
		args = append(args, b.updateArgs...)
	case b.isDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(numberPlaceholders(strings.Join(b.where, " AND "), &argIndex))
		args = append(args, b.whereArgs...)
	}

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}

	if len(b.having) > 0 {
		sb.WriteString(" HAVING ")
		sb.WriteString(numberPlaceholders(strings.Join(b.having, " AND "), &argIndex))
		args = append(args, b.havingArgs...)
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
	}

	return sb.String(), args
}

// numberPlaceholders rewrites each "?" in clause to the next "$N" marker.
func numberPlaceholders(clause string, argIndex *int) string {
	parts := strings.Split(clause, "?")
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, part := range parts[1:] {
		sb.WriteString(fmt.Sprintf("$%d", *argIndex))
		*argIndex++
		sb.WriteString(part)
	}
	return sb.String()
}
