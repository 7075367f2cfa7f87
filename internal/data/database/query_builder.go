package database

import (
	"fmt"
	"reflect"
	"strings"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	Like               ConditionType = "LIKE"
	In                 ConditionType = "IN"
	Custom             ConditionType = "CUSTOM"
	defaultLimit                     = -1
	defaultOffset                    = -1
)

type Condition struct {
	Field    string
	Type     ConditionType
	Value    any
	rawQuery *string
	rawArgs  []any
}

func WhereCond(field string, condType ConditionType, value any) Condition {
	if condType == Custom {
		//nolint:forbidigo // panic prevents misuse; custom conditions must provide raw SQL via WhereRawCond.
		panic("Use WhereRawCond for Custom type")
	}
	return Condition{
		Field: field,
		Type:  condType,
		Value: value,
	}
}

// WhereRawCond adds a raw SQL fragment with ? placeholders and its arguments.
// The fragment is NOT sanitized; never interpolate user input into it.
func WhereRawCond(rawQuery string, params ...any) Condition {
	queryStr := rawQuery
	return Condition{
		Type:     Custom,
		rawQuery: &queryStr,
		rawArgs:  params,
	}
}

// SearchCond matches when any of the given columns contains the term,
// case-insensitively. LIKE wildcards in the term are escaped.
func SearchCond(term string, columns ...string) Condition {
	pattern := "%" + strings.ToLower(EscapeLike(term)) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, quoteQualifiedIdent(col))
		args[i] = pattern
	}
	return WhereRawCond("("+strings.Join(clauses, " OR ")+")", args...)
}

// JSONArrayContainsAllCond matches rows whose JSON array column contains
// every one of the given values (set intersection via json_each).
func JSONArrayContainsAllCond(column string, values []string) Condition {
	placeholders := make([]string, len(values))
	args := make([]any, 0, len(values)+1)
	for i, v := range values {
		placeholders[i] = "?"
		args = append(args, v)
	}
	args = append(args, len(values))
	raw := fmt.Sprintf(
		"(SELECT COUNT(DISTINCT value) FROM json_each(%s) WHERE value IN (%s)) = ?",
		quoteQualifiedIdent(column),
		strings.Join(placeholders, ", "),
	)
	return WhereRawCond(raw, args...)
}

// EscapeLike escapes LIKE wildcards in a user-supplied term so the term
// matches literally inside a pattern using ESCAPE '\'.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// orderTerm is one ORDER BY column with an optional validated direction.
type orderTerm struct {
	column string
	dir    string
}

type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int

	tieBreaks []orderTerm
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:      table,
		Columns:    []string{},
		CountOnly:  false,
		Conditions: []Condition{},
		OrderBy:    "",
		OrderDir:   "",
		Limit:      defaultLimit,
		Offset:     defaultOffset,
	}

	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithConditions sets the entire list of conditions.
func WithConditions(conds ...Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = conds
	}
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithTieBreak appends a secondary ORDER BY column applied after the primary
// ordering, keeping result order deterministic when the primary column ties.
func WithTieBreak(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		dir := strings.ToUpper(direction)
		if dir != "ASC" && dir != "DESC" {
			dir = ""
		}
		o.tieBreaks = append(o.tieBreaks, orderTerm{column: column, dir: dir})
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) {
		o.CountOnly = true
	}
}

// quoteIdent quotes a single identifier, escaping embedded quotes.
func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// quoteQualifiedIdent quotes identifiers like "table.column" part by part.
func quoteQualifiedIdent(ident string) string {
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		parts[i] = quoteIdent(p)
	}
	return strings.Join(parts, ".")
}

// processColumnSpec quotes a column specification, handling "col AS alias".
func processColumnSpec(columnSpec string) string {
	if before, after, found := cutFoldAS(columnSpec); found {
		return quoteQualifiedIdent(strings.TrimSpace(before)) + " AS " + quoteIdent(strings.TrimSpace(after))
	}
	return quoteQualifiedIdent(strings.TrimSpace(columnSpec))
}

// cutFoldAS splits a column spec on the keyword AS, case-insensitively.
func cutFoldAS(spec string) (string, string, bool) {
	upper := strings.ToUpper(spec)
	idx := strings.Index(upper, " AS ")
	if idx < 0 {
		return spec, "", false
	}
	return spec[:idx], spec[idx+len(" AS "):], true
}

// buildSelectClause generates the SELECT part of the query with quoted columns.
func buildSelectClause(options *ListQueryOptions) string {
	if options == nil {
		return ""
	}
	if options.CountOnly {
		return "SELECT COUNT(*) "
	}
	if len(options.Columns) == 0 {
		return "SELECT * "
	}

	processedColumns := make([]string, len(options.Columns))
	for i, col := range options.Columns {
		processedColumns[i] = processColumnSpec(col)
	}

	return fmt.Sprintf("SELECT %s ", strings.Join(processedColumns, ", "))
}

// buildOrderClause generates the ORDER BY clause, validating directions.
func buildOrderClause(options *ListQueryOptions) string {
	if options.OrderBy == "" {
		return ""
	}

	var clause strings.Builder
	clause.WriteString(" ORDER BY ")
	clause.WriteString(quoteQualifiedIdent(options.OrderBy))
	if dir := strings.ToUpper(options.OrderDir); dir == "ASC" || dir == "DESC" {
		clause.WriteString(" ")
		clause.WriteString(dir)
	}
	for _, term := range options.tieBreaks {
		clause.WriteString(", ")
		clause.WriteString(quoteQualifiedIdent(term.column))
		if term.dir != "" {
			clause.WriteString(" ")
			clause.WriteString(term.dir)
		}
	}
	return clause.String()
}

// BuildListQuery constructs a SQL query string and ? placeholder arguments
// from options, quoting identifiers. It handles SELECT, WHERE, ORDER BY,
// LIMIT, and OFFSET clauses.
//
// Example usage:
//
//	options := NewListQueryOptions("jobs",
//		WithColumns("id", "title", "slug"),
//		WithCondition(WhereCond("status", Equal, "active")),
//		WithCondition(SearchCond("engineer", "title", "slug")),
//		WithOrderBy("sort_order", "ASC"),
//		WithLimit(10),
//		WithOffset(0),
//	)
//
//	query, args := BuildListQuery(options)
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder

	query.WriteString(buildSelectClause(options))
	query.WriteString("FROM ")
	query.WriteString(quoteIdent(options.Table))

	whereClause, args := buildWhereClause(options.Conditions)
	if whereClause != "" {
		query.WriteString(" ")
		query.WriteString(whereClause)
	}

	// return early for CountOnly
	if options.CountOnly {
		return query.String(), args
	}

	query.WriteString(buildOrderClause(options))

	if options.Limit != defaultLimit {
		query.WriteString(" LIMIT ?")
		args = append(args, options.Limit)
	}
	if options.Offset != defaultOffset {
		query.WriteString(" OFFSET ?")
		args = append(args, options.Offset)
	}

	return query.String(), args
}

func handleStandardCondition(cond Condition, quotedField string) (string, []any) {
	conditionStr := fmt.Sprintf("%s %s ?", quotedField, cond.Type)
	return conditionStr, []any{cond.Value}
}

func handleInCondition(cond Condition, quotedField string) (string, []any) {
	// Accept any slice type via reflection
	rv := reflect.ValueOf(cond.Value)
	if rv.Kind() != reflect.Slice || rv.Len() == 0 {
		return "", nil
	}

	placeholders := make([]string, rv.Len())
	args := make([]any, rv.Len())
	for i := range rv.Len() {
		placeholders[i] = "?"
		args[i] = rv.Index(i).Interface()
	}
	conditionStr := fmt.Sprintf("%s IN (%s)", quotedField, strings.Join(placeholders, ", "))
	return conditionStr, args
}

func handleCustomCondition(cond Condition) (string, []any) {
	if cond.rawQuery == nil || *cond.rawQuery == "" {
		return "", nil
	}
	return *cond.rawQuery, cond.rawArgs
}

// processCondition renders a single condition to SQL and its arguments.
func processCondition(cond Condition) (string, []any) {
	if cond.Type == Custom {
		return handleCustomCondition(cond)
	}
	if cond.Field == "" {
		return "", nil
	}
	quotedField := quoteQualifiedIdent(cond.Field)

	switch cond.Type {
	case In:
		return handleInCondition(cond, quotedField)
	case Equal, NotEqual, GreaterThan, LessThan, LessThanOrEqual, GreaterThanOrEqual, Like:
		return handleStandardCondition(cond, quotedField)
	}
	return "", nil
}

// buildWhereClause generates the WHERE part of the query with quoted fields,
// AND-composing every condition.
func buildWhereClause(inputConditions []Condition) (string, []any) {
	conditions := make([]string, 0, len(inputConditions))
	args := []any{}

	for _, cond := range inputConditions {
		conditionStr, newArgs := processCondition(cond)
		if conditionStr != "" {
			conditions = append(conditions, conditionStr)
			args = append(args, newArgs...)
		}
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
