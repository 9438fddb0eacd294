package rest

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

// Filter is one PostgREST condition such as week=eq.3.
type Filter struct {
	column string
	op     string
	value  string
}

func Eq(column string, value any) Filter  { return Filter{column, "eq", formatValue(value)} }
func Neq(column string, value any) Filter { return Filter{column, "neq", formatValue(value)} }
func Lte(column string, value any) Filter { return Filter{column, "lte", formatValue(value)} }
func Gt(column string, value any) Filter  { return Filter{column, "gt", formatValue(value)} }
func ILike(column, value string) Filter   { return Filter{column, "ilike", value} }
func IsNull(column string) Filter         { return Filter{column, "is", "null"} }
func NotNull(column string) Filter        { return Filter{column, "not.is", "null"} }
func Is(column string, value bool) Filter { return Filter{column, "is", formatValue(value)} }

func (f Filter) inline() string {
	return f.column + "." + f.op + "." + f.value
}

// Query addresses one table with filters, ordering and a column list.
type Query struct {
	table   string
	columns string
	filters []Filter
	ors     [][]Filter
	order   []string
	limit   int
}

func From(table string) Query {
	return Query{table: table}
}

func (q Query) Select(columns string) Query {
	q.columns = columns
	return q
}

func (q Query) Where(filters ...Filter) Query {
	q.filters = append(append([]Filter(nil), q.filters...), filters...)
	return q
}

// Or adds or=(a.eq.1,b.eq.2).
func (q Query) Or(filters ...Filter) Query {
	q.ors = append(append([][]Filter(nil), q.ors...), filters)
	return q
}

func (q Query) Order(parts ...string) Query {
	q.order = append(append([]string(nil), q.order...), parts...)
	return q
}

func (q Query) Limit(n int) Query {
	q.limit = n
	return q
}

// Encode renders the query string without the leading "?".
func (q Query) Encode() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPair := func(key, value string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte('&')
		}
		_, _ = buf.WriteString(url.QueryEscape(key))
		_ = buf.WriteByte('=')
		_, _ = buf.WriteString(url.QueryEscape(value))
	}

	if q.columns != "" {
		appendPair("select", q.columns)
	}
	for _, f := range q.filters {
		appendPair(f.column, f.op+"."+f.value)
	}
	for _, group := range q.ors {
		parts := make([]string, 0, len(group))
		for _, f := range group {
			parts = append(parts, f.inline())
		}
		appendPair("or", "("+strings.Join(parts, ",")+")")
	}
	if len(q.order) > 0 {
		appendPair("order", strings.Join(q.order, ","))
	}
	if q.limit > 0 {
		appendPair("limit", fmt.Sprint(q.limit))
	}
	return buf.String()
}

func formatValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case time.Time:
		return value.UTC().Format(time.RFC3339Nano)
	case bool:
		if value {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(value)
	}
}
