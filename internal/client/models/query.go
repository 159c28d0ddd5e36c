package models

import (
	"net/url"
	"strconv"
)

// Query accumulates URL query parameters, skipping zero values the way the
// backend expects optional parameters to be omitted.
type Query struct {
	v url.Values
}

func NewQuery() *Query {
	return &Query{v: url.Values{}}
}

func (q *Query) Str(key, value string) *Query {
	if value != "" {
		q.v.Set(key, value)
	}
	return q
}

func (q *Query) Int(key string, value int) *Query {
	if value != 0 {
		q.v.Set(key, strconv.Itoa(value))
	}
	return q
}

func (q *Query) Values() url.Values {
	return q.v
}
