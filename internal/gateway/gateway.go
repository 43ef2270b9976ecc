// Package gateway is the remote data gateway: filtered reads, writes and
// change subscriptions over named tables of flat rows.
package gateway

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-manager/internal/realtime"
)

var (
	ErrNotFound    = errors.New("gateway: record not found")
	ErrNoFilter    = errors.New("gateway: delete without filter")
	ErrUnknownOp   = errors.New("gateway: unknown filter operator")
	ErrEmptyUpdate = errors.New("gateway: empty update")
)

// Row is the wire representation of a record: snake_case column -> value.
type Row map[string]any

func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

type Op string

const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
	OpGte Op = "gte"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, v any) Filter  { return Filter{Column: column, Op: OpEq, Value: v} }
func Neq(column string, v any) Filter { return Filter{Column: column, Op: OpNeq, Value: v} }
func Gte(column string, v any) Filter { return Filter{Column: column, Op: OpGte, Value: v} }
func Lte(column string, v any) Filter { return Filter{Column: column, Op: OpLte, Value: v} }

// In matches any of ids. An empty list matches nothing.
func In(column string, ids []string) Filter { return Filter{Column: column, Op: OpIn, Value: ids} }

func ByID(id string) Filter { return Eq("id", id) }

type Order struct {
	Column string
	Desc   bool
}

type Query struct {
	Filters []Filter
	Order   []Order
}

func Where(filters ...Filter) Query { return Query{Filters: filters} }

func (q Query) OrderBy(column string, desc bool) Query {
	q.Order = append(append([]Order(nil), q.Order...), Order{Column: column, Desc: desc})
	return q
}

// Gateway is the consumed backend. Insert assigns the identity when the row
// carries none and returns the stored row. Every successful write emits a
// change event on the written table.
type Gateway interface {
	Select(ctx context.Context, table string, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table, id string, patch Row) error
	Delete(ctx context.Context, table string, filters ...Filter) error
	Subscribe(ctx context.Context, tables ...string) (realtime.Subscription, error)
}
