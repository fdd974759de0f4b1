// Package trader answers eight questions about a small set of trades.
package trader

import (
	"cmp"
	"context"

	"github.com/jamesp/lambdas/pkg/functional"
	"github.com/jamesp/lambdas/pkg/streaming/collect"
	"github.com/jamesp/lambdas/pkg/streaming/stream"
)

func trader(t Transaction) Trader     { return t.Trader }
func city(t Transaction) string       { return t.Trader.City }
func traderName(t Transaction) string { return t.Trader.Name }
func value(t Transaction) int         { return t.Value }

func inCity(c string) func(Transaction) bool {
	return func(t Transaction) bool { return t.Trader.City == c }
}

var byValue = functional.Comparing(value)

// TransactionsIn returns the transactions of year, lowest value first.
func TransactionsIn(ctx context.Context, txs []Transaction, year int) ([]Transaction, error) {
	return stream.FromSlice(txs).
		Filter(func(t Transaction) bool { return t.Year == year }).
		Sorted(byValue).
		ToSlice(ctx)
}

// Cities lists the distinct cities traders work in.
func Cities(ctx context.Context, txs []Transaction) ([]string, error) {
	return stream.MapTo(stream.FromSlice(txs), city).Distinct().ToSlice(ctx)
}

// TradersIn lists the traders based in c, sorted by name.
func TradersIn(ctx context.Context, txs []Transaction, c string) ([]Trader, error) {
	traders := stream.MapTo(stream.FromSlice(txs).Filter(inCity(c)), trader)
	return traders.
		Distinct().
		Sorted(functional.Comparing(func(t Trader) string { return t.Name })).
		ToSlice(ctx)
}

// TraderNames returns every trader's name, sorted and concatenated.
func TraderNames(ctx context.Context, txs []Transaction) (string, error) {
	names := stream.MapTo(stream.FromSlice(txs), traderName).Distinct().Sorted(cmp.Compare[string])
	return collect.Collect(ctx, names, collect.Joining())
}

// AnyTraderIn reports whether any trader is based in c.
func AnyTraderIn(ctx context.Context, txs []Transaction, c string) (bool, error) {
	return stream.FromSlice(txs).AnyMatch(ctx, inCity(c))
}

// ValuesIn returns the values of the transactions of traders in c.
func ValuesIn(ctx context.Context, txs []Transaction, c string) ([]int, error) {
	return stream.MapTo(stream.FromSlice(txs).Filter(inCity(c)), value).ToSlice(ctx)
}

// HighestValue returns the largest transaction value; ok is false when
// txs is empty.
func HighestValue(ctx context.Context, txs []Transaction) (int, bool, error) {
	return stream.MapTo(stream.FromSlice(txs), value).ReduceOptional(ctx, func(a, b int) int { return max(a, b) })
}

// SmallestTransaction returns the transaction with the lowest value.
func SmallestTransaction(ctx context.Context, txs []Transaction) (Transaction, bool, error) {
	return stream.FromSlice(txs).Min(ctx, byValue)
}
