package trader

import (
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
)

var (
	raoul = Trader{Name: "Raoul", City: "Cambridge"}
	mario = Trader{Name: "Mario", City: "Milan"}
	alan  = Trader{Name: "Alan", City: "Cambridge"}
	brian = Trader{Name: "Brian", City: "Cambridge"}
)

func TestDatasetIsLoadedFromEmbeddedYAML(t *testing.T) {
	is := is.New(t)

	txs := Transactions()
	is.Equal(len(txs), 6)
	is.Equal(txs[0], Transaction{Trader: brian, Year: 2011, Value: 300})
	is.Equal(txs[5], Transaction{Trader: alan, Year: 2012, Value: 950})
}

func TestLoadRejectsUnknownTrader(t *testing.T) {
	is := is.New(t)

	doc := "traders:\n  - name: Ann\n    city: Oslo\ntransactions:\n  - trader: Bob\n    year: 2020\n    value: 1\n"
	_, err := Load(strings.NewReader(doc))
	is.True(lerrors.IsValidationError(err))
}

func TestQueries(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	txs := Transactions()

	in2011, err := TransactionsIn(ctx, txs, 2011)
	is.NoErr(err)
	is.Equal(in2011, []Transaction{{brian, 2011, 300}, {raoul, 2011, 400}})

	cities, err := Cities(ctx, txs)
	is.NoErr(err)
	is.Equal(cities, []string{"Cambridge", "Milan"})

	cambridge, err := TradersIn(ctx, txs, "Cambridge")
	is.NoErr(err)
	is.Equal(cambridge, []Trader{alan, brian, raoul})

	names, err := TraderNames(ctx, txs)
	is.NoErr(err)
	is.Equal(names, "AlanBrianMarioRaoul")

	milan, err := AnyTraderIn(ctx, txs, "Milan")
	is.NoErr(err)
	is.True(milan)

	oslo, err := AnyTraderIn(ctx, txs, "Oslo")
	is.NoErr(err)
	is.True(!oslo)

	values, err := ValuesIn(ctx, txs, "Cambridge")
	is.NoErr(err)
	is.Equal(values, []int{300, 1000, 400, 950})

	highest, ok, err := HighestValue(ctx, txs)
	is.NoErr(err)
	is.True(ok)
	is.Equal(highest, 1000)

	smallest, ok, err := SmallestTransaction(ctx, txs)
	is.NoErr(err)
	is.True(ok)
	is.Equal(smallest, Transaction{brian, 2011, 300})
}

func TestQueriesOnNoTransactions(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	_, ok, err := HighestValue(ctx, nil)
	is.NoErr(err)
	is.True(!ok)

	_, ok, err = SmallestTransaction(ctx, nil)
	is.NoErr(err)
	is.True(!ok)

	names, err := TraderNames(ctx, nil)
	is.NoErr(err)
	is.Equal(names, "")
}

func TestTransactionString(t *testing.T) {
	is := is.New(t)

	is.Equal(Transaction{brian, 2011, 300}.String(), "{Trader:Brian in Cambridge, year: 2011, value: 300}")
}
