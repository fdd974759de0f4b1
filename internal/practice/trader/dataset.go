package trader

import (
	_ "embed"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
)

// Trader is a named trader based in a city.
type Trader struct {
	Name string `yaml:"name"`
	City string `yaml:"city"`
}

// String formats the trader as "Trader:<name> in <city>".
func (t Trader) String() string {
	return fmt.Sprintf("Trader:%s in %s", t.Name, t.City)
}

// Transaction is a trade of Value made by Trader in Year.
type Transaction struct {
	Trader Trader
	Year   int
	Value  int
}

// String formats the transaction with its trader, year and value.
func (t Transaction) String() string {
	return fmt.Sprintf("{%v, year: %d, value: %d}", t.Trader, t.Year, t.Value)
}

type document struct {
	Traders      []Trader `yaml:"traders"`
	Transactions []struct {
		Trader string `yaml:"trader"`
		Year   int    `yaml:"year"`
		Value  int    `yaml:"value"`
	} `yaml:"transactions"`
}

//go:embed transactions.yaml
var transactionsYAML []byte

var transactions = mustLoad(transactionsYAML)

// Transactions returns a copy of the six-transaction dataset.
func Transactions() []Transaction {
	out := make([]Transaction, len(transactions))
	copy(out, transactions)
	return out
}

// Load decodes a YAML document of traders and the transactions that
// reference them by name.
func Load(r io.Reader) ([]Transaction, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(buf)
}

func parse(buf []byte) ([]Transaction, error) {
	doc := document{}
	if err := yaml.UnmarshalStrict(buf, &doc); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	traders := make(map[string]Trader, len(doc.Traders))
	for _, t := range doc.Traders {
		traders[t.Name] = t
	}

	out := make([]Transaction, 0, len(doc.Transactions))
	for i, tx := range doc.Transactions {
		trader, ok := traders[tx.Trader]
		if !ok {
			return nil, lerrors.NewValidationError("trader", fmt.Sprintf("transactions[%d].trader", i), tx.Trader, "unknown trader")
		}
		out = append(out, Transaction{Trader: trader, Year: tx.Year, Value: tx.Value})
	}
	return out, nil
}

func mustLoad(buf []byte) []Transaction {
	txs, err := parse(buf)
	if err != nil {
		panic(err)
	}
	return txs
}
