package sheet

import (
	"strings"

	"StockPortfolio/internal/model"
)

// DefaultAliases returns the built-in alias table covering the header
// spellings seen across portfolio sheets.
func DefaultAliases() model.AliasTable {
	return model.AliasTable{
		{Key: "avg_price", Aliases: []string{"average_price", "avg_buying_price"}},
		{Key: "avg_buying_price", Aliases: []string{"average_price", "avg_price"}},
		{Key: "current", Aliases: []string{"current_value_per_share", "current_value", "current_price", "ltp"}},
		{Key: "change", Aliases: []string{"change_percent", "change_pct", "change_"}},
		{Key: "p_l", Aliases: []string{"profit_loss", "pnl", "p_l"}},
		{Key: "stock_name", Aliases: []string{"stockname", "name", "company"}},
	}
}

// Resolve looks for a value of key under an alternate header. A group applies
// when its master key and key contain one another; groups are tried in table
// order and the first non-empty alias value wins.
//
// Containment is loose: a short key such as "p" applies to every group whose
// master key contains "p".
func Resolve(key string, record model.StockRecord, table model.AliasTable) (string, bool) {
	for _, group := range table {
		if !strings.Contains(key, group.Key) && !strings.Contains(group.Key, key) {
			continue
		}
		for _, alias := range group.Aliases {
			if v := record[alias]; v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// Lookup returns record[key] when set, otherwise the alias-resolved value, or "".
func Lookup(record model.StockRecord, key string, table model.AliasTable) string {
	if v := record[key]; v != "" {
		return v
	}
	v, _ := Resolve(key, record, table)
	return v
}
