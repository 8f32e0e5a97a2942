package model

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAliasTable_YAMLMappingKeepsOrder(t *testing.T) {
	src := `
p_l: [profit_loss, pnl]
avg_price: [average_price]
current: [current_value_per_share, current_value]
`
	var table AliasTable
	if err := yaml.Unmarshal([]byte(src), &table); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	wantKeys := []string{"p_l", "avg_price", "current"}
	if len(table) != len(wantKeys) {
		t.Fatalf("expected %d groups, got %d", len(wantKeys), len(table))
	}
	for i, k := range wantKeys {
		if table[i].Key != k {
			t.Errorf("group %d: expected key %q, got %q", i, k, table[i].Key)
		}
	}
	if table[0].Aliases[1] != "pnl" {
		t.Errorf("expected second alias pnl, got %q", table[0].Aliases[1])
	}
}

func TestAliasTable_YAMLSequence(t *testing.T) {
	src := `
- key: change
  aliases: [change_percent]
- key: avg_price
  aliases: [average_price, avg_buying_price]
`
	var table AliasTable
	if err := yaml.Unmarshal([]byte(src), &table); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(table) != 2 || table[1].Key != "avg_price" || len(table[1].Aliases) != 2 {
		t.Errorf("unexpected table: %+v", table)
	}
}

func TestAliasTable_YAMLScalarRejected(t *testing.T) {
	var table AliasTable
	if err := yaml.Unmarshal([]byte(`aliases`), &table); err == nil {
		t.Error("expected error for scalar alias table")
	}
}

func TestAliasTable_CloneIsDeep(t *testing.T) {
	orig := AliasTable{{Key: "p_l", Aliases: []string{"profit_loss"}}}
	cp := orig.Clone()
	cp[0].Aliases[0] = "changed"
	if orig[0].Aliases[0] != "profit_loss" {
		t.Error("clone shares alias slice with original")
	}
}
