package models

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/autoval/internal/annotations"
)

func TestHumanNames(t *testing.T) {
	tests := []struct {
		name    string
		methods []string
		want    []string
	}{
		{"plain accessors", []string{"Amount", "Name"}, []string{"amount", "name"}},
		{"all prefixed", []string{"GetAmount", "IsActive"}, []string{"amount", "active"}},
		{"mixed keeps prefixes", []string{"GetAmount", "Name"}, []string{"getAmount", "name"}},
		{"prefix without capital is not a prefix", []string{"Getaway", "Island"}, []string{"getaway", "island"}},
		{"bare prefix", []string{"Get"}, []string{"get"}},
		{"initialisms", []string{"GetID", "IsActive", "GetURLPath"}, []string{"id", "active", "urlPath"}},
		{"keywords escaped", []string{"Type", "Range"}, []string{"type_", "range_"}},
		{"stripped to keyword", []string{"GetType", "IsFunc"}, []string{"type_", "func_"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanNames(tt.methods))
		})
	}
}

func TestValueType_Property(t *testing.T) {
	vt := &ValueType{
		Name: "Price",
		Properties: []Property{
			{MethodName: "Amount", Type: types.Typ[types.Float64], Markers: annotations.NewMarkerSet(annotations.MarkerCompareBy)},
			{MethodName: "Currency", Type: types.Typ[types.String]},
		},
	}

	p, ok := vt.Property("Amount")
	assert.True(t, ok)
	assert.True(t, p.HasMarker(annotations.MarkerCompareBy))

	p, ok = vt.Property("Currency")
	assert.True(t, ok)
	assert.False(t, p.HasMarker(annotations.MarkerCompareBy))

	_, ok = vt.Property("Missing")
	assert.False(t, ok)

	assert.Equal(t, "newPrice", DefaultConstructor("Price"))
}
