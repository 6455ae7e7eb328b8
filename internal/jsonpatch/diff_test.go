package jsonpatch

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestDiff(t *testing.T) {
	testCases := []struct {
		name string
		a, b string
		want []Op
	}{
		{
			name: "identical",
			a:    `{"age":30,"housing":"RENT"}`,
			b:    `{"age":30,"housing":"RENT"}`,
			want: nil,
		},
		{
			name: "changed scalar",
			a:    `{"retirement_age":65}`,
			b:    `{"retirement_age":67}`,
			want: []Op{{Op: "replace", Path: "/retirement_age", Value: float64(67)}},
		},
		{
			name: "added and removed keys in sorted order",
			a:    `{"b":1,"z":2}`,
			b:    `{"a":3,"b":1}`,
			want: []Op{
				{Op: "remove", Path: "/z"},
				{Op: "add", Path: "/a", Value: float64(3)},
			},
		},
		{
			name: "array shrink and grow",
			a:    `{"p":[10,50,90]}`,
			b:    `{"p":[10,25]}`,
			want: []Op{
				{Op: "replace", Path: "/p/1", Value: float64(25)},
				{Op: "remove", Path: "/p/2"},
			},
		},
		{
			name: "type change",
			a:    `{"v":{"x":1}}`,
			b:    `{"v":[1]}`,
			want: []Op{{Op: "replace", Path: "/v", Value: []interface{}{float64(1)}}},
		},
		{
			name: "escaped keys",
			a:    `{"a/b":1}`,
			b:    `{"a/b":2}`,
			want: []Op{{Op: "replace", Path: "/a~1b", Value: float64(2)}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Diff(decode(t, tc.a), decode(t, tc.b), "")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBetween(t *testing.T) {
	type scenario struct {
		Age     int    `json:"age"`
		Housing string `json:"housing"`
	}

	ops, err := Between(scenario{Age: 30, Housing: "RENT"}, scenario{Age: 30, Housing: "OWNED"})
	require.NoError(t, err)
	assert.Equal(t, []Op{{Op: "replace", Path: "/housing", Value: "OWNED"}}, ops)

	_, err = Between(func() {}, scenario{})
	assert.Error(t, err)
}
