package transporthttp

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFloatEncoding(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{3.5, `{"value":3.5}`},
		{-2.25, `{"value":-2.25}`},
		{0, `{"value":0}`},
		{math.Inf(1), `{"value":"+Inf"}`},
		{math.Inf(-1), `{"value":"-Inf"}`},
		{math.NaN(), `{"value":"NaN"}`},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			b, err := json.Marshal(newValueJSON(tc.in))
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(b))
		})
	}
}

func TestJSONFloatDecodingAcceptsNumbersAndStrings(t *testing.T) {
	var body valueJSON

	require.NoError(t, json.Unmarshal([]byte(`{"value":"NaN"}`), &body))
	assert.True(t, math.IsNaN(float64(*body.Value)))

	require.NoError(t, json.Unmarshal([]byte(`{"value":"-Inf"}`), &body))
	assert.True(t, math.IsInf(float64(*body.Value), -1))

	require.NoError(t, json.Unmarshal([]byte(`{"value":"1.5"}`), &body))
	assert.Equal(t, 1.5, float64(*body.Value))

	require.NoError(t, json.Unmarshal([]byte(`{"value":1e308}`), &body))
	assert.Equal(t, 1e308, float64(*body.Value))

	require.Error(t, json.Unmarshal([]byte(`{"value":"lots"}`), &body))
	require.Error(t, json.Unmarshal([]byte(`{"value":true}`), &body))
}

func TestJSONFloatKeepsBits(t *testing.T) {
	for _, v := range []float64{math.Copysign(0, -1), math.SmallestNonzeroFloat64, 0.1, math.MaxFloat64} {
		b, err := json.Marshal(newValueJSON(v))
		require.NoError(t, err)

		var body valueJSON
		require.NoError(t, json.Unmarshal(b, &body))
		assert.Equal(t, math.Float64bits(v), math.Float64bits(float64(*body.Value)), "value %v", v)
	}
}
