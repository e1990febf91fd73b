// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainutil_test

import (
	"math"
	"testing"

	"github.com/chainweb-spv/spvcore/chainutil"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		f        float64
		expected chainutil.Amount
	}{
		{0, 0},
		{1, 1e8},
		{0.00000001, 1},
		{-1, -1e8},
		{1234567.89123456, 123456789123456},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}

	for _, tc := range tests {
		amt, err := chainutil.NewAmount(tc.f)
		if math.IsNaN(tc.f) || math.IsInf(tc.f, 0) {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.expected, amt)
	}
}

func TestAmountFormat(t *testing.T) {
	a := chainutil.Amount(123456789)
	require.Equal(t, "1.23456789", a.Format(chainutil.AmountBase))
	require.Equal(t, "1234.56789 m", a.Format(chainutil.AmountMilli))
}

func TestAmountMulF64(t *testing.T) {
	a := chainutil.Amount(100000000)
	require.Equal(t, chainutil.Amount(50000000), a.MulF64(0.5))
}
