// =================================================================================
//
//			mx-alias - https://www.foxhollow.cc/projects/mx-alias/
//
//		 mx-alias reads the card routing of a digital mixing console and
//	  names the matching audio interface ports on the recording host
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package mixer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"mx-alias/mixer"
	"mx-alias/mixer/sim"
)

type testKind int

const (
	kindLow testKind = iota
	kindMid
	kindHigh
)

var testBands = mixer.NewBands([]mixer.Band[testKind]{
	{Upper: 0, Kind: kindLow},
	{Upper: 9, Kind: kindMid},
	{Upper: 12, Kind: kindHigh},
}...)

func TestBandsClassify(t *testing.T) {
	tests := []struct {
		code   int
		kind   testKind
		offset int
		ok     bool
	}{
		{0, kindLow, 0, true},
		{1, kindMid, 0, true},
		{9, kindMid, 8, true},
		{10, kindHigh, 0, true},
		{12, kindHigh, 2, true},
		{13, 0, 0, false},
		{-1, 0, 0, false},
	}

	for _, test := range tests {
		kind, offset, ok := testBands.Classify(test.code)
		assert.Equal(t, test.ok, ok, "code %d", test.code)
		assert.Equal(t, test.kind, kind, "code %d", test.code)
		assert.Equal(t, test.offset, offset, "code %d", test.code)
	}
}

func TestBandsBoundaries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := rapid.IntRange(-5, 20).Draw(t, "code")

		kind, offset, ok := testBands.Classify(code)
		if !ok {
			assert.True(t, code < 0 || code > 12)
			return
		}

		lower, found := testBands.Lower(kind)
		require.True(t, found)
		assert.Equal(t, code-lower, offset)
		assert.GreaterOrEqual(t, offset, 0)
	})
}

func TestNewBandsRejectsUnorderedRows(t *testing.T) {
	assert.Panics(t, func() {
		mixer.NewBands([]mixer.Band[testKind]{
			{Upper: 5, Kind: kindLow},
			{Upper: 5, Kind: kindMid},
		}...)
	})
}

func TestTapLabels(t *testing.T) {
	expected := []string{"IN", "IN+M", "<EQ", "<EQ+M", "EQ>", "EQ>+M", "PRE", "PRE+M", "POST"}

	rapid.Check(t, func(t *rapid.T) {
		tap := rapid.IntRange(-3, 12).Draw(t, "tap")
		label := mixer.WithTap(mixer.Named("Ch 1"), mixer.IntValue(tap))

		if tap < 0 || tap > 8 {
			assert.False(t, label.Valid())
			return
		}

		assert.Equal(t, "Ch 1 ("+expected[tap]+")", label.String())
	})
}

func TestWithTapNeedsBothParts(t *testing.T) {
	assert.False(t, mixer.WithTap(mixer.Label{}, mixer.IntValue(0)).Valid())
	assert.False(t, mixer.WithTap(mixer.Named("Bus 1"), mixer.Absent).Valid())
	assert.False(t, mixer.WithTap(mixer.Named("Bus 1"), mixer.StringValue("PRE")).Valid())
}

func TestResolveNameFallback(t *testing.T) {
	console := sim.New().
		PutString("/ch/01/config/name", "Kick").
		PutString("/ch/02/config/name", "").
		PutInt("/ch/03/config/name", 7)

	ctx := context.Background()

	name, err := mixer.ResolveName(ctx, console, "/ch/01/config/name", "Ch 1")
	require.NoError(t, err)
	assert.Equal(t, "Kick", name)

	for _, node := range []mixer.Node{"/ch/02/config/name", "/ch/03/config/name", "/ch/04/config/name"} {
		name, err := mixer.ResolveName(ctx, console, node, "fallback")
		require.NoError(t, err)
		assert.Equal(t, "fallback", name, string(node))
	}
}

func TestResolveNamePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	console := sim.New().Fail("/ch/01/config/name", boom)

	_, err := mixer.ResolveName(context.Background(), console, "/ch/01/config/name", "Ch 1")
	assert.ErrorIs(t, err, boom)
}

func TestLabelJSON(t *testing.T) {
	data, err := json.Marshal([]mixer.Label{mixer.Named("Local 1"), {}})
	require.NoError(t, err)
	assert.JSONEq(t, `["Local 1", null]`, string(data))
}

func TestValueConversions(t *testing.T) {
	i, ok := mixer.ValueOf(int32(12)).Int()
	assert.True(t, ok)
	assert.Equal(t, 12, i)

	s, ok := mixer.ValueOf("Vox").Str()
	assert.True(t, ok)
	assert.Equal(t, "Vox", s)

	assert.True(t, mixer.ValueOf([]byte{1}).IsAbsent())
	assert.True(t, mixer.ValueOf(nil).IsAbsent())
	assert.Equal(t, int32(3), mixer.IntValue(3).Arg())
}

func TestResolveKeepsOrder(t *testing.T) {
	results, err := mixer.Resolve(context.Background(), 50, func(ctx context.Context, i int) (int, error) {
		return i * 2, nil
	})
	require.NoError(t, err)

	for i, result := range results {
		assert.Equal(t, i*2, result)
	}
}

func TestResolveReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")

	_, err := mixer.Resolve(context.Background(), 8, func(ctx context.Context, i int) (int, error) {
		if i == 5 {
			return 0, boom
		}
		return i, nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestEnforceClockRate(t *testing.T) {
	policy := mixer.ClockPolicy{
		Source:   "/-prefs/clocksource",
		Internal: 0,
		Rate:     "/-prefs/clockrate",
		Required: 1,
	}

	tests := []struct {
		name   string
		source mixer.Value
		rate   mixer.Value
		writes int
	}{
		{"internal wrong rate", mixer.IntValue(0), mixer.IntValue(0), 1},
		{"internal right rate", mixer.IntValue(0), mixer.IntValue(1), 0},
		{"internal unknown rate", mixer.IntValue(0), mixer.Absent, 1},
		{"external wrong rate", mixer.IntValue(1), mixer.IntValue(0), 0},
		{"external right rate", mixer.IntValue(2), mixer.IntValue(1), 0},
		{"unknown source", mixer.Absent, mixer.IntValue(0), 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			console := sim.New().
				Put(policy.Source, test.source).
				Put(policy.Rate, test.rate)

			require.NoError(t, mixer.EnforceClockRate(context.Background(), console, policy))

			writes := console.Writes()
			require.Len(t, writes, test.writes)
			if test.writes > 0 {
				assert.Equal(t, policy.Rate, writes[0].Node)
				assert.Equal(t, mixer.IntValue(1), writes[0].Value)
			}

			assert.Equal(t, 1, console.Removals())
			assert.Equal(t, 0, console.ActiveSubscriptions())
		})
	}
}

func TestEnforceClockRateReleasesOnError(t *testing.T) {
	boom := errors.New("boom")
	console := sim.New().Fail("/-prefs/clockrate", boom)

	err := mixer.EnforceClockRate(context.Background(), console, mixer.ClockPolicy{
		Rate:     "/-prefs/clockrate",
		Required: 1,
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, console.Writes())
	assert.Equal(t, 1, console.Removals())
	assert.Equal(t, 0, console.ActiveSubscriptions())
}
