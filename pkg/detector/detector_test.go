package detector

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/revtab/pkg/parser"
)

const jdSample = `京东首页
avatar
j***1
star
01-13
颜色：白色
很好
avatar
小***猫
star
2025-12-30
一般
`

const tmallSample = `为你展示真实评价
N**1
2025年3月12日已购：框架结构
很好
萱**麻
2025年3月12日已购：单床
30天后追评：还可以
`

func TestDetectFromText_JD(t *testing.T) {
	result := New().DetectFromText(jdSample)

	require.True(t, result.HasMatch())
	best := result.BestMatch()
	assert.Equal(t, parser.LayoutJD, best.Signature.Layout)
	assert.Equal(t, 4, best.MatchCount)
	assert.InDelta(t, 1.0, best.Confidence, 0.0001)
	assert.Equal(t, "avatar", best.SampleLine)
	assert.Empty(t, result.AmbiguityNote)
}

func TestDetectFromText_Tmall(t *testing.T) {
	result := New().DetectFromText(tmallSample)

	best := result.BestMatch()
	require.NotNil(t, best)
	assert.Equal(t, parser.LayoutTmall, best.Signature.Layout)
	assert.Equal(t, 3, best.MatchCount)
	assert.Equal(t, 7, result.SampledLines)
}

func TestDetectFromText_Mixed(t *testing.T) {
	result := New().DetectFromText(tmallSample + "\navatar\n")

	require.Len(t, result.Matches, 2)
	assert.Equal(t, parser.LayoutTmall, result.Matches[0].Signature.Layout)
	assert.InDelta(t, 0.75, result.Matches[0].Confidence, 0.0001)
	assert.InDelta(t, 0.25, result.Matches[1].Confidence, 0.0001)
}

func TestDetectFromText_Tie(t *testing.T) {
	result := New().DetectFromText("avatar\n2025年3月12日已购：x\n")

	require.Len(t, result.Matches, 2)
	assert.NotEmpty(t, result.AmbiguityNote)
	assert.Equal(t, parser.LayoutJD, result.BestMatch().Signature.Layout)
}

func TestDetectFromText_NoMatch(t *testing.T) {
	result := New().DetectFromText("hello\nworld\n")

	assert.False(t, result.HasMatch())
	assert.Nil(t, result.BestMatch())
	assert.Equal(t, 2, result.SampledLines)
}

func TestWithSampleSize(t *testing.T) {
	text := strings.Repeat("filler\n", 10) + "avatar\n"

	result := New(WithSampleSize(5)).DetectFromText(text)

	assert.Equal(t, 5, result.SampledLines)
	assert.False(t, result.HasMatch())
}

func TestResolve(t *testing.T) {
	d := New()

	layout, result, err := d.Resolve(parser.LayoutTmall, jdSample)
	require.NoError(t, err)
	assert.Equal(t, parser.LayoutTmall, layout, "explicit layout wins")
	assert.Nil(t, result)

	layout, result, err = d.Resolve(parser.LayoutAuto, jdSample)
	require.NoError(t, err)
	assert.Equal(t, parser.LayoutJD, layout)
	assert.NotNil(t, result)

	_, _, err = d.Resolve(parser.LayoutAuto, "nothing here")
	assert.True(t, errors.Is(err, ErrNoLayoutSignal))
}
