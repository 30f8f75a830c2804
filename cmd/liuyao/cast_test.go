package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// runCLI executes a command against buffers and returns what it printed.
func runCLI(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// staticCastArgs is a manual casting of 乾为天 on a fixed moment, so every
// line of the report is predictable.
func staticCastArgs() []string {
	return []string{
		"--method", "manual",
		"--draws", "7,7,7,7,7,7",
		"--at", "2024-06-15T10:00:00Z",
		"--category", "career",
	}
}

func staticCastInput() domain.CastingInput {
	return domain.CastingInput{
		Method:   domain.MethodManual,
		Draws:    [6]domain.DrawValue{7, 7, 7, 7, 7, 7},
		CastAt:   time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
		Category: domain.CategoryCareer,
	}
}

func TestCastManualStaticHexagram(t *testing.T) {
	t.Parallel() // Enable parallel execution

	out, err := runCLI(t, castCmd(), staticCastArgs()...)
	require.NoError(t, err)

	assert.Contains(t, out, "本卦: 乾为天 (第1卦)")
	assert.Contains(t, out, "乾宫金")
	assert.Contains(t, out, "错卦: 坤为地")
	assert.NotContains(t, out, "变卦:")

	assert.Contains(t, out, "甲辰年 庚午月 庚戌日 辛巳时")
	assert.Contains(t, out, "旬空寅卯")
	assert.Contains(t, out, "所问: 事业")
	assert.Contains(t, out, "起卦: 手动")

	// The officer line of 乾为天 sits at position 4 and carries the focus.
	assert.Contains(t, out, "官鬼午火")
	assert.Contains(t, out, "用神: 官鬼 (4爻)")
	assert.Contains(t, out, "世")
	assert.Contains(t, out, "断: 平")

	assert.Contains(t, out, "分享码: "+staticCastInput().ShareCode())
}

func TestCastOutputDeterministic(t *testing.T) {
	t.Parallel() // Enable parallel execution

	first, err := runCLI(t, castCmd(), staticCastArgs()...)
	require.NoError(t, err)
	second, err := runCLI(t, castCmd(), staticCastArgs()...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCastChangedHexagram(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// 天地否 with the bottom line moving becomes 天雷无妄.
	out, err := runCLI(t, castCmd(),
		"--method", "manual",
		"--draws", "6,8,8,7,7,7",
		"--at", "2024-06-15T10:00:00Z",
		"--category", "wealth")
	require.NoError(t, err)

	assert.Contains(t, out, "本卦: 天地否")
	assert.Contains(t, out, "变卦: 天雷无妄")
	assert.Contains(t, out, "×", "the moving old-yin line carries its marker")
}

func TestCastSeededCoinReproducible(t *testing.T) {
	t.Parallel() // Enable parallel execution

	args := []string{
		"--seed", "42",
		"--at", "2024-06-15T10:00:00Z",
		"--category", "wealth",
	}

	first, err := runCLI(t, castCmd(), args...)
	require.NoError(t, err)
	second, err := runCLI(t, castCmd(), args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "起卦: 铜钱")
	assert.Contains(t, first, "本卦:")
}

func TestCastTimeMethodSingleMovingLine(t *testing.T) {
	t.Parallel() // Enable parallel execution

	out, err := runCLI(t, castCmd(),
		"--method", "time",
		"--at", "2024-06-15T10:00:00Z",
		"--category", "general")
	require.NoError(t, err)

	assert.Contains(t, out, "起卦: 时间")
	moving := strings.Count(out, "○") + strings.Count(out, "×")
	assert.Equal(t, 1, moving, "time casting marks exactly one moving line")
}

func TestCastReasoningFlag(t *testing.T) {
	t.Parallel() // Enable parallel execution

	plain, err := runCLI(t, castCmd(), staticCastArgs()...)
	require.NoError(t, err)
	assert.NotContains(t, plain, "推演:")

	out, err := runCLI(t, castCmd(), append(staticCastArgs(), "--reasoning")...)
	require.NoError(t, err)

	assert.Contains(t, out, "推演:")
	assert.Contains(t, out, "[calendar]")
	assert.Contains(t, out, "[advice]")
}

func TestCastJSON(t *testing.T) {
	t.Parallel() // Enable parallel execution

	out, err := runCLI(t, castCmd(), append(staticCastArgs(), "--json")...)
	require.NoError(t, err)

	var result domain.DivinationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, "乾为天", result.Primary.Name)
	assert.Equal(t, staticCastInput().Draws, result.Input.Draws)
	assert.Equal(t, domain.TrendSteady, result.Interpretation.Trend)
}

func TestCastErrors(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name    string
		args    []string
		message string
	}{
		{
			name:    "manual method without draws",
			args:    []string{"--method", "manual", "--category", "career"},
			message: "six draw values",
		},
		{
			name:    "wrong draw count",
			args:    []string{"--method", "manual", "--draws", "7,8", "--category", "career"},
			message: "exactly six values",
		},
		{
			name:    "non-numeric draw",
			args:    []string{"--method", "manual", "--draws", "7,7,7,7,7,x", "--category", "career"},
			message: "invalid draw value",
		},
		{
			name:    "draw value out of range",
			args:    []string{"--method", "manual", "--draws", "5,7,7,7,7,7", "--category", "career"},
			message: "draw value 5",
		},
		{
			name:    "unknown category",
			args:    []string{"--draws", "7,7,7,7,7,7", "--method", "manual", "--category", "lottery"},
			message: "unknown question category",
		},
		{
			name:    "malformed cast moment",
			args:    []string{"--at", "yesterday", "--category", "career"},
			message: "invalid --at value",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution

			_, err := runCLI(t, castCmd(), tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestParseDraws(t *testing.T) {
	t.Parallel() // Enable parallel execution

	draws, err := parseDraws("7,8,7,8,7,9")
	require.NoError(t, err)
	assert.Equal(t, []domain.DrawValue{7, 8, 7, 8, 7, 9}, draws)

	draws, err = parseDraws(" 6, 7 ,8,9,6,7")
	require.NoError(t, err)
	assert.Equal(t, []domain.DrawValue{6, 7, 8, 9, 6, 7}, draws)

	_, err = parseDraws("7,8,9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 3")

	_, err = parseDraws("7,8,7,8,7,banana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banana")
}
