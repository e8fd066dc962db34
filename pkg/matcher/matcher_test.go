package matcher

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/praetorian-inc/rexp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configFor(e Engine) Config {
	cfg := DefaultConfig()
	cfg.Engine = e
	return cfg
}

// groupTexts flattens a match into "value" for present groups and nil for absent ones.
func groupTexts(m types.MatchResult) []*string {
	out := make([]*string, len(m.Groups))
	for i, g := range m.Groups {
		if text, ok := g.Text(); ok {
			out[i] = &text
		}
	}
	return out
}

func strp(s string) *string { return &s }

func TestParseEngine(t *testing.T) {
	tests := []struct {
		in   string
		want Engine
	}{
		{"", EngineRE2},
		{"re2", EngineRE2},
		{"RE2", EngineRE2},
		{" coregex ", EngineCoregex},
		{"regexp2", EngineRegexp2},
	}
	for _, tt := range tests {
		got, err := ParseEngine(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseEngine("pcre")
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestCompile_UnknownEngine(t *testing.T) {
	_, err := Compile("a", Config{Engine: "hyperscan"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEngine)

	var ce *CompileError
	assert.False(t, errors.As(err, &ce), "engine errors are configuration errors, not compile errors")
}

func TestCompile_UnbalancedGroup(t *testing.T) {
	for _, e := range Engines() {
		t.Run(string(e), func(t *testing.T) {
			m, err := Compile("(", configFor(e))
			require.Error(t, err)
			assert.Nil(t, m)

			var ce *CompileError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, e, ce.Engine)
			assert.Equal(t, "(", ce.Pattern)
			// The diagnostic is passed through untouched
			assert.Equal(t, ce.Err.Error(), err.Error())
			assert.Contains(t, err.Error(), "error parsing regexp")
		})
	}
}

func TestCompile_RE2Diagnostics(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"(", "missing closing )"},
		{"a)", "unexpected )"},
		{"[a", "missing closing ]"},
		{"a{2,1}", "invalid repeat count"},
		{"*a", "missing argument to repetition operator"},
		{`(?=a)`, "invalid or unsupported Perl syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Compile(tt.pattern, DefaultConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFindAll_Scenarios(t *testing.T) {
	for _, e := range Engines() {
		t.Run(string(e), func(t *testing.T) {
			t.Run("no match", func(t *testing.T) {
				m, err := Compile("z", configFor(e))
				require.NoError(t, err)
				got, err := m.FindAll([]byte("abc"))
				require.NoError(t, err)
				assert.Empty(t, got)
			})

			t.Run("optional group absent", func(t *testing.T) {
				m, err := Compile("(a)(b)?", configFor(e))
				require.NoError(t, err)
				assert.Equal(t, 3, m.NumGroups())

				got, err := m.FindAll([]byte("a"))
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, []*string{strp("a"), strp("a"), nil}, groupTexts(got[0]))
				assert.Equal(t, 2, got[0].Groups[2].Index)
			})

			t.Run("repeated matches in order", func(t *testing.T) {
				m, err := Compile("a", configFor(e))
				require.NoError(t, err)
				got, err := m.FindAll([]byte("aa"))
				require.NoError(t, err)
				require.Len(t, got, 2)
				assert.Equal(t, types.OffsetSpan{Start: 0, End: 1}, got[0].Location.Offset)
				assert.Equal(t, types.OffsetSpan{Start: 1, End: 2}, got[1].Location.Offset)
			})

			t.Run("alternation branch", func(t *testing.T) {
				m, err := Compile("(cat)|(dog)", configFor(e))
				require.NoError(t, err)
				got, err := m.FindAll([]byte("dog cat"))
				require.NoError(t, err)
				require.Len(t, got, 2)
				assert.Equal(t, []*string{strp("dog"), nil, strp("dog")}, groupTexts(got[0]))
				assert.Equal(t, []*string{strp("cat"), strp("cat"), nil}, groupTexts(got[1]))
			})

			t.Run("location", func(t *testing.T) {
				m, err := Compile(`w\w+`, configFor(e))
				require.NoError(t, err)
				got, err := m.FindAll([]byte("hello\nworld"))
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, types.SourcePoint{Line: 2, Column: 1}, got[0].Location.Source.Start)
				assert.Equal(t, types.SourcePoint{Line: 2, Column: 6}, got[0].Location.Source.End)
			})
		})
	}
}

func TestFindAll_ZeroWidthAdvances(t *testing.T) {
	m, err := Compile("x*", DefaultConfig())
	require.NoError(t, err)

	got, err := m.FindAll([]byte("ab"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, match := range got {
		assert.Equal(t, types.OffsetSpan{Start: i, End: i}, match.Location.Offset)
		text, ok := match.Whole().Text()
		assert.True(t, ok, "empty match is still present")
		assert.Empty(t, text)
	}
}

func TestFindAll_NamedGroups(t *testing.T) {
	for _, e := range []Engine{EngineRE2, EngineCoregex} {
		t.Run(string(e), func(t *testing.T) {
			m, err := Compile(`(?P<year>\d{4})-(\d{2})`, configFor(e))
			require.NoError(t, err)

			names := m.GroupNames()
			require.Len(t, names, 3)
			assert.Equal(t, "year", names[1])
			assert.Equal(t, "", names[2])

			got, err := m.FindAll([]byte("on 2024-05"))
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "year", got[0].Groups[1].Name)
			assert.Equal(t, []*string{strp("2024-05"), strp("2024"), strp("05")}, groupTexts(got[0]))
		})
	}
}

func TestFindAll_OptionalGroupsAroundEmptyStar(t *testing.T) {
	for _, e := range Engines() {
		t.Run(string(e), func(t *testing.T) {
			m, err := Compile(`x?(b)?(a*)(b)?`, configFor(e))
			require.NoError(t, err)
			assert.Equal(t, 4, m.NumGroups())

			var got []types.MatchResult
			require.NotPanics(t, func() {
				got, err = m.FindAll([]byte("ba"))
			})
			require.NoError(t, err)
			require.NotEmpty(t, got)
			assert.Equal(t, []*string{strp("ba"), strp("b"), strp("a"), nil}, groupTexts(got[0]))
		})
	}
}

// matchShape reduces a scan to comparable spans and group texts.
type matchShape struct {
	Span   types.OffsetSpan
	Groups []*string
}

func shapesOf(t *testing.T, e Engine, pattern, subject string) []matchShape {
	t.Helper()
	m, err := Compile(pattern, configFor(e))
	require.NoError(t, err)
	got, err := m.FindAll([]byte(subject))
	require.NoError(t, err)

	shapes := make([]matchShape, 0, len(got))
	for _, match := range got {
		shapes = append(shapes, matchShape{Span: match.Location.Offset, Groups: groupTexts(match)})
	}
	return shapes
}

func TestFindAll_EnginesAgree(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
	}{
		{`(a)(b)?`, "a ab abb"},
		{`(b)?`, "\nb\n"},
		{`(b)?`, "bb"},
		{`x*`, "axxb"},
		{`a*`, "baaac"},
		{`\b`, "hi there"},
		{`\bfoo\b`, "foo food foo"},
		{`(\w+)@(\w+)\.com`, "me@example.com, you@test.com"},
		{`(cat)|(dog)`, "dog cat bird"},
		{`(\d+)(?:-(\d+))?`, "1-2 3 45-6"},
		{`^`, "abc"},
		{`$`, "abc"},
		{`(?m)^(\w)`, "ab\ncd\n"},
		{`z`, "abc"},
	}

	for _, tt := range tests {
		want := shapesOf(t, EngineRE2, tt.pattern, tt.subject)
		for _, e := range []Engine{EngineCoregex, EngineRegexp2} {
			got := shapesOf(t, e, tt.pattern, tt.subject)
			assert.Equal(t, want, got, "%s: %q on %q", e, tt.pattern, tt.subject)
		}
	}
}

func TestRegexp2_SkipsEmptyMatchAfterMatch(t *testing.T) {
	m, err := Compile(`(b)?`, configFor(EngineRegexp2))
	require.NoError(t, err)

	got, err := m.FindAll([]byte("\nb\n"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, types.OffsetSpan{Start: 0, End: 0}, got[0].Location.Offset)
	assert.Equal(t, types.OffsetSpan{Start: 1, End: 2}, got[1].Location.Offset)
	assert.Equal(t, types.OffsetSpan{Start: 3, End: 3}, got[2].Location.Offset)
}

func TestFindAll_NamedGroupsRegexp2(t *testing.T) {
	// regexp2 may number named groups after unnamed ones; look the group up by name.
	m, err := Compile(`(?<year>\d{4})-(\d{2})`, configFor(EngineRegexp2))
	require.NoError(t, err)
	assert.Contains(t, m.GroupNames(), "year")

	got, err := m.FindAll([]byte("on 2024-05"))
	require.NoError(t, err)
	require.Len(t, got, 1)

	var year *types.Capture
	for i := range got[0].Groups {
		if got[0].Groups[i].Name == "year" {
			year = &got[0].Groups[i]
		}
	}
	require.NotNil(t, year)
	text, ok := year.Text()
	assert.True(t, ok)
	assert.Equal(t, "2024", text)
}

func TestFindAll_ByteOffsetsWithMultibyteText(t *testing.T) {
	for _, e := range Engines() {
		t.Run(string(e), func(t *testing.T) {
			m, err := Compile(`(é+)x`, configFor(e))
			require.NoError(t, err)

			subject := []byte("caféééx!")
			got, err := m.FindAll(subject)
			require.NoError(t, err)
			require.Len(t, got, 1)

			whole := got[0].Whole()
			assert.Equal(t, "éééx", string(subject[whole.Span.Start:whole.Span.End]))
			assert.Equal(t, types.OffsetSpan{Start: 3, End: 9}, got[0].Groups[1].Span)
		})
	}
}

func TestFindAll_InvalidUTF8Subject(t *testing.T) {
	m, err := Compile(`a(.)b`, DefaultConfig())
	require.NoError(t, err)

	got, err := m.FindAll([]byte("a\xffb"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []byte{0xff}, got[0].Groups[1].Value)
}

func TestFindAll_PrefilterDoesNotChangeResults(t *testing.T) {
	patterns := []string{`foo|bar`, `(x)(y)?z`, `id=(\d+)`, `\d+`}
	subjects := []string{"", "foo", "barfoo", "xz xyz", "id=12 id=", "nothing"}

	for _, p := range patterns {
		with := DefaultConfig()
		without := DefaultConfig()
		without.Prefilter = false

		mWith, err := Compile(p, with)
		require.NoError(t, err)
		mWithout, err := Compile(p, without)
		require.NoError(t, err)

		for _, s := range subjects {
			a, err := mWith.FindAll([]byte(s))
			require.NoError(t, err)
			b, err := mWithout.FindAll([]byte(s))
			require.NoError(t, err)
			assert.Equal(t, b, a, "pattern %q subject %q", p, s)
		}
	}
}

func TestRegexp2_PerlConstructs(t *testing.T) {
	cfg := configFor(EngineRegexp2)

	// Lookahead is rejected by RE2 but supported here
	m, err := Compile(`\w+(?=!)`, cfg)
	require.NoError(t, err)
	got, err := m.FindAll([]byte("hi there!"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	text, _ := got[0].Whole().Text()
	assert.Equal(t, "there", text)

	// Backreference
	m, err = Compile(`(\w)\1`, cfg)
	require.NoError(t, err)
	got, err = m.FindAll([]byte("abba"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	text, _ = got[0].Whole().Text()
	assert.Equal(t, "bb", text)

	_, err = Compile(`(\w)\1`, DefaultConfig())
	assert.Error(t, err, "RE2 has no backreferences")
}

func TestRegexp2_RepeatedGroupReportsLastIteration(t *testing.T) {
	for _, e := range []Engine{EngineRE2, EngineRegexp2} {
		m, err := Compile(`(?:(\d),?)+`, configFor(e))
		require.NoError(t, err)
		got, err := m.FindAll([]byte("1,2,3"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, []*string{strp("1,2,3"), strp("3")}, groupTexts(got[0]), string(e))
	}
}

func TestRegexp2_MatchTimeout(t *testing.T) {
	cfg := configFor(EngineRegexp2)
	cfg.MatchTimeout = 10 * time.Millisecond

	m, err := Compile(`(a+)+$`, cfg)
	require.NoError(t, err)

	subject := strings.Repeat("a", 40) + "!"
	_, err = m.FindAll([]byte(subject))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestMatcher_Metadata(t *testing.T) {
	for _, e := range Engines() {
		m, err := Compile(`(a)(b)`, configFor(e))
		require.NoError(t, err)
		assert.Equal(t, e, m.Engine())
		assert.Equal(t, `(a)(b)`, m.String())
		assert.Equal(t, 3, m.NumGroups())
	}
}

func TestRuneByteOffsets(t *testing.T) {
	assert.Equal(t, []int{0}, runeByteOffsets(""))
	assert.Equal(t, []int{0, 1, 3, 4}, runeByteOffsets("aéb"))
	assert.Equal(t, []int{0, 1, 2}, runeByteOffsets("\xff\xfe"))
}
