package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestScanValue_String(t *testing.T) {
	src := `head = "Nyame Helm", body="x"`
	span, err := ScanValue(src, 6)
	require.NoError(t, err)
	assert.Equal(t, `"Nyame Helm"`, src[span.Start:span.End])
}

func TestScanValue_StringEscapes(t *testing.T) {
	src := `x= 'Sakpata\'s \\' rest`
	span, err := ScanValue(src, 2)
	require.NoError(t, err)
	assert.Equal(t, `'Sakpata\'s \\'`, src[span.Start:span.End])
}

func TestScanValue_TableWithBracesInStrings(t *testing.T) {
	src := `head={ name="A}B", augments={'HP+5', "'{"}, }, next`
	span, err := ScanValue(src, 5)
	require.NoError(t, err)
	assert.Equal(t, `{ name="A}B", augments={'HP+5', "'{"}, }`, src[span.Start:span.End])
}

func TestScanValue_TableWithComment(t *testing.T) {
	src := "{ name=\"A\", -- don't } count\n priority=3 }\nrest"
	span, err := ScanValue(src, 0)
	require.NoError(t, err)
	assert.Equal(t, "{ name=\"A\", -- don't } count\n priority=3 }", src[span.Start:span.End])
}

func TestScanValue_BareToken(t *testing.T) {
	for src, want := range map[string]string{
		"= nil,":         "nil",
		"= empty }":      "empty",
		"= gear.Foo\n":   "gear.Foo",
		"= x -- trailing": "x",
		"=  sets.a  ,":   "sets.a",
	} {
		span, err := ScanValue(src, 1)
		require.NoError(t, err, src)
		assert.Equal(t, want, src[span.Start:span.End], src)
	}
}

func TestScanValue_NoValue(t *testing.T) {
	for _, tc := range []struct {
		src  string
		from int
	}{
		{"", 0},
		{"abc", 3},
		{"abc", 10},
		{"abc", -1},
		{"=   ", 1},
		{"= , x", 1},
		{"= }", 1},
	} {
		span, err := ScanValue(tc.src, tc.from)
		assert.ErrorIs(t, err, ErrNoValue, "%q@%d", tc.src, tc.from)
		assert.Equal(t, Span{tc.from, tc.from}, span)
	}
}

func TestScanValue_Unterminated(t *testing.T) {
	for _, src := range []string{`= "abc`, `= { name="x"`, `= { name="x }`, `= "a\"`} {
		_, err := ScanValue(src, 1)
		assert.ErrorIs(t, err, ErrUnterminated, src)
	}
}

func genValue() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.StringMatching(`"[A-Za-z' .+]{0,12}"`),
		rapid.StringMatching(`'[A-Za-z .+]{0,12}'`),
		rapid.StringMatching(`\{ ?name ?= ?"[A-Za-z .]{1,10}"(, ?augments=\{('[A-Za-z+:0-9 ]{0,8}',?){0,3}\})?(, ?priority=[0-9]{1,3})? ?,? ?\}`),
		rapid.SampledFrom([]string{"nil", "empty", "gear.Head", "true"}),
	)
}

func TestProperty_ScanValue_SelfConsistent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		value := genValue().Draw(rt, "value")
		pad := rapid.StringMatching(`[ \t]{0,3}`).Draw(rt, "pad")
		src := "head =" + pad + value + ",\nbody = nil"

		span, err := ScanValue(src, 6)
		require.NoError(rt, err)
		assert.Equal(rt, value, src[span.Start:span.End])

		again, err := ScanValue(src, span.Start)
		require.NoError(rt, err)
		assert.Equal(rt, span, again)
	})
}
