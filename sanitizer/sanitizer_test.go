// FILE: lixenwraith/ulog/sanitizer/sanitizer_test.go
package sanitizer

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicies(t *testing.T) {
	testCases := []struct {
		name     string
		policy   PolicyPreset
		input    string
		expected string
	}{
		{"raw passes through", PolicyRaw, "hello\x00world\n", "hello\x00world\n"},

		{"txt null byte", PolicyTxt, "test\x00data", "test<00>data"},
		{"txt control chars", PolicyTxt, "bell\x07tab\x09form\x0c", "bell<07>tab<09>form<0c>"},
		{"txt newline", PolicyTxt, "boom\n42", "boom<0a>42"},
		{"txt keeps printable", PolicyTxt, "Hello World 123!@#", "Hello World 123!@#"},
		{"txt multi-byte control", PolicyTxt, "line1\u0085line2", "line1<c285>line2"},
		{"txt keeps UTF-8", PolicyTxt, "Hello 世界 ✓", "Hello 世界 ✓"},

		{"line escapes breaks", PolicyLine, "line1\nline2\ttab\rreturn", `line1\nline2\ttab\rreturn`},
		{"line escapes controls", PolicyLine, "text\x01\x1f", `text\u0001\u001f`},
		{"line escapes separators", PolicyLine, "a\u2028b", `a\u2028b`},
		{"line keeps spaces", PolicyLine, "a b  c", "a b  c"},

		{"flat folds whitespace", PolicyFlat, "a \n\t b", "a b"},
		{"flat strips invisible", PolicyFlat, "a\x00b", "ab"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ForPolicy(tc.policy).Sanitize(tc.input))
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, name := range []string{"raw", "txt", "line", "flat"} {
		p, err := ParsePolicy(name)
		assert.NoError(t, err)
		assert.Equal(t, PolicyPreset(name), p)
	}

	p, err := ParsePolicy(" LINE ")
	assert.NoError(t, err)
	assert.Equal(t, PolicyLine, p)

	_, err = ParsePolicy("json")
	assert.ErrorContains(t, err, "unknown sanitize policy")
}

func TestRuleOrder(t *testing.T) {
	s := New().
		Rule(FilterLineBreak, TransformStrip).
		Rule(FilterNonPrintable, TransformHexEncode)

	// Earliest matching rule applies
	assert.Equal(t, "ab<09>c", s.Sanitize("a\nb\tc"))
}

func TestUnknownPolicyIgnored(t *testing.T) {
	s := ForPolicy(PolicyPreset("bogus"))
	assert.Equal(t, "a\nb", s.Sanitize("a\nb"))
}

func TestNilSanitizer(t *testing.T) {
	var s *Sanitizer
	assert.Equal(t, "a\nb", s.Sanitize("a\nb"))
}

func TestAppend(t *testing.T) {
	s := ForPolicy(PolicyTxt)
	out := s.Append([]byte("12:00 "), "x\ny")
	assert.Equal(t, "12:00 x<0a>y", string(out))
}

func TestTxtProducesSingleLine(t *testing.T) {
	s := ForPolicy(PolicyTxt)
	inputs := []string{"a\nb", "a\r\nb", "\n\n\n", "x\u2028y", "tab\there"}
	for _, in := range inputs {
		out := s.Sanitize(in)
		assert.False(t, strings.ContainsAny(out, "\n\r"), "input %q", in)
		assert.NotContains(t, out, "\u2028")
	}
}

func TestConcurrentUse(t *testing.T) {
	s := ForPolicy(PolicyTxt)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Equal(t, "a<0a>b", s.Sanitize("a\nb"))
			}
		}()
	}
	wg.Wait()
}

func BenchmarkSanitizeClean(b *testing.B) {
	s := ForPolicy(PolicyTxt)
	for i := 0; i < b.N; i++ {
		_ = s.Sanitize("an ordinary log message without control characters")
	}
}
