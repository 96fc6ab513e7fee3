package turtle

import (
	"strings"
	"testing"
)

func collectTokens(t *testing.T, input string, bufSize int) []string {
	t.Helper()
	tok := NewTokenizerSize(strings.NewReader(input), bufSize)
	var got []string
	for {
		k := tok.Advance()
		if k == kindFinished {
			break
		}
		got = append(got, k.String()+":"+string(tok.Bytes()))
	}
	if !tok.Good() {
		t.Fatalf("tokenizer error at buffer size %d on input %q", bufSize, input)
	}
	return got
}

// TestTokenizerBufferTransparency exercises invariant 5 from the
// specification: the token sequence must not depend on the initial buffer
// size or on how the input happens to be chunked by refills.
func TestTokenizerBufferTransparency(t *testing.T) {
	input := `@prefix ex: <http://example.org/long/namespace/path#> .
ex:subjectWithAVeryLongLocalNamePastTheInitialBufferSize ex:p "a literal value that is also fairly long to force buffer growth" .
`
	sizes := []int{1, 2, 4, 8, 16, 64, 512, 4096}
	var want []string
	for i, size := range sizes {
		got := collectTokens(t, input, size)
		if i == 0 {
			want = got
			continue
		}
		if len(got) != len(want) {
			t.Fatalf("buffer size %d: got %d tokens, want %d", size, len(got), len(want))
		}
		for j := range got {
			if got[j] != want[j] {
				t.Fatalf("buffer size %d: token %d = %q, want %q", size, j, got[j], want[j])
			}
		}
	}
}

func TestTokenizerKinds(t *testing.T) {
	cases := []struct {
		input string
		kinds []kind
	}{
		{`.`, []kind{kindDot}},
		{`;`, []kind{kindSemicolon}},
		{`,`, []kind{kindComma}},
		{`^^`, []kind{kindCarets}},
		{`"hi"`, []kind{kindString}},
		{`<http://e/>`, []kind{kindURI}},
		{`@prefix`, []kind{kindDirective}},
		{`ex:local`, []kind{kindName}},
		{`# comment` + "\n" + `.`, []kind{kindDot}},
	}
	for _, c := range cases {
		tok := NewTokenizer(strings.NewReader(c.input))
		var got []kind
		for {
			k := tok.Advance()
			if k == kindFinished {
				break
			}
			got = append(got, k)
		}
		if !tok.Good() {
			t.Errorf("input %q: tokenizer reported error", c.input)
			continue
		}
		if len(got) != len(c.kinds) {
			t.Errorf("input %q: got %d tokens %v, want %v", c.input, len(got), got, c.kinds)
			continue
		}
		for i := range got {
			if got[i] != c.kinds[i] {
				t.Errorf("input %q: token %d = %s, want %s", c.input, i, got[i], c.kinds[i])
			}
		}
	}
}

func TestTokenizerStringEscapes(t *testing.T) {
	tok := NewTokenizer(strings.NewReader(`"a\tb\nc\rd\\e\"f"`))
	if k := tok.Advance(); k != kindString {
		t.Fatalf("got kind %s, want string", k)
	}
	want := "a\tb\nc\rd\\e\"f"
	if got := string(tok.Bytes()); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTokenizerBadEscapeIsError(t *testing.T) {
	tok := NewTokenizer(strings.NewReader(`"bad \q escape"`))
	tok.Advance()
	if tok.Good() {
		t.Fatal("expected tokenizer error on unsupported escape")
	}
}

func TestTokenizerLoneCaretIsError(t *testing.T) {
	tok := NewTokenizer(strings.NewReader(`^x`))
	tok.Advance()
	if tok.Good() {
		t.Fatal("expected tokenizer error on lone caret")
	}
}
