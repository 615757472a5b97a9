package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Ana's Cuts", "anas-cuts"},
		{"ampersand and punctuation", "Joe's & Sons!!", "joes-and-sons"},
		{"whitespace", "  Fade  Factory  ", "fade-factory"},
		{"digits kept", "Studio 54", "studio-54"},
		{"unicode dropped", "Café Müller", "caf-m-ller"},
		{"empty", "", ""},
		{"all punctuation", "!!! ???", ""},
		{"already a slug", "fade-factory", "fade-factory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Joe's & Sons!!", "Ana's Cuts", "  A  B  ", "studio 54", ""}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeTruncates(t *testing.T) {
	long := strings.Repeat("barbershop ", 10)
	got := Normalize(long)
	assert.LessOrEqual(t, len(got), 40)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.Equal(t, got, Normalize(got))
}

func TestUniquify(t *testing.T) {
	taken := func(set ...string) func(string) bool {
		m := make(map[string]bool, len(set))
		for _, s := range set {
			m[s] = true
		}
		return func(s string) bool { return m[s] }
	}

	t.Run("free slug unchanged", func(t *testing.T) {
		assert.Equal(t, "anas-cuts", Uniquify("anas-cuts", taken()))
	})

	t.Run("suffix starts at 2", func(t *testing.T) {
		assert.Equal(t, "anas-cuts-2", Uniquify("anas-cuts", taken("anas-cuts")))
	})

	t.Run("suffix counts up", func(t *testing.T) {
		got := Uniquify("anas-cuts", taken("anas-cuts", "anas-cuts-2", "anas-cuts-3"))
		assert.Equal(t, "anas-cuts-4", got)
	})

	t.Run("empty base falls back", func(t *testing.T) {
		assert.Equal(t, DefaultBase, Uniquify("", taken()))
		assert.Equal(t, DefaultBase+"-2", Uniquify("", taken(DefaultBase)))
	})
}
