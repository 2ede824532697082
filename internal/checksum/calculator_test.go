package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256Calculator_CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty content",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "abc",
			content:  "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.CalculateRaw([]byte(tt.content)))
		})
	}
}

func TestSHA256Calculator_RawDetectsWhitespace(t *testing.T) {
	calc := New()

	a := calc.CalculateRaw([]byte(`[{"category": "avefi:Item"}]`))
	b := calc.CalculateRaw([]byte(`[{"category":"avefi:Item"}]`))
	assert.NotEqual(t, a, b)
}

func TestSHA256Calculator_CalculateNormalized(t *testing.T) {
	calc := New()

	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{
			name:  "Indentation ignored",
			a:     "[\n  {\n    \"category\": \"avefi:Item\"\n  }\n]\n",
			b:     `[{"category":"avefi:Item"}]`,
			equal: true,
		},
		{
			name:  "Whitespace inside strings significant",
			a:     `[{"has_name":"Metropolis"}]`,
			b:     `[{"has_name":"Metro polis"}]`,
			equal: false,
		},
		{
			name:  "Key order significant",
			a:     `{"a":1,"b":2}`,
			b:     `{"b":2,"a":1}`,
			equal: false,
		},
		{
			name:  "Invalid JSON hashed raw",
			a:     "not json",
			b:     "not json",
			equal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := calc.CalculateNormalized([]byte(tt.a))
			b := calc.CalculateNormalized([]byte(tt.b))
			assert.Len(t, a, 64)
			if tt.equal {
				assert.Equal(t, a, b)
			} else {
				assert.NotEqual(t, a, b)
			}
		})
	}
}

func TestSHA256Calculator_InvalidJSONMatchesRaw(t *testing.T) {
	calc := New()
	content := []byte("[{")

	assert.Equal(t, calc.CalculateRaw(content), calc.CalculateNormalized(content))
}

var _ Calculator = SHA256{}
