package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andina-geo/geocoder/internal/parser"
)

func TestParseExamples(t *testing.T) {
	cases := []struct {
		in     string
		want   parser.Components
		wantOK bool
	}{
		{
			in:     "CALLE 100 # 15",
			want:   parser.Components{StreetType: "CL", StreetName: "100", NumberPrefix: "15", NumberSuffix: ""},
			wantOK: true,
		},
		{
			in:     "CARRERA 43 # 57-49",
			want:   parser.Components{StreetType: "KR", StreetName: "43", NumberPrefix: "57", NumberSuffix: "49"},
			wantOK: true,
		},
		{
			in:     "AV 68B # 25 10",
			want:   parser.Components{StreetType: "AV", StreetName: "68B", NumberPrefix: "25", NumberSuffix: "10"},
			wantOK: true,
		},
		{
			in:     "KR 43 # 75",
			want:   parser.Components{StreetType: "KR", StreetName: "43", NumberPrefix: "75", NumberSuffix: ""},
			wantOK: true,
		},
		{
			in:     "Invalid Address 123",
			wantOK: false,
		},
		{
			in:     "",
			wantOK: false,
		},
	}

	for _, c := range cases {
		got, ok := parser.Parse(c.in)
		assert.Equal(t, c.wantOK, ok, "input=%q", c.in)
		if !c.wantOK {
			continue
		}
		assert.Equal(t, c.want.StreetType, got.StreetType, "input=%q", c.in)
		assert.Equal(t, c.want.StreetName, got.StreetName, "input=%q", c.in)
		assert.Equal(t, c.want.NumberPrefix, got.NumberPrefix, "input=%q", c.in)
		assert.Equal(t, c.want.NumberSuffix, got.NumberSuffix, "input=%q", c.in)
		assert.Equal(t, c.in, got.Raw, "raw must equal input verbatim")
	}
}

func TestParseUnrecognizedStreetTypePassesThrough(t *testing.T) {
	got, ok := parser.Parse("xyz 43 # 57")
	assert.True(t, ok)
	assert.Equal(t, "XYZ", got.StreetType)
}

func TestFullStreetNameAndNumber(t *testing.T) {
	c, ok := parser.Parse("CARRERA 43 # 57-49")
	assert.True(t, ok)
	assert.Equal(t, "KR 43", c.FullStreetName())
	assert.Equal(t, "57-49", c.FullNumber())

	c2, ok := parser.Parse("KR 43 # 75")
	assert.True(t, ok)
	assert.Equal(t, "75", c2.FullNumber())
}

func TestExtractLeadingInt(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"57", 57, true},
		{"57A", 57, true},
		{"13 247", 13, true},
		{"", 0, false},
		{"A", 0, false},
	}
	for _, c := range cases {
		got, ok := parser.ExtractLeadingInt(c.in)
		assert.Equal(t, c.wantOK, ok, "input=%q", c.in)
		assert.Equal(t, c.want, got, "input=%q", c.in)
	}
}

func TestExtractDigitRun(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"57", 57, true},
		{"57-49", 5749, true},
		{"13 247", 13247, true},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parser.ExtractDigitRun(c.in)
		assert.Equal(t, c.wantOK, ok, "input=%q", c.in)
		assert.Equal(t, c.want, got, "input=%q", c.in)
	}
}
