package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Shanghai ", "shanghai"},
		{"NINGBO", "ningbo"},
		{"ＳＨＡＮＧＨＡＩ", "shanghai"},
		{"　上海　", "上海"},
		{"Ningbo   Zhoushan", "ningbo zhoushan"},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestGazetteer_Match(t *testing.T) {
	g := NewGazetteer()

	tests := []struct {
		name  string
		input string
		want  Place
		ok    bool
	}{
		{"canonical id", "shanghai", Shanghai, true},
		{"display name mixed case", "QingDao", Qingdao, true},
		{"native script", "宁波", Ningbo, true},
		{"abbreviation", "SZ", Shenzhen, true},
		{"locode", "CNXMN", Xiamen, true},
		{"historic spelling", "Amoy", Xiamen, true},
		{"single character abbreviation", "沪", Shanghai, true},
		{"native name with port suffix", "天津港口", Tianjin, true},
		{"english name with qualifier", "Dalian Port", Dalian, true},
		{"longest alias beats shorter overlap", "Shenzhen Shekou", Shenzhen, true},
		{"fragment of a longer alias", "shangh", Shanghai, true},
		{"full-width input", "ＴＩＡＮＪＩＮ", Tianjin, true},
		{"abbreviation as a word", "SH port", Shanghai, true},
		{"locode next to punctuation", "cnngb/berth 3", Ningbo, true},
		{"unknown", "Rotterdam", "", false},
		{"abbreviation inside Tangshan", "Tangshan", "", false},
		{"abbreviation inside Shantou", "Shantou", "", false},
		{"abbreviation inside Nansha", "Nansha", "", false},
		{"abbreviation inside Shekou", "Shekou", "", false},
		{"abbreviation inside Washington", "Washington", "", false},
		{"empty", "  ", "", false},
		{"single letter fragment", "q", "", false},
		{"fragment shared by several places", "an", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Match(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlaces_ReturnsCopy(t *testing.T) {
	ps := Places()
	ps[0].Aliases[0] = "mutated"

	again := Places()
	assert.NotEqual(t, "mutated", again[0].Aliases[0])
}

func TestPlace_DisplayName(t *testing.T) {
	assert.Equal(t, "Xiamen", Xiamen.DisplayName())
	assert.Equal(t, "atlantis", Place("atlantis").DisplayName())
}
