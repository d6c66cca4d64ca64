package palette

import (
	"github.com/lefinal/flier/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Color
		wantErr bool
	}{
		{name: "upper", in: "RED", want: Red},
		{name: "lower", in: "red", want: Red},
		{name: "spaces", in: "dark blue", want: DarkBlue},
		{name: "underscores", in: "LIGHT_PURPLE", want: LightPurple},
		{name: "unknown", in: "pink", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err, "should fail")
				e, _ := errors.Cast(err)
				assert.Equal(t, errors.KindUnknownColor, e.Kind, "should return correct kind")
				return
			}
			require.NoError(t, err, "should not fail")
			assert.Equal(t, tt.want, got, "should parse correct color")
		})
	}
}

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 16, "should return whole palette")
	assert.Equal(t, Black, all[0])
	assert.Equal(t, White, all[15])
}

func TestColor_Code(t *testing.T) {
	assert.Equal(t, "§c", Red.Code())
	assert.Equal(t, "§f", White.Code())
	assert.Equal(t, "§0", Black.Code())
}

func TestStripCodes(t *testing.T) {
	assert.Equal(t, "Red: 3", StripCodes(Red.Code()+"Red"+White.Code()+": 3"))
}

func TestTranslateAlternateCodes(t *testing.T) {
	assert.Equal(t, "§cRed & co", TranslateAlternateCodes('&', "&cRed & co"))
}
