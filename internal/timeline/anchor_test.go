package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want Anchor
	}{
		{"", After()},
		{">", After()},
		{">0.5", Gap(0.5)},
		{"<", WithPrevious(0)},
		{"<-0.25", WithPrevious(-0.25)},
		{"+=1", Anchor{Placement: End, Offset: 1}},
		{"-=0.5", Anchor{Placement: End, Offset: -0.5}},
		{"3.5", At(3.5)},
		{"fly", With("fly", 0)},
		{" fly ", With("fly", 0)},
		{"fly+=0.5", With("fly", 0.5)},
		{"look-left-=2", With("look-left", -2)},
	}

	for _, tt := range tests {
		got, err := ParseAnchor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseAnchorRejectsBadOffsets(t *testing.T) {
	for _, in := range []string{">x", "<?", "+=soon", "fly+=later"} {
		_, err := ParseAnchor(in)
		assert.Error(t, err, in)
	}
}

func TestAnchorString(t *testing.T) {
	assert.Equal(t, "after", After().String())
	assert.Equal(t, "after-0.5", Gap(-0.5).String())
	assert.Equal(t, "fly+1", With("fly", 1).String())
	assert.Equal(t, "<", WithPrevious(0).String())
	assert.Equal(t, "at 2", At(2).String())
}
