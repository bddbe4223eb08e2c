package datastream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommandTable_EveryEntry feeds each table entry's sample through the
// SCS walk, alone and embedded in text.
func TestCommandTable_EveryEntry(t *testing.T) {
	for _, c := range Commands() {
		t.Run(c.Name, func(t *testing.T) {
			want := Positive
			if c.Kind == KindControl {
				want = Inconclusive
			}

			sample := c.Sample()
			v, err := AnalyzeSCS(sample, 0, len(sample))
			require.NoError(t, err)
			assert.Equal(t, want, v, "sample % X", sample)

			embedded := concat(ebcdicHello, sample, ebcdicHello)
			v, err = AnalyzeSCS(embedded, 0, len(embedded))
			require.NoError(t, err)
			assert.Equal(t, want, v, "embedded % X", embedded)

			if c.Kind != KindControl {
				short := sample[:len(sample)-1]
				v, err = AnalyzeSCS(short, 0, len(short))
				require.NoError(t, err)
				assert.Equal(t, Inconclusive, v, "truncated % X", short)
			}
		})
	}
}

// TestCommandTable_UnlistedSubtypes checks that every extended class
// rejects subtypes outside its whitelist.
func TestCommandTable_UnlistedSubtypes(t *testing.T) {
	listed := make(map[byte]map[byte]bool)
	for _, c := range Commands() {
		if c.Kind != KindCSP || !c.Extended {
			continue
		}
		if listed[c.Function] == nil {
			listed[c.Function] = make(map[byte]bool)
		}
		listed[c.Function][c.SubType] = true
	}
	require.Len(t, listed, 5)

	for class, subs := range listed {
		for sub := 0; sub <= 0xFF; sub++ {
			data := []byte{CSP, class, 0x03, byte(sub), 0x00}
			v, err := AnalyzeSCS(data, 0, len(data))
			require.NoError(t, err)
			if subs[byte(sub)] {
				assert.Equal(t, Positive, v, "class %02X subtype %02X", class, sub)
			} else {
				assert.Equal(t, Negative, v, "class %02X subtype %02X", class, sub)
			}
		}
	}
}

// TestCommandTable_UnlistedControls checks that every byte below 0x40
// without a table entry disqualifies the stream.
func TestCommandTable_UnlistedControls(t *testing.T) {
	known := make(map[byte]bool)
	for _, c := range Commands() {
		known[c.Code] = true
	}
	for b := 0; b < int(SCSControlLimit); b++ {
		if known[byte(b)] {
			continue
		}
		data := []byte{0x34, 0xC0, 0x05, byte(b)}
		v, err := AnalyzeSCS(data, 0, len(data))
		require.NoError(t, err)
		assert.Equal(t, Negative, v, "byte %02X", b)
	}
}

func TestCommandTable_Consistency(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range Commands() {
		assert.False(t, names[c.Name], "duplicate name %s", c.Name)
		names[c.Name] = true
		assert.Less(t, c.Code, SCSControlLimit, "%s", c.Name)
		if c.Extended {
			assert.Equal(t, KindCSP, c.Kind, "%s", c.Name)
		}
	}
	assert.Len(t, table.cspDirect, 4)
	assert.Len(t, table.cspExtended, 5)
}

func TestCommands_ReturnsCopy(t *testing.T) {
	cmds := Commands()
	cmds[0].Name = "changed"
	assert.Equal(t, "NUL", Commands()[0].Name)
}

func TestBuildCommandTable_RejectsPrintableCode(t *testing.T) {
	assert.Panics(t, func() {
		buildCommandTable([]Command{{Name: "BAD", Kind: KindControl, Code: 0x40}})
	})
}

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Name: "CR", Kind: KindControl, Code: CR}, "CR (0D)"},
		{Command{Name: "AHPP", Kind: KindPresentationPosition, Code: PP, Function: AHPP}, "AHPP (34 C0)"},
		{Command{Name: "SHF", Kind: KindCSP, Code: CSP, Function: ClassSHF}, "SHF (2B C1 nn)"},
		{Command{Name: "PPM", Kind: KindCSP, Code: CSP, Function: ClassD2, SubType: 0x48, Extended: true}, "PPM (2B D2 nn 48)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cmd.String())
	}
}
