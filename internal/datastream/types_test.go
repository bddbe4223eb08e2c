package datastream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataTypeConstants(t *testing.T) {
	tests := []struct {
		name string
		got  DataType
		want int
	}{
		{"AFP", AFP, 1},
		{"SCS", SCS, 2},
		{"UserASCII", UserASCII, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, int(tt.got), tt.name)
	}
	assert.False(t, DataType(0).Valid())
}

func TestDataType_String(t *testing.T) {
	assert.Equal(t, "AFP", AFP.String())
	assert.Equal(t, "SCS", SCS.String())
	assert.Equal(t, "USERASCII", UserASCII.String())
	assert.Equal(t, "DataType(9)", DataType(9).String())
}

func TestParseDataType(t *testing.T) {
	tests := []struct {
		in   string
		want DataType
	}{
		{"AFP", AFP},
		{"afp", AFP},
		{" scs ", SCS},
		{"USERASCII", UserASCII},
		{"user_ascii", UserASCII},
		{"ascii", UserASCII},
	}
	for _, tt := range tests {
		got, err := ParseDataType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDataType("pcl")
	assert.Error(t, err)
}

func TestDataType_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]DataType{"type": SCS})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"SCS"}`, string(data))

	var out map[DataType]string
	require.NoError(t, json.Unmarshal([]byte(`{"AFP":"raw","userascii":"pdf"}`), &out))
	assert.Equal(t, map[DataType]string{AFP: "raw", UserASCII: "pdf"}, out)

	_, err = json.Marshal(DataType(0))
	assert.Error(t, err)
}

func TestReport_JSON(t *testing.T) {
	data, err := json.Marshal(Report{Type: UserASCII, AFP: Negative, SCS: Inconclusive, Length: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"USERASCII","afp":"negative","scs":"inconclusive","length":4}`, string(data))
}

func TestWindowError(t *testing.T) {
	err := &WindowError{BufLen: 3, Offset: 2, Length: 5}
	assert.Equal(t, "invalid byte window: offset=2 length=5 buffer=3", err.Error())
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
