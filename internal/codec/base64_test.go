package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	raw := []byte{0x1B, 0x40, 0x1D, 0x56, 0x41, 0x10}
	encoded := Encode(raw)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestEncodeEmpty(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	decoded, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not base64!!")
	assert.Error(t, err)
	_, err = Decode("G0A") // missing padding
	assert.Error(t, err)
}
