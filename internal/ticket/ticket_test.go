package ticket

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCode(t *testing.T) {
	data, err := QRCode("68a1b2c3d4e5f60718293a4b", 300)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestQRCodeDefaultSize(t *testing.T) {
	data, err := QRCode("abc", 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestQRCodeEmptyID(t *testing.T) {
	_, err := QRCode("", 300)
	assert.Error(t, err)
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPDF(&buf, Info{
		Name:       "Amara Perera",
		University: "SLTC",
		UserID:     "68a1b2c3d4e5f60718293a4b",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output starts with the PDF magic")
	assert.Greater(t, buf.Len(), 1000)
}

func TestRenderPDFDefaults(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPDF(&buf, Info{UserID: "68a1b2c3d4e5f60718293a4b"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderPDFEmptyID(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPDF(&buf, Info{Name: "Amara"})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
