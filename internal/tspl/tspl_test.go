package tspl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pos-bridge-backend/internal/model"
)

func TestLabelScript(t *testing.T) {
	out := string(Label(model.BarcodeData{
		BrandName:    "Acme",
		CategoryName: "Shoes",
		ModelNo:      "X-200",
		ShopName:     "Corner Store",
		SKU:          "SKU123",
	}))

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	assert.Equal(t, []string{
		"SIZE 35 mm, 18 mm",
		"GAP 2 mm, 0",
		"DIRECTION 1",
		"CLS",
		`TEXT 140,15,"0",0,1,1,3,"Acme / Shoes / X-200"`,
		`TEXT 140,40,"0",0,1,1,3,"SHOP: Corner Store"`,
		`BARCODE 40,70,"128",50,1,0,2,2,"SKU123"`,
		"PRINT 1",
	}, lines)
}

func TestLabelCustomSize(t *testing.T) {
	out := string(Label(model.BarcodeData{
		SKU:       "SKU123",
		LabelSize: &model.LabelSize{WidthMm: 50, HeightMm: 30},
	}))
	assert.Contains(t, out, "SIZE 50 mm, 30 mm")
	// The text anchor follows the label width.
	assert.Contains(t, out, "TEXT 200,15")
}

func TestLabelTruncatesLongHeader(t *testing.T) {
	out := string(Label(model.BarcodeData{
		BrandName:    "A Very Long Brand Name",
		CategoryName: "Category",
		SKU:          "SKU123",
	}))
	assert.Contains(t, out, `"A Very Long Brand Name / `+`"`)
}

func TestLabelTruncatesHeaderByRunes(t *testing.T) {
	// 25 printed columns, not 25 UTF-8 bytes.
	out := Label(model.BarcodeData{
		BrandName:    "Café Crème Brûlée Déluxe",
		CategoryName: "Pâtisserie",
		SKU:          "SKU123",
	})
	assert.True(t, bytes.Contains(out, encodeASCII(`"Café Crème Brûlée Déluxe "`)))
}

func TestLabelReplacesWideRunes(t *testing.T) {
	out := string(Label(model.BarcodeData{ShopName: "店", SKU: "SKU123"}))
	assert.Contains(t, out, `"SHOP: ?"`)
}

func TestLabelDeterministic(t *testing.T) {
	data := model.BarcodeData{BrandName: "Acme", SKU: "SKU123"}
	assert.Equal(t, Label(data), Label(data))
}
