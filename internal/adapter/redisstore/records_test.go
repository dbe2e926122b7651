package redisstore

import (
	"testing"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagRecordKeepsSnapshot(t *testing.T) {
	var bag domain.Bag
	bag.Add(domain.Product{
		ID:            "a",
		Name:          "Shirt",
		Price:         699,
		OriginalPrice: 1499,
		Sizes:         []string{"M"},
		Colors:        []string{"Blue"},
		Category:      domain.CategoryMen,
	}, "", "")

	data, err := encodeBag(bag)
	require.NoError(t, err)

	got, err := decodeBag(data)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, bag.Totals(), got.Totals())
	assert.Equal(t, "Blue", got.Items[0].Color)
	assert.Equal(t, "M", got.Items[0].Size)
}

func TestDecodeBagCorrupt(t *testing.T) {
	tests := map[string]string{
		"NotJSON":      `{"items":[`,
		"WrongShape":   `{"items":"x"}`,
		"ZeroQuantity": `{"items":[{"product":{"id":"a","price":1},"quantity":0}]}`,
		"NoProductID":  `{"items":[{"product":{"price":1},"quantity":1}]}`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decodeBag([]byte(data))
			assert.ErrorIs(t, err, errCorrupt)
		})
	}
}

func TestDecodeCheckout(t *testing.T) {
	c := domain.NewCheckout("ref")
	c.Payment.ScreenshotURL = "/uploads/p.png"

	data, err := encodeCheckout(c)
	require.NoError(t, err)

	got, err := decodeCheckout(data)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = decodeCheckout([]byte(`{"ref":"r","step":"shipping"}`))
	assert.ErrorIs(t, err, errCorrupt)

	_, err = decodeCheckout([]byte(`{"step":"details"}`))
	assert.ErrorIs(t, err, errCorrupt)
}
