package shipping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	for _, m := range Methods() {
		got, err := ParseMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMethod("drone")
	assert.ErrorIs(t, err, ErrInvalidMethod)
	_, err = ParseMethod("")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestCalculate(t *testing.T) {
	q, err := Calculate(MethodHomeDelivery)
	require.NoError(t, err)
	assert.True(t, q.Fee.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, 2, q.EstimatedDays)

	q, err = Calculate(MethodShopee)
	require.NoError(t, err)
	assert.True(t, q.Fee.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, 3, q.EstimatedDays)
}

func TestDirectory_Stores(t *testing.T) {
	d := NewDirectory()

	assert.Len(t, d.Stores(MethodSevenEleven, StoreFilter{}), 4)
	assert.Len(t, d.Stores(MethodSevenEleven, StoreFilter{City: "新北市"}), 2)
	assert.Len(t, d.Stores(MethodShopee, StoreFilter{City: "新北市", District: "板橋區"}), 1)
	assert.Len(t, d.Stores(MethodSevenEleven, StoreFilter{Limit: 1}), 1)

	found := d.Stores(MethodSevenEleven, StoreFilter{Search: "西門"})
	require.Len(t, found, 1)
	assert.Equal(t, "711-002", found[0].ID)

	assert.Empty(t, d.Stores(MethodHomeDelivery, StoreFilter{}))
}

func TestDistricts(t *testing.T) {
	assert.Contains(t, Districts("台北市"), "大安區")
	assert.Empty(t, Districts("Atlantis"))
	assert.Contains(t, Cities(), "高雄市")
}
