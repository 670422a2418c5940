package catalog

import (
	"net/url"
	"testing"

	"lamp_catalog/internal/domain"
	"lamp_catalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateDescription(t *testing.T) {
	f := setup(t)

	lamp, err := UpdateDescription(f.db, f.lamp1.ID, "New description")
	require.NoError(t, err)
	assert.Equal(t, "New description", lamp.Description)

	stored, err := Get(f.db, f.lamp1.ID)
	require.NoError(t, err)
	assert.Equal(t, "New description", stored.Description)

	_, err = UpdateDescription(f.db, 9999, "x")
	assert.ErrorIs(t, err, ErrLampNotFound)
}

func TestApplyForm(t *testing.T) {
	t.Run("Valid fields are applied", func(t *testing.T) {
		lamp := testutil.TieredLamp("TEST001")
		ignored := ApplyForm(&lamp, url.Values{
			"brand":                    {"Lumen"},
			"has_dimmer":               {"false"},
			"power_watts":              {"75"},
			"price":                    {"1234.567"},
			"lamp_type":                {"ceiling"},
			"height_cm":                {""},
			"large_wholesale_price":    {"700"},
			"large_wholesale_quantity": {"20"},
		})
		assert.Empty(t, ignored)
		assert.Equal(t, "Lumen", lamp.Brand)
		assert.False(t, lamp.HasDimmer)
		assert.Equal(t, uint(75), lamp.PowerWatts)
		assert.Equal(t, "1234.57", lamp.Price.StringFixed(2))
		assert.Equal(t, domain.KindCeiling, lamp.LampType)
		assert.Nil(t, lamp.HeightCM)
		assert.Equal(t, "700", lamp.LargeWholesalePrice.Decimal.String())
		assert.Equal(t, uint(20), *lamp.LargeWholesaleQuantity)
		assert.Equal(t, "TEST001", lamp.Article)
	})

	t.Run("Unparsable numbers keep the prior value", func(t *testing.T) {
		lamp := testutil.TieredLamp("TEST001")
		ignored := ApplyForm(&lamp, url.Values{
			"power_watts":              {"bright"},
			"price":                    {"-5"},
			"small_wholesale_quantity": {"five"},
			"lamp_type":                {"desk"},
			"color":                    {"Green"},
		})
		assert.ElementsMatch(t, []string{"power_watts", "price", "small_wholesale_quantity", "lamp_type"}, ignored)
		assert.Equal(t, uint(60), lamp.PowerWatts)
		assert.Equal(t, "1000", lamp.Price.String())
		assert.Equal(t, uint(5), *lamp.SmallWholesaleQuantity)
		assert.Equal(t, domain.KindTable, lamp.LampType)
		assert.Equal(t, "Green", lamp.Color)
	})

	t.Run("Prices beyond the column range are ignored", func(t *testing.T) {
		lamp := testutil.TieredLamp("TEST001")
		ignored := ApplyForm(&lamp, url.Values{
			"price":                 {"1e12"},
			"small_wholesale_price": {"99999999.995"},
			"large_wholesale_price": {"99999999.99"},
		})
		assert.ElementsMatch(t, []string{"price", "small_wholesale_price"}, ignored)
		assert.Equal(t, "1000", lamp.Price.String())
		assert.Equal(t, "900", lamp.SmallWholesalePrice.Decimal.String())
		assert.Equal(t, "99999999.99", lamp.LargeWholesalePrice.Decimal.StringFixed(2))
	})

	t.Run("Checkbox value", func(t *testing.T) {
		lamp := testutil.TieredLamp("TEST001")
		lamp.HasDimmer = false
		ApplyForm(&lamp, url.Values{"has_dimmer": {"on"}})
		assert.True(t, lamp.HasDimmer)
	})

	t.Run("Unticked checkbox on a full form clears the dimmer", func(t *testing.T) {
		lamp := testutil.TieredLamp("TEST001")
		ApplyForm(&lamp, url.Values{"article": {"TEST001"}, "brand": {"Lumen"}})
		assert.False(t, lamp.HasDimmer)

		lamp = testutil.TieredLamp("TEST001")
		ApplyForm(&lamp, url.Values{"price": {"950"}})
		assert.True(t, lamp.HasDimmer)
	})
}

func TestSaveKeepsArticleUnique(t *testing.T) {
	f := setup(t)

	lamp := f.lamp1
	lamp.Article = f.lamp2.Article
	assert.ErrorIs(t, Save(f.db, &lamp), ErrDuplicateArticle)

	lamp.Article = "TEST999"
	lamp.Brand = "Renamed"
	require.NoError(t, Save(f.db, &lamp))

	stored, err := Get(f.db, f.lamp1.ID)
	require.NoError(t, err)
	assert.Equal(t, "TEST999", stored.Article)
	assert.Equal(t, "Renamed", stored.Brand)
}
