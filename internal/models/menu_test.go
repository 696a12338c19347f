package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItemAvailable(t *testing.T) {
	tests := []struct {
		name string
		val  *bool
		want bool
	}{
		{"unset counts as available", nil, true},
		{"explicit true", Bool(true), true},
		{"explicit false hides", Bool(false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := MenuItem{IsAvailable: tt.val}
			assert.Equal(t, tt.want, item.Available())
		})
	}
}

func TestMenuActive(t *testing.T) {
	assert.True(t, (&Menu{}).Active())
	assert.False(t, (&Menu{IsActive: Bool(false)}).Active())
}

func TestMenuWithItemsJSONShape(t *testing.T) {
	composite := MenuWithItems{
		Menu:  Menu{ID: 3, RestaurantID: 1, Name: "Lunch", IsActive: Bool(true)},
		Items: []MenuItem{{ID: 9, MenuID: 3, Name: "Soup", Price: "20.00", Category: "Starter", IsAvailable: Bool(true)}},
	}

	raw, err := json.Marshal(composite)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Lunch", decoded["name"])
	assert.Equal(t, float64(1), decoded["restaurantId"])
	items := decoded["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, float64(3), item["menuId"])
	assert.Equal(t, true, item["isAvailable"])
	assert.Equal(t, false, item["isChefsPick"])
	assert.Nil(t, item["imageUrl"])
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	assert.Equal(t, "x", *StringPtr("x"))
}
