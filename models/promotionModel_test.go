package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountForPercentageClampedToCap(t *testing.T) {
	cap := 5000.0
	p := Promotion{
		DiscountType:      DiscountTypePercentage,
		DiscountValue:     10,
		MaxDiscountAmount: &cap,
	}

	discount, final := p.DiscountFor(100000)
	assert.Equal(t, 5000.0, discount)
	assert.Equal(t, 95000.0, final)

	// Below the cap the raw percentage applies.
	discount, final = p.DiscountFor(30000)
	assert.Equal(t, 3000.0, discount)
	assert.Equal(t, 27000.0, final)
}

func TestDiscountForPercentageWithoutCap(t *testing.T) {
	p := Promotion{DiscountType: DiscountTypePercentage, DiscountValue: 25}
	discount, final := p.DiscountFor(80000)
	assert.Equal(t, 20000.0, discount)
	assert.Equal(t, 60000.0, final)
}

func TestDiscountForFixedFloorsAtZero(t *testing.T) {
	p := Promotion{DiscountType: DiscountTypeFixed, DiscountValue: 50000}
	_, final := p.DiscountFor(30000)
	assert.Equal(t, 0.0, final)

	discount, final := p.DiscountFor(120000)
	assert.Equal(t, 50000.0, discount)
	assert.Equal(t, 70000.0, final)
}

func TestBeforeSaveExpiresPastPromotions(t *testing.T) {
	p := Promotion{
		Status:     PromotionStatusActive,
		ExpiryDate: time.Now().Add(-time.Hour),
	}
	require.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, PromotionStatusExpired, p.Status)

	fresh := Promotion{
		Status:     PromotionStatusActive,
		ExpiryDate: time.Now().Add(time.Hour),
	}
	require.NoError(t, fresh.BeforeSave(nil))
	assert.Equal(t, PromotionStatusActive, fresh.Status)
}
