package pricing

import (
	"testing"
	"time"

	"fitbook-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func instanceStartingIn(hours float64) *entity.ClassInstance {
	return &entity.ClassInstance{
		StartTime: time.Now().Add(time.Duration(hours * float64(time.Hour))),
	}
}

func TestBestDiscountPicksLowestFinalPrice(t *testing.T) {
	instance := instanceStartingIn(72)
	instance.DiscountRules = []entity.DiscountRule{
		{Name: "early-bird-20", Kind: entity.DiscountFixedAmount, Amount: 20, MinHoursBefore: 24},
		{Name: "early-bird-30", Kind: entity.DiscountPercentage, Amount: 30, MinHoursBefore: 48},
	}
	template := &entity.ClassTemplate{BasePrice: 100}

	quote := BestDiscount(instance, template, time.Now())

	// 100-20=80 vs 100-30%=70, the 70 wins.
	assert.Equal(t, int64(100), quote.OriginalPrice)
	assert.Equal(t, int64(70), quote.FinalPrice)
	if assert.NotNil(t, quote.Applied) {
		assert.Equal(t, "early-bird-30", quote.Applied.Name)
	}
}

func TestBestDiscountSkipsRulesWhoseWindowPassed(t *testing.T) {
	instance := instanceStartingIn(6)
	instance.DiscountRules = []entity.DiscountRule{
		{Name: "early-bird", Kind: entity.DiscountFixedAmount, Amount: 50, MinHoursBefore: 24},
	}
	template := &entity.ClassTemplate{BasePrice: 100}

	quote := BestDiscount(instance, template, time.Now())

	assert.Equal(t, int64(100), quote.FinalPrice)
	assert.Nil(t, quote.Applied)
}

func TestBestDiscountClampsAtZero(t *testing.T) {
	instance := instanceStartingIn(72)
	instance.DiscountRules = []entity.DiscountRule{
		{Name: "huge", Kind: entity.DiscountFixedAmount, Amount: 500, MinHoursBefore: 0},
	}
	template := &entity.ClassTemplate{BasePrice: 100}

	quote := BestDiscount(instance, template, time.Now())

	assert.Equal(t, int64(0), quote.FinalPrice)
}

func TestBestDiscountUsesInstancePriceOverride(t *testing.T) {
	override := int64(200)
	instance := instanceStartingIn(72)
	instance.PriceOverride = &override
	template := &entity.ClassTemplate{
		BasePrice: 100,
		DiscountRules: []entity.DiscountRule{
			{Name: "template-rule", Kind: entity.DiscountPercentage, Amount: 10, MinHoursBefore: 0},
		},
	}

	quote := BestDiscount(instance, template, time.Now())

	assert.Equal(t, int64(200), quote.OriginalPrice)
	assert.Equal(t, int64(180), quote.FinalPrice)
}

func TestBestDiscountMergesInstanceAndTemplateRules(t *testing.T) {
	instance := instanceStartingIn(72)
	instance.DiscountRules = []entity.DiscountRule{
		{Name: "instance-rule", Kind: entity.DiscountFixedAmount, Amount: 10, MinHoursBefore: 0},
	}
	template := &entity.ClassTemplate{
		BasePrice: 100,
		DiscountRules: []entity.DiscountRule{
			{Name: "template-rule", Kind: entity.DiscountFixedAmount, Amount: 25, MinHoursBefore: 0},
		},
	}

	quote := BestDiscount(instance, template, time.Now())

	assert.Equal(t, int64(75), quote.FinalPrice)
	if assert.NotNil(t, quote.Applied) {
		assert.Equal(t, "template-rule", quote.Applied.Name)
	}
}
