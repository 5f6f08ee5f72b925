// FILE: pkg/pricing/pricing.go
package pricing

import (
	"time"

	"fitbook-be/internal/entity"
)

// Quote is the result of resolving discounts for a booking attempt.
type Quote struct {
	OriginalPrice int64
	FinalPrice    int64
	Applied       *entity.AppliedDiscount
}

// BestDiscount prices a booking made at bookingTime against an instance and
// its template. Rules from both are considered; a rule applies when the
// booking is made at least MinHoursBefore hours before the class starts.
// Among applicable rules the one with the lowest final price wins. The final
// price never goes below zero. Pure function, no I/O.
func BestDiscount(instance *entity.ClassInstance, template *entity.ClassTemplate, bookingTime time.Time) Quote {
	original := instance.EffectivePrice(template)
	quote := Quote{
		OriginalPrice: original,
		FinalPrice:    original,
	}

	hoursBefore := instance.StartTime.Sub(bookingTime).Hours()

	rules := make([]entity.DiscountRule, 0, len(instance.DiscountRules)+8)
	rules = append(rules, instance.DiscountRules...)
	if template != nil {
		rules = append(rules, template.DiscountRules...)
	}

	for _, rule := range rules {
		if hoursBefore < rule.MinHoursBefore {
			continue
		}
		price := applyRule(original, rule)
		if price < quote.FinalPrice {
			quote.FinalPrice = price
			quote.Applied = &entity.AppliedDiscount{
				Name:   rule.Name,
				Kind:   rule.Kind,
				Amount: rule.Amount,
			}
		}
	}

	return quote
}

func applyRule(price int64, rule entity.DiscountRule) int64 {
	var discounted int64
	switch rule.Kind {
	case entity.DiscountFixedAmount:
		discounted = price - rule.Amount
	case entity.DiscountPercentage:
		discounted = price - price*rule.Amount/100
	default:
		return price
	}
	if discounted < 0 {
		return 0
	}
	return discounted
}
