// FILE: internal/service/booking_policy.go
package service

// Cancellation policy. All amounts are minor units.
//
// A booking with an active free-cancel privilege refunds in full with no
// fee. Otherwise the gross refund is 100% when cancelled at least 12 hours
// before the class and 50% after that, minus a flat fee tiered on the
// charged amount.

const freeCancelRefundHours = 12.0

type refundQuote struct {
	Gross int64
	Fee   int64
	Net   int64
}

func refundPercent(hoursUntilClass float64) int64 {
	if hoursUntilClass >= freeCancelRefundHours {
		return 100
	}
	return 50
}

func cancellationFee(charged int64) int64 {
	switch {
	case charged < 1000:
		return 50
	case charged <= 2000:
		return 100
	default:
		return 200
	}
}

func computeRefund(charged int64, hoursUntilClass float64, freeCancel bool) refundQuote {
	if charged <= 0 {
		return refundQuote{}
	}
	if freeCancel {
		return refundQuote{Gross: charged, Net: charged}
	}

	gross := charged * refundPercent(hoursUntilClass) / 100
	fee := cancellationFee(charged)
	net := gross - fee
	if net < 0 {
		net = 0
	}
	return refundQuote{Gross: gross, Fee: fee, Net: net}
}

// fullRefund is the business-initiated path: no consumer penalty.
func fullRefund(charged int64) refundQuote {
	if charged <= 0 {
		return refundQuote{}
	}
	return refundQuote{Gross: charged, Net: charged}
}
