package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRefundLateCancelWithSmallAmount(t *testing.T) {
	// 900 late: 50% gross = 450, fee tier <1000 = 50, net 400.
	quote := computeRefund(900, 6, false)

	assert.Equal(t, int64(450), quote.Gross)
	assert.Equal(t, int64(50), quote.Fee)
	assert.Equal(t, int64(400), quote.Net)
}

func TestComputeRefundOnTimeCancelMidTier(t *testing.T) {
	// 1500 on time: 100% gross = 1500, fee tier 1000-2000 = 100, net 1400.
	quote := computeRefund(1500, 24, false)

	assert.Equal(t, int64(1500), quote.Gross)
	assert.Equal(t, int64(100), quote.Fee)
	assert.Equal(t, int64(1400), quote.Net)
}

func TestComputeRefundTopTierFee(t *testing.T) {
	quote := computeRefund(5000, 48, false)

	assert.Equal(t, int64(200), quote.Fee)
	assert.Equal(t, int64(4800), quote.Net)
}

func TestComputeRefundFreeCancelSkipsFee(t *testing.T) {
	quote := computeRefund(900, 1, true)

	assert.Equal(t, int64(900), quote.Net)
	assert.Equal(t, int64(0), quote.Fee)
}

func TestComputeRefundFlooredAtZero(t *testing.T) {
	// 80 late: gross 40, fee 50, net floors at 0.
	quote := computeRefund(80, 2, false)

	assert.Equal(t, int64(0), quote.Net)
}

func TestComputeRefundZeroCharge(t *testing.T) {
	quote := computeRefund(0, 24, false)

	assert.Equal(t, int64(0), quote.Net)
	assert.Equal(t, int64(0), quote.Fee)
}

func TestRefundPercentBoundary(t *testing.T) {
	assert.Equal(t, int64(100), refundPercent(12))
	assert.Equal(t, int64(50), refundPercent(11.99))
}
