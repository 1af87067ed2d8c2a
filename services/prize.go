package services

// Доли призового фонда по местам, в процентах. Первое место забирает
// остаток от целочисленного деления, чтобы сумма всегда сходилась с фондом.
var defaultPrizeShares = []int{50, 30, 20}

// SplitPrizePool делит фонд total на выплаты по долям shares (проценты).
// Возвращает срез той же длины, что shares; отрицательный или нулевой фонд
// даёт нулевые выплаты. Сумма выплат всегда равна total (при total > 0 и
// непустых shares) — остаток округления достаётся первой доле.
func SplitPrizePool(total int, shares []int) []int {
	payouts := make([]int, len(shares))
	if total <= 0 || len(shares) == 0 {
		return payouts
	}

	distributed := 0
	for i, share := range shares {
		if share < 0 {
			share = 0
		}
		payouts[i] = total * share / 100
		distributed += payouts[i]
	}
	payouts[0] += total - distributed
	return payouts
}
