// Package estimate implements the deterministic coverage estimation engine.
// Estimation is advisory, not authoritative: the engine never fails, it
// degrades. Every applied step is recorded in the estimate's ordered
// deduction trace, which user-facing explanations are built from.
package estimate

import (
	"math"

	"claimlens/internal/domain"
	"claimlens/internal/intent"
)

// Estimate computes a coverage estimate for extracted bill text under a
// policy rule. It is a pure function: identical inputs yield identical
// results, including deduction ordering.
//
// When no line items are parseable it degrades to a total-only estimate; when
// no aggregate total is locatable either, it returns zero amounts flagged via
// the estimate's Status rather than an error.
func Estimate(billText string, rule *domain.PolicyRule, in intent.Intent) *domain.CoverageEstimate {
	_ = in // intent shapes the reply, not the arithmetic

	items := ParseLineItems(billText, rule.NonPayableKeywords)
	total, totalFound := ParseTotalAmount(billText)

	if len(items) == 0 {
		return totalOnly(billText, rule, total, totalFound)
	}

	if !totalFound {
		for _, it := range items {
			total += it.Amount
		}
	}

	est := &domain.CoverageEstimate{
		TimelineBucket: BucketTimeline(rule.ProcessingDescriptor),
		Status:         domain.EstimateOK,
	}

	// Step 1-2: exclude non-payable items from the payable base.
	var npSum float64
	for _, it := range items {
		if it.Category == domain.CategoryNonPayable {
			npSum += it.Amount
		}
	}
	base := math.Max(0, total-npSum)
	if npSum > 0 {
		est.Deductions = append(est.Deductions, domain.Deduction{
			Reason: "non-payable items excluded", Amount: round2(npSum),
		})
	}

	// Step 3: deductible, floored at zero.
	deducted := math.Min(base, rule.Deductible)
	base -= deducted
	if deducted > 0 {
		est.Deductions = append(est.Deductions, domain.Deduction{
			Reason: "policy deductible", Amount: round2(deducted),
		})
	}

	// Step 4: room-rent proportionate deduction. Whether the ratio extends
	// beyond room charges is genuinely ambiguous across insurers, so two
	// numbers are produced: conservative scales every item, optimistic
	// scales the room line only.
	consBase, optBase := base, base
	if room, ok := largestRoomItem(items); ok && !rule.RoomRentUnlimited() {
		daily, _ := roomDailyRate(room)
		if limit := *rule.RoomRentLimit; daily > limit && daily > 0 {
			ratio := math.Min(1, limit/daily)
			consBase = base * ratio
			optBase = math.Max(0, base-room.Amount*(1-ratio))
			// base can fall below the room amount after deductible and
			// non-payables; the conservative figure must not exceed it.
			if consBase > optBase {
				consBase = optBase
			}
			est.Deductions = append(est.Deductions, domain.Deduction{
				Reason: "room rent proportionate deduction", Amount: round2(room.Amount * (1 - ratio)),
			})
		}
	}

	finishEstimate(est, rule, consBase, optBase)
	return est
}

// totalOnly computes the degraded estimate used when no line items parse.
func totalOnly(billText string, rule *domain.PolicyRule, total float64, found bool) *domain.CoverageEstimate {
	if !found {
		return &domain.CoverageEstimate{
			TimelineBucket: domain.TimelineUnknown,
			Status:         domain.EstimateNoTotal,
		}
	}

	est := &domain.CoverageEstimate{
		TimelineBucket: BucketTimeline(rule.ProcessingDescriptor),
		Status:         domain.EstimateTotalOnly,
	}

	npSum, _ := SumNonPayables(billText, rule.NonPayableKeywords)
	base := math.Max(0, total-npSum)
	if npSum > 0 {
		est.Deductions = append(est.Deductions, domain.Deduction{
			Reason: "non-payable items excluded", Amount: round2(npSum),
		})
	}

	deducted := math.Min(base, rule.Deductible)
	base -= deducted
	if deducted > 0 {
		est.Deductions = append(est.Deductions, domain.Deduction{
			Reason: "policy deductible", Amount: round2(deducted),
		})
	}

	// No room analysis without line items: ratio is effectively 1.
	finishEstimate(est, rule, base, base)
	return est
}

// finishEstimate applies steps 5-7 (coverage percent, co-pay, annual limit)
// to both payable bases and records the trace entries.
func finishEstimate(est *domain.CoverageEstimate, rule *domain.PolicyRule, consBase, optBase float64) {
	cons := consBase * rule.CoveragePercent
	opt := optBase * rule.CoveragePercent
	if rule.CoveragePercent < 1 {
		est.Deductions = append(est.Deductions, domain.Deduction{
			Reason: "coverage limited by policy percentage", Amount: round2(optBase - opt),
		})
	}

	if rule.CoPayPercent > 0 {
		est.Deductions = append(est.Deductions, domain.Deduction{
			Reason: "co-payment borne by insured", Amount: round2(opt * rule.CoPayPercent),
		})
		cons *= 1 - rule.CoPayPercent
		opt *= 1 - rule.CoPayPercent
	}

	if rule.AnnualLimit > 0 && opt > rule.AnnualLimit {
		est.Deductions = append(est.Deductions, domain.Deduction{
			Reason: "annual limit cap", Amount: round2(opt - rule.AnnualLimit),
		})
		opt = rule.AnnualLimit
	}
	if rule.AnnualLimit > 0 && cons > rule.AnnualLimit {
		cons = rule.AnnualLimit
	}

	est.Conservative = round2(cons)
	est.Optimistic = round2(opt)
}

// RoomAnalysis summarizes how the billed room compares to the policy cap.
type RoomAnalysis struct {
	Found     bool
	RoomType  RoomType
	DailyRate float64
	Days      int
	Amount    float64
	Limit     *float64 // nil = unlimited
	OverLimit bool
}

// AnalyzeRoom inspects bill text for the dominant room charge and compares it
// against the plan's room-rent limit.
func AnalyzeRoom(billText string, rule *domain.PolicyRule) RoomAnalysis {
	items := ParseLineItems(billText, rule.NonPayableKeywords)
	room, ok := largestRoomItem(items)
	if !ok {
		return RoomAnalysis{}
	}
	daily, days := roomDailyRate(room)
	a := RoomAnalysis{
		Found:     true,
		RoomType:  DetectRoomType(room.Description),
		DailyRate: round2(daily),
		Days:      days,
		Amount:    room.Amount,
		Limit:     rule.RoomRentLimit,
	}
	if rule.RoomRentLimit != nil && daily > *rule.RoomRentLimit {
		a.OverLimit = true
	}
	return a
}

func largestRoomItem(items []domain.BillLineItem) (domain.BillLineItem, bool) {
	var best domain.BillLineItem
	found := false
	for _, it := range items {
		if it.Category != domain.CategoryRoom {
			continue
		}
		if !found || it.Amount > best.Amount {
			best = it
			found = true
		}
	}
	return best, found
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
