package view

import "github.com/evergreenmedia/showdesk/internal/model"

// Totals is the additive fold over a filtered ledger set.
type Totals struct {
	TotalNet      float64 `json:"total_net"`
	EvergreenComp float64 `json:"evergreen_comp"`
	PartnerComp   float64 `json:"partner_comp"`
	AmountPaid    float64 `json:"amount_paid"`
	Payments      int     `json:"payments"`
}

// ComputeTotals sums the monetary columns of the given entries. Entries
// without a recorded payment contribute nothing to AmountPaid.
func ComputeTotals(entries []model.LedgerEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.TotalNet += e.TotalNet
		t.EvergreenComp += e.EvergreenComp
		t.PartnerComp += e.PartnerComp
		if e.AmountPaid != nil {
			t.AmountPaid += *e.AmountPaid
			if *e.AmountPaid > 0 {
				t.Payments++
			}
		}
	}
	return t
}

// EvergreenShare is the evergreen percentage of total net, 0 when the
// total is 0.
func (t Totals) EvergreenShare() float64 {
	return share(t.EvergreenComp, t.TotalNet)
}

// PartnerShare is the partner percentage of total net, 0 when the total
// is 0.
func (t Totals) PartnerShare() float64 {
	return share(t.PartnerComp, t.TotalNet)
}

func share(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
