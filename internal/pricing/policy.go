// Package pricing holds the room cost, discount and staff compensation rules.
// Everything here is a pure function of a RateTable and its arguments.
package pricing

import (
	"fmt"
	"time"

	"hotel_ops/internal/domain"
)

// StandardBaseSalary is the yearly base salary used when a caller has none of its own.
const StandardBaseSalary = 30000.0

const (
	TierJunior   = "junior"
	TierSenior   = "senior"
	TierManager  = "manager"
	TierDirector = "director"
)

type RateTable struct {
	Bonuses         map[string]float64
	PeakSurcharge   float64 // fraction, 0.20 == 20%
	LoyaltyDiscount float64 // fraction, 0.10 == 10%
}

func DefaultRateTable() RateTable {
	return RateTable{
		Bonuses: map[string]float64{
			TierJunior:   0,
			TierSenior:   15000,
			TierManager:  30000,
			TierDirector: 50000,
		},
		PeakSurcharge:   0.20,
		LoyaltyDiscount: 0.10,
	}
}

type Policy struct {
	rates RateTable
}

// New copies rt, so later changes to the caller's map are not observed.
func New(rt RateTable) *Policy {
	b := make(map[string]float64, len(rt.Bonuses))
	for k, v := range rt.Bonuses {
		b[k] = v
	}
	rt.Bonuses = b
	return &Policy{rates: rt}
}

// RoomCost = nightlyRate * nights * (1 + surcharge when peak).
func (p *Policy) RoomCost(nightlyRate float64, nights int, peak bool) (float64, error) {
	if nights <= 0 {
		return 0, fmt.Errorf("nights must be positive, got %d: %w", nights, domain.ErrInvalidArgument)
	}
	mult := 1.0
	if peak {
		mult += p.rates.PeakSurcharge
	}
	return nightlyRate * float64(nights) * mult, nil
}

func (p *Policy) LoyaltyDiscount(amount float64, loyalMember bool) float64 {
	if !loyalMember {
		return amount
	}
	return amount * (1 - p.rates.LoyaltyDiscount)
}

// StaffCompensation adds the tier bonus. Unknown tiers earn no bonus.
func (p *Policy) StaffCompensation(baseSalary float64, tier string) float64 {
	return baseSalary + p.rates.Bonuses[tier]
}

// Bonus reports the configured bonus for tier.
func (p *Policy) Bonus(tier string) (float64, bool) {
	b, ok := p.rates.Bonuses[tier]
	return b, ok
}

// Quote is a priced stay before and after the loyalty discount.
type Quote struct {
	NightlyRate float64 `json:"nightly_rate"`
	Nights      int     `json:"nights"`
	PeakSeason  bool    `json:"peak_season"`
	LoyalMember bool    `json:"loyal_member"`
	Subtotal    float64 `json:"subtotal"`
	Total       float64 `json:"total"`
}

func (p *Policy) Quote(nightlyRate float64, nights int, peak, loyal bool) (Quote, error) {
	sub, err := p.RoomCost(nightlyRate, nights, peak)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		NightlyRate: nightlyRate,
		Nights:      nights,
		PeakSeason:  peak,
		LoyalMember: loyal,
		Subtotal:    sub,
		Total:       p.LoyaltyDiscount(sub, loyal),
	}, nil
}

// Season decides whether a date falls in the peak season.
type Season struct {
	PeakMonths []time.Month
}

func (s Season) IsPeak(t time.Time) bool {
	m := t.Month()
	for _, pm := range s.PeakMonths {
		if pm == m {
			return true
		}
	}
	return false
}
