package pricing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Tier описывает ранг на лестнице.
type Tier string

const (
	TierIron        Tier = "iron"
	TierBronze      Tier = "bronze"
	TierSilver      Tier = "silver"
	TierGold        Tier = "gold"
	TierPlatinum    Tier = "platinum"
	TierEmerald     Tier = "emerald"
	TierDiamond     Tier = "diamond"
	TierMaster      Tier = "master"
	TierGrandmaster Tier = "grandmaster"
	TierChallenger  Tier = "challenger"
)

const divisionsPerTier = 4

var divisionTiers = []Tier{
	TierIron, TierBronze, TierSilver, TierGold, TierPlatinum, TierEmerald, TierDiamond,
}

var apexTiers = []Tier{TierMaster, TierGrandmaster, TierChallenger}

// Цена одного шага внутри ранга с дивизионами, по рангу исходной позиции.
var divisionPrice = map[Tier]decimal.Decimal{
	TierIron:     decimal.NewFromInt(5),
	TierBronze:   decimal.NewFromInt(7),
	TierSilver:   decimal.NewFromInt(9),
	TierGold:     decimal.NewFromInt(12),
	TierPlatinum: decimal.NewFromInt(16),
	TierEmerald:  decimal.NewFromInt(22),
	TierDiamond:  decimal.NewFromInt(35),
}

// Цена переходов на вершине лестницы, по рангу исходной позиции.
var transitionPrice = map[Tier]decimal.Decimal{
	TierDiamond:     decimal.NewFromInt(120),
	TierMaster:      decimal.NewFromInt(250),
	TierGrandmaster: decimal.NewFromInt(400),
}

// Цена одной игры (md10) и одной победы (wins) по рангу.
var (
	gamePrice = map[Tier]decimal.Decimal{
		TierIron:        decimal.RequireFromString("3.00"),
		TierBronze:      decimal.RequireFromString("3.50"),
		TierSilver:      decimal.RequireFromString("4.00"),
		TierGold:        decimal.RequireFromString("5.00"),
		TierPlatinum:    decimal.RequireFromString("6.00"),
		TierEmerald:     decimal.RequireFromString("7.50"),
		TierDiamond:     decimal.RequireFromString("9.00"),
		TierMaster:      decimal.RequireFromString("12.00"),
		TierGrandmaster: decimal.RequireFromString("15.00"),
		TierChallenger:  decimal.RequireFromString("18.00"),
	}
	winPrice = map[Tier]decimal.Decimal{
		TierIron:        decimal.RequireFromString("2.50"),
		TierBronze:      decimal.RequireFromString("3.00"),
		TierSilver:      decimal.RequireFromString("3.50"),
		TierGold:        decimal.RequireFromString("4.50"),
		TierPlatinum:    decimal.RequireFromString("6.00"),
		TierEmerald:     decimal.RequireFromString("8.00"),
		TierDiamond:     decimal.RequireFromString("11.00"),
		TierMaster:      decimal.RequireFromString("16.00"),
		TierGrandmaster: decimal.RequireFromString("20.00"),
		TierChallenger:  decimal.RequireFromString("25.00"),
	}
)

var coachHourly = decimal.RequireFromString("20.00")

// Rank описывает позицию на лестнице: ранг и дивизион (4 = IV, 1 = I).
// У рангов Master, Grandmaster и Challenger дивизионов нет, Division игнорируется.
type Rank struct {
	Tier     Tier `json:"tier"`
	Division int  `json:"division,omitempty"`
}

func (r Rank) String() string {
	if r.isApex() {
		return string(r.Tier)
	}
	return fmt.Sprintf("%s %d", r.Tier, r.Division)
}

func (r Rank) isApex() bool {
	return slices.Contains(apexTiers, Tier(strings.ToLower(string(r.Tier))))
}

// position возвращает индекс ранга на лестнице: Iron IV = 0, Challenger = 30.
func (r Rank) position() (int, error) {
	tier := Tier(strings.ToLower(string(r.Tier)))
	for i, t := range divisionTiers {
		if t != tier {
			continue
		}
		if r.Division < 1 || r.Division > divisionsPerTier {
			return 0, fmt.Errorf("%w: %s division %d", ErrUnknownRank, tier, r.Division)
		}
		return i*divisionsPerTier + (divisionsPerTier - r.Division), nil
	}
	for i, t := range apexTiers {
		if t == tier {
			return len(divisionTiers)*divisionsPerTier + i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRank, r.Tier)
}

// tierAt возвращает ранг для позиции на лестнице.
func tierAt(pos int) Tier {
	if pos < len(divisionTiers)*divisionsPerTier {
		return divisionTiers[pos/divisionsPerTier]
	}
	return apexTiers[pos-len(divisionTiers)*divisionsPerTier]
}

// stepCost возвращает цену шага pos → pos+1.
func stepCost(pos int) decimal.Decimal {
	tier := tierAt(pos)
	lastDivision := len(divisionTiers)*divisionsPerTier - 1
	if pos >= lastDivision {
		return transitionPrice[tier]
	}
	return divisionPrice[tier]
}

func lookupTier(table map[Tier]decimal.Decimal, tier Tier) (decimal.Decimal, error) {
	p, ok := table[Tier(strings.ToLower(string(tier)))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownRank, tier)
	}
	return p, nil
}
