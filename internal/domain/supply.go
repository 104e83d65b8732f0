package domain

const MaxSupply uint64 = 10000

type Supply struct {
	Total uint64 `json:"total_supply"`
	Max   uint64 `json:"max_supply"`
}

func NewSupply(total uint64) Supply {
	return Supply{Total: total, Max: MaxSupply}
}

func (s Supply) SoldOut() bool {
	return s.Total >= s.Max
}

func (s Supply) Remaining() uint64 {
	if s.SoldOut() {
		return 0
	}
	return s.Max - s.Total
}
