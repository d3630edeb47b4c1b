package types

// Asset is a tradable unit as shown on the swap screen. Balance and
// ReferenceValue stay decimal strings until a computation needs them.
type Asset struct {
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	Symbol         string `json:"symbol" yaml:"symbol"`
	Balance        string `json:"balance" yaml:"balance"`
	ReferenceValue string `json:"usdValue" yaml:"usdValue"`
}

// DisplayName falls back to the symbol for catalog records without a name.
func (a Asset) DisplayName() string {
	if a.Name == "" {
		return a.Symbol
	}
	return a.Name
}

type CatalogEntry struct {
	ID    string `json:"id" yaml:"id"`
	Asset `yaml:",inline"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

type SelectionTarget int

const (
	Source SelectionTarget = iota
	Destination
)

func (t SelectionTarget) String() string {
	switch t {
	case Source:
		return "source"
	case Destination:
		return "destination"
	}
	return "unknown"
}

// Phase of the asset picker. Closing lasts until the close transition reports completion.
type Phase int

const (
	Idle Phase = iota
	Picking
	Closing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Picking:
		return "picking"
	case Closing:
		return "closing"
	}
	return "unknown"
}

type SwapState struct {
	Source      Asset  `json:"source"`
	Destination Asset  `json:"destination"`
	Amount      string `json:"amount"`
}
