package catalog

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/storm-trade/swap-quote/quote"
	"github.com/storm-trade/swap-quote/request"
	"github.com/storm-trade/swap-quote/types"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrInvalidAsset    = errors.New("invalid asset")
	ErrDuplicateSymbol = errors.New("duplicate symbol")
)

type Catalog interface {
	GetEntries() []types.CatalogEntry
	GetAssets() []types.Asset
	GetSymbols() []string
	HasAssetBySymbol(symbol string) bool
	GetAssetBySymbol(symbol string) (types.Asset, bool)
	HasAssetByID(id string) bool
	GetAssetByID(id string) (types.Asset, bool)
	GetIconBySymbol(symbol string) (string, bool)
}

type assetCatalog struct {
	Entries []types.CatalogEntry

	// Maps
	EntriesMapBySymbol map[string]types.CatalogEntry
	EntriesMapByID     map[string]types.CatalogEntry
}

// Load reads a catalog document (JSON or YAML by extension) from path.
func Load(path string) (Catalog, error) {
	entries, err := request.Load[[]types.CatalogEntry](path)
	if err != nil {
		return nil, errors.Wrap(err, "load asset catalog")
	}

	c, err := New(entries)
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", path).Int("assets", len(entries)).Msg("Asset catalog loaded")

	return c, nil
}

// New indexes entries, keeping their order for listing. The catalog is
// immutable afterwards.
func New(entries []types.CatalogEntry) (Catalog, error) {
	c := &assetCatalog{
		Entries:            make([]types.CatalogEntry, 0, len(entries)),
		EntriesMapBySymbol: make(map[string]types.CatalogEntry, len(entries)),
		EntriesMapByID:     make(map[string]types.CatalogEntry, len(entries)),
	}

	for _, e := range entries {
		if err := validate(e.Asset); err != nil {
			return nil, errors.Wrapf(err, "catalog entry %q", e.ID)
		}
		if _, ok := c.EntriesMapBySymbol[e.Symbol]; ok {
			return nil, errors.Wrapf(ErrDuplicateSymbol, "catalog entry %q: %s", e.ID, e.Symbol)
		}
		if e.Name == "" {
			e.Name = e.Symbol
		}

		c.Entries = append(c.Entries, e)
		c.EntriesMapBySymbol[e.Symbol] = e
		if e.ID != "" {
			c.EntriesMapByID[e.ID] = e
		}
	}

	return c, nil
}

func validate(a types.Asset) error {
	if a.Symbol == "" {
		return errors.Wrap(ErrInvalidAsset, "missing symbol")
	}

	balance, err := quote.ParseDecimal(a.Balance)
	if err != nil {
		return errors.Wrapf(ErrInvalidAsset, "%s balance: %v", a.Symbol, err)
	}
	if balance.IsNegative() {
		return errors.Wrapf(ErrInvalidAsset, "%s balance is negative", a.Symbol)
	}

	value, err := quote.ParseDecimal(a.ReferenceValue)
	if err != nil {
		return errors.Wrapf(ErrInvalidAsset, "%s reference value: %v", a.Symbol, err)
	}
	if value.IsNegative() {
		return errors.Wrapf(ErrInvalidAsset, "%s reference value is negative", a.Symbol)
	}
	if value.IsZero() {
		log.Warn().Str("symbol", a.Symbol).Msg("Asset has zero reference value, quotes into it are unavailable")
	}

	return nil
}

func (c *assetCatalog) GetEntries() []types.CatalogEntry {
	return slices.Clone(c.Entries)
}

func (c *assetCatalog) GetAssets() []types.Asset {
	assets := make([]types.Asset, 0, len(c.Entries))
	for _, e := range c.Entries {
		assets = append(assets, e.Asset)
	}
	return assets
}

func (c *assetCatalog) GetSymbols() []string {
	symbols := maps.Keys(c.EntriesMapBySymbol)
	slices.Sort(symbols)
	return symbols
}

func (c *assetCatalog) HasAssetBySymbol(symbol string) bool {
	_, ok := c.EntriesMapBySymbol[symbol]
	return ok
}

func (c *assetCatalog) GetAssetBySymbol(symbol string) (types.Asset, bool) {
	e, ok := c.EntriesMapBySymbol[symbol]
	return e.Asset, ok
}

func (c *assetCatalog) HasAssetByID(id string) bool {
	_, ok := c.EntriesMapByID[id]
	return ok
}

func (c *assetCatalog) GetAssetByID(id string) (types.Asset, bool) {
	e, ok := c.EntriesMapByID[id]
	return e.Asset, ok
}

func (c *assetCatalog) GetIconBySymbol(symbol string) (string, bool) {
	e, ok := c.EntriesMapBySymbol[symbol]
	if !ok || e.Icon == "" {
		return "", false
	}
	return e.Icon, true
}
