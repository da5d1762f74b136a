package rpc

import (
	"github.com/gxchain/gxwallet/prototype"
	"github.com/hashicorp/golang-lru"
)

const DefaultAssetCacheSize = 256

// AssetCache remembers assets by symbol and by id. Asset ids and precisions
// never change on chain, so entries only leave through eviction, Invalidate or Purge.
type AssetCache struct {
	cache *lru.Cache
}

func NewAssetCache(size int) (*AssetCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &AssetCache{cache: cache}, nil
}

func symbolKey(symbol string) string {
	return "symbol|" + symbol
}

func idKey(id prototype.ObjectID) string {
	return "id|" + id.String()
}

func (c *AssetCache) get(key string) (*prototype.Asset, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	asset, ok := v.(*prototype.Asset)
	return asset, ok
}

func (c *AssetCache) BySymbol(symbol string) (*prototype.Asset, bool) {
	return c.get(symbolKey(symbol))
}

func (c *AssetCache) ByID(id prototype.ObjectID) (*prototype.Asset, bool) {
	return c.get(idKey(id))
}

func (c *AssetCache) Add(asset *prototype.Asset) {
	if asset == nil {
		return
	}
	c.cache.Add(symbolKey(asset.Symbol), asset)
	c.cache.Add(idKey(asset.ID), asset)
}

// Invalidate drops both entries of the asset with the given symbol
func (c *AssetCache) Invalidate(symbol string) {
	if asset, ok := c.BySymbol(symbol); ok {
		c.cache.Remove(idKey(asset.ID))
	}
	c.cache.Remove(symbolKey(symbol))
}

func (c *AssetCache) Purge() {
	c.cache.Purge()
}

func (c *AssetCache) Len() int {
	return c.cache.Len()
}
