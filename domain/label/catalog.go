package label

import (
	"context"
	"errors"
	"strconv"

	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/prasetyowira/tyrelabel/infrastructure/cache"
	"github.com/prasetyowira/tyrelabel/infrastructure/logger"
)

// ErrNotFound is returned when no label is registered for an EPREL id
var ErrNotFound = errors.New(constant.ErrLabelNotFound)

// Repository defines the interface for label definition persistence
type Repository interface {
	Upsert(ctx context.Context, fields Fields) error
	FindByEPRELID(ctx context.Context, eprelID int) (*Fields, error)
}

// Catalog keeps label definitions keyed by their EPREL id so they can be
// rendered again later.
type Catalog struct {
	repo  Repository
	cache *cache.NamespaceLRU[Fields]
}

// NewCatalog creates a new catalog service
func NewCatalog(repo Repository, lru *cache.NamespaceLRU[Fields]) *Catalog {
	return &Catalog{
		repo:  repo,
		cache: lru,
	}
}

// Register validates and stores a label definition. The stored definition is
// the normalized form, so grades are kept upper-case.
func (c *Catalog) Register(ctx context.Context, fields Fields) (Record, error) {
	rec, err := normalize(ctx, fields)
	if err != nil {
		return Record{}, err
	}

	normalized := rec.Fields()
	if err := c.repo.Upsert(ctx, normalized); err != nil {
		c.cache.Invalidate(constant.LabelNamespace, cacheKey(normalized.EPRELID))
		logger.CtxError(ctx, "Failed to store label definition", logger.LoggerInfo{
			ContextFunction: constant.CtxRegister,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeCatalogStore,
				Message: err.Error(),
				Type:    constant.ErrTypeCatalog,
			},
			Data: map[string]interface{}{
				constant.DataEPRELID: normalized.EPRELID,
			},
		})
		return Record{}, err
	}

	c.cache.Set(constant.LabelNamespace, cacheKey(normalized.EPRELID), normalized)

	logger.CtxInfo(ctx, "Label definition registered", logger.LoggerInfo{
		ContextFunction: constant.CtxRegister,
		Data: map[string]interface{}{
			constant.DataEPRELID:  normalized.EPRELID,
			constant.DataSupplier: normalized.Supplier,
		},
	})

	return rec, nil
}

// Lookup returns the definition registered for eprelID
func (c *Catalog) Lookup(ctx context.Context, eprelID int) (Fields, error) {
	if fields, found := c.cache.Get(constant.LabelNamespace, cacheKey(eprelID)); found {
		logger.CtxDebug(ctx, "Label definition retrieved from cache", logger.LoggerInfo{
			ContextFunction: constant.CtxLookup,
			Data: map[string]interface{}{
				constant.DataEPRELID:  eprelID,
				constant.DataCacheHit: true,
			},
		})
		return fields, nil
	}

	fields, err := c.repo.FindByEPRELID(ctx, eprelID)
	if err != nil {
		code := constant.ErrCodeCatalogLookup
		if errors.Is(err, ErrNotFound) {
			code = constant.ErrCodeCatalogNotFound
		}
		logger.CtxWarn(ctx, "Failed to find label definition", logger.LoggerInfo{
			ContextFunction: constant.CtxLookup,
			Error: &logger.CustomError{
				Code:    code,
				Message: err.Error(),
				Type:    constant.ErrTypeCatalog,
			},
			Data: map[string]interface{}{
				constant.DataEPRELID: eprelID,
			},
		})
		return Fields{}, err
	}

	c.cache.Set(constant.LabelNamespace, cacheKey(eprelID), *fields)

	return *fields, nil
}

func cacheKey(eprelID int) string {
	return strconv.Itoa(eprelID)
}
