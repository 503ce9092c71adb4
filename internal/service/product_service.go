package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// menuCacheKey holds the rendered customer menu; any catalog write busts it.
const (
	menuCacheKey = "menu:v1"
	menuCacheTTL = 5 * time.Minute
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)

	// Menu renders the customer-facing menu grouped by category, served from
	// Redis when warm.
	Menu(ctx context.Context) (*dto.MenuResponse, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	rdb        *redis.Client
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, rdb *redis.Client) ProductService {
	return &productService{products: products, categories: categories, rdb: rdb}
}

func (s *productService) invalidateMenu(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, menuCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("menu cache invalidation failed")
	}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	catID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apierror.Validation("invalid category_id")
	}
	if _, err := s.categories.FindByID(ctx, catID); err != nil {
		return nil, apierror.NotFound("category not found")
	}

	serial, err := s.products.NextSerialNo(ctx)
	if err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = "piece"
	}
	p := &model.Product{
		SerialNo:      serial,
		Name:          req.Name,
		CategoryID:    catID,
		Unit:          unit,
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		CurrentStock:  req.CurrentStock,
		MinStockAlert: req.MinStockAlert,
		Active:        true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateMenu(ctx)
	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.Validation("invalid category_id")
		}
		if _, err := s.categories.FindByID(ctx, catID); err != nil {
			return nil, apierror.NotFound("category not found")
		}
		p.CategoryID = catID
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.MinStockAlert != nil {
		p.MinStockAlert = req.MinStockAlert
	}
	// CurrentStock is deliberately absent here: stock only changes through
	// bills, purchases and audited adjustments.

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateMenu(ctx)
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return apierror.NotFound("product not found")
	}
	if err := s.products.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	if err := s.products.Reactivate(ctx, id); err != nil {
		return nil, err
	}
	p.Active = true
	s.invalidateMenu(ctx)
	return productToResponse(p), nil
}

func (s *productService) Menu(ctx context.Context) (*dto.MenuResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, menuCacheKey).Result(); err == nil {
			var menu dto.MenuResponse
			if json.Unmarshal([]byte(cached), &menu) == nil {
				return &menu, nil
			}
		}
	}

	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	sections := map[string]*dto.MenuSection{}
	var order []string
	for i := range products {
		p := &products[i]
		catName := "Other"
		if p.Category != nil {
			catName = p.Category.Name
		}
		sec, ok := sections[catName]
		if !ok {
			sec = &dto.MenuSection{Category: catName}
			sections[catName] = sec
			order = append(order, catName)
		}
		inStock := true
		if p.Tracked() && *p.CurrentStock <= 0 {
			inStock = false
		}
		sec.Items = append(sec.Items, dto.MenuItem{
			ID:      p.ID.String(),
			Name:    p.Name,
			Unit:    p.Unit,
			Price:   p.Price,
			InStock: inStock,
		})
	}

	menu := &dto.MenuResponse{}
	for _, name := range order {
		menu.Sections = append(menu.Sections, *sections[name])
	}

	if s.rdb != nil {
		if body, err := json.Marshal(menu); err == nil {
			if err := s.rdb.Set(ctx, menuCacheKey, body, menuCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("menu cache write failed")
			}
		}
	}
	return menu, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	category := ""
	if p.Category != nil {
		category = p.Category.Name
	}
	return &dto.ProductResponse{
		ID:            p.ID.String(),
		SerialNo:      p.SerialNo,
		Name:          p.Name,
		CategoryID:    p.CategoryID.String(),
		Category:      category,
		Unit:          p.Unit,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		CurrentStock:  p.CurrentStock,
		MinStockAlert: p.MinStockAlert,
		Active:        p.Active,
	}
}
