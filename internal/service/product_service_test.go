package service_test

import (
	"context"
	"testing"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildProductSvc() (service.ProductService, *stubProductRepo, *stubCategoryRepo) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	return service.NewProductService(products, categories, nil), products, categories
}

func seedCategory(r *stubCategoryRepo, name string) *model.Category {
	c := &model.Category{ID: uuid.New(), Name: name, Active: true}
	r.categories[c.ID] = c
	return c
}

func intp(v int) *int { return &v }

func TestCreateProduct_AssignsSerialAndDefaults(t *testing.T) {
	svc, _, categories := buildProductSvc()
	snacks := seedCategory(categories, "Snacks")

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Popcorn Large",
		CategoryID:   snacks.ID.String(),
		Price:        dec(80),
		CostPrice:    dec(35),
		CurrentStock: intp(50),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SerialNo)
	assert.Equal(t, "piece", resp.Unit, "empty unit falls back to piece")
	assert.True(t, resp.Active)
	require.NotNil(t, resp.CurrentStock)
	assert.Equal(t, 50, *resp.CurrentStock)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	svc, _, _ := buildProductSvc()
	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Orphan Item",
		CategoryID: uuid.NewString(),
		Price:      dec(10),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeNotFound, apiCode(t, err))
}

func TestUpdateProduct_CannotTouchStock(t *testing.T) {
	svc, products, categories := buildProductSvc()
	snacks := seedCategory(categories, "Snacks")
	p := seedProduct(products, "Samosa", 15, 8, 0)
	p.CategoryID = snacks.ID

	newPrice := dec(18)
	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(dec(18)))

	// UpdateProductRequest has no stock field; the count survives every edit
	assert.Equal(t, 8, *products.products[p.ID].CurrentStock)
}

func TestDeleteAndReactivateProduct(t *testing.T) {
	svc, products, categories := buildProductSvc()
	snacks := seedCategory(categories, "Snacks")
	p := seedProduct(products, "Veg Puff", 25, 10, 0)
	p.CategoryID = snacks.ID

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.False(t, products.products[p.ID].Active)

	resp, err := svc.Reactivate(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.True(t, products.products[p.ID].Active)
}

func TestMenu_GroupsByCategoryAndMarksStock(t *testing.T) {
	svc, products, categories := buildProductSvc()
	snacks := seedCategory(categories, "Snacks")
	drinks := seedCategory(categories, "Beverages")

	popcorn := seedProduct(products, "Popcorn", 80, 50, 0)
	popcorn.Category, popcorn.CategoryID = snacks, snacks.ID
	soldOut := seedProduct(products, "Samosa", 15, 0, 0) // tracked, zero stock
	soldOut.Category, soldOut.CategoryID = snacks, snacks.ID
	tea := seedProduct(products, "Masala Tea", 20, -1, 0) // untracked, always in stock
	tea.Category, tea.CategoryID = drinks, drinks.ID
	hidden := seedProduct(products, "Retired Combo", 99, 5, 0)
	hidden.Category, hidden.CategoryID = snacks, snacks.ID
	hidden.Active = false

	menu, err := svc.Menu(context.Background())
	require.NoError(t, err)

	byCategory := map[string][]dto.MenuItem{}
	for _, sec := range menu.Sections {
		byCategory[sec.Category] = sec.Items
	}
	require.Len(t, byCategory["Snacks"], 2, "inactive products stay off the menu")
	require.Len(t, byCategory["Beverages"], 1)

	inStock := map[string]bool{}
	for _, items := range byCategory {
		for _, it := range items {
			inStock[it.Name] = it.InStock
		}
	}
	assert.True(t, inStock["Popcorn"])
	assert.False(t, inStock["Samosa"], "zero tracked stock shows as unavailable")
	assert.True(t, inStock["Masala Tea"], "untracked items are always available")
}
