package admin

import (
	"context"
	"fmt"
	"testing"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockIdentity struct {
	userID string
	admin  bool
}

func (m *mockIdentity) UserID() string { return m.userID }
func (m *mockIdentity) IsAdmin() bool  { return m.admin }

type mockProductRepo struct {
	count   int
	recent  []domain.Product
	created *repository.ProductInput
	updated map[string]repository.ProductInput
	deleted []string
	err     error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{updated: make(map[string]repository.ProductInput)}
}

func (m *mockProductRepo) ListAll(context.Context) ([]domain.Product, error) { return nil, nil }

func (m *mockProductRepo) Get(context.Context, string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (m *mockProductRepo) Related(context.Context, string, string, int) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) Recent(context.Context, int) ([]domain.Product, error) {
	return m.recent, m.err
}

func (m *mockProductRepo) Insert(_ context.Context, input repository.ProductInput) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = &input
	return &domain.Product{ID: "p-new", Title: input.Title, AdminID: input.AdminID}, nil
}

func (m *mockProductRepo) Update(_ context.Context, id string, input repository.ProductInput) error {
	if m.err != nil {
		return m.err
	}
	m.updated[id] = input
	return nil
}

func (m *mockProductRepo) UpdateStock(context.Context, string, int) error { return nil }

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockProductRepo) Count(context.Context) (int, error) { return m.count, m.err }

type mockOrderRepo struct {
	count   int
	amounts []float64
	recent  []domain.Order
	err     error
}

func (m *mockOrderRepo) Insert(context.Context, repository.OrderInput) (*domain.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) InsertItems(context.Context, []repository.OrderItemInput) error { return nil }

func (m *mockOrderRepo) ListForUser(context.Context, string, int) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) Recent(context.Context, int) ([]domain.Order, error) {
	return m.recent, m.err
}

func (m *mockOrderRepo) Count(context.Context) (int, error) { return m.count, m.err }

func (m *mockOrderRepo) TotalAmounts(context.Context) ([]float64, error) {
	return m.amounts, m.err
}

type mockProfileRepo struct {
	count int
	err   error
}

func (m *mockProfileRepo) Get(context.Context, string) (*domain.UserProfile, error) {
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepo) Insert(context.Context, repository.ProfileInput) error { return nil }
func (m *mockProfileRepo) Count(context.Context) (int, error)                    { return m.count, m.err }

func adminService(identity *mockIdentity) (*Service, *mockProductRepo, *mockOrderRepo, *mockProfileRepo) {
	products := newMockProductRepo()
	orders := &mockOrderRepo{}
	profiles := &mockProfileRepo{}
	return NewService(identity, products, orders, profiles), products, orders, profiles
}

func validProductForm() ProductForm {
	return ProductForm{
		Title:       "Mango",
		Description: "Ripe mango",
		Price:       3.5,
		ImageURL:    "https://img.example/mango.jpg",
		Category:    "fruit",
		Stock:       10,
	}
}

func TestStats_RequiresAdmin(t *testing.T) {
	sut, _, _, _ := adminService(&mockIdentity{userID: "user-1", admin: false})

	_, err := sut.Stats(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAdmin)
}

func TestStats_RequiresSignIn(t *testing.T) {
	sut, _, _, _ := adminService(&mockIdentity{})

	_, err := sut.Stats(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotSignedIn)
}

func TestStats_AggregatesCountsAndRevenue(t *testing.T) {
	products := newMockProductRepo()
	products.count = 7
	orders := &mockOrderRepo{count: 3, amounts: []float64{10, 24.5, 5.5}}
	profiles := &mockProfileRepo{count: 11}
	sut := NewService(&mockIdentity{userID: "admin-1", admin: true}, products, orders, profiles)

	stats, err := sut.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.ProductCount)
	assert.Equal(t, 3, stats.OrderCount)
	assert.Equal(t, 11, stats.UserCount)
	assert.Equal(t, 40.0, stats.Revenue)
}

func TestStats_PropagatesRepoError(t *testing.T) {
	products := newMockProductRepo()
	products.err = fmt.Errorf("backend unavailable")
	sut := NewService(&mockIdentity{userID: "admin-1", admin: true}, products, &mockOrderRepo{}, &mockProfileRepo{})

	_, err := sut.Stats(context.Background())
	require.ErrorContains(t, err, "backend unavailable")
}

func TestRecentLists(t *testing.T) {
	products := newMockProductRepo()
	products.recent = []domain.Product{{ID: "p1"}, {ID: "p2"}}
	orders := &mockOrderRepo{recent: []domain.Order{{ID: "o1"}}}
	sut := NewService(&mockIdentity{userID: "admin-1", admin: true}, products, orders, &mockProfileRepo{})

	gotProducts, err := sut.RecentProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, gotProducts, 2)

	gotOrders, err := sut.RecentOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, gotOrders, 1)
}

func TestCreateProduct_StampsAdminID(t *testing.T) {
	sut, products, _, _ := adminService(&mockIdentity{userID: "admin-1", admin: true})

	created, err := sut.CreateProduct(context.Background(), validProductForm())
	require.NoError(t, err)
	assert.Equal(t, "p-new", created.ID)
	require.NotNil(t, products.created)
	assert.Equal(t, "admin-1", products.created.AdminID)
	assert.Equal(t, "Mango", products.created.Title)
}

func TestCreateProduct_Validation(t *testing.T) {
	sut, products, _, _ := adminService(&mockIdentity{userID: "admin-1", admin: true})

	form := validProductForm()
	form.Price = -1
	_, err := sut.CreateProduct(context.Background(), form)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Field)
	assert.Nil(t, products.created)
}

func TestCreateProduct_RequiresAdmin(t *testing.T) {
	sut, products, _, _ := adminService(&mockIdentity{userID: "user-1", admin: false})

	_, err := sut.CreateProduct(context.Background(), validProductForm())
	assert.ErrorIs(t, err, domain.ErrNotAdmin)
	assert.Nil(t, products.created)
}

func TestUpdateProduct_Success(t *testing.T) {
	sut, products, _, _ := adminService(&mockIdentity{userID: "admin-1", admin: true})

	form := validProductForm()
	form.Stock = 42
	require.NoError(t, sut.UpdateProduct(context.Background(), "p1", form))
	assert.Equal(t, 42, products.updated["p1"].Stock)
}

func TestDeleteProduct_Success(t *testing.T) {
	sut, products, _, _ := adminService(&mockIdentity{userID: "admin-1", admin: true})

	require.NoError(t, sut.DeleteProduct(context.Background(), "p1"))
	assert.Equal(t, []string{"p1"}, products.deleted)
}

func TestDeleteProduct_RequiresAdmin(t *testing.T) {
	sut, products, _, _ := adminService(&mockIdentity{userID: "user-1"})

	err := sut.DeleteProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrNotAdmin)
	assert.Empty(t, products.deleted)
}
