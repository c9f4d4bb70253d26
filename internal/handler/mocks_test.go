package handler

import (
	"context"

	"hardwarehub-be/internal/cart"
	"hardwarehub-be/internal/catalog"
	"hardwarehub-be/internal/metrics"
	"hardwarehub-be/internal/order"
	"hardwarehub-be/internal/product"
	"hardwarehub-be/internal/report"
	"hardwarehub-be/internal/servicerequest"
	"hardwarehub-be/internal/user"

	"github.com/stretchr/testify/mock"
)

// --- users ---

type MockUsers struct{ mock.Mock }

func (m *MockUsers) Register(ctx context.Context, in user.RegisterInput) (*user.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUsers) Login(ctx context.Context, email, password string) (*user.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUsers) GetByID(ctx context.Context, id uint) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

// --- products ---

type MockProducts struct{ mock.Mock }

func (m *MockProducts) List(ctx context.Context, q product.ListQuery) (*product.ListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ListResult), args.Error(1)
}

func (m *MockProducts) Get(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProducts) Create(ctx context.Context, in product.NewProductInput) (*product.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProducts) Update(ctx context.Context, id uint, in product.UpdateProductInput) (*product.Product, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProducts) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProducts) Categories(ctx context.Context) ([]product.CategoryCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]product.CategoryCount), args.Error(1)
}

func (m *MockProducts) Suggestions(ctx context.Context, q string) ([]string, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProducts) LowStock(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProducts) InvalidateCache(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockProducts) CacheStats() metrics.CacheSnapshot {
	return m.Called().Get(0).(metrics.CacheSnapshot)
}

// --- cart ---

type MockCarts struct{ mock.Mock }

func (m *MockCarts) result(args mock.Arguments) (*cart.Cart, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCarts) GetCart(ctx context.Context, userID uint) (*cart.Cart, error) {
	return m.result(m.Called(ctx, userID))
}

func (m *MockCarts) AddItem(ctx context.Context, userID, productID uint, quantity int) (*cart.Cart, error) {
	return m.result(m.Called(ctx, userID, productID, quantity))
}

func (m *MockCarts) UpdateItem(ctx context.Context, userID, productID uint, quantity int) (*cart.Cart, error) {
	return m.result(m.Called(ctx, userID, productID, quantity))
}

func (m *MockCarts) RemoveItem(ctx context.Context, userID, productID uint) (*cart.Cart, error) {
	return m.result(m.Called(ctx, userID, productID))
}

func (m *MockCarts) Clear(ctx context.Context, userID uint) (*cart.Cart, error) {
	return m.result(m.Called(ctx, userID))
}

func (m *MockCarts) Pricing() cart.Pricing {
	return cart.DefaultPricing()
}

// --- orders ---

type MockOrders struct{ mock.Mock }

func (m *MockOrders) result(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrders) Create(ctx context.Context, userID uint, in order.CreateOrderInput) (*order.Order, error) {
	return m.result(m.Called(ctx, userID, in))
}

func (m *MockOrders) List(ctx context.Context, userID uint, isAdmin bool, f order.ListFilter) (*order.ListResult, error) {
	args := m.Called(ctx, userID, isAdmin, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ListResult), args.Error(1)
}

func (m *MockOrders) Get(ctx context.Context, userID uint, isAdmin bool, id uint) (*order.Order, error) {
	return m.result(m.Called(ctx, userID, isAdmin, id))
}

func (m *MockOrders) UpdateStatus(ctx context.Context, id uint, in order.UpdateStatusInput) (*order.Order, error) {
	return m.result(m.Called(ctx, id, in))
}

func (m *MockOrders) Cancel(ctx context.Context, userID uint, isAdmin bool, id uint, reason string) (*order.Order, error) {
	return m.result(m.Called(ctx, userID, isAdmin, id, reason))
}

func (m *MockOrders) UpdateTracking(ctx context.Context, id uint, in order.TrackingInput) (*order.Order, error) {
	return m.result(m.Called(ctx, id, in))
}

func (m *MockOrders) Stats(ctx context.Context) (*order.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Stats), args.Error(1)
}

// --- service requests ---

type MockRequests struct{ mock.Mock }

func (m *MockRequests) result(args mock.Arguments) (*servicerequest.ServiceRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*servicerequest.ServiceRequest), args.Error(1)
}

func (m *MockRequests) list(args mock.Arguments) (*servicerequest.ListResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*servicerequest.ListResult), args.Error(1)
}

func (m *MockRequests) Create(ctx context.Context, userID uint, in servicerequest.CreateInput) (*servicerequest.ServiceRequest, error) {
	return m.result(m.Called(ctx, userID, in))
}

func (m *MockRequests) ListAll(ctx context.Context, f servicerequest.ListFilter) (*servicerequest.ListResult, error) {
	return m.list(m.Called(ctx, f))
}

func (m *MockRequests) ListByUser(ctx context.Context, userID uint, f servicerequest.ListFilter) (*servicerequest.ListResult, error) {
	return m.list(m.Called(ctx, userID, f))
}

func (m *MockRequests) Get(ctx context.Context, userID uint, isAdmin bool, id uint) (*servicerequest.ServiceRequest, error) {
	return m.result(m.Called(ctx, userID, isAdmin, id))
}

func (m *MockRequests) Update(ctx context.Context, id uint, in servicerequest.UpdateInput) (*servicerequest.ServiceRequest, error) {
	return m.result(m.Called(ctx, id, in))
}

func (m *MockRequests) Cancel(ctx context.Context, userID uint, id uint) (*servicerequest.ServiceRequest, error) {
	return m.result(m.Called(ctx, userID, id))
}

func (m *MockRequests) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// --- catalog ---

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) entry(args mock.Arguments) (*catalog.Entry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Entry), args.Error(1)
}

func (m *MockCatalog) List(ctx context.Context, kind catalog.Kind, q catalog.ListQuery) ([]catalog.Entry, int, error) {
	args := m.Called(ctx, kind, q)
	return args.Get(0).([]catalog.Entry), args.Int(1), args.Error(2)
}

func (m *MockCatalog) Get(ctx context.Context, kind catalog.Kind, id uint, includeInactive bool) (*catalog.Entry, error) {
	return m.entry(m.Called(ctx, kind, id, includeInactive))
}

func (m *MockCatalog) Create(ctx context.Context, kind catalog.Kind, in catalog.CreateInput) (*catalog.Entry, error) {
	return m.entry(m.Called(ctx, kind, in))
}

func (m *MockCatalog) Update(ctx context.Context, kind catalog.Kind, id uint, in catalog.UpdateInput) (*catalog.Entry, error) {
	return m.entry(m.Called(ctx, kind, id, in))
}

func (m *MockCatalog) Delete(ctx context.Context, kind catalog.Kind, id uint) error {
	return m.Called(ctx, kind, id).Error(0)
}

// --- reports ---

type MockReports struct{ mock.Mock }

func (m *MockReports) Sales(ctx context.Context, q report.Query) (*report.SalesReport, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.SalesReport), args.Error(1)
}

func (m *MockReports) Services(ctx context.Context, q report.Query) (*report.ServiceReport, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.ServiceReport), args.Error(1)
}

func (m *MockReports) Dashboard(ctx context.Context, q report.Query) (*report.Dashboard, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Dashboard), args.Error(1)
}
