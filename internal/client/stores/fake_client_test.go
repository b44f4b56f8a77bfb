package stores

import (
	"context"
	"errors"
	"io"

	"github.com/msivanov/materialhub/internal/client/api"
	"github.com/msivanov/materialhub/internal/client/models"
)

var errFake = errors.New("fake failure")

// fakeClient implements api.Client with per-method hooks and records the
// last arguments of each call. Unset hooks return zero values.
type fakeClient struct {
	loginFn    func(models.Credentials) (*models.LoginResponse, error)
	registerFn func(models.Registration) (*models.RegisterResponse, error)
	logoutErr  error
	userFn     func() (*models.User, error)
	updateFn   func(models.ProfileUpdate) (*models.User, error)
	passwdErr  error

	listFn     func(models.Filters, int) (*models.Paginated[models.Material], error)
	getFn      func(int64) (*models.Material, error)
	createFn   func(meta models.CreateMaterial, filename string, file io.Reader, size int64, onProgress api.ProgressFunc) (*models.Material, error)
	favoriteFn func(int64) error
	downloadFn func(int64) (*models.DownloadResponse, error)

	createOrderFn func(models.CreatePayment) (*models.PaymentOrder, error)
	statusFn      func(string) (*models.PaymentStatus, error)

	lastCreds    models.Credentials
	lastFilters  models.Filters
	lastPage     int
	lastID       int64
	lastPayment  models.CreatePayment
	lastOrderID  string
	logoutCalls  int
	listCalls    int
	createCalls  int
	statusCalls  int
	categoriesFn func() ([]models.Category, error)
	tagsFn       func() ([]models.Tag, error)
}

func (f *fakeClient) Login(_ context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	f.lastCreds = creds
	if f.loginFn != nil {
		return f.loginFn(creds)
	}
	return &models.LoginResponse{}, nil
}

func (f *fakeClient) Register(_ context.Context, reg models.Registration) (*models.RegisterResponse, error) {
	if f.registerFn != nil {
		return f.registerFn(reg)
	}
	return &models.RegisterResponse{}, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeClient) Refresh(context.Context, string) (string, error) { return "", nil }

func (f *fakeClient) CurrentUser(context.Context) (*models.User, error) {
	if f.userFn != nil {
		return f.userFn()
	}
	return &models.User{ID: 1}, nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, update models.ProfileUpdate) (*models.User, error) {
	if f.updateFn != nil {
		return f.updateFn(update)
	}
	return &models.User{ID: 1}, nil
}

func (f *fakeClient) ChangePassword(context.Context, models.PasswordChange) error {
	return f.passwdErr
}

func (f *fakeClient) ListMaterials(_ context.Context, filters models.Filters, page int) (*models.Paginated[models.Material], error) {
	f.listCalls++
	f.lastFilters = filters
	f.lastPage = page
	if f.listFn != nil {
		return f.listFn(filters, page)
	}
	return &models.Paginated[models.Material]{}, nil
}

func (f *fakeClient) GetMaterial(_ context.Context, id int64) (*models.Material, error) {
	f.lastID = id
	if f.getFn != nil {
		return f.getFn(id)
	}
	return &models.Material{ID: id}, nil
}

func (f *fakeClient) CreateMaterial(_ context.Context, meta models.CreateMaterial, filename string, file io.Reader, size int64, onProgress api.ProgressFunc) (*models.Material, error) {
	f.createCalls++
	if f.createFn != nil {
		return f.createFn(meta, filename, file, size, onProgress)
	}
	return &models.Material{ID: 1, Title: meta.Title}, nil
}

func (f *fakeClient) FavoriteMaterial(_ context.Context, id int64) error {
	f.lastID = id
	if f.favoriteFn != nil {
		return f.favoriteFn(id)
	}
	return nil
}

func (f *fakeClient) RecordDownload(_ context.Context, id int64) (*models.DownloadResponse, error) {
	f.lastID = id
	if f.downloadFn != nil {
		return f.downloadFn(id)
	}
	return &models.DownloadResponse{DownloadURL: "https://example.com/f"}, nil
}

func (f *fakeClient) ListCategories(context.Context) ([]models.Category, error) {
	if f.categoriesFn != nil {
		return f.categoriesFn()
	}
	return nil, nil
}

func (f *fakeClient) ListTags(context.Context) ([]models.Tag, error) {
	if f.tagsFn != nil {
		return f.tagsFn()
	}
	return nil, nil
}

func (f *fakeClient) CreatePaymentOrder(_ context.Context, req models.CreatePayment) (*models.PaymentOrder, error) {
	f.lastPayment = req
	if f.createOrderFn != nil {
		return f.createOrderFn(req)
	}
	return &models.PaymentOrder{OrderID: "ord-1", Amount: req.Amount, PayURL: "https://pay.example.com/ord-1"}, nil
}

func (f *fakeClient) PaymentOrderStatus(_ context.Context, orderID string) (*models.PaymentStatus, error) {
	f.statusCalls++
	f.lastOrderID = orderID
	if f.statusFn != nil {
		return f.statusFn(orderID)
	}
	return &models.PaymentStatus{Status: "pending"}, nil
}

func (f *fakeClient) Close() error { return nil }
