package api

import (
	"context"
	"io"

	"github.com/msivanov/materialhub/internal/client/models"
)

// ProgressFunc receives upload progress as a 0-100 percentage.
type ProgressFunc func(percent int)

// Client is the API contract the stores are written against.
type Client interface {
	// Auth & profile.
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, reg models.Registration) (*models.RegisterResponse, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, change models.PasswordChange) error

	// Materials.
	ListMaterials(ctx context.Context, filters models.Filters, page int) (*models.Paginated[models.Material], error)
	GetMaterial(ctx context.Context, id int64) (*models.Material, error)
	CreateMaterial(ctx context.Context, meta models.CreateMaterial, filename string, file io.Reader, size int64, onProgress ProgressFunc) (*models.Material, error)
	FavoriteMaterial(ctx context.Context, id int64) error
	RecordDownload(ctx context.Context, id int64) (*models.DownloadResponse, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTags(ctx context.Context) ([]models.Tag, error)

	// Payments.
	CreatePaymentOrder(ctx context.Context, req models.CreatePayment) (*models.PaymentOrder, error)
	PaymentOrderStatus(ctx context.Context, orderID string) (*models.PaymentStatus, error)

	Close() error
}

// TokenSource supplies and stores the session token pair. The HTTP client
// reads it on every request and writes it back after a transparent refresh.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(token string) error
	Clear() error
}
