package dependency

import (
	"context"

	"github.com/sipstop/backend/internal/dto"
	"github.com/sipstop/backend/internal/entity"
)

type (
	Users interface {
		// GetAllUsers returns the full users snapshot.
		GetAllUsers(ctx context.Context) ([]entity.User, error)
		// GetUserById returns a user by its id.
		GetUserById(ctx context.Context, id int) (*entity.User, error)
		// GetUserByEmail returns a user by its lowercased email.
		GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
		// AddUser stores a new user and assigns the next free id.
		// The email must not be taken by an existing user.
		AddUser(ctx context.Context, u *entity.User) (int, error)
		// UpdateUser applies profile changes. Id and role are immutable.
		UpdateUser(ctx context.Context, id int, upd *entity.UserUpdate) (*entity.User, error)
	}

	Products interface {
		// GetAllProducts returns the full catalog snapshot.
		GetAllProducts(ctx context.Context) ([]entity.Product, error)
		// GetProductById returns a product by its id.
		GetProductById(ctx context.Context, id int) (*entity.Product, error)
		// AddProduct stores a new product and assigns the next free id.
		AddProduct(ctx context.Context, p *entity.Product) (int, error)
		// UpdateProduct replaces a product keeping its id.
		UpdateProduct(ctx context.Context, id int, p *entity.Product) (*entity.Product, error)
		// DeleteProductById removes a product from the catalog. Orders keep
		// their embedded snapshots of it.
		DeleteProductById(ctx context.Context, id int) error
	}

	Orders interface {
		// GetAllOrders returns the full orders snapshot, ascending by id.
		GetAllOrders(ctx context.Context) ([]entity.Order, error)
		// GetOrderById returns an order by its id.
		GetOrderById(ctx context.Context, id int) (*entity.Order, error)
		// AddOrder stores a new order: assigns the next free id, defaults the
		// date to now, generates an order number when absent and rejects
		// unknown statuses.
		AddOrder(ctx context.Context, o *entity.Order) (*entity.Order, error)
	}

	Mail interface {
		AddMail(ctx context.Context, req *entity.MailRequest) (int, error)
		GetAllUnsent(ctx context.Context) ([]entity.MailRequest, error)
		UpdateSent(ctx context.Context, id int) error
		AddError(ctx context.Context, id int, errMsg string) error
	}

	Repository interface {
		Users() Users
		Products() Products
		Orders() Orders
		Mail() Mail
		Close()
	}

	// Sender delivers a single rendered email. Implemented by the SendGrid
	// client; stubbed in tests.
	Sender interface {
		Send(ctx context.Context, req *entity.MailRequest) error
	}

	// Mailer queues and delivers transactional emails, best effort.
	Mailer interface {
		SendWelcome(ctx context.Context, to, name string) error
		SendOrderConfirmation(ctx context.Context, to, name string, details *dto.OrderConfirmation) error
		Start(ctx context.Context) error
		Stop() error
	}
)
