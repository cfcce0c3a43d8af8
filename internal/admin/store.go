package admin

import (
	"context"

	"github.com/melitabakes/bakery/internal/blob"
	"github.com/melitabakes/bakery/internal/db/models"
)

// Reader is the read side of the content store. The public page only needs this.
type Reader interface {
	ListCakes(ctx context.Context) ([]models.Cake, error)
	ListHours(ctx context.Context) ([]models.BusinessHour, error)
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	GetContactInfo(ctx context.Context) (models.ContactInfo, error)
	GetSiteSettings(ctx context.Context) (models.SiteSettings, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Store is everything the controller needs from the content store.
// *store.Client implements it.
type Store interface {
	Reader

	AuthenticateAdmin(ctx context.Context, email, password string) (*models.Admin, error)

	CakeBucket() string
	UploadImage(ctx context.Context, bucket string, file blob.File) (blob.Object, error)
	UploadLogo(ctx context.Context, file blob.File) (blob.Object, error)
	DeleteImage(ctx context.Context, obj blob.Object) error

	InsertCake(ctx context.Context, cake models.Cake) (models.Cake, error)
	UpdateCake(ctx context.Context, id uint64, cake models.Cake) error
	DeleteCake(ctx context.Context, id uint64) error

	InsertHour(ctx context.Context, hour models.BusinessHour) (models.BusinessHour, error)
	UpdateHour(ctx context.Context, id uint64, hour models.BusinessHour) error
	DeleteHour(ctx context.Context, id uint64) error

	InsertTestimonial(ctx context.Context, t models.Testimonial) (models.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id uint64, t models.Testimonial) error
	DeleteTestimonial(ctx context.Context, id uint64) error

	UpsertContactInfo(ctx context.Context, contact models.ContactInfo) error
	UpsertSiteSettings(ctx context.Context, settings models.SiteSettings) error
}
