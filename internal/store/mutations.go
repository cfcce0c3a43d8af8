package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/melitabakes/bakery/internal/db/models"
)

// InsertCake creates a cake and returns it with its generated id.
func (c *Client) InsertCake(ctx context.Context, cake models.Cake) (models.Cake, error) {
	cake.ID = 0

	if err := c.db.WithContext(ctx).Create(&cake).Error; err != nil {
		return models.Cake{}, wrapDB("insert cake", err)
	}

	return cake, nil
}

// UpdateCake replaces name, price and description of cake id. The image URL is
// only written when cake.ImageURL is set, an empty one leaves the stored image untouched.
func (c *Client) UpdateCake(ctx context.Context, id uint64, cake models.Cake) error {
	fields := []string{"Name", "Price", "Description"}
	if cake.ImageURL != "" {
		fields = append(fields, "ImageURL")
	}

	return c.update(ctx, "update cake", &models.Cake{}, id, cake, fields...)
}

// DeleteCake removes cake id.
func (c *Client) DeleteCake(ctx context.Context, id uint64) error {
	return c.delete(ctx, "delete cake", &models.Cake{}, id)
}

// InsertHour creates a business hour line.
func (c *Client) InsertHour(ctx context.Context, hour models.BusinessHour) (models.BusinessHour, error) {
	hour.ID = 0

	if err := c.db.WithContext(ctx).Create(&hour).Error; err != nil {
		return models.BusinessHour{}, wrapDB("insert hour", err)
	}

	return hour, nil
}

// UpdateHour replaces day and hours of line id.
func (c *Client) UpdateHour(ctx context.Context, id uint64, hour models.BusinessHour) error {
	return c.update(ctx, "update hour", &models.BusinessHour{}, id, hour, "Day", "Hours")
}

// DeleteHour removes line id.
func (c *Client) DeleteHour(ctx context.Context, id uint64) error {
	return c.delete(ctx, "delete hour", &models.BusinessHour{}, id)
}

// InsertTestimonial creates a testimonial.
func (c *Client) InsertTestimonial(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	t.ID = 0

	if err := c.db.WithContext(ctx).Create(&t).Error; err != nil {
		return models.Testimonial{}, wrapDB("insert testimonial", err)
	}

	return t, nil
}

// UpdateTestimonial replaces name and comment of testimonial id.
func (c *Client) UpdateTestimonial(ctx context.Context, id uint64, t models.Testimonial) error {
	return c.update(ctx, "update testimonial", &models.Testimonial{}, id, t, "Name", "Comment")
}

// DeleteTestimonial removes testimonial id.
func (c *Client) DeleteTestimonial(ctx context.Context, id uint64) error {
	return c.delete(ctx, "delete testimonial", &models.Testimonial{}, id)
}

// UpsertContactInfo writes or replaces the singleton contact row.
func (c *Client) UpsertContactInfo(ctx context.Context, contact models.ContactInfo) error {
	contact.ID = models.SingletonID

	if err := c.upsert(ctx, &contact); err != nil {
		return wrapDB("upsert contact", err)
	}

	return nil
}

// UpsertSiteSettings writes or replaces the singleton settings row.
func (c *Client) UpsertSiteSettings(ctx context.Context, settings models.SiteSettings) error {
	settings.ID = models.SingletonID

	if err := c.upsert(ctx, &settings); err != nil {
		return wrapDB("upsert site settings", err)
	}

	return nil
}

func (c *Client) upsert(ctx context.Context, value any) error {
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(value).Error
}

// update writes the selected fields of values into row id of model.
// MySQL reports zero affected rows for unchanged values, so existence is checked separately.
func (c *Client) update(ctx context.Context, op string, model any, id uint64, values any, fields ...string) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(model).Where("id = ?", id).Take(model).Error; err != nil {
			return wrapDB(op, err)
		}

		if err := tx.Model(model).Select(fields).Updates(values).Error; err != nil {
			return wrapDB(op, err)
		}

		return nil
	})
}

func (c *Client) delete(ctx context.Context, op string, model any, id uint64) error {
	result := c.db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return wrapDB(op, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", op, id, ErrNotFound)
	}

	return nil
}
