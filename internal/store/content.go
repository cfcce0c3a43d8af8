package store

import (
	"context"

	"github.com/melitabakes/bakery/internal/db/models"
)

// ListCakes returns all cakes, newest first.
func (c *Client) ListCakes(ctx context.Context) ([]models.Cake, error) {
	var cakes []models.Cake

	if err := c.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&cakes).Error; err != nil {
		return nil, wrapDB("list cakes", err)
	}

	return cakes, nil
}

// ListHours returns the business hours by id ascending.
func (c *Client) ListHours(ctx context.Context) ([]models.BusinessHour, error) {
	var hours []models.BusinessHour

	if err := c.db.WithContext(ctx).Order("id ASC").Find(&hours).Error; err != nil {
		return nil, wrapDB("list hours", err)
	}

	return hours, nil
}

// ListTestimonials returns all testimonials, newest first.
func (c *Client) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial

	err := c.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&testimonials).Error
	if err != nil {
		return nil, wrapDB("list testimonials", err)
	}

	return testimonials, nil
}

// ListUsers returns the registered users, newest first.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	if err := c.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, wrapDB("list users", err)
	}

	return users, nil
}

// GetContactInfo returns the singleton contact row or ErrNotFound.
func (c *Client) GetContactInfo(ctx context.Context) (models.ContactInfo, error) {
	var contact models.ContactInfo

	if err := c.db.WithContext(ctx).First(&contact, models.SingletonID).Error; err != nil {
		return models.ContactInfo{}, wrapDB("get contact", err)
	}

	return contact, nil
}

// GetSiteSettings returns the singleton settings row or ErrNotFound.
func (c *Client) GetSiteSettings(ctx context.Context) (models.SiteSettings, error) {
	var settings models.SiteSettings

	if err := c.db.WithContext(ctx).First(&settings, models.SingletonID).Error; err != nil {
		return models.SiteSettings{}, wrapDB("get site settings", err)
	}

	return settings, nil
}
