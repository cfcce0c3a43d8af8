package admin

import (
	"context"

	"github.com/melitabakes/bakery/internal/blob"
	"github.com/melitabakes/bakery/internal/db/models"
)

// AddHour inserts a business hour line and reloads the hours.
func (c *Controller) AddHour(ctx context.Context, form HourForm) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	form = form.trim()
	c.setDrafts(func(d *Drafts) { d.Hour, d.HourID = form, 0 })

	if err = check(form); err != nil {
		return err
	}

	if _, err = c.store.InsertHour(ctx, models.BusinessHour{Day: form.Day, Hours: form.Hours}); err != nil {
		return err //nolint:wrapcheck
	}

	c.setDrafts(func(d *Drafts) { d.Hour = HourForm{} })
	c.reload(ctx, Hours)

	return nil
}

// EditHour replaces line id and reloads the hours.
func (c *Controller) EditHour(ctx context.Context, id uint64, form HourForm) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	form = form.trim()
	c.setDrafts(func(d *Drafts) { d.Hour, d.HourID = form, id })

	if err = check(form); err != nil {
		return err
	}

	if err = c.store.UpdateHour(ctx, id, models.BusinessHour{Day: form.Day, Hours: form.Hours}); err != nil {
		return err //nolint:wrapcheck
	}

	c.setDrafts(func(d *Drafts) { d.Hour, d.HourID = HourForm{}, 0 })
	c.reload(ctx, Hours)

	return nil
}

// DeleteHour removes line id after confirmation.
func (c *Controller) DeleteHour(ctx context.Context, id uint64, confirmed bool) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	if !confirmed {
		return ErrConfirmationRequired
	}

	if err = c.store.DeleteHour(ctx, id); err != nil {
		return err //nolint:wrapcheck
	}

	c.reload(ctx, Hours)

	return nil
}

// AddTestimonial inserts a testimonial and reloads the testimonials.
func (c *Controller) AddTestimonial(ctx context.Context, form TestimonialForm) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	form = form.trim()
	c.setDrafts(func(d *Drafts) { d.Testimonial, d.TestimonialID = form, 0 })

	if err = check(form); err != nil {
		return err
	}

	_, err = c.store.InsertTestimonial(ctx, models.Testimonial{Name: form.Name, Comment: form.Comment})
	if err != nil {
		return err //nolint:wrapcheck
	}

	c.setDrafts(func(d *Drafts) { d.Testimonial = TestimonialForm{} })
	c.reload(ctx, Testimonials)

	return nil
}

// EditTestimonial replaces testimonial id and reloads the testimonials.
func (c *Controller) EditTestimonial(ctx context.Context, id uint64, form TestimonialForm) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	form = form.trim()
	c.setDrafts(func(d *Drafts) { d.Testimonial, d.TestimonialID = form, id })

	if err = check(form); err != nil {
		return err
	}

	err = c.store.UpdateTestimonial(ctx, id, models.Testimonial{Name: form.Name, Comment: form.Comment})
	if err != nil {
		return err //nolint:wrapcheck
	}

	c.setDrafts(func(d *Drafts) { d.Testimonial, d.TestimonialID = TestimonialForm{}, 0 })
	c.reload(ctx, Testimonials)

	return nil
}

// DeleteTestimonial removes testimonial id after confirmation.
func (c *Controller) DeleteTestimonial(ctx context.Context, id uint64, confirmed bool) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	if !confirmed {
		return ErrConfirmationRequired
	}

	if err = c.store.DeleteTestimonial(ctx, id); err != nil {
		return err //nolint:wrapcheck
	}

	c.reload(ctx, Testimonials)

	return nil
}

// SaveContactInfo upserts the singleton contact record and reloads it.
func (c *Controller) SaveContactInfo(ctx context.Context, form ContactForm) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	form = form.trim()
	c.setDrafts(func(d *Drafts) { d.Contact = form })

	if err = check(form); err != nil {
		return err
	}

	err = c.store.UpsertContactInfo(ctx, models.ContactInfo{
		ID:        models.SingletonID,
		Phone:     form.Phone,
		Instagram: form.Instagram,
		Address:   form.Address,
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	c.setDrafts(func(d *Drafts) { d.Contact = ContactForm{} })
	c.reload(ctx, Contact)

	return nil
}

// UploadLogo replaces the site logo and stores its URL in the site settings.
// Concurrent uploads from different sessions are not coordinated, the last write wins.
func (c *Controller) UploadLogo(ctx context.Context, file *blob.File) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	if file == nil || len(file.Data) == 0 {
		return ErrLogoRequired
	}

	obj, err := c.store.UploadLogo(ctx, *file)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if err = c.store.UpsertSiteSettings(ctx, models.SiteSettings{ID: models.SingletonID, LogoURL: obj.URL}); err != nil {
		return err //nolint:wrapcheck
	}

	c.reload(ctx, Settings)

	return nil
}
