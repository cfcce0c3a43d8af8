package admin

import (
	"context"

	"github.com/melitabakes/bakery/internal/blob"
	"github.com/melitabakes/bakery/internal/db/models"
)

// AddCake uploads the image, inserts the cake and reloads the cakes.
// Without an image it fails with ErrImageRequired before any remote call.
// When the insert fails the uploaded image is deleted again.
func (c *Controller) AddCake(ctx context.Context, form CakeForm, image *blob.File) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	form = form.trim()
	c.setDrafts(func(d *Drafts) { d.Cake, d.CakeID = form, 0 })

	if image == nil || len(image.Data) == 0 {
		return ErrImageRequired
	}

	price, err := form.price()
	if err != nil {
		return err
	}

	obj, err := c.store.UploadImage(ctx, c.store.CakeBucket(), *image)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = c.store.InsertCake(ctx, models.Cake{
		Name:        form.Name,
		Price:       price,
		Description: form.Description,
		ImageURL:    obj.URL,
	})
	if err != nil {
		c.compensate(ctx, obj, err)
		return err //nolint:wrapcheck
	}

	c.setDrafts(func(d *Drafts) { d.Cake, d.CakeID = CakeForm{}, 0 })
	c.reload(ctx, Cakes)

	return nil
}

// EditCake updates cake id. With a new image the image is uploaded and replaces
// the stored URL, otherwise the stored URL is kept.
func (c *Controller) EditCake(ctx context.Context, id uint64, form CakeForm, image *blob.File) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	form = form.trim()
	c.setDrafts(func(d *Drafts) { d.Cake, d.CakeID = form, id })

	price, err := form.price()
	if err != nil {
		return err
	}

	// an empty ImageURL keeps whatever image is stored, even one replaced by another session
	cake := models.Cake{
		Name:        form.Name,
		Price:       price,
		Description: form.Description,
	}

	var uploaded blob.Object

	if image != nil && len(image.Data) > 0 {
		if uploaded, err = c.store.UploadImage(ctx, c.store.CakeBucket(), *image); err != nil {
			return err //nolint:wrapcheck
		}

		cake.ImageURL = uploaded.URL
	}

	if err = c.store.UpdateCake(ctx, id, cake); err != nil {
		if !uploaded.IsZero() {
			c.compensate(ctx, uploaded, err)
		}

		return err //nolint:wrapcheck
	}

	c.setDrafts(func(d *Drafts) { d.Cake, d.CakeID = CakeForm{}, 0 })
	c.reload(ctx, Cakes)

	return nil
}

// DeleteCake removes cake id after confirmation. The image blob is kept.
func (c *Controller) DeleteCake(ctx context.Context, id uint64, confirmed bool) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	if !confirmed {
		return ErrConfirmationRequired
	}

	if err = c.store.DeleteCake(ctx, id); err != nil {
		return err //nolint:wrapcheck
	}

	c.reload(ctx, Cakes)

	return nil
}
