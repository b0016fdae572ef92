package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
)

// Image gallery operations. The invariant maintained here: at most one image
// per product is primary, and products.image_url always mirrors the primary
// image (or the first remaining image when the primary goes away).

func (s *ProductService) ListImages(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	if _, err := s.GetAny(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListImages(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list images")
	}
	return rows, nil
}

func (s *ProductService) AddImage(ctx context.Context, productID int64, input ImageInput) (*models.ProductImage, error) {
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image url is required")
	}
	if _, err := s.GetAny(ctx, productID); err != nil {
		return nil, err
	}

	var image *models.ProductImage
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.ListImages(ctx, productID)
		if err != nil {
			return err
		}
		// first image becomes primary regardless of the flag
		primary := input.IsPrimary || len(existing) == 0

		image = &models.ProductImage{
			ProductID:    productID,
			ImageURL:     strings.TrimSpace(input.ImageURL),
			AltText:      input.AltText,
			DisplayOrder: input.DisplayOrder,
			IsPrimary:    primary,
		}
		if err := repo.CreateImage(ctx, image); err != nil {
			return err
		}
		if primary {
			if err := repo.DemoteOtherImages(ctx, productID, image.ID); err != nil {
				return err
			}
			if err := repo.SetImageURL(ctx, productID, &image.ImageURL); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add image")
	}
	return image, nil
}

func (s *ProductService) UpdateImage(ctx context.Context, id int64, input ImageInput) (*models.ProductImage, error) {
	image, err := s.findImage(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if url := strings.TrimSpace(input.ImageURL); url != "" {
			image.ImageURL = url
		}
		image.AltText = input.AltText
		image.DisplayOrder = input.DisplayOrder

		promoting := input.IsPrimary && !image.IsPrimary
		image.IsPrimary = image.IsPrimary || input.IsPrimary

		if err := repo.UpdateImage(ctx, image); err != nil {
			return err
		}
		if promoting {
			if err := repo.DemoteOtherImages(ctx, image.ProductID, image.ID); err != nil {
				return err
			}
		}
		if image.IsPrimary {
			if err := repo.SetImageURL(ctx, image.ProductID, &image.ImageURL); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update image")
	}
	return image, nil
}

// DeleteImage removes a gallery entry. When the primary goes, the next image
// by display order is promoted so the storefront never loses its thumbnail
// while other images remain.
func (s *ProductService) DeleteImage(ctx context.Context, id int64) error {
	image, err := s.findImage(ctx, id)
	if err != nil {
		return err
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.DeleteImage(ctx, id); err != nil {
			return err
		}
		if !image.IsPrimary {
			return nil
		}

		remaining, err := repo.ListImages(ctx, image.ProductID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return repo.SetImageURL(ctx, image.ProductID, nil)
		}
		next := remaining[0]
		next.IsPrimary = true
		if err := repo.UpdateImage(ctx, &next); err != nil {
			return err
		}
		return repo.SetImageURL(ctx, image.ProductID, &next.ImageURL)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete image")
	}
	return nil
}

func (s *ProductService) ReorderImages(ctx context.Context, productID int64, orders []ImageOrder) error {
	if len(orders) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no image order provided")
	}
	if _, err := s.GetAny(ctx, productID); err != nil {
		return err
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, o := range orders {
			if err := repo.SetImageOrder(ctx, o.ID, o.DisplayOrder); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reorder images")
	}
	return nil
}

func (s *ProductService) findImage(ctx context.Context, id int64) (*models.ProductImage, error) {
	image, err := s.repo.FindImage(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load image")
	}
	return image, nil
}
