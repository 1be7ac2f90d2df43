package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ziiziikids/ziizii-backend/api/responses"
	"github.com/ziiziikids/ziizii-backend/api/validators"
	productsvc "github.com/ziiziikids/ziizii-backend/internal/products"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
	"github.com/ziiziikids/ziizii-backend/pkg/logger"
	"github.com/ziiziikids/ziizii-backend/pkg/pagination"
)

// ListProducts handles the filtered, sorted, paginated catalog listing.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseListInput(r *http.Request) (*productsvc.ListProductsInput, error) {
	q := r.URL.Query()

	input := productsvc.ListProductsInput{
		Filters: productsvc.ProductListFilters{
			Query: strings.TrimSpace(q.Get("q")),
		},
		SortBy:    productsvc.SortByCreated,
		SortOrder: productsvc.SortDesc,
	}

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		input.Filters.CategorySlug = &v
	}
	if v := strings.TrimSpace(q.Get("brand")); v != "" {
		input.Filters.BrandSlug = &v
	}
	if v := strings.TrimSpace(q.Get("size")); v != "" {
		input.Filters.Size = &v
	}
	if v := strings.TrimSpace(q.Get("color")); v != "" {
		input.Filters.Color = &v
	}

	minPrice, err := validators.ParseQueryDecimal(r, "min_price")
	if err != nil {
		return nil, err
	}
	input.Filters.MinPrice = minPrice

	maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
	if err != nil {
		return nil, err
	}
	input.Filters.MaxPrice = maxPrice

	onSale, err := validators.ParseQueryBool(r, "on_sale")
	if err != nil {
		return nil, err
	}
	input.Filters.OnSale = onSale

	featured, err := validators.ParseQueryBool(r, "featured")
	if err != nil {
		return nil, err
	}
	input.Filters.Featured = featured

	if v := strings.TrimSpace(q.Get("sort_by")); v != "" {
		input.SortBy = productsvc.SortBy(v)
	}
	if v := strings.TrimSpace(q.Get("sort_order")); v != "" {
		input.SortOrder = productsvc.SortOrder(v)
	}

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return nil, err
	}
	pageSize, err := validators.ParseQueryInt(r, "page_size", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
	if err != nil {
		return nil, err
	}
	input.Pagination = pagination.Params{Page: page, PageSize: pageSize}

	return &input, nil
}

type createProductRequest struct {
	Name          string                 `json:"name" validate:"required"`
	Description   string                 `json:"description"`
	SKU           string                 `json:"sku" validate:"required"`
	Price         decimal.Decimal        `json:"price" validate:"required"`
	OriginalPrice *decimal.Decimal       `json:"original_price,omitempty"`
	CategoryID    string                 `json:"category_id" validate:"required,uuid"`
	BrandID       string                 `json:"brand_id" validate:"required,uuid"`
	IsFeatured    bool                   `json:"is_featured"`
	IsOnSale      bool                   `json:"is_on_sale"`
	Images        []createImageRequest   `json:"images,omitempty" validate:"omitempty,dive"`
	Variants      []createVariantRequest `json:"variants" validate:"required,min=1,dive"`
}

type createImageRequest struct {
	URL       string `json:"url" validate:"required"`
	IsMain    bool   `json:"is_main"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

type createVariantRequest struct {
	Size              *string         `json:"size,omitempty"`
	Color             *string         `json:"color,omitempty"`
	Price             decimal.Decimal `json:"price" validate:"required"`
	StockQuantity     int             `json:"stock_quantity" validate:"min=0"`
	LowStockThreshold *int            `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	SKU               string          `json:"sku" validate:"required"`
}

type updateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty" validate:"omitempty,uuid"`
	BrandID       *string          `json:"brand_id,omitempty" validate:"omitempty,uuid"`
	IsActive      *bool            `json:"is_active,omitempty"`
	IsFeatured    *bool            `json:"is_featured,omitempty"`
	IsOnSale      *bool            `json:"is_on_sale,omitempty"`
}

func (r createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	categoryID, err := uuid.Parse(r.CategoryID)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
	}
	brandID, err := uuid.Parse(r.BrandID)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid brand id")
	}

	input := productsvc.CreateProductInput{
		Name:          r.Name,
		Description:   r.Description,
		SKU:           r.SKU,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		CategoryID:    categoryID,
		BrandID:       brandID,
		IsFeatured:    r.IsFeatured,
		IsOnSale:      r.IsOnSale,
	}
	for _, image := range r.Images {
		input.Images = append(input.Images, productsvc.ImageInput{
			URL:       image.URL,
			IsMain:    image.IsMain,
			SortOrder: image.SortOrder,
		})
	}
	for _, variant := range r.Variants {
		input.Variants = append(input.Variants, productsvc.VariantInput{
			Size:              variant.Size,
			Color:             variant.Color,
			Price:             variant.Price,
			StockQuantity:     variant.StockQuantity,
			LowStockThreshold: variant.LowStockThreshold,
			SKU:               variant.SKU,
		})
	}
	return input, nil
}

func (r updateProductRequest) toUpdateInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		IsActive:      r.IsActive,
		IsFeatured:    r.IsFeatured,
		IsOnSale:      r.IsOnSale,
	}
	if r.CategoryID != nil {
		id, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
		}
		input.CategoryID = &id
	}
	if r.BrandID != nil {
		id, err := uuid.Parse(*r.BrandID)
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid brand id")
		}
		input.BrandID = &id
	}
	return input, nil
}
