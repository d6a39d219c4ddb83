package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CatalogService interface {
	ListProducts(ctx context.Context, f entities.ProductFilter) (entities.ProductPage, error)
	GetProductBySlug(ctx context.Context, slug string) (entities.Product, error)
	ListCategories(ctx context.Context) ([]entities.Category, error)
}

type CatalogHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      CatalogService
}

func NewCatalogHandler(logger *slog.Logger, svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		logger:   logger.With(slog.String("handler", "catalog")),
		validate: utils.NewValidator(),
		svc:      svc,
	}
}

func (h *CatalogHandler) Init(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/products/{slug}", h.GetProductBySlug)
	r.Get("/categories", h.ListCategories)
}

// ListProducts возвращает страницу каталога.
// @Summary      Каталог товаров
// @Description  Активные товары с поиском по названию, фильтром по категориям и цене
// @Tags         catalog
// @Produce      json
// @Param        search      query     string  false  "Поиск по названию"
// @Param        categories  query     string  false  "ID категорий через запятую"
// @Param        min_price   query     int     false  "Минимальная цена"
// @Param        max_price   query     int     false  "Максимальная цена"
// @Param        page        query     int     false  "Номер страницы"  default(1)
// @Param        limit       query     int     false  "Товаров на странице"  default(12)
// @Success      200  {object}  ProductPage
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := parseProductsQuery(r.URL.Query())
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(q); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	page, err := h.svc.ListProducts(ctx, ProductsQueryToFilter(q))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, ProductPageEntityToJSON(page), http.StatusOK)
}

// GetProductBySlug возвращает карточку товара.
// @Summary      Получить товар
// @Tags         catalog
// @Produce      json
// @Param        slug   path      string  true  "Слаг товара"
// @Success      200  {object}  Product
// @Failure      404  {object}  utils.ErrorResponse "Товар не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /products/{slug} [get]
func (h *CatalogHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if err := h.validate.Var(slug, "required,max=200"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	product, err := h.svc.GetProductBySlug(ctx, slug)

	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "product not found", http.StatusNotFound)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err), slog.String("slug", slug))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusOK)
}

// ListCategories возвращает категории с количеством активных товаров.
// @Summary      Категории
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   Category
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.svc.ListCategories(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list categories", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res := make([]Category, 0, len(categories))
	for _, c := range categories {
		res = append(res, CategoryEntityToJSON(c))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}

var errBadQuery = errors.New("invalid query parameter")

func parseProductsQuery(v url.Values) (ProductsQuery, error) {
	q := ProductsQuery{Search: strings.TrimSpace(v.Get("search"))}

	if raw := v.Get("categories"); raw != "" {
		for id := range strings.SplitSeq(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				q.CategoryIDs = append(q.CategoryIDs, id)
			}
		}
	}

	var err error
	if q.MinPrice, err = optionalInt64(v, "min_price"); err != nil {
		return ProductsQuery{}, err
	}
	if q.MaxPrice, err = optionalInt64(v, "max_price"); err != nil {
		return ProductsQuery{}, err
	}
	if q.Page, err = optionalInt(v, "page"); err != nil {
		return ProductsQuery{}, err
	}
	if q.Limit, err = optionalInt(v, "limit"); err != nil {
		return ProductsQuery{}, err
	}
	return q, nil
}

func optionalInt64(v url.Values, key string) (*int64, error) {
	raw := v.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errBadQuery, key)
	}
	return &n, nil
}

func optionalInt(v url.Values, key string) (int, error) {
	raw := v.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errBadQuery, key)
	}
	return n, nil
}
