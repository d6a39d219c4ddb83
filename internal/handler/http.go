package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// UserIDHeader is set by the auth proxy in front of the service for signed-in shoppers.
const UserIDHeader = "X-User-ID"

type OrderService interface {
	CreateOrder(ctx context.Context, req entities.OrderRequest) (entities.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
}

type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, req entities.VerifyRequest) (entities.Order, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	orders   OrderService
	payments PaymentVerifier
	keyID    string
}

// NewHTTPHandler keyID is the public gateway key handed to the widget.
func NewHTTPHandler(logger *slog.Logger, orders OrderService, payments PaymentVerifier, keyID string) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: utils.NewValidator(),
		orders:   orders,
		payments: payments,
		keyID:    keyID,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders/{order_id}", h.GetOrderByID)
	r.Post("/payments/verify", h.VerifyPayment)
}

// CreateOrder оформляет заказ из корзины.
// @Summary      Оформить заказ
// @Description  Создаёт заказ в статусе PENDING. Суммы считаются по ценам каталога. Для онлайн оплаты создаётся платёжная сессия
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string              false  "Идентификатор авторизованного пользователя"
// @Param        request    body      CreateOrderRequest  true   "Корзина и данные покупателя"
// @Success      201  {object}  CreateOrderResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Товар не найден"
// @Failure      502  {object}  utils.ErrorResponse "Платёжный шлюз недоступен"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(w, r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(ctx, CreateOrderJSONToEntity(req, r.Header.Get(UserIDHeader)))
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to create order")
		return
	}

	utils.WriteJSON(w, CreateOrderEntityToJSON(order, h.keyID), http.StatusCreated)
}

// GetOrderByID возвращает заказ по ID.
// @Summary      Получить заказ по ID
// @Description  Возвращает информацию о заказе по его идентификатору
// @Tags         orders
// @Produce      json
// @Param        order_id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id} [get]
func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	if err := h.validate.Var(orderID, "required,uuid"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to get order")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// VerifyPayment проверяет подпись платежа и подтверждает заказ.
// @Summary      Подтвердить оплату
// @Description  Проверяет подпись платёжного шлюза. При успехе заказ переходит в CONFIRMED/COMPLETED. Повторный запрос с теми же данными безопасен
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      VerifyPaymentRequest  true  "Ответ платёжного виджета"
// @Success      200  {object}  VerifyPaymentResponse
// @Failure      400  {object}  utils.ErrorResponse "Неверная подпись или ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Заказ уже оплачен другим платежом или не может быть оплачен"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /payments/verify [post]
func (h *HTTPHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	status := http.StatusOK
	defer func() {
		verifyRequestDuration.Observe(time.Since(start).Seconds())
		verifyRequestTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	}()

	var req VerifyPaymentRequest
	if err := utils.DecodeBody(w, r, &req); err != nil {
		status = http.StatusBadRequest
		utils.WriteError(w, "invalid request body", status)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		status = http.StatusBadRequest
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.payments.VerifyPayment(ctx, VerifyPaymentJSONToEntity(req))
	if err != nil {
		status = h.writeServiceError(ctx, w, err, "failed to verify payment")
		return
	}

	utils.WriteJSON(w, VerifyPaymentEntityToJSON(order), status)
}

// writeServiceError maps domain errors to responses and returns the status written.
func (h *HTTPHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, msg string) int {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, slog.Any("error", err))
	}
	utils.WriteError(w, message, status)
	return status
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entities.ErrEmptyCart),
		errors.Is(err, entities.ErrInvalidPaymentMethod),
		errors.Is(err, entities.ErrInvalidQuantity),
		errors.Is(err, entities.ErrInvalidSignature):
		return http.StatusBadRequest, sentinelMessage(err)
	case errors.Is(err, entities.ErrOrderNotFound),
		errors.Is(err, entities.ErrProductNotFound),
		errors.Is(err, entities.ErrCategoryNotFound):
		return http.StatusNotFound, sentinelMessage(err)
	case errors.Is(err, entities.ErrPaymentConflict),
		errors.Is(err, entities.ErrOrderNotPayable):
		return http.StatusConflict, sentinelMessage(err)
	case errors.Is(err, entities.ErrPaymentSessionFailed):
		return http.StatusBadGateway, entities.ErrPaymentSessionFailed.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// sentinelMessage strips wrapping context (product ids and the like) from client messages.
func sentinelMessage(err error) string {
	for _, s := range []error{
		entities.ErrEmptyCart,
		entities.ErrInvalidPaymentMethod,
		entities.ErrInvalidQuantity,
		entities.ErrInvalidSignature,
		entities.ErrOrderNotFound,
		entities.ErrProductNotFound,
		entities.ErrCategoryNotFound,
		entities.ErrPaymentConflict,
		entities.ErrOrderNotPayable,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
