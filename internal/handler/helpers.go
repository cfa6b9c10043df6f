package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/emerpc1992/horale/internal/apierror"
	"github.com/emerpc1992/horale/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError maps typed service errors onto HTTP statuses.
// Unknown errors become 500 without leaking internals.
func respondServiceError(c *gin.Context, err error) {
	var notFound *service.ProductNotFoundError
	var noStock *service.InsufficientStockError
	var invalid *service.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.As(err, &noStock):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrStaffNotFound),
		errors.Is(err, service.ErrCreditNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrSaleAlreadyCancelled),
		errors.Is(err, service.ErrCreditAlreadyPaid):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
