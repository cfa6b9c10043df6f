package service

import (
	"errors"
	"fmt"
)

// ProductNotFoundError aborts sale/credit creation when a referenced product
// id does not exist at mutation time.
type ProductNotFoundError struct {
	Name string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Producto no encontrado: %s", e.Name)
}

// InsufficientStockError aborts sale creation when the requested quantity
// exceeds the product's stock at the moment of the decrement.
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stock insuficiente para %s", e.Product)
}

// ValidationError rejects malformed input before any store mutation begins.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

var (
	ErrSaleNotFound         = errors.New("venta no encontrada")
	ErrSaleAlreadyCancelled = errors.New("la venta ya está anulada")
	ErrStaffNotFound        = errors.New("colaborador no encontrado")
	ErrCreditNotFound       = errors.New("crédito no encontrado")
	ErrCreditAlreadyPaid    = errors.New("el crédito ya está pagado")
)
