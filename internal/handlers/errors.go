package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
	"github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/lock"
	"github.com/BruksfildServices01/salon-manager/internal/payment"
	"github.com/BruksfildServices01/salon-manager/internal/storage"
	"github.com/BruksfildServices01/salon-manager/internal/store"
)

var businessMessages = map[string]string{
	"invalid_date":                  "Data inválida.",
	"invalid_time":                  "Horário inválido.",
	"invalid_time_range":            "O horário final deve ser depois do inicial.",
	"invalid_status":                "Status inválido.",
	"invalid_payment_status":        "Status de pagamento inválido.",
	"time_slot_unavailable":         "Conflito de horário.",
	"professional_inactive":         "Profissional inativo.",
	"appointment_already_completed": "Agendamento já concluído.",
	"appointment_already_canceled":  "Agendamento já cancelado.",
	"appointment_canceled":          "Agendamento cancelado não pode ser concluído.",
	"appointment_not_found":         "Agendamento não encontrado.",
	"professional_not_found":        "Profissional não encontrado.",
	"client_not_found":              "Cliente não encontrado.",
	"invalid_email":                 "E-mail inválido.",
	"invalid_email_domain":          "O domínio do e-mail informado não parece ser válido.",
	"invalid_phone":                 "Telefone inválido.",
	"invalid_timezone":              "Fuso horário inválido.",
}

// respondError maps domain and store errors onto the API error shape.
func respondError(c *gin.Context, err error) {
	var be httperr.BusinessError
	switch {
	case errors.As(err, &be):
		msg := businessMessages[be.Code]
		if msg == "" {
			msg = "Operação não permitida."
		}
		if strings.HasSuffix(be.Code, "_not_found") {
			httperr.NotFound(c, be.Code, msg)
			return
		}
		httperr.BadRequest(c, be.Code, msg)

	case errors.Is(err, gateway.ErrNotFound):
		httperr.NotFound(c, "not_found", "Registro não encontrado.")

	case errors.Is(err, stock.ErrInsufficientStock):
		httperr.Conflict(c, "insufficient_stock", "Estoque insuficiente.")
	case errors.Is(err, stock.ErrInvalidQuantity):
		httperr.BadRequest(c, "invalid_quantity", "Quantidade inválida.")
	case errors.Is(err, stock.ErrInvalidMovementType):
		httperr.BadRequest(c, "invalid_movement_type", "Tipo de movimentação inválido.")

	case errors.Is(err, lock.ErrBusy):
		httperr.Conflict(c, "record_busy", "Registro em uso, tente novamente.")

	case errors.Is(err, store.ErrSupplierInUse):
		httperr.Conflict(c, "supplier_in_use", "Fornecedor possui produtos vinculados.")
	case errors.Is(err, user.ErrEmailTaken):
		httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
	case errors.Is(err, storage.ErrObjectExists):
		httperr.Conflict(c, "object_exists", "Arquivo já existe.")

	case errors.Is(err, payment.ErrAlreadyPaid):
		httperr.Unprocessable(c, "already_paid", "Agendamento já pago.")
	case errors.Is(err, payment.ErrNothingToCharge):
		httperr.Unprocessable(c, "nothing_to_charge", "Agendamento sem valor a cobrar.")

	default:
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}
