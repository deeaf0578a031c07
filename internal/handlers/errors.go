package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BelezaPro/agenda-core/internal/httperr"
)

// mapAdmissionError distingue falhas de disponibilidade, de política e
// de entrada, para o chamador exibir mensagens diferentes ("escolha
// outro horário" vs. "esse mês ainda não abriu").
func mapAdmissionError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.Conflict(c, "slot_unavailable", "Horário indisponível.")
	case httperr.IsBusiness(err, "agenda_not_released"):
		httperr.Conflict(c, "agenda_not_released", "Agenda ainda não liberada para este mês.")
	case httperr.IsBusiness(err, "staff_not_eligible"):
		httperr.BadRequest(c, "staff_not_eligible", "Profissional não atende este serviço.")
	case httperr.IsBusiness(err, "staff_not_found"):
		httperr.BadRequest(c, "staff_not_found", "Profissional não encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "invalid_service_duration"):
		httperr.BadRequest(c, "invalid_service_duration", "Serviço com duração inválida.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "invalid_time"):
		httperr.BadRequest(c, "invalid_time", "Horário fora da grade de 10 minutos.")
	case httperr.IsBusiness(err, "establishment_not_found"):
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
	}
}

func mapAvailabilityError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "staff_not_eligible"):
		httperr.BadRequest(c, "staff_not_eligible", "Profissional não atende este serviço.")
	case httperr.IsBusiness(err, "staff_not_found"):
		httperr.BadRequest(c, "staff_not_found", "Profissional não encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "establishment_not_found"):
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
	default:
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
	}
}
