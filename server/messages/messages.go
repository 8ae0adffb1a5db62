// Package messages turns errors of the core packages into the Portuguese messages shown to users.
package messages

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/topi314/church-tools/server/attendance"
	"github.com/topi314/church-tools/server/auth"
	"github.com/topi314/church-tools/server/checkin"
	"github.com/topi314/church-tools/server/community"
)

const (
	SessionExpired     = "Sua sessão expirou. Faça login novamente."
	InvalidCredentials = "E-mail ou senha inválidos."
	EventNotFound      = "Evento não encontrado."
	NotFound           = "Registro não encontrado."
	PersonNotFound     = "Pessoa não encontrada na lista de presença."
	InvalidCode        = "QR Code inválido. Verifique o código e tente novamente."
	EventCanceled      = "Este evento foi cancelado."
	NothingToConfirm   = "Nenhum evento para confirmar."
	InProgress         = "Aguarde, a operação anterior ainda está em andamento."
	Closed             = "A tela foi fechada."
	LoadFailed         = "Não foi possível carregar os dados. Tente novamente."
	ConfirmFailed      = "Não foi possível salvar as presenças. Tente novamente."
	CheckinFailed      = "Não foi possível realizar o check-in. Escaneie o código novamente."
	Unavailable        = "Não foi possível conectar ao servidor. Verifique sua conexão."
	Internal           = "Ocorreu um erro inesperado."
)

// Op names the user action an error happened in. It picks the generic message for
// errors without a more specific one.
type Op int

const (
	OpLoad Op = iota
	OpConfirm
	OpCheckin
)

// Error is an error as shown to the user.
type Error struct {
	Status  int
	Message string
}

// For maps err to an HTTP status and a user facing message.
func For(op Op, err error) Error {
	switch {
	case errors.Is(err, community.ErrSessionExpired), errors.Is(err, auth.ErrNoToken):
		return Error{Status: http.StatusUnauthorized, Message: SessionExpired}
	case errors.Is(err, community.ErrInvalidCredentials):
		return Error{Status: http.StatusUnauthorized, Message: InvalidCredentials}
	case errors.Is(err, community.ErrEventNotFound):
		return Error{Status: http.StatusNotFound, Message: EventNotFound}
	case errors.Is(err, attendance.ErrPersonNotFound):
		return Error{Status: http.StatusNotFound, Message: PersonNotFound}
	case errors.Is(err, community.ErrNotFound):
		return Error{Status: http.StatusNotFound, Message: NotFound}
	case errors.Is(err, checkin.ErrInvalidCode):
		return Error{Status: http.StatusUnprocessableEntity, Message: InvalidCode}
	case errors.Is(err, checkin.ErrEventCanceled):
		return Error{Status: http.StatusUnprocessableEntity, Message: EventCanceled}
	case errors.Is(err, checkin.ErrNothingToConfirm):
		return Error{Status: http.StatusConflict, Message: NothingToConfirm}
	case errors.Is(err, attendance.ErrConfirmInProgress), errors.Is(err, checkin.ErrConfirmInProgress), errors.Is(err, checkin.ErrScanIgnored):
		return Error{Status: http.StatusConflict, Message: InProgress}
	case errors.Is(err, attendance.ErrClosed), errors.Is(err, checkin.ErrClosed), errors.Is(err, context.Canceled):
		return Error{Status: http.StatusConflict, Message: Closed}
	}

	var statusErr *community.StatusError
	if errors.As(err, &statusErr) || errors.Is(err, context.DeadlineExceeded) {
		return Error{Status: http.StatusBadGateway, Message: generic(op)}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return Error{Status: http.StatusServiceUnavailable, Message: Unavailable}
	}

	return Error{Status: http.StatusInternalServerError, Message: generic(op)}
}

func generic(op Op) string {
	switch op {
	case OpLoad:
		return LoadFailed
	case OpConfirm:
		return ConfirmFailed
	case OpCheckin:
		return CheckinFailed
	}
	return Internal
}
