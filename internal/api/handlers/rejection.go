package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

const (
	msgAlreadyBooked     = "この式場・日付には既に同じ種別の予約があります。"
	msgTomobiki          = "この日は友引のため、葬儀の執り行いは避けるのが一般的です。"
	msgTurnoverForbidden = "この時刻の葬儀の後は、同じ日に通夜を行うことはできません。"
	msgTooSoonFormat     = "葬儀後の準備時間が不足しています。通夜は%s以降に設定してください。"
	msgTooSoonNextDay    = "葬儀後の準備時間が不足しています。同じ日に通夜を行うことはできません（最短%s）。"
	msgNoCapacity        = "この日は受付上限が設定されていないため、予約できません。"
	msgCapacityExceeded  = "この日は受付上限に達しているため、予約できません。"
)

// RejectionResponse описывает ответ на отказ проверки бронирования
type RejectionResponse struct {
	Status  int
	Code    string
	Message string
}

// DescribeRejection переводит отказ проверки в HTTP ответ.
// Второе значение false, если err не является отказом
func DescribeRejection(err error) (RejectionResponse, bool) {
	code := turnover.RejectionCode(err)
	if code == "" {
		return RejectionResponse{}, false
	}

	resp := RejectionResponse{Status: http.StatusConflict, Code: code}
	switch code {
	case turnover.CodeAlreadyBooked:
		resp.Message = msgAlreadyBooked
	case turnover.CodeTomobiki:
		resp.Status = http.StatusUnprocessableEntity
		resp.Message = msgTomobiki
	case turnover.CodeForbidden:
		resp.Message = msgTurnoverForbidden
	case turnover.CodeTooSoon:
		resp.Message = tooSoonMessage(err)
	case turnover.CodeNoCapacity:
		resp.Message = msgNoCapacity
	case turnover.CodeCapacityExceeded:
		resp.Message = msgCapacityExceeded
	}
	return resp, true
}

// RespondRejection отправляет отказ проверки бронирования
func RespondRejection(w http.ResponseWriter, rejection RejectionResponse) {
	RespondErrorWithCode(w, rejection.Status, rejection.Code, rejection.Message)
}

// RejectionMessage сообщение об отказе для списка слотов, пусто для nil
func RejectionMessage(err error) string {
	if rejection, ok := DescribeRejection(err); ok {
		return rejection.Message
	}
	return ""
}

func tooSoonMessage(err error) string {
	var tooSoon *turnover.TooSoonError
	if !errors.As(err, &tooSoon) {
		return fmt.Sprintf(msgTooSoonFormat, "-")
	}
	if tooSoon.MinWakeMinutes >= types.MinutesPerDay {
		return fmt.Sprintf(msgTooSoonNextDay, tooSoon.MinWakeTime())
	}
	return fmt.Sprintf(msgTooSoonFormat, tooSoon.MinWakeTime())
}
