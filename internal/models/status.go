package models

import "github.com/akinfotech/rma-backend/internal/pkg/apperror"

// RMAStatus описывает стадию жизненного цикла возврата.
// Переходы строго вперёд, без отмен и возвратов назад.
type RMAStatus string

const (
	StatusProcessing      RMAStatus = "processing"
	StatusInServiceCentre RMAStatus = "in_service_centre"
	StatusReady           RMAStatus = "ready"
	StatusDelivered       RMAStatus = "delivered"
)

func (s RMAStatus) IsValid() bool {
	switch s {
	case StatusProcessing, StatusInServiceCentre, StatusReady, StatusDelivered:
		return true
	}
	return false
}

func (s RMAStatus) CanTransitionTo(next RMAStatus) bool {
	transitions := map[RMAStatus][]RMAStatus{
		StatusProcessing:      {StatusInServiceCentre},
		StatusInServiceCentre: {StatusReady},
		StatusReady:           {StatusDelivered},
		StatusDelivered:       {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == next {
			return true
		}
	}
	return false
}

func NewRMAStatus(status string) (RMAStatus, error) {
	s := RMAStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус возврата")
	}
	return s, nil
}
