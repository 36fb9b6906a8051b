package domain

import "time"

// ServiceMowing is the service tag for areas that participate in the
// mowing schedule. Other services (gardening, pruning) are tracked in the
// same table but are never auto-scheduled.
const ServiceMowing = "rocagem"

// DefaultAreaSizeM2 is assumed for areas registered without a measured
// size, so they still consume at least one working day instead of being
// dropped from the queue.
const DefaultAreaSizeM2 = 1000

// ServiceArea represents a public green area maintained by a service lot.
type ServiceArea struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Lot            *int       `json:"lote" db:"lote"`
	Service        string     `json:"servico" db:"servico"`
	SizeM2         *float64   `json:"metragem_m2" db:"metragem_m2"`
	Order          *int       `json:"ordem" db:"ordem"`
	ManualSchedule bool       `json:"manual_schedule" db:"manual_schedule"`
	NextPrediction *string    `json:"proxima_previsao" db:"proxima_previsao"`
	DaysToComplete *int       `json:"days_to_complete" db:"days_to_complete"`
	LastMowing     *time.Time `json:"ultima_rocagem" db:"ultima_rocagem"`
	Status         string     `json:"status" db:"status"`
	Lat            *float64   `json:"lat" db:"lat"`
	Lng            *float64   `json:"lng" db:"lng"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Size returns the schedulable size of the area in m².
func (a ServiceArea) Size() float64 {
	if a.SizeM2 == nil || *a.SizeM2 <= 0 {
		return DefaultAreaSizeM2
	}
	return *a.SizeM2
}

// Prediction is one scheduling result: the predicted start date of the
// area's next service window and the working days reserved for it.
type Prediction struct {
	AreaID      int64  `json:"area_id" db:"area_id"`
	NextDate    string `json:"proxima_previsao" db:"proxima_previsao"`
	WorkingDays int    `json:"days_to_complete" db:"days_to_complete"`
}

// AreaInput is the payload accepted by the create/update area endpoints.
type AreaInput struct {
	Name           string   `json:"name" binding:"required"`
	Lot            *int     `json:"lote"`
	Service        string   `json:"servico" binding:"required"`
	SizeM2         *float64 `json:"metragem_m2"`
	Order          *int     `json:"ordem"`
	ManualSchedule bool     `json:"manual_schedule"`
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
}
