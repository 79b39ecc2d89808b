package leads

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_lead_registrations_total",
			Help: "Lead registrations by result",
		},
		[]string{"result"},
	)

	stepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_lead_steps_total",
			Help: "Lead intake steps by outcome",
		},
		[]string{"step", "status"},
	)
)

const (
	stepPersist  = "persist"
	stepOperator = "operator_email"
	stepThankYou = "thank_you_email"

	statusOK         = "ok"
	statusError      = "error"
	statusSkipped    = "skipped"
	statusDispatched = "dispatched"
)
