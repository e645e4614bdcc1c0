package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facemark_registrations_total",
		Help: "Teacher registration outcomes.",
	}, []string{"outcome"})

	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facemark_logins_total",
		Help: "Teacher login outcomes.",
	}, []string{"outcome"})
)
