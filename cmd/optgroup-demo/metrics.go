package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	renders     *prometheus.CounterVec
	submissions *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optgroup_form_renders_total",
				Help: "Number of rendered forms by mode and locale.",
			},
			[]string{"mode", "locale"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optgroup_form_submissions_total",
				Help: "Number of form submissions by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.renders, m.submissions)
	return m
}
