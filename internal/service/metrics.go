package service

import "github.com/prometheus/client_golang/prometheus"

// 业务侧指标：报名/退赛次数，按动作分 label
var registrationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fittrack_event_registrations_total",
		Help: "Count of event registration ledger mutations",
	},
	[]string{"action"},
)

func init() { prometheus.MustRegister(registrationsTotal) }
