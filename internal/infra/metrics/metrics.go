package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesTotal — входящие события по виду (message/callback).
	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablitsa_updates_total",
		Help: "Обработанные входящие события Telegram.",
	}, []string{"kind"})

	// FinalizationsTotal — успешные изменения остатка по действию.
	FinalizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablitsa_finalizations_total",
		Help: "Успешные финализации (запись остатка).",
	}, []string{"action"})

	// FinalizationErrorsTotal — отказы финализации по причине.
	FinalizationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablitsa_finalization_errors_total",
		Help: "Отказы финализации.",
	}, []string{"reason"})
)
