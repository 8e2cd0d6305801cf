// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime          *prometheus.HistogramVec
	dependencies          *prometheus.GaugeVec
	provisioningRequests  *prometheus.CounterVec
	orphanedOrganizations prometheus.Gauge

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.responseTime.With(tags).Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencies == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.dependencies.With(tags).Set(value)

	return nil
}

func (m *Monitor) IncrementProvisioningRequests(tags map[string]string) error {
	if m.provisioningRequests == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.provisioningRequests.With(tags).Inc()

	return nil
}

func (m *Monitor) SetOrphanedOrganizations(value float64) error {
	if m.orphanedOrganizations == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.orphanedOrganizations.Set(value)

	return nil
}

func (m *Monitor) registerHistograms() {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "http_response_time_seconds",
			Help:        "http_response_time_seconds",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"route", "status"},
	)

	m.register(m.responseTime)
}

func (m *Monitor) registerGauges() {
	m.dependencies = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "dependency_available",
			Help:        "dependency_available",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"component"},
	)

	m.orphanedOrganizations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:        "orphaned_organizations",
			Help:        "organizations without any membership row",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
	)

	m.register(m.dependencies)
	m.register(m.orphanedOrganizations)
}

func (m *Monitor) registerCounters() {
	m.provisioningRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "provisioning_requests_total",
			Help:        "organization provisioning requests by outcome",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"outcome"},
	)

	m.register(m.provisioningRequests)
}

func (m *Monitor) register(c prometheus.Collector) {
	if err := prometheus.Register(c); err != nil {
		m.logger.Debugf("metric already registered: %v", err)
	}
}

// NewMonitor creates and registers the service collectors on the default registry
func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerHistograms()
	m.registerGauges()
	m.registerCounters()

	return m
}
