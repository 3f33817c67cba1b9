// Package telemetry exposes the runtime's counters as Prometheus
// metrics, the hosted-process analog of the teacher project's
// registry.RegistryStats/GetStats pattern generalized from a polled
// snapshot struct into live counters a scrape endpoint can serve.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nmxmxh/cothread/internal/threadcore"
)

// Collector samples a *threadcore.Table's Stats on every scrape and
// reports them as counters, since the table itself only ever holds plain
// counters and has no notion of a registry.
type Collector struct {
	table *threadcore.Table

	yields          *prometheus.Desc
	schedulerPasses *prometheus.Desc
	threadsFinished *prometheus.Desc
	threadsCancel   *prometheus.Desc
	mailboxSends    *prometheus.Desc
	mailboxDrops    *prometheus.Desc
	stackGuardTrips *prometheus.Desc
}

// NewCollector builds a Collector for table, namespaced "cothread".
func NewCollector(table *threadcore.Table) *Collector {
	ns := "cothread"
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(ns+"_"+name, help, nil, nil)
	}
	return &Collector{
		table:           table,
		yields:          desc("yields_total", "total switches made by Yield, YieldTo and YieldNext"),
		schedulerPasses: desc("scheduler_dispatches_total", "total thread dispatches performed by the scheduler"),
		threadsFinished: desc("threads_finished_total", "total threads that ran to completion"),
		threadsCancel:   desc("threads_cancelled_total", "total threads cancelled via ThreadCancel"),
		mailboxSends:    desc("mailbox_sends_total", "total mailbox messages successfully enqueued"),
		mailboxDrops:    desc("mailbox_drops_total", "total mailbox sends rejected because the ring was full"),
		stackGuardTrips: desc("stack_guard_trips_total", "total stack canary failures detected"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.yields
	ch <- c.schedulerPasses
	ch <- c.threadsFinished
	ch <- c.threadsCancel
	ch <- c.mailboxSends
	ch <- c.mailboxDrops
	ch <- c.stackGuardTrips
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.table.StatsSnapshot()
	ch <- prometheus.MustNewConstMetric(c.yields, prometheus.CounterValue, float64(s.Yields))
	ch <- prometheus.MustNewConstMetric(c.schedulerPasses, prometheus.CounterValue, float64(s.SchedulerPasses))
	ch <- prometheus.MustNewConstMetric(c.threadsFinished, prometheus.CounterValue, float64(s.ThreadsFinished))
	ch <- prometheus.MustNewConstMetric(c.threadsCancel, prometheus.CounterValue, float64(s.ThreadsCancel))
	ch <- prometheus.MustNewConstMetric(c.mailboxSends, prometheus.CounterValue, float64(s.MailboxSends))
	ch <- prometheus.MustNewConstMetric(c.mailboxDrops, prometheus.CounterValue, float64(s.MailboxDrops))
	ch <- prometheus.MustNewConstMetric(c.stackGuardTrips, prometheus.CounterValue, float64(s.StackGuardTrips))
}

// Register builds a fresh prometheus.Registry containing just this
// collector, ready to be served on a metrics endpoint.
func Register(table *threadcore.Table) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(table))
	return reg
}
