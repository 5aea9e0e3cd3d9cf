package controller

import (
	"fmt"
	"time"

	"gravimed/aegis/pkg/audit"
)

// Task names used in logs and metric labels.
const (
	taskSafetyCheck    = "safety_check"
	taskFieldQuality   = "field_quality"
	taskEmergencyWatch = "emergency_watch"
)

// runSafetyCheck is the constraint validation loop. Every tick it
// re-measures the live field, validates it against the envelope, and
// escalates to emergency shutdown when validation demands it.
func (c *Controller) runSafetyCheck(stopCh <-chan struct{}) {
	defer c.tasks.Done()
	defer c.recoverTask(taskSafetyCheck)

	ticker := time.NewTicker(c.config.SafetyCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			start := time.Now()

			c.mu.RLock()
			m := c.measure(c.current)
			c.mu.RUnlock()

			c.publishMetrics(m)

			result := c.validator.Validate(m)
			if !result.Safe {
				c.recordValidation(result)

				if result.EmergencyRequired && c.config.EmergencyProtocols {
					c.EmergencyShutdown(taskSafetyCheck)
					return
				}
			}

			c.recordTick(taskSafetyCheck, time.Since(start))
		}
	}
}

// runFieldQuality samples field stability and enhancement performance at
// the monitoring frequency. It informs telemetry only; it never escalates.
func (c *Controller) runFieldQuality(stopCh <-chan struct{}) {
	defer c.tasks.Done()
	defer c.recoverTask(taskFieldQuality)

	interval := time.Duration(float64(time.Second) / c.config.MonitoringFrequency)
	if interval <= 0 {
		interval = 50 * time.Microsecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			start := time.Now()

			c.mu.RLock()
			stability := c.current.Stability()
			c.mu.RUnlock()

			if c.collector != nil {
				c.collector.Monitor().UpdateStability(stability)
			}

			if stability < 0.5 {
				c.logger.Warn("field stability degraded", "stability", stability)
			}

			c.recordTick(taskFieldQuality, time.Since(start))
		}
	}
}

// runEmergencyWatch is the critical-floor watch. It applies the strict
// critical predicates every tick and fires the shutdown sequence on the
// first trip. It is intentionally minimal: one snapshot read, three
// comparisons, no allocation on the clean path.
func (c *Controller) runEmergencyWatch(stopCh <-chan struct{}) {
	defer c.tasks.Done()
	defer c.recoverTask(taskEmergencyWatch)

	ticker := time.NewTicker(c.config.EmergencyWatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			start := time.Now()

			m := *c.metrics.Load()
			violations := c.validator.CheckCritical(m)

			if len(violations) > 0 {
				c.lastCritical.Store(&criticalRecord{
					Time:       time.Now(),
					Violations: violations,
				})

				c.recordAudit(audit.SeverityCritical, audit.KindCriticalViolation,
					"critical safety floor violated", map[string]any{
						"violations": violations,
					})
				if c.collector != nil {
					for _, v := range violations {
						c.collector.Safety().RecordViolation(checkName(v), "critical")
					}
				}

				if c.config.EmergencyProtocols {
					c.EmergencyShutdown(taskEmergencyWatch)
					return
				}
			}

			c.recordTick(taskEmergencyWatch, time.Since(start))
		}
	}
}

// recordTick mirrors a loop iteration to telemetry.
func (c *Controller) recordTick(task string, duration time.Duration) {
	if c.collector != nil {
		c.collector.Monitor().RecordTick(task, duration)
	}
}

// recoverTask converts a panicking monitor task into an operational fault.
// A monitor that cannot run cannot guarantee the envelope, so the field is
// brought down rather than left unwatched.
func (c *Controller) recoverTask(task string) {
	r := recover()
	if r == nil {
		return
	}

	c.logger.Error("monitor task panicked", "task", task, "panic", r)
	c.recordAudit(audit.SeverityCritical, audit.KindOperationalFault,
		"monitor task panicked", map[string]any{
			"task":  task,
			"panic": fmt.Sprint(r),
		})

	if c.config.EmergencyProtocols {
		c.EmergencyShutdown("operational_fault")
	}
}
