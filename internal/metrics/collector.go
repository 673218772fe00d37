package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Snapshot is a consistent copy of the guardrail counters.
// Invariant: BlockedQueries == sum(ViolationsByType) and
// BlockedQueries <= TotalQueries.
type Snapshot struct {
	TotalQueries     uint64            `json:"total_queries"`
	BlockedQueries   uint64            `json:"blocked_queries"`
	ViolationsByType map[string]uint64 `json:"violations_by_type"`
}

// Collector tracks guardrail activity for the lifetime of the service.
// One instance is constructed at startup and injected wherever it is needed,
// so tests can substitute an isolated instance per case. All counters are
// updated together under a single critical section so a snapshot can never
// observe the invariant violated.
type Collector struct {
	mu               sync.Mutex
	totalQueries     uint64
	blockedQueries   uint64
	violationsByType map[string]uint64
}

func NewCollector() *Collector {
	return &Collector{
		violationsByType: make(map[string]uint64),
	}
}

// RecordQuery counts one incoming query, regardless of its outcome.
func (c *Collector) RecordQuery() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalQueries++
}

// RecordViolation counts one blocked query under the given violation type,
// creating the type's counter on first sight.
func (c *Collector) RecordViolation(violationType string) {
	c.mu.Lock()
	c.blockedQueries++
	c.violationsByType[violationType]++
	c.mu.Unlock()

	log.Info().Str("violation_type", violationType).Msg("Guardrail violation recorded")
}

// Snapshot returns a consistent copy of the counters.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	byType := make(map[string]uint64, len(c.violationsByType))
	for violationType, count := range c.violationsByType {
		byType[violationType] = count
	}

	return Snapshot{
		TotalQueries:     c.totalQueries,
		BlockedQueries:   c.blockedQueries,
		ViolationsByType: byType,
	}
}

// Summary renders a single human-readable line. A zero total reports a
// 0.00% block rate.
func (c *Collector) Summary() string {
	snap := c.Snapshot()

	blockRate := 0.0
	if snap.TotalQueries > 0 {
		blockRate = float64(snap.BlockedQueries) / float64(snap.TotalQueries) * 100.0
	}

	return fmt.Sprintf(
		"Total Queries: %d, Blocked: %d (%.2f%%), Violation Types: %s",
		snap.TotalQueries,
		snap.BlockedQueries,
		blockRate,
		formatViolations(snap.ViolationsByType),
	)
}

func formatViolations(byType map[string]uint64) string {
	if len(byType) == 0 {
		return "{}"
	}

	names := make([]string, 0, len(byType))
	for name := range byType {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", name, byType[name]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
