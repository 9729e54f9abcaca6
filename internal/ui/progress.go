package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// BatchProgress renders the progress of an in-flight commit batch.
type BatchProgress struct {
	total     int
	current   int
	startTime time.Time
	mu        sync.Mutex

	successCount int
	failureCount int
	currentRepo  string
}

// NewBatchProgress creates a progress indicator for a batch of total commits.
func NewBatchProgress(total int) *BatchProgress {
	return &BatchProgress{
		total:     total,
		startTime: time.Now(),
	}
}

// Update advances the progress display after one commit cycle.
func (p *BatchProgress) Update(current int, repo string, success bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	p.currentRepo = repo

	if success {
		p.successCount++
	} else {
		p.failureCount++
	}

	p.render()
}

// Finish completes the progress display with a summary line.
func (p *BatchProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.startTime)

	fmt.Printf("\n\n%s Batch finished in %s\n",
		ColorSuccess("OK:"),
		formatDuration(elapsed),
	)
	fmt.Printf("  %s %d successful commit(s)\n", ColorSuccess("+"), p.successCount)
	if p.failureCount > 0 {
		fmt.Printf("  %s %d failed cycle(s)\n", ColorError("-"), p.failureCount)
	}
}

func (p *BatchProgress) render() {
	// Clear line
	fmt.Print("\r\033[K")

	percentage := float64(p.current) / float64(p.total) * 100

	barWidth := 30
	filled := int(percentage / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	repo := p.currentRepo
	if len(repo) > 40 {
		repo = "..." + repo[len(repo)-37:]
	}

	fmt.Printf("%s [%s] %d/%d %s",
		ColorProgress("Committing"),
		bar,
		p.current,
		p.total,
		ColorDim(repo),
	)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
