package models

import (
	"math"
	"net/url"
	"time"
)

// MinElapsed is the smallest duration a throughput is computed over.
// A transfer timed at zero or less is clamped to it.
const MinElapsed = time.Nanosecond

// Target is a validated absolute http or https URL.
type Target struct {
	URL *url.URL
}

func (t Target) String() string {
	if t.URL == nil {
		return ""
	}
	return t.URL.String()
}

// Measurement is the outcome of one completed transfer.
type Measurement struct {
	Target  Target
	Status  int
	Bytes   int64
	Elapsed time.Duration
}

// Throughput is a transfer rate in kilobytes per second.
type Throughput int64

// Kilobytes returns the whole kilobytes transferred, truncated.
func (m Measurement) Kilobytes() int64 {
	return m.Bytes / 1024
}

// Throughput returns ceil(kilobytes / seconds).
func (m Measurement) Throughput() Throughput {
	kb := m.Kilobytes()
	if kb <= 0 {
		return 0
	}

	elapsed := m.Elapsed
	if elapsed < MinElapsed {
		elapsed = MinElapsed
	}

	return Throughput(math.Ceil(float64(kb) / elapsed.Seconds()))
}
