// Package invoice provides sequential invoice number generation.
//
// Numbers are issued per sales location and are gapless: the sequencer is
// called inside the checkout transaction, so a failed checkout rolls the
// increment back.
package invoice

import (
	"context"
	"fmt"
	"time"
)

// DefaultPadWidth is the zero-padding width of the sequence part.
const DefaultPadWidth = 4

// Sequencer issues the next sequence value for a location counter.
// Implementations must be safe for concurrent use; two concurrent calls
// for the same location key must never return the same value.
type Sequencer interface {
	// Next returns the next sequence number for the given location key,
	// starting at 1 for a key that has never been seen.
	Next(ctx context.Context, locationKey string) (int64, error)
}

// Config controls invoice number formatting.
type Config struct {
	// Prefix is the leading code, e.g. a store code like "MAIN" or "DC".
	Prefix string
	// PadWidth is the zero-padding width of the sequence part.
	// Zero means DefaultPadWidth.
	PadWidth int
}

// FormatNumber renders an invoice number as {PREFIX}-{YYYYMMDD}-{SEQ},
// e.g. "MAIN-20260114-0007".
func FormatNumber(cfg Config, date time.Time, seq int64) string {
	width := cfg.PadWidth
	if width <= 0 {
		width = DefaultPadWidth
	}
	return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, date.Format("20060102"), width, seq)
}

// Issuer combines a Sequencer with formatting into ready-to-use
// invoice numbers.
type Issuer struct {
	seq Sequencer
}

// NewIssuer creates an Issuer on top of a Sequencer.
func NewIssuer(seq Sequencer) *Issuer {
	return &Issuer{seq: seq}
}

// Issue returns the next formatted invoice number for a location, dated at.
// The counter is keyed by location only; the date part reflects the issue
// date and does not reset the sequence.
func (i *Issuer) Issue(ctx context.Context, locationKey string, cfg Config, at time.Time) (string, error) {
	seq, err := i.seq.Next(ctx, locationKey)
	if err != nil {
		return "", fmt.Errorf("next invoice sequence for %s: %w", locationKey, err)
	}
	return FormatNumber(cfg, at.UTC(), seq), nil
}
