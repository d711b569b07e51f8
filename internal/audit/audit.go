package audit

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Domenick1991/cabinbooking/internal/domain"
)

// Recorder writes one line per seat event.
type Recorder struct {
	out io.Writer
}

func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

func (r *Recorder) Record(_ context.Context, event domain.SeatEvent) error {
	_, err := fmt.Fprintf(r.out, "%s %s seat=%s ref=%s passenger=%s id=%s\n",
		event.OccurredAt.UTC().Format(time.RFC3339), event.Type, event.Seat, event.Reference, event.LastName, event.ID)
	return err
}
