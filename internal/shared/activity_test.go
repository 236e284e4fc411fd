package shared

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordOnNilRecorderIsNoop(t *testing.T) {
	var recorder *ActivityRecorder
	assert.NotPanics(t, func() {
		recorder.Record(context.Background(), ActivityEntry{Action: "Created order", EntityType: "order"})
	})
}

func TestRecordWithoutPoolSwallowsError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := NewActivityRecorder(nil, logger)
	assert.NotPanics(t, func() {
		recorder.Record(context.Background(), ActivityEntry{Action: "Created order", EntityType: "order"})
	})
}
