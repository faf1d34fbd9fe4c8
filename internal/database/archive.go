package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mr-Dark-debug/vamonos/internal/array"
	"github.com/Mr-Dark-debug/vamonos/internal/frame"
)

// NewRun starts a run record for the given input.
func NewRun(algorithm, varName string, input []array.Value) *Run {
	texts := make([]string, len(input))
	for i, v := range input {
		texts[i] = array.ToText(v)
	}
	return &Run{
		RunID:     uuid.NewString(),
		Algorithm: algorithm,
		VarName:   varName,
		Input:     strings.Join(texts, ","),
		StartTime: time.Now().UnixNano(),
		Status:    StatusRunning,
	}
}

// SaveRun finishes the run record and stores it with its steps. A non-nil
// runErr marks the run failed; its steps, if any, are still stored.
func SaveRun(store Store, run *Run, steps []frame.Step, runErr error) error {
	end := time.Now().UnixNano()
	run.EndTime = &end
	run.StepCount = len(steps)
	run.Status = StatusCompleted
	if runErr != nil {
		msg := runErr.Error()
		run.Status = StatusFailed
		run.Error = &msg
	}

	records := make([]*FrameRecord, 0, len(steps))
	for _, st := range steps {
		payload, err := frame.Encode(st.Frame)
		if err != nil {
			return fmt.Errorf("encoding step %d: %w", st.Seq, err)
		}
		records = append(records, &FrameRecord{
			RunID:   run.RunID,
			Seq:     st.Seq,
			Line:    st.Line,
			Payload: string(payload),
		})
	}

	if err := store.InsertRun(run); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return store.BatchInsertFrames(records)
}

// LoadSteps decodes the stored steps of a run.
func LoadSteps(store Store, runID string) ([]frame.Step, error) {
	records, err := store.LoadFrames(runID)
	if err != nil {
		return nil, err
	}
	steps := make([]frame.Step, 0, len(records))
	for _, rec := range records {
		f, err := frame.Decode([]byte(rec.Payload))
		if err != nil {
			return nil, fmt.Errorf("decoding frame %s/%d: %w", runID, rec.Seq, err)
		}
		steps = append(steps, frame.Step{Seq: rec.Seq, Line: rec.Line, Frame: f})
	}
	return steps, nil
}
