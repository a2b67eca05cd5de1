package syncer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		event   Event
		want    State
		effects []Effect
	}{
		{
			name:    "fresh task checks schema",
			from:    StatePrepared,
			event:   EventProcess,
			want:    StateProcessing,
			effects: []Effect{EffectCheckSchema},
		},
		{
			name:  "processing starts download",
			from:  StateProcessing,
			event: EventDownload,
			want:  StateDownload,
		},
		{
			name:  "push goes straight to upload",
			from:  StateProcessing,
			event: EventUpload,
			want:  StateUpload,
		},
		{
			name:  "download to upload",
			from:  StateDownload,
			event: EventUpload,
			want:  StateUpload,
		},
		{
			name:  "upload back to download after version conflict",
			from:  StateUpload,
			event: EventDownload,
			want:  StateDownload,
		},
		{
			name:    "lock keeps state",
			from:    StateDownload,
			event:   EventLock,
			want:    StateDownload,
			effects: []Effect{EffectLock},
		},
		{
			name:    "pause releases lock and saves context",
			from:    StateUpload,
			event:   EventPause,
			want:    StatePaused,
			effects: []Effect{EffectUnlock, EffectSaveResume},
		},
		{
			name:    "resume into download",
			from:    StatePaused,
			event:   EventDownload,
			want:    StateDownload,
			effects: []Effect{EffectRestoreContext},
		},
		{
			name:    "resume into upload",
			from:    StatePaused,
			event:   EventUpload,
			want:    StateUpload,
			effects: []Effect{EffectRestoreContext},
		},
		{
			name:    "resume with lock",
			from:    StatePaused,
			event:   EventLock,
			want:    StateProcessing,
			effects: []Effect{EffectRestoreContext, EffectLock},
		},
		{
			name:    "finish",
			from:    StateUpload,
			event:   EventFinish,
			want:    StateFinished,
			effects: []Effect{EffectUnlock, EffectNotify},
		},
		{
			name:    "fail from prepared",
			from:    StatePrepared,
			event:   EventFail,
			want:    StateFinished,
			effects: []Effect{EffectUnlock, EffectNotify, EffectCompensate},
		},
		{
			name:    "fail while paused",
			from:    StatePaused,
			event:   EventFail,
			want:    StateFinished,
			effects: []Effect{EffectUnlock, EffectNotify, EffectCompensate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects, err := Transition(tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.effects, effects)
		})
	}
}

func TestTransition_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		from  State
		event Event
	}{
		{name: "process twice", from: StateProcessing, event: EventProcess},
		{name: "download before process", from: StatePrepared, event: EventDownload},
		{name: "pause while paused", from: StatePaused, event: EventPause},
		{name: "pause before process", from: StatePrepared, event: EventPause},
		{name: "finish before process", from: StatePrepared, event: EventFinish},
		{name: "anything after finish", from: StateFinished, event: EventFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects, err := Transition(tt.from, tt.event)
			assert.ErrorIs(t, err, ErrInternal)
			assert.Equal(t, tt.from, got)
			assert.Nil(t, effects)
		})
	}
}
