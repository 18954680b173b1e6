package scheduler

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subaudit/internal/usecase"
)

func TestCronSpec(t *testing.T) {
	tests := []struct {
		runAt   string
		want    string
		wantErr bool
	}{
		{runAt: "02:00", want: "0 2 * * *"},
		{runAt: "23:59", want: "59 23 * * *"},
		{runAt: "0:5", want: "5 0 * * *"},
		{runAt: "24:00", wantErr: true},
		{runAt: "12:60", wantErr: true},
		{runAt: "noon", wantErr: true},
		{runAt: "", wantErr: true},
		{runAt: "12", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.runAt, func(t *testing.T) {
			got, err := CronSpec(tt.runAt)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	renewal := usecase.NewRenewal(nil, log)

	t.Run("ok", func(t *testing.T) {
		s, err := New(renewal, "02:00", time.UTC, log)
		require.NoError(t, err)
		s.Start()
		s.Stop()
	})

	t.Run("err, bad run_at", func(t *testing.T) {
		_, err := New(renewal, "2am", time.UTC, log)
		assert.Error(t, err)
	})
}
