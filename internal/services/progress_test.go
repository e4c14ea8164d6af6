package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/taskaura-api/internal/models"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.Task
		want  Progress
	}{
		{
			name:  "no tasks",
			tasks: nil,
			want:  Progress{},
		},
		{
			name:  "two of three done rounds up",
			tasks: []models.Task{{Completed: true}, {Completed: true}, {Completed: false}},
			want:  Progress{TaskCount: 3, CompletedTaskCount: 2, ProgressPercentage: 67},
		},
		{
			name:  "one of three done rounds down",
			tasks: []models.Task{{Completed: true}, {}, {}},
			want:  Progress{TaskCount: 3, CompletedTaskCount: 1, ProgressPercentage: 33},
		},
		{
			name:  "all done",
			tasks: []models.Task{{Completed: true}, {Completed: true}},
			want:  Progress{TaskCount: 2, CompletedTaskCount: 2, ProgressPercentage: 100},
		},
		{
			name:  "none done",
			tasks: []models.Task{{}, {}, {}, {}},
			want:  Progress{TaskCount: 4, CompletedTaskCount: 0, ProgressPercentage: 0},
		},
		{
			name:  "one of eight done",
			tasks: []models.Task{{Completed: true}, {}, {}, {}, {}, {}, {}, {}},
			want:  Progress{TaskCount: 8, CompletedTaskCount: 1, ProgressPercentage: 13},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeProgress(tt.tasks))
		})
	}
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(7, 7))
	assert.ErrorIs(t, Authorize(7, 8), ErrForbidden)
	assert.ErrorIs(t, Authorize(7, 0), ErrForbidden)
}

func TestErrorsMatchSentinels(t *testing.T) {
	notFound := &NotFoundError{Resource: "Task", ID: 3}
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.NotErrorIs(t, notFound, ErrForbidden)
	assert.Equal(t, "Task not found with id: 3", notFound.Error())

	forbidden := &ForbiddenError{Resource: "Project", ID: 9}
	assert.ErrorIs(t, forbidden, ErrForbidden)
	assert.NotErrorIs(t, forbidden, ErrNotFound)
}

func TestCaller(t *testing.T) {
	id, err := Caller(42).CurrentUserID()
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	_, err = Caller(0).CurrentUserID()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
