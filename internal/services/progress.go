package services

import (
	"math"

	"github.com/yukikurage/taskaura-api/internal/models"
)

// Progress is the completion summary of a project's tasks.
type Progress struct {
	TaskCount          int
	CompletedTaskCount int
	ProgressPercentage int
}

// ComputeProgress summarizes tasks. A project without tasks is at 0%.
func ComputeProgress(tasks []models.Task) Progress {
	if len(tasks) == 0 {
		return Progress{}
	}

	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}

	return Progress{
		TaskCount:          len(tasks),
		CompletedTaskCount: completed,
		ProgressPercentage: int(math.Round(float64(completed) / float64(len(tasks)) * 100)),
	}
}
