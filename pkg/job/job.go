package job

import (
	"fmt"
	"path/filepath"
)

// job for the mapping worker
type JobMap struct {
	File string
	Idx  int
}

// res from the mapping worker
type JobMapRes struct {
	Frame string
	Err   error
}

func New(file string, idx int) JobMap {
	return JobMap{File: file, Idx: idx}
}

func (j *JobMap) Print() string {
	return fmt.Sprintf("Job: Idx: %d, File: %s", j.Idx, filepath.Base(j.File))
}
