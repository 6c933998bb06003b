// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"sync"
	"time"

	"github.com/olegiv/rocknbeef-go/internal/content"
)

// NoticeDuration is how long a finished job keeps reporting its result.
const NoticeDuration = 2500 * time.Millisecond

// JobState is the auto-translate state of one (block, language) pair.
type JobState int

// Job states.
const (
	JobIdle JobState = iota
	JobRunning
	JobSucceeded
	JobFailed
)

func (s JobState) String() string {
	switch s {
	case JobRunning:
		return "running"
	case JobSucceeded:
		return "succeeded"
	case JobFailed:
		return "failed"
	default:
		return "idle"
	}
}

type jobKey struct {
	blockID int64
	lang    content.Lang
}

// Job is the last known auto-translate run for a pair.
type Job struct {
	State      JobState
	Err        string
	FinishedAt time.Time
}

// Jobs tracks which pairs are being translated.
// Different pairs may run at the same time; one pair runs at most once at a time.
type Jobs struct {
	mu   sync.Mutex
	jobs map[jobKey]Job
	now  func() time.Time
}

// NewJobs creates an empty tracker.
func NewJobs() *Jobs {
	return &Jobs{
		jobs: make(map[jobKey]Job),
		now:  time.Now,
	}
}

// Start marks the pair running, or returns ErrJobRunning.
func (j *Jobs) Start(blockID int64, lang content.Lang) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	key := jobKey{blockID, lang}
	if j.jobs[key].State == JobRunning {
		return ErrJobRunning
	}
	j.jobs[key] = Job{State: JobRunning}
	return nil
}

// Finish records the outcome of a run started with Start.
func (j *Jobs) Finish(blockID int64, lang content.Lang, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	job := Job{State: JobSucceeded, FinishedAt: j.now()}
	if err != nil {
		job.State = JobFailed
		job.Err = err.Error()
	}
	j.jobs[jobKey{blockID, lang}] = job
}

// Get returns the pair's job. A succeeded job reads as idle once its
// notice has expired.
func (j *Jobs) Get(blockID int64, lang content.Lang) Job {
	j.mu.Lock()
	defer j.mu.Unlock()

	key := jobKey{blockID, lang}
	job := j.jobs[key]
	if job.State == JobSucceeded && j.now().Sub(job.FinishedAt) >= NoticeDuration {
		delete(j.jobs, key)
		return Job{}
	}
	return job
}

// Running reports whether the pair is being translated.
func (j *Jobs) Running(blockID int64, lang content.Lang) bool {
	return j.Get(blockID, lang).State == JobRunning
}

// Forget drops every job of a block.
func (j *Jobs) Forget(blockID int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for key := range j.jobs {
		if key.blockID == blockID {
			delete(j.jobs, key)
		}
	}
}
