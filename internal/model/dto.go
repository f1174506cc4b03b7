package model

import "time"

// PipelineJob is the queue message enqueued once per upload or retry event.
// Student context is denormalized at enqueue time so the orchestrator never
// resolves the student relationship itself.
type PipelineJob struct {
	LessonID    string `json:"lesson_id"`
	StudentName string `json:"student_name"`
	Instrument  string `json:"instrument"`
}

type LessonStatusResponse struct {
	ID           string       `json:"id"`
	Status       LessonStatus `json:"status"`
	ErrorMessage *string      `json:"error_message"`
}

type RosterImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// WorkerTranscribeRequest/Response is the wire contract with the remote
// transcription worker.
type WorkerTranscribeRequest struct {
	AudioURL string `json:"audio_url"`
}

type WorkerTranscribeResponse struct {
	Text string `json:"text"`
}

type HealthResponse struct {
	Status  string    `json:"status"`
	Service string    `json:"service"`
	Version string    `json:"version"`
	Time    time.Time `json:"time"`
}
