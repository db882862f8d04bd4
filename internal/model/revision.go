package model

import "time"

// DiffOp is the kind of a diff line.
type DiffOp string

const (
	DiffUnchanged DiffOp = "unchanged"
	DiffAdd       DiffOp = "add"
	DiffRemove    DiffOp = "remove"
)

// DiffLine is one line of a line-oriented diff.
type DiffLine struct {
	Op      DiffOp `json:"type"`
	Content string `json:"content"`
}

// ChangeStats summarizes a diff.
type ChangeStats struct {
	Additions     int `json:"additions"`
	Deletions     int `json:"deletions"`
	Modifications int `json:"modifications"`
}

// Revision is a full content snapshot of a file.
type Revision struct {
	ID          string      `json:"id"`
	FileID      string      `json:"fileId"`
	Content     string      `json:"content"`
	ContentHash string      `json:"contentHash"`
	Timestamp   time.Time   `json:"timestamp"`
	Message     string      `json:"message"`
	Author      string      `json:"author"`
	ChangeStats ChangeStats `json:"changeStats"`
}
