package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS collaborate (
		id BIGSERIAL PRIMARY KEY,
		course BIGINT NOT NULL DEFAULT 0,
		course_module BIGINT NOT NULL DEFAULT 0,
		name VARCHAR(255) NOT NULL,
		instructionsa TEXT NOT NULL DEFAULT '',
		instructionsaformat SMALLINT NOT NULL DEFAULT 1,
		instructionsb TEXT NOT NULL DEFAULT '',
		instructionsbformat SMALLINT NOT NULL DEFAULT 1,
		timecreated BIGINT NOT NULL DEFAULT 0,
		timemodified BIGINT NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_collaborate_course ON collaborate(course)`,

	// One submission per instance, user and page. SaveSubmission upserts on this key.
	`CREATE TABLE IF NOT EXISTS collaborate_submissions (
		id BIGSERIAL PRIMARY KEY,
		collaborate_id BIGINT NOT NULL REFERENCES collaborate(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		page VARCHAR(1) NOT NULL CHECK (page IN ('a', 'b')),
		submission TEXT NOT NULL DEFAULT ' ',
		submission_format SMALLINT NOT NULL DEFAULT 1,
		timecreated BIGINT NOT NULL DEFAULT 0,
		timemodified BIGINT NOT NULL DEFAULT 0,
		UNIQUE(collaborate_id, user_id, page)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_collaborate_submissions_user_id ON collaborate_submissions(user_id)`,

	`CREATE SEQUENCE IF NOT EXISTS draft_item_seq START 1`,

	`CREATE TABLE IF NOT EXISTS files (
		id BIGSERIAL PRIMARY KEY,
		context_id BIGINT NOT NULL,
		component VARCHAR(100) NOT NULL,
		file_area VARCHAR(50) NOT NULL,
		item_id BIGINT NOT NULL,
		file_path VARCHAR(255) NOT NULL DEFAULT '/',
		file_name VARCHAR(255) NOT NULL,
		user_id UUID,
		mime_type VARCHAR(100) NOT NULL DEFAULT 'application/octet-stream',
		size BIGINT NOT NULL DEFAULT 0,
		content BYTEA NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(context_id, component, file_area, item_id, file_path, file_name)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_files_area ON files(context_id, component, file_area, item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_files_user_id ON files(user_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
