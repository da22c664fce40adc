package runstore

import (
	"database/sql"
	"errors"
	"time"
)

const runColumns = "id, run_id, title, status, template, video_file, markers_file, request_file, placement_json, timemap_json, captions_file, output_file, error_message, created_at, updated_at"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id            int64
		runID         string
		title         sql.NullString
		statusStr     string
		template      sql.NullString
		videoFile     sql.NullString
		markersFile   sql.NullString
		requestFile   sql.NullString
		placementJSON sql.NullString
		timeMapJSON   sql.NullString
		captionsFile  sql.NullString
		outputFile    sql.NullString
		errorMessage  sql.NullString
		createdRaw    sql.NullString
		updatedRaw    sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&runID,
		&title,
		&statusStr,
		&template,
		&videoFile,
		&markersFile,
		&requestFile,
		&placementJSON,
		&timeMapJSON,
		&captionsFile,
		&outputFile,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:            id,
		RunID:         runID,
		Title:         title.String,
		Status:        Status(statusStr),
		Template:      template.String,
		VideoFile:     videoFile.String,
		MarkersFile:   markersFile.String,
		RequestFile:   requestFile.String,
		PlacementJSON: placementJSON.String,
		TimeMapJSON:   timeMapJSON.String,
		CaptionsFile:  captionsFile.String,
		OutputFile:    outputFile.String,
		ErrorMessage:  errorMessage.String,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		run.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		run.UpdatedAt = updated
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
