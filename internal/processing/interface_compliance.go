package processing

import (
	"pr_tracker/internal/bigquery"
	"pr_tracker/internal/publish"
	"pr_tracker/internal/records"
	"pr_tracker/internal/sheets"
)

// Compile-time checks that the concrete collaborators satisfy the interfaces
var (
	_ RecordSource       = (*records.Store)(nil)
	_ RecordsSheetWriter = (*sheets.RecordsSheet)(nil)
	_ RecordInserter     = (*bigquery.Client)(nil)
	_ SnapshotPublisher  = (*publish.SSHPublisher)(nil)
)
