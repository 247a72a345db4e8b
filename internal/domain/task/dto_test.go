package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestChangedFields(t *testing.T) {
	req := UpdateTaskRequest{
		Title:           strPtr("new title"),
		Status:          strPtr("in_progress"),
		SubmissionFiles: &[]string{"report.pdf"},
	}
	assert.Equal(t, []string{"title", "status", "submission_files"}, req.ChangedFields())

	assert.Empty(t, UpdateTaskRequest{}.ChangedFields())
}

func TestChangedFieldsDetectsExplicitZeroValues(t *testing.T) {
	// Clearing the note and the file list still counts as a change.
	req := UpdateTaskRequest{
		SubmissionNote:  strPtr(""),
		SubmissionFiles: &[]string{},
	}
	assert.Equal(t, []string{"submission_note", "submission_files"}, req.ChangedFields())
}

func TestDisallowedForEmployee(t *testing.T) {
	cases := []struct {
		name string
		req  UpdateTaskRequest
		want []string
	}{
		{
			"progress fields only",
			UpdateTaskRequest{
				Status:          strPtr("completed"),
				SubmissionNote:  strPtr("done"),
				SubmissionFiles: &[]string{"out.zip"},
			},
			nil,
		},
		{
			"title is admin territory",
			UpdateTaskRequest{Title: strPtr("renamed"), Status: strPtr("in_progress")},
			[]string{"title"},
		},
		{
			"reassignment and deadline",
			UpdateTaskRequest{AssignedTo: strPtr("u2"), DueDate: strPtr("2026-10-01")},
			[]string{"assigned_to", "due_date"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.req.DisallowedForEmployee())
		})
	}
}

func TestUpdateTaskRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateTaskRequest{}.Validate())
	assert.NoError(t, UpdateTaskRequest{Status: strPtr("cancelled")}.Validate())

	assert.Error(t, UpdateTaskRequest{Status: strPtr("archived")}.Validate())
	assert.Error(t, UpdateTaskRequest{Priority: strPtr("critical")}.Validate())
	assert.Error(t, UpdateTaskRequest{Title: strPtr("ab")}.Validate())
	assert.Error(t, UpdateTaskRequest{DueDate: strPtr("01-10-2026")}.Validate())
	assert.Error(t, UpdateTaskRequest{SubmissionFiles: &[]string{"ok.pdf", "  "}}.Validate())
}

func TestIsValidStatusAndPriority(t *testing.T) {
	for _, s := range []string{"pending", "in_progress", "completed", "cancelled"} {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("done"))

	for _, p := range []string{"low", "medium", "high", "urgent"} {
		assert.True(t, IsValidPriority(p))
	}
	assert.False(t, IsValidPriority("normal"))
}

func TestOtherParty(t *testing.T) {
	tk := Task{AssignedTo: "emp-1", AssignedBy: "adm-1"}
	assert.Equal(t, "emp-1", tk.OtherParty("adm-1"))
	assert.Equal(t, "adm-1", tk.OtherParty("emp-1"))
	assert.True(t, tk.IsParticipant("emp-1"))
	assert.True(t, tk.IsParticipant("adm-1"))
	assert.False(t, tk.IsParticipant("someone-else"))
}
