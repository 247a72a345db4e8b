package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/ems-backend-go/internal/domain/task"
	"github.com/staffdesk/ems-backend-go/internal/pkg/database"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.Repository {
	return &taskRepositoryImpl{db: db}
}

const taskSelectColumns = `
	t.id, t.title, t.description, t.assigned_to, t.assigned_by,
	t.priority, t.status, t.due_date, t.category,
	t.submission_note, t.submission_files, t.completed_at,
	t.created_at, t.updated_at,
	ae.name AS assignee_name, ae.email AS assignee_email, ae.employee_code AS assignee_code,
	ar.name AS assigner_name, ar.email AS assigner_email
`

const taskSelectJoins = `
	FROM tasks t
	JOIN users ae ON t.assigned_to = ae.id
	JOIN users ar ON t.assigned_by = ar.id
`

func scanTaskRow(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.AssignedTo,
		&t.AssignedBy,
		&t.Priority,
		&t.Status,
		&t.DueDate,
		&t.Category,
		&t.SubmissionNote,
		&t.SubmissionFiles,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.AssigneeName,
		&t.AssigneeEmail,
		&t.AssigneeCode,
		&t.AssignerName,
		&t.AssignerEmail,
	)
	return t, err
}

func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (
			id, title, description, assigned_to, assigned_by,
			priority, status, due_date, category, submission_files,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	files := t.SubmissionFiles
	if files == nil {
		files = []string{}
	}

	err := q.QueryRow(ctx, query,
		t.Title, t.Description, t.AssignedTo, t.AssignedBy,
		t.Priority, t.Status, t.DueDate, t.Category, files,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}

	return t, nil
}

func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskSelectColumns + taskSelectJoins + ` WHERE t.id = $1`

	t, err := scanTaskRow(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}

	return t, nil
}

func (r *taskRepositoryImpl) List(ctx context.Context, filter task.Filter) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskSelectColumns + taskSelectJoins
	var conds []string
	var args []any

	addCond := func(column string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Status != nil {
		addCond("t.status", *filter.Status)
	}
	if filter.Priority != nil {
		addCond("t.priority", *filter.Priority)
	}
	if filter.Category != nil {
		addCond("t.category", *filter.Category)
	}
	if filter.AssignedTo != nil {
		addCond("t.assigned_to", *filter.AssignedTo)
	}
	if filter.AssignedBy != nil {
		addCond("t.assigned_by", *filter.AssignedBy)
	}

	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY t.created_at DESC, t.id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepositoryImpl) Update(ctx context.Context, id string, changes task.UpdateChanges, expectedStatus *task.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if changes.Title != nil {
		addSet("title", *changes.Title)
	}
	if changes.Description != nil {
		addSet("description", *changes.Description)
	}
	if changes.AssignedTo != nil {
		addSet("assigned_to", *changes.AssignedTo)
	}
	if changes.Priority != nil {
		addSet("priority", *changes.Priority)
	}
	if changes.Status != nil {
		addSet("status", *changes.Status)
	}
	if changes.DueDate != nil {
		addSet("due_date", *changes.DueDate)
	}
	if changes.Category != nil {
		addSet("category", *changes.Category)
	}
	if changes.SubmissionNote != nil {
		addSet("submission_note", *changes.SubmissionNote)
	}
	if changes.SubmissionFiles != nil {
		addSet("submission_files", *changes.SubmissionFiles)
	}
	if changes.SetCompletedAt {
		addSet("completed_at", changes.CompletedAt)
	}

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $1", strings.Join(sets, ", "))
	if expectedStatus != nil {
		args = append(args, *expectedStatus)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes the task together with its comment log. Both deletes run in
// one transaction so a failure cannot orphan comments.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) (int64, error) {
	var affected int64
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `DELETE FROM task_comments WHERE task_id = $1`, id); err != nil {
			return err
		}

		tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (r *taskRepositoryImpl) CountByStatus(ctx context.Context, assignedTo *string) (map[task.Status]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT status, COUNT(*) FROM tasks`
	var args []any
	if assignedTo != nil {
		query += ` WHERE assigned_to = $1`
		args = append(args, *assignedTo)
	}
	query += ` GROUP BY status`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[task.Status]int)
	for rows.Next() {
		var status task.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *taskRepositoryImpl) AddComment(ctx context.Context, c task.Comment) (task.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO task_comments (id, task_id, author_id, message, created_at)
		VALUES (uuidv7(), $1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, c.TaskID, c.AuthorID, c.Message).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return task.Comment{}, err
	}

	return c, nil
}

func (r *taskRepositoryImpl) ListComments(ctx context.Context, taskID string) ([]task.Comment, error) {
	q := GetQuerier(ctx, r.db)

	// Stable chronological order, id as the tiebreaker for same-timestamp rows.
	query := `
		SELECT c.id, c.task_id, c.author_id, c.message, c.created_at,
			   u.name AS author_name, u.email AS author_email
		FROM task_comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.task_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`

	rows, err := q.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []task.Comment
	for rows.Next() {
		var c task.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Message, &c.CreatedAt, &c.AuthorName, &c.AuthorEmail); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
