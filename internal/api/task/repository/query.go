package taskRepository

const (
	queryCreateTask = `
INSERT INTO tasks (title, description, assignee_id, created_by_id, status, priority, due_date, created_at, updated_at)
VALUES (:title, :description, :assignee_id, :created_by_id, :status, :priority, :due_date, :created_at, :updated_at)
RETURNING id`

	queryGetTaskByID = `
SELECT id, title, description, assignee_id, created_by_id, status, priority,
       due_date, created_at, updated_at
FROM tasks
WHERE id = :id`

	querySearchTasksByTitle = `
SELECT id, title, description, assignee_id, created_by_id, status, priority,
       due_date, created_at, updated_at
FROM tasks
WHERE (assignee_id = :user_id OR created_by_id = :user_id)
  AND title ILIKE :pattern
ORDER BY created_at DESC
LIMIT 10`

	// Without an explicit status filter the listing covers open work only;
	// inside a due-date window, undated open tasks still count as due.
	queryListTasksByUser = `
SELECT id, title, description, assignee_id, created_by_id, status, priority,
       due_date, created_at, updated_at
FROM tasks
WHERE (assignee_id = :user_id OR created_by_id = :user_id)
  AND ((:status <> '' AND status = :status)
    OR (:status = '' AND status NOT IN ('completed', 'cancelled')))
  AND (CAST(:due_before AS timestamptz) IS NULL
    OR due_date < :due_before
    OR (due_date IS NULL AND status IN ('pending', 'in_progress')))
  AND (CAST(:due_after AS timestamptz) IS NULL
    OR due_date >= :due_after
    OR (due_date IS NULL AND status IN ('pending', 'in_progress')))
ORDER BY created_at DESC`

	queryUpdateTask = `
UPDATE tasks
SET title = :title,
    description = :description,
    priority = :priority,
    due_date = :due_date,
    updated_at = :updated_at
WHERE id = :id`

	queryUpdateTaskStatus = `
UPDATE tasks
SET status = :status,
    updated_at = :updated_at
WHERE id = :id`

	queryDeleteTask = `
DELETE FROM tasks
WHERE id = :id`

	queryCountTasksByStatus = `
SELECT status, COUNT(*) AS total
FROM tasks
WHERE assignee_id = :user_id OR created_by_id = :user_id
GROUP BY status`

	queryCreateActivity = `
INSERT INTO task_activities (id, task_id, user_id, activity_type, description, created_at)
VALUES (:id, :task_id, :user_id, :activity_type, :description, :created_at)`

	queryListActivitiesByTask = `
SELECT id, task_id, user_id, activity_type, description, created_at
FROM task_activities
WHERE task_id = :task_id
ORDER BY created_at ASC`
)
