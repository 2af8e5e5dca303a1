package meetingRepository

const (
	queryCreateMeeting = `
INSERT INTO meetings (user_id, task_id, topic, start_time, duration, join_url, source, created_at)
VALUES (:user_id, :task_id, :topic, :start_time, :duration, :join_url, :source, :created_at)
RETURNING id`

	queryGetMeetingByID = `
SELECT id, user_id, task_id, topic, start_time, duration, join_url, source, created_at
FROM meetings
WHERE id = :id`

	queryListMeetingsByUser = `
SELECT id, user_id, task_id, topic, start_time, duration, join_url, source, created_at
FROM meetings
WHERE user_id = :user_id
  AND (CAST(:start AS timestamptz) IS NULL OR start_time >= :start)
  AND (CAST(:end AS timestamptz) IS NULL OR start_time < :end)
ORDER BY start_time ASC`

	queryDeleteMeeting = `
DELETE FROM meetings
WHERE id = :id`
)
