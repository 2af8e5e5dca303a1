package notificationRepository

const (
	queryCreateNotification = `
INSERT INTO notifications (id, user_id, type, title, message, read, created_at)
VALUES (:id, :user_id, :type, :title, :message, FALSE, :created_at)`

	queryListNotificationsByUser = `
SELECT id, user_id, type, title, message, read, created_at
FROM notifications
WHERE user_id = :user_id
ORDER BY created_at DESC
LIMIT 50`

	queryMarkNotificationRead = `
UPDATE notifications
SET read = TRUE
WHERE id = :id AND user_id = :user_id`

	queryMarkAllNotificationsRead = `
UPDATE notifications
SET read = TRUE
WHERE user_id = :user_id AND read = FALSE`
)
