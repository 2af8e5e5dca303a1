package authRepository

const (
	queryCreateUser = `
INSERT INTO users (id, email, name, password, phone_number, created_at, updated_at)
VALUES (:id, :email, :name, :password, :phone_number, :created_at, :updated_at)`

	queryGetByID = `
SELECT id, email, name, password, phone_number, fcm_token,
       google_calendar_token, gmail_token, created_at, updated_at
FROM users
WHERE id = :id`

	queryGetByEmail = `
SELECT id, email, name, password, phone_number, fcm_token,
       google_calendar_token, gmail_token, created_at, updated_at
FROM users
WHERE email = :email`

	querySearchByName = `
SELECT id, email, name, password, phone_number, fcm_token,
       google_calendar_token, gmail_token, created_at, updated_at
FROM users
WHERE name ILIKE :pattern
ORDER BY name
LIMIT 10`

	queryGetByNameExact = `
SELECT id, email, name, password, phone_number, fcm_token,
       google_calendar_token, gmail_token, created_at, updated_at
FROM users
WHERE LOWER(name) = LOWER(:name)`

	queryListNames = `
SELECT name
FROM users
ORDER BY name`

	queryUpdateUser = `
UPDATE users
SET name = :name,
    phone_number = :phone_number,
    fcm_token = :fcm_token,
    updated_at = :updated_at
WHERE id = :id`

	queryUpdateGoogleTokens = `
UPDATE users
SET google_calendar_token = :google_calendar_token,
    gmail_token = :gmail_token,
    updated_at = :updated_at
WHERE id = :id`

	queryDeleteUser = `
DELETE FROM users
WHERE id = :id`
)
