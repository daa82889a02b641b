package mysql

// The LAST_INSERT_ID(id) trick makes the upsert return the existing
// row's id on the duplicate path, so callers always get a usable id.
const upsertMakeSQL = `
INSERT INTO car_makes (name, description)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  id          = LAST_INSERT_ID(id),
  description = VALUES(description),
  updated_at  = CURRENT_TIMESTAMP
`

const upsertModelSQL = `
INSERT INTO car_models (make_id, dealer_id, name, type, year)
VALUES (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  dealer_id  = VALUES(dealer_id),
  type       = VALUES(type),
  year       = VALUES(year),
  updated_at = CURRENT_TIMESTAMP
`

const countMakesSQL = `SELECT COUNT(*) FROM car_makes`

const listCarInfoSQL = `
SELECT m.name, k.name
FROM car_models m
JOIN car_makes k ON k.id = m.make_id
ORDER BY k.name, m.name
`

const insertUserSQL = `
INSERT INTO users (username, password_hash, first_name, last_name, email)
VALUES (?, ?, ?, ?, ?)
`

const getUserSQL = `
SELECT id, username, password_hash, first_name, last_name, email, created_at
FROM users
WHERE username = ?
`

const userExistsSQL = `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`
